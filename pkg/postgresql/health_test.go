package postgresql_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/muhammadchandra19/orderbook-pricing/pkg/postgresql"
	mockPg "github.com/muhammadchandra19/orderbook-pricing/pkg/postgresql/mock"
	"github.com/stretchr/testify/assert"
)

func TestHealthChecker_Check(t *testing.T) {
	testCases := []struct {
		name     string
		mockFn   func(db *mockPg.MockPostgreSQLClient, row *mockPg.MockRowInterface)
		assertFn func(t *testing.T, err error)
	}{
		{
			name: "healthy",
			mockFn: func(db *mockPg.MockPostgreSQLClient, row *mockPg.MockRowInterface) {
				db.EXPECT().Ping(gomock.Any()).Return(nil)
				db.EXPECT().QueryRow(gomock.Any(), "SELECT 1").Return(row)
				row.EXPECT().Scan(gomock.Any()).Return(nil)
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "ping fails",
			mockFn: func(db *mockPg.MockPostgreSQLClient, row *mockPg.MockRowInterface) {
				db.EXPECT().Ping(gomock.Any()).Return(fmt.Errorf("connection refused"))
			},
			assertFn: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "ping failed")
			},
		},
		{
			name: "probe query fails",
			mockFn: func(db *mockPg.MockPostgreSQLClient, row *mockPg.MockRowInterface) {
				db.EXPECT().Ping(gomock.Any()).Return(nil)
				db.EXPECT().QueryRow(gomock.Any(), "SELECT 1").Return(row)
				row.EXPECT().Scan(gomock.Any()).Return(fmt.Errorf("read only"))
			},
			assertFn: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "probe query failed")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			db := mockPg.NewMockPostgreSQLClient(ctrl)
			row := mockPg.NewMockRowInterface(ctrl)
			tc.mockFn(db, row)

			checker := postgresql.NewHealthChecker(db)
			assert.Equal(t, "postgresql", checker.Name())
			tc.assertFn(t, checker.Check(context.Background()))
		})
	}
}
