package orderbook

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	mockLogger "github.com/muhammadchandra19/orderbook-pricing/pkg/logger/mock"
	mockPg "github.com/muhammadchandra19/orderbook-pricing/pkg/postgresql/mock"
	v1 "github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/domain/orderbook/v1"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAsset = v1.AssetDefinition{Class: v1.AssetClassCoinPair, Symbol: "BTCUSD"}

func testOrder() v1.Order {
	return v1.Order{
		ID:            uuid.MustParse("8a1f3a56-0d43-4c55-9b1e-0a6f4b0c1d2e"),
		Price:         decimal.RequireFromString("30000.5"),
		Amount:        decimal.RequireFromString("1.25"),
		Side:          v1.SideSell,
		EffectiveTime: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func scanBool(v bool) func(dest ...any) error {
	return func(dest ...any) error {
		*dest[0].(*bool) = v
		return nil
	}
}

func TestOrderBook_GetBook(t *testing.T) {
	ctx := context.Background()
	o := testOrder()

	testCases := []struct {
		name     string
		mockFn   func(mockpg *mockPg.MockPostgreSQLClient, mockRow *mockPg.MockRowInterface)
		assertFn func(t *testing.T, book *v1.OrderBook, err error)
	}{
		{
			name: "success",
			mockFn: func(mockpg *mockPg.MockPostgreSQLClient, mockRow *mockPg.MockRowInterface) {
				doc, err := marshalOrder(o)
				require.NoError(t, err)

				mockpg.EXPECT().
					QueryRow(ctx, selectBookQuery, "coin_pair", "BTCUSD").
					Return(mockRow)
				mockRow.EXPECT().
					Scan(gomock.Any()).DoAndReturn(func(dest ...any) error {
					*dest[0].(*[]byte) = []byte("[" + doc + "]")
					return nil
				})
			},
			assertFn: func(t *testing.T, book *v1.OrderBook, err error) {
				require.NoError(t, err)
				require.NotNil(t, book)
				assert.Equal(t, testAsset, book.Asset)
				require.Len(t, book.Orders, 1)
				assert.Equal(t, o.ID, book.Orders[0].ID)
				assert.True(t, o.Price.Equal(book.Orders[0].Price))
				assert.True(t, o.Amount.Equal(book.Orders[0].Amount))
				assert.Equal(t, o.Side, book.Orders[0].Side)
				assert.True(t, o.EffectiveTime.Equal(book.Orders[0].EffectiveTime))
			},
		},
		{
			name: "error: no rows",
			mockFn: func(mockpg *mockPg.MockPostgreSQLClient, mockRow *mockPg.MockRowInterface) {
				mockpg.EXPECT().
					QueryRow(ctx, selectBookQuery, "coin_pair", "BTCUSD").
					Return(mockRow)
				mockRow.EXPECT().Scan(gomock.Any()).Return(pgx.ErrNoRows)
			},
			assertFn: func(t *testing.T, book *v1.OrderBook, err error) {
				assert.ErrorIs(t, err, v1.ErrBookNotFound)
				assert.Nil(t, book)
			},
		},
		{
			name: "error: query fails",
			mockFn: func(mockpg *mockPg.MockPostgreSQLClient, mockRow *mockPg.MockRowInterface) {
				mockpg.EXPECT().
					QueryRow(ctx, selectBookQuery, "coin_pair", "BTCUSD").
					Return(mockRow)
				mockRow.EXPECT().Scan(gomock.Any()).Return(errors.New("connection reset"))
			},
			assertFn: func(t *testing.T, book *v1.OrderBook, err error) {
				require.Error(t, err)
				assert.NotErrorIs(t, err, v1.ErrBookNotFound)
				assert.Nil(t, book)
			},
		},
		{
			name: "error: corrupt document",
			mockFn: func(mockpg *mockPg.MockPostgreSQLClient, mockRow *mockPg.MockRowInterface) {
				mockpg.EXPECT().
					QueryRow(ctx, selectBookQuery, "coin_pair", "BTCUSD").
					Return(mockRow)
				mockRow.EXPECT().
					Scan(gomock.Any()).DoAndReturn(func(dest ...any) error {
					*dest[0].(*[]byte) = []byte(`[{"id":"not-a-uuid"}]`)
					return nil
				})
			},
			assertFn: func(t *testing.T, book *v1.OrderBook, err error) {
				assert.Error(t, err)
				assert.Nil(t, book)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			pg := mockPg.NewMockPostgreSQLClient(ctrl)
			row := mockPg.NewMockRowInterface(ctrl)
			log := mockLogger.NewMockInterface(ctrl)
			repo := NewRepository(pg, log)

			tc.mockFn(pg, row)

			book, err := repo.GetBook(ctx, testAsset)
			tc.assertFn(t, book, err)
		})
	}
}

func TestOrderBook_AddOrder(t *testing.T) {
	ctx := context.Background()
	o := testOrder()
	id := o.ID.String()
	doc, err := marshalOrder(o)
	require.NoError(t, err)

	testCases := []struct {
		name     string
		mockFn   func(mockpg *mockPg.MockPostgreSQLClient, mockLogger *mockLogger.MockInterface, mockRow *mockPg.MockRowInterface)
		assertFn func(t *testing.T, err error)
	}{
		{
			name: "success: appended to existing book",
			mockFn: func(mockpg *mockPg.MockPostgreSQLClient, mockLogger *mockLogger.MockInterface, mockRow *mockPg.MockRowInterface) {
				mockpg.EXPECT().
					Exec(ctx, appendOrderQuery, "coin_pair", "BTCUSD", doc, id).
					Return(pgconn.NewCommandTag("UPDATE 1"), nil)
				mockLogger.EXPECT().DebugContext(ctx, "Appended order", gomock.Any())
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "success: book created on first write",
			mockFn: func(mockpg *mockPg.MockPostgreSQLClient, mockLogger *mockLogger.MockInterface, mockRow *mockPg.MockRowInterface) {
				gomock.InOrder(
					mockpg.EXPECT().
						Exec(ctx, appendOrderQuery, "coin_pair", "BTCUSD", doc, id).
						Return(pgconn.NewCommandTag("UPDATE 0"), nil),
					mockpg.EXPECT().
						QueryRow(ctx, containsOrderQuery, "coin_pair", "BTCUSD", id).
						Return(mockRow),
					mockpg.EXPECT().
						Exec(ctx, upsertBookQuery, "coin_pair", "BTCUSD", doc).
						Return(pgconn.NewCommandTag("INSERT 0 1"), nil),
				)
				mockRow.EXPECT().Scan(gomock.Any()).Return(pgx.ErrNoRows)
				mockLogger.EXPECT().InfoContext(ctx, "Created order book", gomock.Any(), gomock.Any())
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "error: duplicate order id",
			mockFn: func(mockpg *mockPg.MockPostgreSQLClient, mockLogger *mockLogger.MockInterface, mockRow *mockPg.MockRowInterface) {
				mockpg.EXPECT().
					Exec(ctx, appendOrderQuery, "coin_pair", "BTCUSD", doc, id).
					Return(pgconn.NewCommandTag("UPDATE 0"), nil)
				mockpg.EXPECT().
					QueryRow(ctx, containsOrderQuery, "coin_pair", "BTCUSD", id).
					Return(mockRow)
				mockRow.EXPECT().Scan(gomock.Any()).DoAndReturn(scanBool(true))
			},
			assertFn: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, v1.ErrDuplicateOrderID)
			},
		},
		{
			name: "error: book exists but append failed",
			mockFn: func(mockpg *mockPg.MockPostgreSQLClient, mockLogger *mockLogger.MockInterface, mockRow *mockPg.MockRowInterface) {
				mockpg.EXPECT().
					Exec(ctx, appendOrderQuery, "coin_pair", "BTCUSD", doc, id).
					Return(pgconn.NewCommandTag("UPDATE 0"), nil)
				mockpg.EXPECT().
					QueryRow(ctx, containsOrderQuery, "coin_pair", "BTCUSD", id).
					Return(mockRow)
				mockRow.EXPECT().Scan(gomock.Any()).DoAndReturn(scanBool(false))
			},
			assertFn: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, v1.ErrStoreUnavailable)
				assert.Equal(t, "Order didn't add despite the document already existing", err.Error())
			},
		},
		{
			name: "error: append fails",
			mockFn: func(mockpg *mockPg.MockPostgreSQLClient, mockLogger *mockLogger.MockInterface, mockRow *mockPg.MockRowInterface) {
				mockpg.EXPECT().
					Exec(ctx, appendOrderQuery, "coin_pair", "BTCUSD", doc, id).
					Return(pgconn.CommandTag{}, errors.New("error"))
			},
			assertFn: func(t *testing.T, err error) {
				assert.EqualError(t, err, "error")
			},
		},
		{
			name: "error: upsert fails",
			mockFn: func(mockpg *mockPg.MockPostgreSQLClient, mockLogger *mockLogger.MockInterface, mockRow *mockPg.MockRowInterface) {
				mockpg.EXPECT().
					Exec(ctx, appendOrderQuery, "coin_pair", "BTCUSD", doc, id).
					Return(pgconn.NewCommandTag("UPDATE 0"), nil)
				mockpg.EXPECT().
					QueryRow(ctx, containsOrderQuery, "coin_pair", "BTCUSD", id).
					Return(mockRow)
				mockRow.EXPECT().Scan(gomock.Any()).Return(pgx.ErrNoRows)
				mockpg.EXPECT().
					Exec(ctx, upsertBookQuery, "coin_pair", "BTCUSD", doc).
					Return(pgconn.CommandTag{}, errors.New("error"))
			},
			assertFn: func(t *testing.T, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			pg := mockPg.NewMockPostgreSQLClient(ctrl)
			row := mockPg.NewMockRowInterface(ctrl)
			log := mockLogger.NewMockInterface(ctrl)
			repo := NewRepository(pg, log)

			tc.mockFn(pg, log, row)

			err := repo.AddOrder(ctx, testAsset, o)
			tc.assertFn(t, err)
		})
	}
}

func TestOrderBook_ModifyOrderInPlace(t *testing.T) {
	ctx := context.Background()
	o := testOrder()
	id := o.ID.String()
	doc, err := marshalOrder(o)
	require.NoError(t, err)

	testCases := []struct {
		name     string
		mockFn   func(mockpg *mockPg.MockPostgreSQLClient, mockLogger *mockLogger.MockInterface, mockRow *mockPg.MockRowInterface)
		assertFn func(t *testing.T, err error)
	}{
		{
			name: "success",
			mockFn: func(mockpg *mockPg.MockPostgreSQLClient, mockLogger *mockLogger.MockInterface, mockRow *mockPg.MockRowInterface) {
				mockpg.EXPECT().
					Exec(ctx, replaceOrderQuery, "coin_pair", "BTCUSD", id, doc).
					Return(pgconn.NewCommandTag("UPDATE 1"), nil)
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "error: book not found",
			mockFn: func(mockpg *mockPg.MockPostgreSQLClient, mockLogger *mockLogger.MockInterface, mockRow *mockPg.MockRowInterface) {
				mockpg.EXPECT().
					Exec(ctx, replaceOrderQuery, "coin_pair", "BTCUSD", id, doc).
					Return(pgconn.NewCommandTag("UPDATE 0"), nil)
				mockpg.EXPECT().
					QueryRow(ctx, containsOrderQuery, "coin_pair", "BTCUSD", id).
					Return(mockRow)
				mockRow.EXPECT().Scan(gomock.Any()).Return(pgx.ErrNoRows)
			},
			assertFn: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, v1.ErrBookNotFound)
			},
		},
		{
			name: "error: order not found",
			mockFn: func(mockpg *mockPg.MockPostgreSQLClient, mockLogger *mockLogger.MockInterface, mockRow *mockPg.MockRowInterface) {
				mockpg.EXPECT().
					Exec(ctx, replaceOrderQuery, "coin_pair", "BTCUSD", id, doc).
					Return(pgconn.NewCommandTag("UPDATE 0"), nil)
				mockpg.EXPECT().
					QueryRow(ctx, containsOrderQuery, "coin_pair", "BTCUSD", id).
					Return(mockRow)
				mockRow.EXPECT().Scan(gomock.Any()).DoAndReturn(scanBool(false))
			},
			assertFn: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, v1.ErrOrderNotFound)
			},
		},
		{
			name: "error: order present but not updated",
			mockFn: func(mockpg *mockPg.MockPostgreSQLClient, mockLogger *mockLogger.MockInterface, mockRow *mockPg.MockRowInterface) {
				mockpg.EXPECT().
					Exec(ctx, replaceOrderQuery, "coin_pair", "BTCUSD", id, doc).
					Return(pgconn.NewCommandTag("UPDATE 0"), nil)
				mockpg.EXPECT().
					QueryRow(ctx, containsOrderQuery, "coin_pair", "BTCUSD", id).
					Return(mockRow)
				mockRow.EXPECT().Scan(gomock.Any()).DoAndReturn(scanBool(true))
				mockLogger.EXPECT().WarnContext(ctx, gomock.Any(), gomock.Any(), gomock.Any())
			},
			assertFn: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, v1.ErrStoreUnavailable)
			},
		},
		{
			name: "error: probe fails",
			mockFn: func(mockpg *mockPg.MockPostgreSQLClient, mockLogger *mockLogger.MockInterface, mockRow *mockPg.MockRowInterface) {
				mockpg.EXPECT().
					Exec(ctx, replaceOrderQuery, "coin_pair", "BTCUSD", id, doc).
					Return(pgconn.NewCommandTag("UPDATE 0"), nil)
				mockpg.EXPECT().
					QueryRow(ctx, containsOrderQuery, "coin_pair", "BTCUSD", id).
					Return(mockRow)
				mockRow.EXPECT().Scan(gomock.Any()).Return(errors.New("timeout"))
			},
			assertFn: func(t *testing.T, err error) {
				assert.EqualError(t, err, "timeout")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			pg := mockPg.NewMockPostgreSQLClient(ctrl)
			row := mockPg.NewMockRowInterface(ctrl)
			log := mockLogger.NewMockInterface(ctrl)
			repo := NewRepository(pg, log)

			tc.mockFn(pg, log, row)

			err := repo.ModifyOrderInPlace(ctx, testAsset, o)
			tc.assertFn(t, err)
		})
	}
}

func TestOrderBook_RemoveOrder(t *testing.T) {
	ctx := context.Background()
	id := testOrder().ID

	testCases := []struct {
		name     string
		mockFn   func(mockpg *mockPg.MockPostgreSQLClient, mockRow *mockPg.MockRowInterface)
		assertFn func(t *testing.T, err error)
	}{
		{
			name: "success",
			mockFn: func(mockpg *mockPg.MockPostgreSQLClient, mockRow *mockPg.MockRowInterface) {
				mockpg.EXPECT().
					Exec(ctx, removeOrderQuery, "coin_pair", "BTCUSD", id.String()).
					Return(pgconn.NewCommandTag("UPDATE 1"), nil)
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "error: order not found",
			mockFn: func(mockpg *mockPg.MockPostgreSQLClient, mockRow *mockPg.MockRowInterface) {
				mockpg.EXPECT().
					Exec(ctx, removeOrderQuery, "coin_pair", "BTCUSD", id.String()).
					Return(pgconn.NewCommandTag("UPDATE 0"), nil)
				mockpg.EXPECT().
					QueryRow(ctx, containsOrderQuery, "coin_pair", "BTCUSD", id.String()).
					Return(mockRow)
				mockRow.EXPECT().Scan(gomock.Any()).DoAndReturn(scanBool(false))
			},
			assertFn: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, v1.ErrOrderNotFound)
			},
		},
		{
			name: "error: exec fails",
			mockFn: func(mockpg *mockPg.MockPostgreSQLClient, mockRow *mockPg.MockRowInterface) {
				mockpg.EXPECT().
					Exec(ctx, removeOrderQuery, "coin_pair", "BTCUSD", id.String()).
					Return(pgconn.CommandTag{}, errors.New("error"))
			},
			assertFn: func(t *testing.T, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			pg := mockPg.NewMockPostgreSQLClient(ctrl)
			row := mockPg.NewMockRowInterface(ctrl)
			log := mockLogger.NewMockInterface(ctrl)
			repo := NewRepository(pg, log)

			tc.mockFn(pg, row)

			err := repo.RemoveOrder(ctx, testAsset, id)
			tc.assertFn(t, err)
		})
	}
}
