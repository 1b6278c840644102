package pricecache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/muhammadchandra19/orderbook-pricing/pkg/logger"
	mockLogger "github.com/muhammadchandra19/orderbook-pricing/pkg/logger/mock"
	"github.com/muhammadchandra19/orderbook-pricing/pkg/redis"
	redisMock "github.com/muhammadchandra19/orderbook-pricing/pkg/redis/mock"
	v1 "github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/domain/orderbook/v1"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var asset = v1.AssetDefinition{Class: v1.AssetClassCoinPair, Symbol: "BTCUSD"}

func TestStore_Key(t *testing.T) {
	s := NewStore(nil, redis.DefaultConfig(), logger.NewNopLogger())
	assert.Equal(t, "orderbook:book:coin_pair:BTCUSD", s.Key(asset))
}

func TestStore_PutThenGet(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := redisMock.NewMockClient(ctrl)
	s := NewStore(client, redis.DefaultConfig(), logger.NewNopLogger())

	book := &v1.OrderBook{
		Asset: asset,
		Orders: []v1.Order{{
			ID:            uuid.New(),
			Price:         decimal.RequireFromString("30000.01"),
			Amount:        decimal.RequireFromString("0.5"),
			Side:          v1.SideSell,
			EffectiveTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		}},
	}

	var stored []byte
	client.EXPECT().
		Set(ctx, "orderbook:book:coin_pair:BTCUSD", gomock.Any(), time.Minute).
		DoAndReturn(func(_ context.Context, _ string, value any, _ time.Duration) error {
			stored = value.([]byte)
			return nil
		})
	require.NoError(t, s.Put(ctx, asset, book, time.Minute))

	client.EXPECT().
		Get(ctx, "orderbook:book:coin_pair:BTCUSD").
		DoAndReturn(func(_ context.Context, _ string) (string, bool, error) {
			return string(stored), true, nil
		})

	got, found, err := s.Get(ctx, asset)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, asset, got.Asset)
	require.Len(t, got.Orders, 1)
	assert.Equal(t, book.Orders[0].ID, got.Orders[0].ID)
	assert.True(t, book.Orders[0].Price.Equal(got.Orders[0].Price))
	assert.True(t, book.Orders[0].EffectiveTime.Equal(got.Orders[0].EffectiveTime))
}

func TestStore_Get(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name     string
		mockFn   func(client *redisMock.MockClient, log *mockLogger.MockInterface)
		assertFn func(t *testing.T, book *v1.OrderBook, found bool, err error)
	}{
		{
			name: "miss",
			mockFn: func(client *redisMock.MockClient, log *mockLogger.MockInterface) {
				client.EXPECT().Get(ctx, gomock.Any()).Return("", false, nil)
			},
			assertFn: func(t *testing.T, book *v1.OrderBook, found bool, err error) {
				assert.NoError(t, err)
				assert.False(t, found)
				assert.Nil(t, book)
			},
		},
		{
			name: "redis error",
			mockFn: func(client *redisMock.MockClient, log *mockLogger.MockInterface) {
				client.EXPECT().Get(ctx, gomock.Any()).Return("", false, errors.New("down"))
			},
			assertFn: func(t *testing.T, book *v1.OrderBook, found bool, err error) {
				assert.Error(t, err)
				assert.False(t, found)
			},
		},
		{
			name: "corrupt entry is a miss",
			mockFn: func(client *redisMock.MockClient, log *mockLogger.MockInterface) {
				client.EXPECT().Get(ctx, gomock.Any()).Return("{not json", true, nil)
				log.EXPECT().WarnContext(ctx, "Discarding unreadable cached book", gomock.Any(), gomock.Any())
			},
			assertFn: func(t *testing.T, book *v1.OrderBook, found bool, err error) {
				assert.NoError(t, err)
				assert.False(t, found)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := redisMock.NewMockClient(ctrl)
			log := mockLogger.NewMockInterface(ctrl)
			s := NewStore(client, redis.DefaultConfig(), log)

			tc.mockFn(client, log)

			book, found, err := s.Get(ctx, asset)
			tc.assertFn(t, book, found, err)
		})
	}
}

func TestStore_Invalidate(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := redisMock.NewMockClient(ctrl)
	s := NewStore(client, redis.DefaultConfig(), logger.NewNopLogger())

	client.EXPECT().Del(ctx, "orderbook:book:coin_pair:BTCUSD").Return(int64(1), nil)
	assert.NoError(t, s.Invalidate(ctx, asset))

	client.EXPECT().Del(ctx, "orderbook:book:coin_pair:BTCUSD").Return(int64(0), errors.New("down"))
	assert.Error(t, s.Invalidate(ctx, asset))
}
