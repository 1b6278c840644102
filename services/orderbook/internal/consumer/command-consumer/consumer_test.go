package consumer

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muhammadchandra19/orderbook-pricing/pkg/logger"
	"github.com/muhammadchandra19/orderbook-pricing/pkg/util"
	v1 "github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/domain/command-consumer/v1"
	usecaseMock "github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/domain/orderbook/mock"
	orderbookv1 "github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/domain/orderbook/v1"
)

var btc = orderbookv1.AssetDefinition{Class: orderbookv1.AssetClassCoinPair, Symbol: "BTCUSD"}

// fakeReader serves queued messages and then reports the reader as closed.
type fakeReader struct {
	mu        sync.Mutex
	queue     []kafka.Message
	committed []int64
	closed    bool
}

func newFakeReader(values ...[]byte) *fakeReader {
	r := &fakeReader{}
	for i, v := range values {
		r.queue = append(r.queue, kafka.Message{Offset: int64(i), Value: v})
	}
	return r
}

func (r *fakeReader) FetchMessage(_ context.Context) (kafka.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.queue) == 0 {
		return kafka.Message{}, io.EOF
	}
	msg := r.queue[0]
	r.queue = r.queue[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func encode(t *testing.T, cmd v1.OrderCommand) []byte {
	t.Helper()
	b, err := json.Marshal(cmd)
	require.NoError(t, err)
	return b
}

func addCommand() v1.OrderCommand {
	return v1.OrderCommand{
		Type:           v1.CommandAddOrder,
		IdempotencyKey: "key-1",
		Asset:          v1.Asset{Class: "coin_pair", Symbol: "BTCUSD"},
		Price:          "30000",
		Amount:         "2",
		Side:           "sell",
	}
}

func TestCommandConsumer_Start(t *testing.T) {
	orderID := uuid.MustParse("5f0c7c1e-8a0e-4b8b-9d37-2d5b4a3b8e11")

	testCases := []struct {
		name          string
		messages      func(t *testing.T) [][]byte
		mockFn        func(uc *usecaseMock.MockUsecase)
		wantCommitted []int64
	}{
		{
			name: "add command is applied and committed",
			messages: func(t *testing.T) [][]byte {
				return [][]byte{encode(t, addCommand())}
			},
			mockFn: func(uc *usecaseMock.MockUsecase) {
				uc.EXPECT().AddOrder(gomock.Any(), orderbookv1.AddOrderRequest{
					IdempotencyKey: "key-1",
					Asset:          btc,
					Price:          decimal.RequireFromString("30000"),
					Amount:         decimal.RequireFromString("2"),
					Side:           orderbookv1.SideSell,
				}).DoAndReturn(func(ctx context.Context, _ orderbookv1.AddOrderRequest) (orderbookv1.AddOrderResult, error) {
					offset, ok := util.GetMessageOffset(ctx)
					assert.True(t, ok)
					assert.Equal(t, int64(0), offset)
					assert.Equal(t, "key-1", util.GetIdempotencyKey(ctx))
					return orderbookv1.AddOrderResult{OrderID: orderID}, nil
				})
			},
			wantCommitted: []int64{0},
		},
		{
			name: "modify and remove commands",
			messages: func(t *testing.T) [][]byte {
				modify := addCommand()
				modify.Type = v1.CommandModifyOrder
				modify.OrderID = orderID.String()
				remove := v1.OrderCommand{
					Type:           v1.CommandRemoveOrder,
					IdempotencyKey: "key-2",
					Asset:          modify.Asset,
					OrderID:        orderID.String(),
				}
				return [][]byte{encode(t, modify), encode(t, remove)}
			},
			mockFn: func(uc *usecaseMock.MockUsecase) {
				gomock.InOrder(
					uc.EXPECT().ModifyOrder(gomock.Any(), gomock.Any()).Return(orderbookv1.MutationResult{}, nil),
					uc.EXPECT().RemoveOrder(gomock.Any(), orderbookv1.RemoveOrderRequest{
						IdempotencyKey: "key-2",
						Asset:          btc,
						OrderID:        orderID,
					}).Return(orderbookv1.MutationResult{}, orderbookv1.ErrOrderNotFound),
				)
			},
			wantCommitted: []int64{0, 1},
		},
		{
			name: "malformed and invalid messages are committed without applying",
			messages: func(t *testing.T) [][]byte {
				invalid := addCommand()
				invalid.Amount = "0"
				unknown := addCommand()
				unknown.Type = "fill"
				return [][]byte{[]byte("{not json"), encode(t, invalid), encode(t, unknown)}
			},
			wantCommitted: []int64{0, 1, 2},
		},
		{
			name: "duplicate idempotent request is committed",
			messages: func(t *testing.T) [][]byte {
				return [][]byte{encode(t, addCommand())}
			},
			mockFn: func(uc *usecaseMock.MockUsecase) {
				uc.EXPECT().AddOrder(gomock.Any(), gomock.Any()).Return(orderbookv1.AddOrderResult{}, orderbookv1.ErrDuplicateIdempotentRequest)
			},
			wantCommitted: []int64{0},
		},
		{
			name: "store unavailable is retried before committing",
			messages: func(t *testing.T) [][]byte {
				return [][]byte{encode(t, addCommand())}
			},
			mockFn: func(uc *usecaseMock.MockUsecase) {
				gomock.InOrder(
					uc.EXPECT().AddOrder(gomock.Any(), gomock.Any()).Return(orderbookv1.AddOrderResult{}, orderbookv1.ErrStoreUnavailable),
					uc.EXPECT().AddOrder(gomock.Any(), gomock.Any()).Return(orderbookv1.AddOrderResult{OrderID: orderID}, nil),
				)
			},
			wantCommitted: []int64{0},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			uc := usecaseMock.NewMockUsecase(ctrl)
			if tc.mockFn != nil {
				tc.mockFn(uc)
			}

			reader := newFakeReader(tc.messages(t)...)
			c := newCommandConsumer(reader, uc, logger.NewNopLogger(), time.Millisecond)

			require.NoError(t, c.Start(context.Background()))
			assert.Equal(t, tc.wantCommitted, reader.committed)
		})
	}
}

func TestCommandConsumer_StopsWhileRetrying(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := usecaseMock.NewMockUsecase(ctrl)
	uc.EXPECT().AddOrder(gomock.Any(), gomock.Any()).Return(orderbookv1.AddOrderResult{}, orderbookv1.ErrStoreUnavailable).MinTimes(1)

	reader := newFakeReader(encode(t, addCommand()))
	c := newCommandConsumer(reader, uc, logger.NewNopLogger(), 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	require.NoError(t, c.Start(ctx))
	assert.Empty(t, reader.committed)

	require.NoError(t, c.Stop())
	assert.True(t, reader.closed)
}
