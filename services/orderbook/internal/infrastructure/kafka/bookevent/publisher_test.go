package bookevent

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	mockLogger "github.com/muhammadchandra19/orderbook-pricing/pkg/logger/mock"
	v1 "github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/domain/orderbook/v1"
	"github.com/oklog/ulid/v2"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func testEvent() v1.BookEvent {
	return v1.BookEvent{
		Type:          v1.OrderAdded,
		Asset:         v1.AssetDefinition{Class: v1.AssetClassCoinPair, Symbol: "BTCUSD"},
		OrderID:       uuid.MustParse("1b4e28ba-2fa1-41d2-883f-0016d3cca427"),
		EffectiveTime: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestKafkaPublisher_Publish(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	w := &fakeWriter{}
	p := newKafkaPublisher(w, mockLogger.NewMockInterface(ctrl))

	require.NoError(t, p.Publish(ctx, testEvent()))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "coin_pair:BTCUSD", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "order_added", string(msg.Headers[0].Value))

	var body Message
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, "order_added", body.Type)
	assert.Equal(t, Asset{Class: "coin_pair", Symbol: "BTCUSD"}, body.Asset)
	assert.Equal(t, "1b4e28ba-2fa1-41d2-883f-0016d3cca427", body.OrderID)

	id, err := ulid.Parse(body.EventID)
	require.NoError(t, err)
	assert.Equal(t, ulid.Timestamp(testEvent().EffectiveTime), id.Time())
}

func TestKafkaPublisher_PublishError(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	log := mockLogger.NewMockInterface(ctrl)
	log.EXPECT().ErrorContext(ctx, errors.New("broker down"), gomock.Any(), gomock.Any())

	p := newKafkaPublisher(&fakeWriter{err: errors.New("broker down")}, log)

	err := p.Publish(ctx, testEvent())
	assert.EqualError(t, err, "failed to publish book event")
}

func TestKafkaPublisher_Close(t *testing.T) {
	w := &fakeWriter{}
	p := newKafkaPublisher(w, nil)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), testEvent()))
	assert.NoError(t, p.Close())
}
