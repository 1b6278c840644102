package bookevent

import (
	"context"
	"time"

	"github.com/muhammadchandra19/orderbook-pricing/pkg/errors"
	"github.com/muhammadchandra19/orderbook-pricing/pkg/logger"
	v1 "github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/orderbook-pricing/services/orderbook/pkg/config"
	"github.com/oklog/ulid/v2"
	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes book events to a Kafka topic, keyed by asset so each book stays ordered.
type KafkaPublisher struct {
	kafkaWriter messageWriter
	logger      logger.Interface
}

// NewKafkaPublisher creates a new Kafka publisher for book events.
func NewKafkaPublisher(config config.EventKafkaConfig, logger logger.Interface) *KafkaPublisher {
	kafkaWriter := &kafka.Writer{
		Addr:                   kafka.TCP(config.Brokers...),
		Topic:                  config.Topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           config.BatchTimeout,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}

	return newKafkaPublisher(kafkaWriter, logger)
}

func newKafkaPublisher(w messageWriter, logger logger.Interface) *KafkaPublisher {
	return &KafkaPublisher{
		kafkaWriter: w,
		logger:      logger,
	}
}

// Publish publishes a book event.
func (p *KafkaPublisher) Publish(ctx context.Context, event v1.BookEvent) error {
	at := event.EffectiveTime
	if at.IsZero() {
		at = time.Now()
	}
	id := ulid.MustNew(ulid.Timestamp(at), ulid.DefaultEntropy())

	value, err := NewMessage(id.String(), event).ToBytes()
	if err != nil {
		return errors.NewTracer("book_event_marshal_error").Wrap(err)
	}

	msg := kafka.Message{
		Key:   []byte(event.Asset.String()),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}

	if err := p.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		p.logger.ErrorContext(ctx, err,
			logger.Field{Key: "action", Value: "publish_book_event"},
			logger.Field{Key: "event_id", Value: id.String()},
		)
		return errors.NewErrorDetails("failed to publish book event", string(errors.KafkaPublishError), "event")
	}

	return nil
}

// Close flushes pending writes and closes the writer.
func (p *KafkaPublisher) Close() error {
	return p.kafkaWriter.Close()
}

// NoopPublisher drops every event. It is used when no event brokers are configured.
type NoopPublisher struct{}

// Publish implements Publisher.
func (NoopPublisher) Publish(context.Context, v1.BookEvent) error { return nil }

// Close implements Publisher.
func (NoopPublisher) Close() error { return nil }
