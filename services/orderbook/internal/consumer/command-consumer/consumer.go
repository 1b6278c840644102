package consumer

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/muhammadchandra19/orderbook-pricing/pkg/errors"
	"github.com/muhammadchandra19/orderbook-pricing/pkg/logger"
	"github.com/muhammadchandra19/orderbook-pricing/pkg/util"
	v1 "github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/domain/command-consumer/v1"
	"github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/domain/orderbook"
	orderbookv1 "github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/orderbook-pricing/services/orderbook/pkg/config"
)

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// CommandConsumer applies order commands from the command topic to the order book.
// A message is committed once it has been applied or rejected for good. Messages
// that failed because the store was unavailable are retried until they go through.
type CommandConsumer struct {
	kafkaReader messageReader

	orderBookUsecase orderbook.Usecase
	logger           logger.Interface
	retryBackoff     time.Duration
}

var _ v1.CommandConsumer = (*CommandConsumer)(nil)

// NewCommandConsumer creates a new CommandConsumer.
func NewCommandConsumer(
	config config.CommandKafkaConfig,
	orderBookUsecase orderbook.Usecase,
	logger logger.Interface,
) *CommandConsumer {
	kafkaReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     config.Brokers,
		Topic:       config.Topic,
		GroupID:     config.ConsumerGroup,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.FirstOffset,
	})

	return newCommandConsumer(kafkaReader, orderBookUsecase, logger, config.RetryBackoff)
}

func newCommandConsumer(r messageReader, uc orderbook.Usecase, logger logger.Interface, backoff time.Duration) *CommandConsumer {
	return &CommandConsumer{
		kafkaReader:      r,
		orderBookUsecase: uc,
		logger:           logger,
		retryBackoff:     backoff,
	}
}

// Start consumes until ctx is done or the reader is closed.
func (c *CommandConsumer) Start(ctx context.Context) error {
	c.logger.InfoContext(ctx, "starting command consumer", logger.Field{
		Key:   "action",
		Value: "command_consumer_start",
	})

	for {
		msg, err := c.kafkaReader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || stderrors.Is(err, io.EOF) {
				c.logger.InfoContext(ctx, "command consumer stopped", logger.Field{
					Key:   "action",
					Value: "command_consumer_stop",
				})
				return nil
			}

			c.logger.ErrorContext(ctx, errors.NewTracer(string(errors.KafkaConsumeError)).Wrap(err), logger.Field{
				Key:   "action",
				Value: "fetch_message",
			})
			if !c.wait(ctx) {
				return nil
			}
			continue
		}

		msgCtx := util.WithMessageOffset(util.WithRequestID(ctx, ""), msg.Offset)
		for !c.process(msgCtx, msg) {
			if !c.wait(ctx) {
				return nil
			}
		}

		if err := c.kafkaReader.CommitMessages(ctx, msg); err != nil {
			c.logger.ErrorContext(msgCtx, errors.NewTracer(string(errors.KafkaConsumeError)).Wrap(err), logger.Field{
				Key:   "action",
				Value: "commit_message",
			})
		}
	}
}

// Stop closes the underlying reader.
func (c *CommandConsumer) Stop() error {
	c.logger.Info("stopping command consumer", logger.Field{
		Key:   "action",
		Value: "command_consumer_stop",
	})
	return c.kafkaReader.Close()
}

// process applies one message and reports whether it may be committed.
func (c *CommandConsumer) process(ctx context.Context, msg kafka.Message) bool {
	var cmd v1.OrderCommand
	if err := json.Unmarshal(msg.Value, &cmd); err != nil {
		c.logger.ErrorContext(ctx, errors.TracerFromError(err), logger.Field{
			Key:   "action",
			Value: "unmarshal_command",
		})
		return true
	}

	if cmd.IdempotencyKey != "" {
		ctx = util.WithIdempotencyKey(ctx, cmd.IdempotencyKey)
	}

	err := c.handleCommand(ctx, cmd)
	switch {
	case err == nil:
		c.logger.DebugContext(ctx, "Applied order command", logger.Field{Key: "type", Value: cmd.Type})
		return true
	case errors.ErrorCodeEquals(err, orderbookv1.CodeStoreUnavailable):
		c.logger.WarnContext(ctx, "Order book store unavailable, command will be retried",
			logger.Field{Key: "type", Value: cmd.Type},
			logger.Field{Key: "reason", Value: err.Error()},
		)
		return false
	default:
		c.logger.InfoContext(ctx, "Order command rejected",
			logger.Field{Key: "type", Value: cmd.Type},
			logger.Field{Key: "reason", Value: err.Error()},
		)
		return true
	}
}

func (c *CommandConsumer) handleCommand(ctx context.Context, cmd v1.OrderCommand) error {
	switch cmd.Type {
	case v1.CommandAddOrder:
		req, err := cmd.ToAddOrderRequest()
		if err != nil {
			return err
		}
		_, err = c.orderBookUsecase.AddOrder(ctx, req)
		return err
	case v1.CommandModifyOrder:
		req, err := cmd.ToModifyOrderRequest()
		if err != nil {
			return err
		}
		_, err = c.orderBookUsecase.ModifyOrder(ctx, req)
		return err
	case v1.CommandRemoveOrder:
		req, err := cmd.ToRemoveOrderRequest()
		if err != nil {
			return err
		}
		_, err = c.orderBookUsecase.RemoveOrder(ctx, req)
		return err
	default:
		return v1.ErrUnknownCommandType{Type: cmd.Type}
	}
}

// wait sleeps for the retry backoff and reports false when ctx ended first.
func (c *CommandConsumer) wait(ctx context.Context) bool {
	t := time.NewTimer(c.retryBackoff)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
