package bootstrap

import (
	consumer "github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/consumer/command-consumer"
	v1 "github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/domain/command-consumer/v1"
)

// Consumer holds the broker consumers. CommandConsumer is nil when no brokers are configured.
type Consumer struct {
	CommandConsumer v1.CommandConsumer
}

// registerConsumer registers the command consumer.
func (b *Bootstrap) registerConsumer() {
	if !b.Config.CommandKafka.Enabled() {
		return
	}
	b.Consumer.CommandConsumer = consumer.NewCommandConsumer(
		b.Config.CommandKafka,
		b.Usecase.OrderBookUsecase,
		b.Logger,
	)
}
