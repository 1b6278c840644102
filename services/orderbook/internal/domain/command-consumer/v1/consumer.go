package v1

import "context"

// CommandConsumer drains order commands from a message broker into the order book.
type CommandConsumer interface {
	// Start blocks until ctx is done.
	Start(ctx context.Context) error
	Stop() error
}
