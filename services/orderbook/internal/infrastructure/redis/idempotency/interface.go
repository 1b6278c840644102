package idempotency

import "context"

// Guard reserves idempotency keys so a mutation runs at most once per key.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=idempotency_mock
type Guard interface {
	TryReserve(ctx context.Context, key string) error
	Release(ctx context.Context, key string) error
}
