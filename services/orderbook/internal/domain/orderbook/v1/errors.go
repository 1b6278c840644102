package v1

import "github.com/muhammadchandra19/orderbook-pricing/pkg/errors"

// Error codes surfaced by the order book service.
const (
	CodeBookNotFound               = "book_not_found"
	CodeOrderNotFound              = "order_not_found"
	CodeDuplicateOrderID           = "duplicate_order_id"
	CodeUnsatisfiableLiquidity     = "unsatisfiable_liquidity"
	CodeMissingIdempotencyKey      = "missing_idempotency_key"
	CodeDuplicateIdempotentRequest = "duplicate_idempotent_request"
	CodeStoreUnavailable           = "store_unavailable"
)

var (
	// ErrBookNotFound is returned when no book exists for the asset.
	ErrBookNotFound = errors.NewErrorDetails("Could not find OrderBook for asset", CodeBookNotFound, "asset")
	// ErrOrderNotFound is returned when the book exists but holds no order with the id.
	ErrOrderNotFound = errors.NewErrorDetails("OrderId does not exist in OrderBook", CodeOrderNotFound, "order_id")
	// ErrDuplicateOrderID is returned when the book already holds an order with the id.
	ErrDuplicateOrderID = errors.NewErrorDetails("An order with this OrderId already exists in OrderBook", CodeDuplicateOrderID, "order_id")
	// ErrUnsatisfiableLiquidity is returned when resting liquidity cannot fill the amount.
	ErrUnsatisfiableLiquidity = errors.NewErrorDetails("Unsatisfiable order", CodeUnsatisfiableLiquidity, "amount")
	// ErrMissingIdempotencyKey is returned for a mutating request without a key.
	ErrMissingIdempotencyKey = errors.NewErrorDetails("This operation should be idempotent, but no idempotency key was provided", CodeMissingIdempotencyKey, "idempotency_key")
	// ErrDuplicateIdempotentRequest is returned when the key was already used.
	ErrDuplicateIdempotentRequest = errors.NewErrorDetails("This request is being ignored as a previous request has been processed with this idempotency key", CodeDuplicateIdempotentRequest, "idempotency_key")
	// ErrStoreUnavailable is returned for unanticipated backend failures.
	ErrStoreUnavailable = errors.NewErrorDetails("OrderBook store is unavailable", CodeStoreUnavailable, "")
)

// NewStoreUnavailableError returns a store failure carrying a specific message.
func NewStoreUnavailableError(message string) *errors.ErrorDetails {
	return errors.NewErrorDetails(message, CodeStoreUnavailable, "")
}

// IsKnownCode reports whether code belongs to the order book taxonomy.
func IsKnownCode(code string) bool {
	switch code {
	case CodeBookNotFound, CodeOrderNotFound, CodeDuplicateOrderID, CodeUnsatisfiableLiquidity,
		CodeMissingIdempotencyKey, CodeDuplicateIdempotentRequest, CodeStoreUnavailable:
		return true
	default:
		return false
	}
}
