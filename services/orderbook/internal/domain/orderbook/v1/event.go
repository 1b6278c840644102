package v1

import (
	"time"

	"github.com/google/uuid"
)

// BookEventType describes which mutation produced a BookEvent.
type BookEventType string

const (
	// OrderAdded is emitted after a successful AddOrder.
	OrderAdded BookEventType = "order_added"
	// OrderModified is emitted after a successful ModifyOrder.
	OrderModified BookEventType = "order_modified"
	// OrderRemoved is emitted after a successful RemoveOrder.
	OrderRemoved BookEventType = "order_removed"
)

// BookEvent notifies downstream consumers that a book changed.
type BookEvent struct {
	Type          BookEventType
	Asset         AssetDefinition
	OrderID       uuid.UUID
	EffectiveTime time.Time
}
