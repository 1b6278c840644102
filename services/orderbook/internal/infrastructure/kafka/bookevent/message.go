package bookevent

import (
	"encoding/json"
	"time"

	v1 "github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/domain/orderbook/v1"
)

// Asset is the wire form of an asset definition.
type Asset struct {
	Class  string `json:"class"`
	Symbol string `json:"symbol"`
}

// Message is the JSON payload written to the book event topic.
type Message struct {
	EventID       string    `json:"event_id"`
	Type          string    `json:"type"`
	Asset         Asset     `json:"asset"`
	OrderID       string    `json:"order_id"`
	EffectiveTime time.Time `json:"effective_time"`
}

// NewMessage builds the wire message for event.
func NewMessage(eventID string, event v1.BookEvent) Message {
	return Message{
		EventID: eventID,
		Type:    string(event.Type),
		Asset: Asset{
			Class:  string(event.Asset.Class),
			Symbol: event.Asset.Symbol,
		},
		OrderID:       event.OrderID.String(),
		EffectiveTime: event.EffectiveTime.UTC(),
	}
}

// ToBytes serializes the message.
func (m Message) ToBytes() ([]byte, error) {
	return json.Marshal(m)
}
