package kafka

import (
	"time"

	"github.com/shopspring/decimal"
)

// Topics
const (
	TopicCatalogEvents = "catalog.product-events"
)

// Event types
const (
	EventTypeProductCreated      = "product.created"
	EventTypeProductUpdated      = "product.updated"
	EventTypeProductPriceChanged = "product.price_changed"
	EventTypeProductDeleted      = "product.deleted"
)

// ProductEvent is the envelope for every product lifecycle event.
type ProductEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`

	ProductID uint   `json:"product_id"`
	Name      string `json:"name,omitempty"`
	Category  string `json:"category,omitempty"`
	// Quantity has no omitempty: zero stock is a real value, not an
	// absent one.
	Quantity int `json:"quantity"`

	// Price fields are set for created and price_changed events.
	Price    *decimal.Decimal `json:"price,omitempty"`
	OldPrice *decimal.Decimal `json:"old_price,omitempty"`
}
