package kafka

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductEventKeepsZeroQuantity(t *testing.T) {
	price := decimal.RequireFromString("40.50")
	event := ProductEvent{
		EventType: EventTypeProductUpdated,
		ProductID: 7,
		Name:      "Coffee",
		Category:  "Food",
		Quantity:  0,
		Price:     &price,
	}

	raw, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	quantity, ok := decoded["quantity"]
	require.True(t, ok, "quantity must be present for out-of-stock products")
	assert.EqualValues(t, 0, quantity)
}

func TestNilPublisherDropsEvents(t *testing.T) {
	var p *Publisher

	err := p.PublishProductEvent(context.Background(), ProductEvent{
		EventType: EventTypeProductCreated,
		ProductID: 1,
	})
	assert.NoError(t, err)
	assert.NoError(t, p.Close())
}
