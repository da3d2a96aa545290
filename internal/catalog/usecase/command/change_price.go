package command

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/sd-store/catalog-service/internal/catalog/domain"
	"github.com/sd-store/catalog-service/kafka"
	"github.com/sd-store/catalog-service/pkg/logger"
)

// ChangePriceCommand represents the command to change a product price
type ChangePriceCommand struct {
	ID       uint
	NewPrice decimal.Decimal
}

// ChangePriceHandler handles price changes
type ChangePriceHandler struct {
	repo   domain.ProductRepository
	events *kafka.Publisher
}

// NewChangePriceHandler creates a new change price handler
func NewChangePriceHandler(repo domain.ProductRepository, events *kafka.Publisher) *ChangePriceHandler {
	return &ChangePriceHandler{repo: repo, events: events}
}

// Handle mutates only the price. The old and new values are logged for the
// audit trail.
func (h *ChangePriceHandler) Handle(ctx context.Context, cmd ChangePriceCommand) (*domain.Product, error) {
	if err := domain.ValidatePrice(cmd.NewPrice); err != nil {
		return nil, err
	}

	product, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}

	oldPrice := product.Price
	product.Price = cmd.NewPrice

	if err := h.repo.Update(product); err != nil {
		return nil, err
	}

	logger.Info(ctx).
		Uint("product_id", product.ID).
		Str("name", product.Name).
		Str("old_price", oldPrice.String()).
		Str("new_price", cmd.NewPrice.String()).
		Msg("Product price changed")

	if err := h.events.PublishProductEvent(ctx, kafka.ProductEvent{
		EventType: kafka.EventTypeProductPriceChanged,
		ProductID: product.ID,
		Name:      product.Name,
		Price:     &product.Price,
		OldPrice:  &oldPrice,
	}); err != nil {
		logger.Warn(ctx).Err(err).Uint("product_id", product.ID).Msg("Failed to publish price changed event")
	}

	return product, nil
}
