package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sd-store/catalog-service/internal/catalog/domain"
	"github.com/sd-store/catalog-service/kafka"
	"github.com/sd-store/catalog-service/pkg/logger"
)

// UpdateProductCommand represents the command to replace a product's
// mutable fields.
type UpdateProductCommand struct {
	ID          uint
	Name        string
	Description string
	Price       decimal.Decimal
	Quantity    int
	Category    string
}

// UpdateProductHandler handles product updates
type UpdateProductHandler struct {
	repo   domain.ProductRepository
	events *kafka.Publisher
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(repo domain.ProductRepository, events *kafka.Publisher) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo, events: events}
}

// Handle executes the update product command. The replacement overwrites all
// five mutable fields unconditionally; only the name is checked here. The
// per-field constraints are enforced by the request validation at the HTTP
// boundary.
func (h *UpdateProductHandler) Handle(ctx context.Context, cmd UpdateProductCommand) (*domain.Product, error) {
	product, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(cmd.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidData)
	}

	product.Name = cmd.Name
	product.Description = cmd.Description
	product.Price = cmd.Price
	product.Quantity = cmd.Quantity
	product.Category = cmd.Category

	if err := h.repo.Update(product); err != nil {
		return nil, err
	}

	logger.Info(ctx).
		Uint("product_id", product.ID).
		Str("name", product.Name).
		Msg("Product updated")

	if err := h.events.PublishProductEvent(ctx, kafka.ProductEvent{
		EventType: kafka.EventTypeProductUpdated,
		ProductID: product.ID,
		Name:      product.Name,
		Category:  product.Category,
		Quantity:  product.Quantity,
	}); err != nil {
		logger.Warn(ctx).Err(err).Uint("product_id", product.ID).Msg("Failed to publish updated event")
	}

	return product, nil
}
