package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sd-store/catalog-service/internal/catalog/domain"
	"github.com/sd-store/catalog-service/kafka"
	"github.com/sd-store/catalog-service/pkg/logger"
)

// AddProductCommand represents the command to add a new product
type AddProductCommand struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Quantity    int
	Category    string
}

// AddProductHandler handles product creation
type AddProductHandler struct {
	repo   domain.ProductRepository
	events *kafka.Publisher
}

// NewAddProductHandler creates a new add product handler
func NewAddProductHandler(repo domain.ProductRepository, events *kafka.Publisher) *AddProductHandler {
	return &AddProductHandler{repo: repo, events: events}
}

// Handle executes the add product command. The duplicate-name pre-check is
// advisory; the unique index on name is what holds under concurrent writers.
func (h *AddProductHandler) Handle(ctx context.Context, cmd AddProductCommand) (*domain.Product, error) {
	product := &domain.Product{
		Name:        cmd.Name,
		Description: cmd.Description,
		Price:       cmd.Price,
		Quantity:    cmd.Quantity,
		Category:    cmd.Category,
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	existing, err := h.repo.FindByName(cmd.Name)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to check product name: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrDuplicateName, cmd.Name)
	}

	if err := h.repo.Create(product); err != nil {
		return nil, err
	}

	logger.Info(ctx).
		Uint("product_id", product.ID).
		Str("name", product.Name).
		Str("category", product.Category).
		Str("price", product.Price.String()).
		Int("quantity", product.Quantity).
		Msg("Product added")

	if err := h.events.PublishProductEvent(ctx, kafka.ProductEvent{
		EventType: kafka.EventTypeProductCreated,
		ProductID: product.ID,
		Name:      product.Name,
		Category:  product.Category,
		Quantity:  product.Quantity,
		Price:     &product.Price,
	}); err != nil {
		logger.Warn(ctx).Err(err).Uint("product_id", product.ID).Msg("Failed to publish created event")
	}

	return product, nil
}
