package command

import (
	"context"

	"github.com/sd-store/catalog-service/internal/catalog/domain"
	"github.com/sd-store/catalog-service/kafka"
	"github.com/sd-store/catalog-service/pkg/logger"
)

// DeleteProductCommand represents the command to delete a product
type DeleteProductCommand struct {
	ID uint
}

// DeleteProductHandler handles product deletion
type DeleteProductHandler struct {
	repo   domain.ProductRepository
	events *kafka.Publisher
}

// NewDeleteProductHandler creates a new delete product handler
func NewDeleteProductHandler(repo domain.ProductRepository, events *kafka.Publisher) *DeleteProductHandler {
	return &DeleteProductHandler{repo: repo, events: events}
}

// Handle executes the delete product command
func (h *DeleteProductHandler) Handle(ctx context.Context, cmd DeleteProductCommand) error {
	exists, err := h.repo.ExistsByID(cmd.ID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}

	if err := h.repo.Delete(cmd.ID); err != nil {
		return err
	}

	logger.Info(ctx).
		Uint("product_id", cmd.ID).
		Msg("Product deleted")

	if err := h.events.PublishProductEvent(ctx, kafka.ProductEvent{
		EventType: kafka.EventTypeProductDeleted,
		ProductID: cmd.ID,
	}); err != nil {
		logger.Warn(ctx).Err(err).Uint("product_id", cmd.ID).Msg("Failed to publish deleted event")
	}

	return nil
}
