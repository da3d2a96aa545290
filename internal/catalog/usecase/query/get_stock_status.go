package query

import (
	"github.com/sd-store/catalog-service/internal/catalog/domain"
)

// GetStockStatusQuery represents the query for a product's derived stock
// status.
type GetStockStatusQuery struct {
	ID uint
}

// GetStockStatusHandler classifies a product's quantity
type GetStockStatusHandler struct {
	repo domain.ProductRepository
}

// NewGetStockStatusHandler creates a new stock status handler
func NewGetStockStatusHandler(repo domain.ProductRepository) *GetStockStatusHandler {
	return &GetStockStatusHandler{repo: repo}
}

// Handle executes the stock status query
func (h *GetStockStatusHandler) Handle(q GetStockStatusQuery) (domain.StockStatus, error) {
	product, err := h.repo.FindByID(q.ID)
	if err != nil {
		return "", err
	}
	return domain.ClassifyStock(product.Quantity), nil
}
