package query

import (
	"github.com/sd-store/catalog-service/internal/catalog/domain"
)

// GetProductQuery represents the query to get a product by ID
type GetProductQuery struct {
	ID uint
}

// GetProductByNameQuery represents the query to get a product by its exact
// name (case-sensitive).
type GetProductByNameQuery struct {
	Name string
}

// GetProductHandler handles single-product lookups
type GetProductHandler struct {
	repo domain.ProductRepository
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(repo domain.ProductRepository) *GetProductHandler {
	return &GetProductHandler{repo: repo}
}

// Handle executes the get product query
func (h *GetProductHandler) Handle(q GetProductQuery) (*domain.Product, error) {
	return h.repo.FindByID(q.ID)
}

// HandleByName executes the exact-name lookup
func (h *GetProductHandler) HandleByName(q GetProductByNameQuery) (*domain.Product, error) {
	return h.repo.FindByName(q.Name)
}
