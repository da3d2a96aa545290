package query

import (
	"github.com/sd-store/catalog-service/internal/catalog/domain"
)

// ListProductsPagedQuery represents a windowed, sorted listing request.
type ListProductsPagedQuery struct {
	Page    int
	Size    int
	SortBy  string
	SortDir string
}

// ListProductsHandler handles full and paginated listings
type ListProductsHandler struct {
	repo domain.ProductRepository
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle returns the complete catalog.
func (h *ListProductsHandler) Handle() ([]domain.Product, error) {
	return h.repo.FindAll()
}

// HandlePaged returns one window of the sorted catalog.
func (h *ListProductsHandler) HandlePaged(q ListProductsPagedQuery) (*domain.ProductPage, error) {
	return h.repo.FindAllPaged(domain.PageRequest{
		Page:    q.Page,
		Size:    q.Size,
		SortBy:  q.SortBy,
		SortDir: q.SortDir,
	})
}
