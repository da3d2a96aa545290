package query

import (
	"github.com/sd-store/catalog-service/internal/catalog/domain"
)

// SearchProductsQuery represents a case-insensitive substring search over
// product names.
type SearchProductsQuery struct {
	Name string
}

// SearchProductsPagedQuery is the windowed variant of the search.
type SearchProductsPagedQuery struct {
	Name    string
	Page    int
	Size    int
	SortBy  string
	SortDir string
}

// SearchProductsHandler handles name searches
type SearchProductsHandler struct {
	repo domain.ProductRepository
}

// NewSearchProductsHandler creates a new search products handler
func NewSearchProductsHandler(repo domain.ProductRepository) *SearchProductsHandler {
	return &SearchProductsHandler{repo: repo}
}

// Handle executes the search query
func (h *SearchProductsHandler) Handle(q SearchProductsQuery) ([]domain.Product, error) {
	return h.repo.SearchByName(q.Name)
}

// HandlePaged executes the windowed search query
func (h *SearchProductsHandler) HandlePaged(q SearchProductsPagedQuery) (*domain.ProductPage, error) {
	return h.repo.SearchByNamePaged(q.Name, domain.PageRequest{
		Page:    q.Page,
		Size:    q.Size,
		SortBy:  q.SortBy,
		SortDir: q.SortDir,
	})
}
