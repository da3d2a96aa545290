//go:build wireinject
// +build wireinject

package catalog

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/sd-store/catalog-service/internal/catalog/delivery/http"
	"github.com/sd-store/catalog-service/internal/catalog/domain"
	"github.com/sd-store/catalog-service/internal/catalog/repository"
	"github.com/sd-store/catalog-service/internal/catalog/usecase/command"
	"github.com/sd-store/catalog-service/internal/catalog/usecase/query"
	"github.com/sd-store/catalog-service/kafka"
)

// ProvideProductRepository provides the product repository
func ProvideProductRepository(db *gorm.DB) domain.ProductRepository {
	return repository.NewGormProductRepository(db)
}

var HandlerSet = wire.NewSet(
	ProvideProductRepository,
	command.NewAddProductHandler,
	command.NewUpdateProductHandler,
	command.NewChangePriceHandler,
	command.NewDeleteProductHandler,
	query.NewGetProductHandler,
	query.NewListProductsHandler,
	query.NewSearchProductsHandler,
	query.NewGetStockStatusHandler,
	query.NewGetHealthHandler,
	http.NewProductHandler,
)

// InitializeProductHandler wires the HTTP handler with all dependencies.
func InitializeProductHandler(db *gorm.DB, events *kafka.Publisher, thresholds query.HealthThresholds) (*http.ProductHandler, error) {
	wire.Build(HandlerSet)
	return nil, nil
}
