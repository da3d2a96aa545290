package repository

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gorm.io/gorm"

	"github.com/sd-store/catalog-service/internal/catalog/domain"
)

// sortable whitelists the columns a caller may sort by. Unknown fields fall
// back to the primary key.
var sortable = map[string]string{
	"id":         "id",
	"name":       "name",
	"price":      "price",
	"quantity":   "quantity",
	"category":   "category",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// GormProductRepository implements domain.ProductRepository using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM product repository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// AutoMigrate runs database migrations
func (r *GormProductRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Product{})
}

func (r *GormProductRepository) Create(product *domain.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *GormProductRepository) Update(product *domain.Product) error {
	if err := r.db.Save(product).Error; err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

// Delete removes the row permanently; the name becomes available again.
func (r *GormProductRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.Product{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GormProductRepository) FindByID(id uint) (*domain.Product, error) {
	var product domain.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &product, nil
}

// FindByName performs a case-sensitive exact-match lookup.
func (r *GormProductRepository) FindByName(name string) (*domain.Product, error) {
	var product domain.Product
	if err := r.db.Where("name = ?", name).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by name: %w", err)
	}
	return &product, nil
}

func (r *GormProductRepository) FindAll() ([]domain.Product, error) {
	var products []domain.Product
	if err := r.db.Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	return products, nil
}

func (r *GormProductRepository) FindAllPaged(req domain.PageRequest) (*domain.ProductPage, error) {
	return r.page(r.db.Model(&domain.Product{}), req)
}

// SearchByName matches the substring case-insensitively.
func (r *GormProductRepository) SearchByName(name string) ([]domain.Product, error) {
	var products []domain.Product
	if err := r.substringQuery(name).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

func (r *GormProductRepository) SearchByNamePaged(name string, req domain.PageRequest) (*domain.ProductPage, error) {
	return r.page(r.substringQuery(name), req)
}

func (r *GormProductRepository) ExistsByID(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&domain.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check product existence: %w", err)
	}
	return count > 0, nil
}

func (r *GormProductRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&domain.Product{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func (r *GormProductRepository) CountByQuantityLessThan(threshold int) (int64, error) {
	var count int64
	if err := r.db.Model(&domain.Product{}).Where("quantity < ?", threshold).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count low stock products: %w", err)
	}
	return count, nil
}

func (r *GormProductRepository) CountOutOfStock() (int64, error) {
	var count int64
	if err := r.db.Model(&domain.Product{}).Where("quantity = 0").Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count out of stock products: %w", err)
	}
	return count, nil
}

func (r *GormProductRepository) substringQuery(name string) *gorm.DB {
	pattern := "%" + strings.ToLower(name) + "%"
	return r.db.Model(&domain.Product{}).Where("LOWER(name) LIKE ?", pattern)
}

func (r *GormProductRepository) page(tx *gorm.DB, req domain.PageRequest) (*domain.ProductPage, error) {
	if req.Page < 0 {
		req.Page = 0
	}
	if req.Size <= 0 {
		req.Size = 10
	}

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	column, ok := sortable[strings.ToLower(req.SortBy)]
	if !ok {
		column = "id"
	}
	order := column
	if req.Descending() {
		order += " DESC"
	}

	var products []domain.Product
	err := tx.Order(order).
		Limit(req.Size).
		Offset(req.Page * req.Size).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to page products: %w", err)
	}

	return &domain.ProductPage{
		Items:      products,
		TotalItems: total,
		TotalPages: int(math.Ceil(float64(total) / float64(req.Size))),
		Page:       req.Page,
		Size:       req.Size,
	}, nil
}
