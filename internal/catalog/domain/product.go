package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	namePattern     = regexp.MustCompile(`^[a-zA-Z0-9\s\-_.]+$`)
	categoryPattern = regexp.MustCompile(`^[a-zA-Z\s\-]+$`)

	// MaxPrice is the inclusive upper bound for a product price.
	MaxPrice = decimal.RequireFromString("999999.99")
)

const (
	MinDescriptionLen = 10
	MaxDescriptionLen = 500
	MaxQuantity       = 999999
)

// Product represents a catalog item. The unique index on name is the
// authoritative uniqueness guarantee; the service-level duplicate check is
// advisory only and can race under concurrent writers. Deletes are hard
// deletes: a removed product releases its name for reuse.
type Product struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"uniqueIndex;not null"`
	Description string          `json:"description" gorm:"not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(8,2);not null"`
	Quantity    int             `json:"quantity" gorm:"not null;default:0"`
	Category    string          `json:"category" gorm:"not null"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// Validate checks the entity invariants: name and category patterns,
// description length, price range and scale, quantity range.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidData)
	}
	if !namePattern.MatchString(p.Name) {
		return fmt.Errorf("%w: name may only contain letters, numbers, spaces, hyphens, underscores and dots", ErrInvalidData)
	}
	if l := len(p.Description); l < MinDescriptionLen || l > MaxDescriptionLen {
		return fmt.Errorf("%w: description must be between %d and %d characters", ErrInvalidData, MinDescriptionLen, MaxDescriptionLen)
	}
	if err := ValidatePrice(p.Price); err != nil {
		return err
	}
	if p.Quantity < 0 || p.Quantity > MaxQuantity {
		return fmt.Errorf("%w: quantity must be between 0 and %d", ErrInvalidData, MaxQuantity)
	}
	if !categoryPattern.MatchString(p.Category) {
		return fmt.Errorf("%w: category may only contain letters, spaces and hyphens", ErrInvalidData)
	}
	return nil
}

// ValidatePrice checks the price constraint in isolation: exclusive lower
// bound 0, inclusive upper bound 999,999.99, at most two fractional digits.
func ValidatePrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return fmt.Errorf("%w: price must be greater than 0", ErrInvalidData)
	}
	if price.GreaterThan(MaxPrice) {
		return fmt.Errorf("%w: price cannot exceed %s", ErrInvalidData, MaxPrice)
	}
	if price.Exponent() < -2 {
		return fmt.Errorf("%w: price must have at most 2 decimal places", ErrInvalidData)
	}
	return nil
}

// PageRequest describes a pagination window with sorting. Direction is
// case-insensitive "asc"/"desc"; anything else sorts ascending.
type PageRequest struct {
	Page    int
	Size    int
	SortBy  string
	SortDir string
}

// Descending reports whether the requested sort direction is descending.
func (r PageRequest) Descending() bool {
	return strings.EqualFold(r.SortDir, "desc")
}

// ProductPage is a single window of a sorted product listing.
type ProductPage struct {
	Items      []Product `json:"items"`
	TotalItems int64     `json:"total_items"`
	TotalPages int       `json:"total_pages"`
	Page       int       `json:"page"`
	Size       int       `json:"size"`
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	Create(product *Product) error
	Update(product *Product) error
	Delete(id uint) error
	FindByID(id uint) (*Product, error)
	FindByName(name string) (*Product, error)
	FindAll() ([]Product, error)
	FindAllPaged(req PageRequest) (*ProductPage, error)
	SearchByName(name string) ([]Product, error)
	SearchByNamePaged(name string, req PageRequest) (*ProductPage, error)
	ExistsByID(id uint) (bool, error)
	Count() (int64, error)
	CountByQuantityLessThan(threshold int) (int64, error)
	CountOutOfStock() (int64, error)
}
