package domain_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sd-store/catalog-service/internal/catalog/domain"
)

func validProduct() *domain.Product {
	return &domain.Product{
		Name:        "Widget",
		Description: "A simple widget for testing",
		Price:       decimal.RequireFromString("19.99"),
		Quantity:    3,
		Category:    "Tools",
	}
}

func TestProductValidate(t *testing.T) {
	assert.NoError(t, validProduct().Validate())
}

func TestProductValidateRejectsBadFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Product)
	}{
		{"blank name", func(p *domain.Product) { p.Name = "   " }},
		{"name with illegal characters", func(p *domain.Product) { p.Name = "Widget!" }},
		{"short description", func(p *domain.Product) { p.Description = "too short" }},
		{"long description", func(p *domain.Product) { p.Description = strings.Repeat("x", 501) }},
		{"zero price", func(p *domain.Product) { p.Price = decimal.Zero }},
		{"negative price", func(p *domain.Product) { p.Price = decimal.RequireFromString("-1") }},
		{"price above maximum", func(p *domain.Product) { p.Price = decimal.RequireFromString("1000000.00") }},
		{"price with three decimals", func(p *domain.Product) { p.Price = decimal.RequireFromString("9.999") }},
		{"negative quantity", func(p *domain.Product) { p.Quantity = -1 }},
		{"quantity above maximum", func(p *domain.Product) { p.Quantity = 1000000 }},
		{"category with digits", func(p *domain.Product) { p.Category = "Tools2" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProduct()
			tt.mutate(p)
			err := p.Validate()
			assert.ErrorIs(t, err, domain.ErrInvalidData)
		})
	}
}

func TestProductValidateBoundaryValues(t *testing.T) {
	p := validProduct()
	p.Price = domain.MaxPrice
	p.Quantity = domain.MaxQuantity
	assert.NoError(t, p.Validate())

	p.Price = decimal.RequireFromString("0.01")
	p.Quantity = 0
	assert.NoError(t, p.Validate())
}

func TestPageRequestDescending(t *testing.T) {
	assert.True(t, domain.PageRequest{SortDir: "desc"}.Descending())
	assert.True(t, domain.PageRequest{SortDir: "DESC"}.Descending())
	assert.False(t, domain.PageRequest{SortDir: "asc"}.Descending())
	// Unrecognized directions default to ascending.
	assert.False(t, domain.PageRequest{SortDir: "sideways"}.Descending())
	assert.False(t, domain.PageRequest{}.Descending())
}
