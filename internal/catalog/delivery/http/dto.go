package http

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	nameRegexp     = regexp.MustCompile(`^[a-zA-Z0-9\s\-_.]+$`)
	categoryRegexp = regexp.MustCompile(`^[a-zA-Z\s\-]+$`)
)

// ProductRequest is the payload for create and full-update operations. The
// constraints here mirror the entity invariants; for updates they are the
// only per-field gate, since the domain intentionally validates just the
// name on a full overwrite.
type ProductRequest struct {
	Name        string          `json:"name" validate:"required,product_name"`
	Description string          `json:"description" validate:"required,min=10,max=500"`
	Price       decimal.Decimal `json:"price" validate:"required,gt=0,lte=999999.99"`
	Quantity    int             `json:"quantity" validate:"min=0,max=999999"`
	Category    string          `json:"category" validate:"required,category_name"`
}

// ChangePriceRequest is the payload for the price-only patch.
type ChangePriceRequest struct {
	Price decimal.Decimal `json:"price" validate:"required,gt=0,lte=999999.99"`
}

// newValidator builds the request validator with the catalog-specific rules
// registered. decimal.Decimal fields validate as float64.
func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	v.RegisterValidation("product_name", func(fl validator.FieldLevel) bool {
		return nameRegexp.MatchString(fl.Field().String())
	})
	v.RegisterValidation("category_name", func(fl validator.FieldLevel) bool {
		return categoryRegexp.MatchString(fl.Field().String())
	})

	return v
}

// validationMessage renders the first failed constraint as a client-facing
// message.
func validationMessage(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return "Invalid request body"
	}
	fe := errs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "product_name":
		return "Name may only contain letters, numbers, spaces, hyphens, underscores and dots"
	case "category_name":
		return "Category may only contain letters, spaces and hyphens"
	case "min", "max", "gt", "lte":
		return fmt.Sprintf("%s is out of range", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
