package domain

import "errors"

// Sentinel errors returned by the catalog domain. Callers classify failures
// with errors.Is; everything else is an infrastructure error.
var (
	ErrNotFound      = errors.New("product not found")
	ErrDuplicateName = errors.New("product name already exists")
	ErrInvalidData   = errors.New("invalid product data")
)
