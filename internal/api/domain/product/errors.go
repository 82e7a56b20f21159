package product

import "errors"

var (
	// ErrNotFound is returned when no product matches, or when a storefront
	// lookup hits a product that is not active
	ErrNotFound = errors.New("product not found")

	ErrSlugTaken = errors.New("product slug already taken")

	ErrInvalidStatus = errors.New("invalid product status")

	ErrValidation = errors.New("invalid product")

	ErrInvalidQuery = errors.New("invalid products query")
)
