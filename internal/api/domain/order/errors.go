package order

import "errors"

var (
	// ErrNotFound is returned when order is not found
	ErrNotFound = errors.New("order not found")

	// ErrInvalidStatus is returned for a payment status outside the known set
	ErrInvalidStatus = errors.New("invalid payment status")

	// ErrValidation is returned when customer details or quantity are unusable
	ErrValidation = errors.New("invalid order")

	// ErrProductUnavailable is returned when ordering a product that is not on sale
	ErrProductUnavailable = errors.New("product is not available for purchase")

	// ErrCapacityExceeded is returned when the quantity is above the remaining tickets
	ErrCapacityExceeded = errors.New("not enough tickets left")

	// ErrInvalidQuery is returned when order query validation fails
	ErrInvalidQuery = errors.New("invalid orders query")
)
