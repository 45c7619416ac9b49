package services

import "errors"

var (
	// ErrInvalidValue is returned when a field edit is rejected. The prior value is kept.
	ErrInvalidValue = errors.New("invalid value")
	// ErrUnknownField is returned for a field name the model does not store.
	ErrUnknownField = errors.New("unknown field")
	// ErrCatalogMiss is returned when a catalog selection does not resolve.
	ErrCatalogMiss = errors.New("catalog entry not found")
	// ErrItemNotFound is returned when an item id is not part of the order.
	ErrItemNotFound = errors.New("service item not found")
	// ErrLineNotFound is returned when a material or labor id is not part of the item.
	ErrLineNotFound = errors.New("line not found")
	// ErrInvalidPayload is returned when persisted rows or a draft fail validation.
	ErrInvalidPayload = errors.New("invalid payload")
)
