package domain

import "errors"

var (
	// ErrUnknownSKU is returned when an operation names a SKU that is not in the catalogue.
	ErrUnknownSKU = errors.New("unknown sku")
	// ErrInvalidCatalogue is returned when a catalogue entry violates its schema.
	ErrInvalidCatalogue = errors.New("invalid catalogue")
	// ErrInvalidConfig is returned for out-of-range construction parameters.
	ErrInvalidConfig = errors.New("invalid store configuration")
	// ErrInvalidQuantity is returned for a sale of fewer than one unit.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	// ErrDayOutOfOrder is returned when a tick is requested for a day earlier than the last tick.
	ErrDayOutOfOrder = errors.New("day is earlier than the last processed day")
)
