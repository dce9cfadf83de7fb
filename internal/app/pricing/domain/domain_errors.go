package domain

import "errors"

// Domain errors as sentinel values
var (
	// Resolution errors that abort a single call
	ErrInnerRecordHandlingUnknown = errors.New("price inner record handling is unknown, prices were not fetched with the entity")
	ErrTaxRateMismatch            = errors.New("summed prices must share the same tax rate")
	ErrDuplicateAccompanyingPrice = errors.New("accompanying price names must be unique")

	// Signals for collaborators
	ErrContextMissing   = errors.New("price for sale context is not available")
	ErrPricesNotFetched = errors.New("prices were not fetched for the entity")

	// Write model errors
	ErrVersionConflict  = errors.New("price set version mismatch (concurrent modification detected)")
	ErrPriceNotFound    = errors.New("price not found")
	ErrInvalidPriceKey  = errors.New("price key requires a price list and a 3-letter currency")
	ErrInvalidValidity  = errors.New("validity end must not precede its start")
	ErrNegativeAmount   = errors.New("price amounts and tax rate must not be negative")
	ErrEmptyMutationSet = errors.New("at least one price mutation is required")
)
