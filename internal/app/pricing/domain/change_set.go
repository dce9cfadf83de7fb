package domain

import "slices"

// ChangeSet records which prices and set-level fields a mutation batch touched.
// Repositories use it to persist only what changed.
type ChangeSet struct {
	touched         map[PriceKey]bool
	handlingChanged bool
}

// NewChangeSet creates an empty ChangeSet.
func NewChangeSet() *ChangeSet {
	return &ChangeSet{touched: make(map[PriceKey]bool)}
}

// MarkTouched marks a price as written (upserted, revived or dropped).
func (cs *ChangeSet) MarkTouched(key PriceKey) {
	cs.touched[key] = true
}

// MarkHandlingChanged marks the inner record handling as modified.
func (cs *ChangeSet) MarkHandlingChanged() {
	cs.handlingChanged = true
}

// Touched checks if a price has been written.
func (cs *ChangeSet) Touched(key PriceKey) bool {
	return cs.touched[key]
}

// HandlingChanged reports whether the inner record handling was modified.
func (cs *ChangeSet) HandlingChanged() bool {
	return cs.handlingChanged
}

// HasChanges returns true if anything has been modified.
func (cs *ChangeSet) HasChanges() bool {
	return len(cs.touched) > 0 || cs.handlingChanged
}

// TouchedKeys returns the written keys in natural key order.
func (cs *ChangeSet) TouchedKeys() []PriceKey {
	keys := make([]PriceKey, 0, len(cs.touched))
	for key := range cs.touched {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, PriceKey.Compare)
	return keys
}
