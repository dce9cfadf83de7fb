package domain

import (
	"fmt"
	"maps"
	"slices"
	"time"
)

// Prices is the immutable snapshot of every price attached to one entity,
// tombstones included, together with the entity's inner record handling.
// New snapshots are derived with Apply; a snapshot is never modified in place.
type Prices struct {
	version  int
	handling InnerRecordHandling
	prices   map[PriceKey]*Price
}

// NewPrices creates the first version of a price set.
func NewPrices(handling InnerRecordHandling, prices ...*Price) *Prices {
	return ReconstructPrices(1, handling, prices)
}

// ReconstructPrices reconstitutes a price set from storage.
// When a key repeats, the price with the higher version wins.
func ReconstructPrices(version int, handling InnerRecordHandling, prices []*Price) *Prices {
	byKey := make(map[PriceKey]*Price, len(prices))
	for _, p := range prices {
		if existing, ok := byKey[p.Key()]; ok && existing.Version() >= p.Version() {
			continue
		}
		byKey[p.Key()] = p
	}
	return &Prices{version: version, handling: handling, prices: byKey}
}

// Getters
func (ps *Prices) Version() int                             { return ps.version }
func (ps *Prices) InnerRecordHandling() InnerRecordHandling { return ps.handling }

// PriceByKey returns an existing price, sellable or not. Dropped prices are not returned.
func (ps *Prices) PriceByKey(key PriceKey) (*Price, bool) {
	p, ok := ps.prices[key]
	if !ok || p.Dropped() {
		return nil, false
	}
	return p, true
}

// All returns every price including tombstones, in natural key order.
func (ps *Prices) All() []*Price {
	out := slices.Collect(maps.Values(ps.prices))
	slices.SortFunc(out, func(a, b *Price) int { return a.Key().Compare(b.Key()) })
	return out
}

// Existing returns the prices that are not dropped, in natural key order.
func (ps *Prices) Existing() []*Price {
	return slices.DeleteFunc(ps.All(), func(p *Price) bool { return p.Dropped() })
}

// PricesIn returns existing prices of a currency, sellable or not.
func (ps *Prices) PricesIn(currency string) []*Price {
	return FilterCandidates(ps.All(), currency, nil)
}

// Resolve resolves the price for sale of this set under its own inner record handling.
func (ps *Prices) Resolve(currency string, moment *time.Time, priceLists []string) (*Price, error) {
	return Resolve(ps.All(), ps.handling, currency, moment, priceLists)
}

// PriceMutation is a command changing a price set.
type PriceMutation interface {
	apply(draft map[PriceKey]*Price, handling *InnerRecordHandling, changes *ChangeSet) error
}

// UpsertPrice creates a price or replaces the value of an existing one.
// Writing over a dropped price revives it and continues its version lineage.
// Writing an identical value over an existing price changes nothing.
type UpsertPrice struct {
	Key   PriceKey
	Value PriceValue
}

func (m UpsertPrice) apply(draft map[PriceKey]*Price, _ *InnerRecordHandling, changes *ChangeSet) error {
	if err := m.Value.validate(); err != nil {
		return fmt.Errorf("upsert %s: %w", m.Key, err)
	}
	existing, ok := draft[m.Key]
	switch {
	case !ok:
		draft[m.Key] = &Price{key: m.Key, value: m.Value, version: 1}
	case existing.Exists() && existing.value.equal(m.Value):
		return nil
	default:
		draft[m.Key] = existing.successor(m.Value, false, !changes.Touched(m.Key))
	}
	changes.MarkTouched(m.Key)
	return nil
}

// RemovePrice drops an existing price. The tombstone is retained.
type RemovePrice struct {
	Key PriceKey
}

func (m RemovePrice) apply(draft map[PriceKey]*Price, _ *InnerRecordHandling, changes *ChangeSet) error {
	existing, ok := draft[m.Key]
	if !ok || existing.Dropped() {
		return fmt.Errorf("remove %s: %w", m.Key, ErrPriceNotFound)
	}
	draft[m.Key] = existing.successor(existing.value, true, !changes.Touched(m.Key))
	changes.MarkTouched(m.Key)
	return nil
}

// SetInnerRecordHandling changes the aggregation policy of the set.
type SetInnerRecordHandling struct {
	Handling InnerRecordHandling
}

func (m SetInnerRecordHandling) apply(_ map[PriceKey]*Price, handling *InnerRecordHandling, changes *ChangeSet) error {
	if err := checkHandling(m.Handling); err != nil {
		return err
	}
	if *handling != m.Handling {
		*handling = m.Handling
		changes.MarkHandlingChanged()
	}
	return nil
}

// Apply derives the next snapshot from a batch of mutations.
//
// expectedVersion must equal the current version (optimistic locking). Mutations
// apply in order; the first failure discards the whole batch. When anything
// changed, the new snapshot's version is exactly one above the current one and
// each touched price is one version above its predecessor. A batch without
// effect returns the receiver itself.
func (ps *Prices) Apply(expectedVersion int, mutations ...PriceMutation) (*Prices, *ChangeSet, error) {
	if len(mutations) == 0 {
		return nil, nil, ErrEmptyMutationSet
	}
	if expectedVersion != ps.version {
		return nil, nil, fmt.Errorf("%w: expected %d, got %d", ErrVersionConflict, expectedVersion, ps.version)
	}

	draft := maps.Clone(ps.prices)
	if draft == nil {
		draft = make(map[PriceKey]*Price)
	}
	handling := ps.handling
	changes := NewChangeSet()

	for _, m := range mutations {
		if err := m.apply(draft, &handling, changes); err != nil {
			return nil, nil, err
		}
	}
	if !changes.HasChanges() {
		return ps, changes, nil
	}
	return &Prices{version: ps.version + 1, handling: handling, prices: draft}, changes, nil
}
