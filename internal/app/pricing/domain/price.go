package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// NoInnerRecord is the grouping key of prices that belong to no inner record.
const NoInnerRecord = 0

// PriceValue holds the business fields of a price.
// InnerRecordID is NoInnerRecord for prices outside any inner record. TaxRate is
// a percentage, e.g. 21 for 21 %. A nil Validity means the price is always valid.
// Non-indexed prices never become a price for sale.
type PriceValue struct {
	InnerRecordID   int
	PriceWithoutTax Money
	TaxRate         decimal.Decimal
	PriceWithTax    Money
	Validity        *Validity
	Indexed         bool
}

func (v PriceValue) validate() error {
	if v.InnerRecordID < 0 {
		return fmt.Errorf("inner record id must be positive, got %d", v.InnerRecordID)
	}
	if v.PriceWithoutTax.IsNegative() || v.PriceWithTax.IsNegative() || v.TaxRate.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}

func (v PriceValue) equal(other PriceValue) bool {
	return v.InnerRecordID == other.InnerRecordID &&
		v.PriceWithoutTax.Equals(other.PriceWithoutTax) &&
		v.TaxRate.Equal(other.TaxRate) &&
		v.PriceWithTax.Equals(other.PriceWithTax) &&
		v.Validity.Equal(other.Validity) &&
		v.Indexed == other.Indexed
}

// Price is an immutable snapshot of one price of an entity.
// A price synthesized by summing several inner record prices is "cumulated"
// and keeps the summed components for traceability.
type Price struct {
	key     PriceKey
	value   PriceValue
	version int
	dropped bool

	components map[int]*Price
}

// NewPrice creates the first version of a price.
func NewPrice(key PriceKey, value PriceValue) (*Price, error) {
	if err := value.validate(); err != nil {
		return nil, err
	}
	return &Price{key: key, value: value, version: 1}, nil
}

// MustNewPrice is like NewPrice but panics on invalid input. Intended for fixtures.
func MustNewPrice(key PriceKey, value PriceValue) *Price {
	p, err := NewPrice(key, value)
	if err != nil {
		panic(err)
	}
	return p
}

// ReconstructPrice reconstitutes a price from storage with its persisted version and tombstone flag.
func ReconstructPrice(key PriceKey, value PriceValue, version int, dropped bool) *Price {
	return &Price{key: key, value: value, version: version, dropped: dropped}
}

// Getters
func (p *Price) Key() PriceKey            { return p.key }
func (p *Price) PriceID() int             { return p.key.PriceID }
func (p *Price) PriceList() string        { return p.key.PriceList }
func (p *Price) Currency() string         { return p.key.Currency }
func (p *Price) InnerRecordID() int       { return p.value.InnerRecordID }
func (p *Price) PriceWithoutTax() Money   { return p.value.PriceWithoutTax }
func (p *Price) TaxRate() decimal.Decimal { return p.value.TaxRate }
func (p *Price) PriceWithTax() Money      { return p.value.PriceWithTax }
func (p *Price) Validity() *Validity      { return p.value.Validity }
func (p *Price) Indexed() bool            { return p.value.Indexed }
func (p *Price) Value() PriceValue        { return p.value }
func (p *Price) Version() int             { return p.version }
func (p *Price) Dropped() bool            { return p.dropped }
func (p *Price) Exists() bool             { return !p.dropped }
func (p *Price) HasInnerRecord() bool     { return p.value.InnerRecordID != NoInnerRecord }
func (p *Price) IsCumulated() bool        { return p.components != nil }

// ValidAt reports whether the price may be sold at the moment.
// A nil moment disables the check.
func (p *Price) ValidAt(moment *time.Time) bool {
	if moment == nil || p.value.Validity == nil {
		return true
	}
	return p.value.Validity.Contains(*moment)
}

// Components returns the summed prices of a cumulated price keyed by inner record id.
// It returns nil for ordinary prices.
func (p *Price) Components() map[int]*Price {
	if p.components == nil {
		return nil
	}
	out := make(map[int]*Price, len(p.components))
	for id, c := range p.components {
		out[id] = c
	}
	return out
}

// successor derives the next version of the price. A dropped price written with
// dropped=false is revived. With bump=false the version is kept, which lets one
// mutation batch touch a price several times and still advance it by one.
func (p *Price) successor(value PriceValue, dropped, bump bool) *Price {
	version := p.version
	if bump {
		version++
	}
	return &Price{key: p.key, value: value, version: version, dropped: dropped}
}

func (p *Price) String() string {
	state := ""
	if p.dropped {
		state = " dropped"
	}
	return fmt.Sprintf("%s inner=%d net=%s tax=%s%% gross=%s indexed=%t v%d%s",
		p.key, p.value.InnerRecordID, p.value.PriceWithoutTax, p.value.TaxRate, p.value.PriceWithTax,
		p.value.Indexed, p.version, state)
}
