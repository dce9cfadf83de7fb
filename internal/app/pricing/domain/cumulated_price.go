package domain

import "fmt"

// NewCumulatedPrice sums component prices into one synthetic price.
//
// The result has version 1, the key of the first component and the tax rate all
// components share. Components are keyed by inner record id; a second component
// for the same inner record is rejected. Differing tax rates fail with
// ErrTaxRateMismatch: a sum over mixed rates has no meaningful tax rate.
func NewCumulatedPrice(components []*Price) (*Price, error) {
	if len(components) == 0 {
		return nil, fmt.Errorf("cumulated price needs at least one component")
	}

	first := components[0]
	taxRate := first.TaxRate()
	withoutTax, withTax := Zero, Zero
	byInnerRecord := make(map[int]*Price, len(components))
	indexed := true

	for _, c := range components {
		if !c.TaxRate().Equal(taxRate) {
			return nil, fmt.Errorf("%w: %s has %s%%, %s has %s%%",
				ErrTaxRateMismatch, first.Key(), taxRate, c.Key(), c.TaxRate())
		}
		if _, dup := byInnerRecord[c.InnerRecordID()]; dup {
			return nil, fmt.Errorf("inner record %d summed twice", c.InnerRecordID())
		}
		byInnerRecord[c.InnerRecordID()] = c
		withoutTax = withoutTax.Add(c.PriceWithoutTax())
		withTax = withTax.Add(c.PriceWithTax())
		indexed = indexed && c.Indexed()
	}

	return &Price{
		key: first.Key(),
		value: PriceValue{
			InnerRecordID:   NoInnerRecord,
			PriceWithoutTax: withoutTax,
			TaxRate:         taxRate,
			PriceWithTax:    withTax,
			Indexed:         indexed,
		},
		version:    1,
		components: byInnerRecord,
	}, nil
}
