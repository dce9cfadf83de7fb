package domain

import (
	"fmt"
	"maps"
	"slices"
	"time"
)

// DefaultAccompanyingPrice is the name of the accompanying price computed from
// the default accompanying price lists of a resolution context.
const DefaultAccompanyingPrice = "default"

// AccompanyingPriceSpec names a secondary price and the price lists ranking it.
type AccompanyingPriceSpec struct {
	Name       string
	PriceLists []string
}

// NewAccompanyingPriceSpec creates a spec; with no price lists the context default applies.
func NewAccompanyingPriceSpec(name string, priceLists ...string) AccompanyingPriceSpec {
	return AccompanyingPriceSpec{Name: name, PriceLists: slices.Clone(priceLists)}
}

func validateSpecs(specs []AccompanyingPriceSpec) error {
	seen := make(map[string]struct{}, len(specs))
	for _, s := range specs {
		if s.Name == "" {
			return fmt.Errorf("accompanying price name is required")
		}
		if _, dup := seen[s.Name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateAccompanyingPrice, s.Name)
		}
		seen[s.Name] = struct{}{}
	}
	return nil
}

// ComputeAccompanying computes one accompanying price per spec for an already
// resolved price for sale. Every spec name is present in the returned map; a
// nil value means the spec matched nothing.
//
// Accompanying prices are informational, so non-sellable prices qualify. The
// candidate pool depends on handling:
//   - InnerRecordNone: all filtered prices; resolved may be nil.
//   - InnerRecordLowestPrice: prices of the inner record that won the sale.
//   - InnerRecordSum: prices of the summed inner records. Each spec picks one
//     price per inner record, inner records without a match reuse the summed
//     component, and the picks are summed like the price for sale. A spec
//     matching no inner record at all yields nil.
func ComputeAccompanying(
	resolved *Price,
	prices []*Price,
	handling InnerRecordHandling,
	currency string,
	moment *time.Time,
	specs ...AccompanyingPriceSpec,
) (map[string]*Price, error) {
	if err := validateSpecs(specs); err != nil {
		return nil, err
	}
	if err := checkHandling(handling); err != nil {
		return nil, err
	}

	out := make(map[string]*Price, len(specs))
	for _, s := range specs {
		out[s.Name] = nil
	}
	if resolved == nil && handling != InnerRecordNone {
		return out, nil
	}

	pool := FilterCandidates(prices, currency, moment)

	switch handling {
	case InnerRecordNone:
		for _, s := range specs {
			out[s.Name] = NewPriorityIndex(s.PriceLists).selectByPriority(pool, false)
		}

	case InnerRecordLowestPrice:
		pool = restrictToInnerRecords(pool, map[int]struct{}{resolved.InnerRecordID(): {}})
		for _, s := range specs {
			out[s.Name] = NewPriorityIndex(s.PriceLists).selectByPriority(pool, false)
		}

	case InnerRecordSum:
		components := resolved.Components()
		if components == nil {
			components = map[int]*Price{resolved.InnerRecordID(): resolved}
		}
		ids := make(map[int]struct{}, len(components))
		for id := range components {
			ids[id] = struct{}{}
		}
		groups := GroupByInnerRecord(restrictToInnerRecords(pool, ids))
		order := slices.Sorted(maps.Keys(components))

		for _, s := range specs {
			priority := NewPriorityIndex(s.PriceLists)
			summed := make([]*Price, 0, len(order))
			matched := false
			for _, id := range order {
				if p := priority.selectByPriority(groups[id], false); p != nil {
					summed = append(summed, p)
					matched = true
					continue
				}
				summed = append(summed, components[id])
			}
			if !matched {
				continue
			}
			cumulated, err := NewCumulatedPrice(summed)
			if err != nil {
				return nil, fmt.Errorf("accompanying price %q: %w", s.Name, err)
			}
			out[s.Name] = cumulated
		}
	}

	return out, nil
}

// ResolutionResult is a price for sale together with its accompanying prices.
type ResolutionResult struct {
	priceForSale *Price
	accompanying map[string]*Price
}

// PriceForSale returns the resolved price for sale.
func (r *ResolutionResult) PriceForSale() *Price {
	return r.priceForSale
}

// AccompanyingPrice returns the named price. The flag is false when the name was
// not requested; a requested name that matched nothing returns (nil, true).
func (r *ResolutionResult) AccompanyingPrice(name string) (*Price, bool) {
	p, ok := r.accompanying[name]
	return p, ok
}

// AccompanyingPrices returns a copy of all requested accompanying prices.
func (r *ResolutionResult) AccompanyingPrices() map[string]*Price {
	return maps.Clone(r.accompanying)
}
