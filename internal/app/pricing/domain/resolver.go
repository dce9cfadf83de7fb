package domain

import (
	"fmt"
	"time"
)

// Resolve computes the price for sale of one entity.
//
// Prices are filtered by existence, currency and validity at moment (nil moment
// skips the validity check), then aggregated according to handling:
//   - InnerRecordNone: the sellable price from the best ranked price list.
//   - InnerRecordLowestPrice: the best ranked sellable price of every inner record,
//     then the one with the lowest gross amount. Equal amounts go to the smallest
//     inner record id.
//   - InnerRecordSum: the best ranked sellable price of every inner record summed
//     into a cumulated price. Inner records without a match are left out.
//
// A nil price with a nil error means nothing is for sale. The input is never modified.
func Resolve(prices []*Price, handling InnerRecordHandling, currency string, moment *time.Time, priceLists []string) (*Price, error) {
	if err := checkHandling(handling); err != nil {
		return nil, err
	}
	candidates := FilterCandidates(prices, currency, moment)
	return resolveCandidates(candidates, handling, NewPriorityIndex(priceLists))
}

// ResolveAll returns every price for sale of the entity: the single winner for
// InnerRecordNone and InnerRecordSum, one representative per inner record
// (ascending by inner record id) for InnerRecordLowestPrice.
func ResolveAll(prices []*Price, handling InnerRecordHandling, currency string, moment *time.Time, priceLists []string) ([]*Price, error) {
	if err := checkHandling(handling); err != nil {
		return nil, err
	}
	candidates := FilterCandidates(prices, currency, moment)
	priority := NewPriorityIndex(priceLists)

	if handling == InnerRecordLowestPrice {
		return GroupByInnerRecord(candidates).representatives(priority, true), nil
	}
	p, err := resolveCandidates(candidates, handling, priority)
	if err != nil || p == nil {
		return nil, err
	}
	return []*Price{p}, nil
}

// ResolveWithAccompanying resolves the price for sale and the named accompanying prices.
// The result is nil when nothing is for sale.
func ResolveWithAccompanying(
	prices []*Price,
	handling InnerRecordHandling,
	currency string,
	moment *time.Time,
	priceLists []string,
	specs ...AccompanyingPriceSpec,
) (*ResolutionResult, error) {
	if err := validateSpecs(specs); err != nil {
		return nil, err
	}
	forSale, err := Resolve(prices, handling, currency, moment, priceLists)
	if err != nil || forSale == nil {
		return nil, err
	}
	accompanying, err := ComputeAccompanying(forSale, prices, handling, currency, moment, specs...)
	if err != nil {
		return nil, err
	}
	return &ResolutionResult{priceForSale: forSale, accompanying: accompanying}, nil
}

// InInterval reports whether any price for sale lies within [from, to] (inclusive),
// comparing gross or net amounts according to mode.
func InInterval(forSale []*Price, from, to Money, mode QueryPriceMode) bool {
	for _, p := range forSale {
		amount := mode.amount(p)
		if !amount.LessThan(from) && !amount.GreaterThan(to) {
			return true
		}
	}
	return false
}

func checkHandling(handling InnerRecordHandling) error {
	switch handling {
	case InnerRecordNone, InnerRecordLowestPrice, InnerRecordSum:
		return nil
	default:
		return fmt.Errorf("%w: got %s", ErrInnerRecordHandlingUnknown, handling)
	}
}

func resolveCandidates(candidates []*Price, handling InnerRecordHandling, priority PriorityIndex) (*Price, error) {
	switch handling {
	case InnerRecordNone:
		return priority.selectByPriority(candidates, true), nil

	case InnerRecordLowestPrice:
		return lowestPrice(GroupByInnerRecord(candidates).representatives(priority, true)), nil

	case InnerRecordSum:
		summed := GroupByInnerRecord(candidates).representatives(priority, true)
		if len(summed) == 0 {
			return nil, nil
		}
		return NewCumulatedPrice(summed)

	default:
		return nil, fmt.Errorf("%w: got %s", ErrInnerRecordHandlingUnknown, handling)
	}
}

// lowestPrice expects representatives in ascending inner record order, so keeping
// the first of equal amounts makes the smallest inner record id win.
func lowestPrice(representatives []*Price) *Price {
	var lowest *Price
	for _, p := range representatives {
		if lowest == nil || p.PriceWithTax().LessThan(lowest.PriceWithTax()) {
			lowest = p
		}
	}
	return lowest
}
