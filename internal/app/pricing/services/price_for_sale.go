package services

import (
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
)

// PriceForSale is the collaborator-facing calculator of an entity's price for sale.
// It tells "no parameters were supplied" apart from "nothing is for sale".
type PriceForSale struct {
	rc *domain.ResolutionContext
}

// NewPriceForSale creates a calculator bound to a resolution context.
// A nil context is allowed; Resolve then fails with ErrContextMissing.
func NewPriceForSale(rc *domain.ResolutionContext) *PriceForSale {
	return &PriceForSale{rc: rc}
}

// Context returns the bound resolution context, possibly nil.
func (s *PriceForSale) Context() *domain.ResolutionContext {
	return s.rc
}

// Resolve returns the price for sale of the set, nil when nothing is for sale.
func (s *PriceForSale) Resolve(prices *domain.Prices) (*domain.Price, error) {
	if err := s.check(prices); err != nil {
		return nil, err
	}
	return s.rc.Compute(prices.All(), prices.InnerRecordHandling())
}

// ResolveIfAvailable behaves like Resolve but treats a missing context as "no price".
func (s *PriceForSale) ResolveIfAvailable(prices *domain.Prices) (*domain.Price, error) {
	if s.rc == nil {
		return nil, nil
	}
	return s.Resolve(prices)
}

// ResolveWithAccompanying returns the price for sale with the requested accompanying prices.
func (s *PriceForSale) ResolveWithAccompanying(prices *domain.Prices, specs ...domain.AccompanyingPriceSpec) (*domain.ResolutionResult, error) {
	if err := s.check(prices); err != nil {
		return nil, err
	}
	return s.rc.ComputeWithAccompanying(prices.All(), prices.InnerRecordHandling(), specs...)
}

// HasPriceInInterval reports whether a price for sale lies within [from, to].
// Under LOWEST_PRICE handling every inner record representative counts.
func (s *PriceForSale) HasPriceInInterval(prices *domain.Prices, from, to domain.Money, mode domain.QueryPriceMode) (bool, error) {
	if err := s.check(prices); err != nil {
		return false, err
	}
	forSale, err := domain.ResolveAll(
		prices.All(),
		prices.InnerRecordHandling(),
		s.rc.Currency(),
		s.rc.Moment(),
		s.rc.PriceLists(),
	)
	if err != nil {
		return false, err
	}
	return domain.InInterval(forSale, from, to, mode), nil
}

func (s *PriceForSale) check(prices *domain.Prices) error {
	if prices == nil {
		return domain.ErrPricesNotFetched
	}
	if s.rc == nil {
		return domain.ErrContextMissing
	}
	return nil
}
