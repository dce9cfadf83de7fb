package domain

import (
	"maps"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// ResolutionContext carries the parameters of a price for sale resolution and
// memoizes its outcome.
//
// The first Compute runs the resolver and publishes the result; later calls on
// the same instance return the published value whatever arguments they pass, so
// callers must keep prices and handling stable for the lifetime of the context.
// Concurrent first calls may each run the resolver, but only one result is
// published and every caller sees it. Nothing blocks.
type ResolutionContext struct {
	currency            string
	moment              *time.Time
	priceLists          []string
	defaultAccompanying []string

	cell         atomic.Pointer[resolution]
	computations atomic.Int64
}

// resolution is the published cell. accompanying is keyed by accompanyingKey,
// so one name ranked by different price lists is cached as separate entries.
type resolution struct {
	priceForSale *Price
	accompanying map[string]*Price
}

// accompanyingKey identifies a spec by its name and its resolved price lists.
func accompanyingKey(s AccompanyingPriceSpec) string {
	var b strings.Builder
	b.WriteString(strconv.Quote(s.Name))
	b.WriteByte('=')
	for i, list := range s.PriceLists {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Quote(list))
	}
	return b.String()
}

// merge returns a copy of r extended with entries it does not hold yet.
func (r *resolution) merge(computed map[string]*Price) *resolution {
	merged := &resolution{
		priceForSale: r.priceForSale,
		accompanying: make(map[string]*Price, len(r.accompanying)+len(computed)),
	}
	maps.Copy(merged.accompanying, computed)
	maps.Copy(merged.accompanying, r.accompanying)
	return merged
}

func (r *resolution) result(specs []AccompanyingPriceSpec) *ResolutionResult {
	if r.priceForSale == nil {
		return nil
	}
	accompanying := make(map[string]*Price, len(specs))
	for _, s := range specs {
		accompanying[s.Name] = r.accompanying[accompanyingKey(s)]
	}
	return &ResolutionResult{priceForSale: r.priceForSale, accompanying: accompanying}
}

// NewResolutionContext creates a context; moment may be nil to ignore price validity.
func NewResolutionContext(currency string, moment *time.Time, priceLists []string, defaultAccompanying []string) *ResolutionContext {
	c := &ResolutionContext{
		currency:            strings.ToUpper(strings.TrimSpace(currency)),
		priceLists:          slices.Clone(priceLists),
		defaultAccompanying: slices.Clone(defaultAccompanying),
	}
	if moment != nil {
		m := *moment
		c.moment = &m
	}
	return c
}

// Getters
func (c *ResolutionContext) Currency() string     { return c.currency }
func (c *ResolutionContext) PriceLists() []string { return slices.Clone(c.priceLists) }
func (c *ResolutionContext) DefaultAccompanyingPriceLists() []string {
	return slices.Clone(c.defaultAccompanying)
}

// Moment returns a copy of the resolution moment, nil when validity is ignored.
func (c *ResolutionContext) Moment() *time.Time {
	if c.moment == nil {
		return nil
	}
	m := *c.moment
	return &m
}

// Computations reports how many times the resolver ran for this context.
func (c *ResolutionContext) Computations() int64 {
	return c.computations.Load()
}

// Equal compares currency, moment and price lists. Cached results are ignored.
func (c *ResolutionContext) Equal(other *ResolutionContext) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.currency != other.currency || !slices.Equal(c.priceLists, other.priceLists) {
		return false
	}
	if c.moment == nil || other.moment == nil {
		return c.moment == nil && other.moment == nil
	}
	return c.moment.Equal(*other.moment)
}

// Key renders the parameters compared by Equal as a stable string.
func (c *ResolutionContext) Key() string {
	var b strings.Builder
	b.WriteString(c.currency)
	b.WriteByte('|')
	if c.moment != nil {
		b.WriteString(c.moment.UTC().Format(time.RFC3339Nano))
	}
	b.WriteByte('|')
	for i, list := range c.priceLists {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Quote(list))
	}
	return b.String()
}

// Compute returns the memoized price for sale, resolving it on first use.
// A failed resolution publishes nothing, so a later call may retry.
func (c *ResolutionContext) Compute(prices []*Price, handling InnerRecordHandling) (*Price, error) {
	r, err := c.resolve(prices, handling)
	if err != nil {
		return nil, err
	}
	return r.priceForSale, nil
}

// ComputeWithAccompanying returns the memoized price for sale with the requested
// accompanying prices. Specs with no price lists use the default accompanying
// price lists. Accompanying prices are cached per name and price lists; only
// those missing from the cache are computed and the price for sale is never
// resolved twice. The result is nil when nothing is for sale.
func (c *ResolutionContext) ComputeWithAccompanying(prices []*Price, handling InnerRecordHandling, specs ...AccompanyingPriceSpec) (*ResolutionResult, error) {
	specs = c.withDefaults(specs)
	if err := validateSpecs(specs); err != nil {
		return nil, err
	}

	current, err := c.resolve(prices, handling)
	if err != nil {
		return nil, err
	}
	if current.priceForSale == nil {
		return nil, nil
	}

	missing := make([]AccompanyingPriceSpec, 0, len(specs))
	for _, s := range specs {
		if _, cached := current.accompanying[accompanyingKey(s)]; !cached {
			missing = append(missing, s)
		}
	}
	if len(missing) == 0 {
		return current.result(specs), nil
	}

	byName, err := ComputeAccompanying(current.priceForSale, prices, handling, c.currency, c.moment, missing...)
	if err != nil {
		return nil, err
	}
	computed := make(map[string]*Price, len(missing))
	for _, s := range missing {
		computed[accompanyingKey(s)] = byName[s.Name]
	}
	for {
		merged := current.merge(computed)
		if c.cell.CompareAndSwap(current, merged) {
			return merged.result(specs), nil
		}
		current = c.cell.Load()
	}
}

func (c *ResolutionContext) resolve(prices []*Price, handling InnerRecordHandling) (*resolution, error) {
	if r := c.cell.Load(); r != nil {
		return r, nil
	}
	c.computations.Add(1)
	forSale, err := Resolve(prices, handling, c.currency, c.moment, c.priceLists)
	if err != nil {
		return nil, err
	}
	fresh := &resolution{priceForSale: forSale}
	if c.cell.CompareAndSwap(nil, fresh) {
		return fresh, nil
	}
	return c.cell.Load(), nil
}

func (c *ResolutionContext) withDefaults(specs []AccompanyingPriceSpec) []AccompanyingPriceSpec {
	out := make([]AccompanyingPriceSpec, len(specs))
	for i, s := range specs {
		if len(s.PriceLists) == 0 {
			s.PriceLists = c.defaultAccompanying
		}
		out[i] = s
	}
	return out
}
