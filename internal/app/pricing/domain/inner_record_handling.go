package domain

import (
	"fmt"
	"strings"
)

// InnerRecordHandling selects how prices of an entity aggregate into one price for sale.
type InnerRecordHandling int

const (
	// InnerRecordNone ignores inner records: the highest-priority sellable price wins.
	InnerRecordNone InnerRecordHandling = iota
	// InnerRecordLowestPrice picks one price per inner record and sells the cheapest of them.
	InnerRecordLowestPrice
	// InnerRecordSum picks one price per inner record and sells their sum.
	InnerRecordSum
	// InnerRecordUnknown marks a partially loaded entity whose policy was not fetched.
	// It must never reach the resolver.
	InnerRecordUnknown
)

var innerRecordHandlingNames = map[InnerRecordHandling]string{
	InnerRecordNone:        "NONE",
	InnerRecordLowestPrice: "LOWEST_PRICE",
	InnerRecordSum:         "SUM",
	InnerRecordUnknown:     "UNKNOWN",
}

func (h InnerRecordHandling) String() string {
	if name, ok := innerRecordHandlingNames[h]; ok {
		return name
	}
	return fmt.Sprintf("InnerRecordHandling(%d)", int(h))
}

// ParseInnerRecordHandling reads the stored name of a policy.
func ParseInnerRecordHandling(s string) (InnerRecordHandling, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for h, name := range innerRecordHandlingNames {
		if name == normalized {
			return h, nil
		}
	}
	return InnerRecordUnknown, fmt.Errorf("unknown inner record handling %q", s)
}

// QueryPriceMode selects which amount is compared when filtering by price range.
type QueryPriceMode int

const (
	WithTax QueryPriceMode = iota
	WithoutTax
)

func (m QueryPriceMode) amount(p *Price) Money {
	if m == WithoutTax {
		return p.PriceWithoutTax()
	}
	return p.PriceWithTax()
}
