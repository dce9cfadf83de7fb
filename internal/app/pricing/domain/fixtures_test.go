package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type priceOption func(*PriceValue, *priceMeta)

type priceMeta struct {
	currency string
	dropped  bool
	version  int
}

func inner(id int) priceOption {
	return func(v *PriceValue, _ *priceMeta) { v.InnerRecordID = id }
}

func tax(rate string) priceOption {
	return func(v *PriceValue, _ *priceMeta) { v.TaxRate = decimal.RequireFromString(rate) }
}

func net(amount string) priceOption {
	return func(v *PriceValue, _ *priceMeta) { v.PriceWithoutTax = MustParseMoney(amount) }
}

func notIndexed() priceOption {
	return func(v *PriceValue, _ *priceMeta) { v.Indexed = false }
}

func validIn(from, to time.Time) priceOption {
	return func(v *PriceValue, _ *priceMeta) { v.Validity = &Validity{from: from, to: to} }
}

func currency(code string) priceOption {
	return func(_ *PriceValue, m *priceMeta) { m.currency = code }
}

func dropped() priceOption {
	return func(_ *PriceValue, m *priceMeta) { m.dropped = true }
}

// testPrice builds a sellable USD price with a 20 % tax rate whose net amount
// equals the gross amount unless overridden.
func testPrice(id int, list string, gross string, opts ...priceOption) *Price {
	value := PriceValue{
		PriceWithoutTax: MustParseMoney(gross),
		TaxRate:         decimal.NewFromInt(20),
		PriceWithTax:    MustParseMoney(gross),
		Indexed:         true,
	}
	meta := priceMeta{currency: "USD", version: 1}
	for _, opt := range opts {
		opt(&value, &meta)
	}
	return ReconstructPrice(PriceKey{PriceID: id, PriceList: list, Currency: meta.currency}, value, meta.version, meta.dropped)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(t time.Time) *time.Time {
	return &t
}
