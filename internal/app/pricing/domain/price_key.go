package domain

import (
	"cmp"
	"fmt"
	"strings"
)

// PriceKey identifies a price within one entity.
type PriceKey struct {
	PriceID   int
	PriceList string
	Currency  string
}

// NewPriceKey validates and normalizes a key. Currency codes are upper-cased.
func NewPriceKey(priceID int, priceList, currency string) (PriceKey, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if strings.TrimSpace(priceList) == "" || len(currency) != 3 {
		return PriceKey{}, fmt.Errorf("%w: id=%d list=%q currency=%q", ErrInvalidPriceKey, priceID, priceList, currency)
	}
	return PriceKey{PriceID: priceID, PriceList: priceList, Currency: currency}, nil
}

// Compare orders keys by price id, then price list, then currency.
func (k PriceKey) Compare(other PriceKey) int {
	if c := cmp.Compare(k.PriceID, other.PriceID); c != 0 {
		return c
	}
	if c := cmp.Compare(k.PriceList, other.PriceList); c != 0 {
		return c
	}
	return cmp.Compare(k.Currency, other.Currency)
}

func (k PriceKey) String() string {
	return fmt.Sprintf("%d/%s/%s", k.PriceID, k.PriceList, k.Currency)
}
