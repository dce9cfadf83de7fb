package m_price

import (
	"math/big"

	"cloud.google.com/go/spanner"
)

// SetData represents a row of the price_sets table: one per priced entity.
type SetData struct {
	EntityID            string `spanner:"entity_id"`
	Version             int64  `spanner:"version"`
	InnerRecordHandling string `spanner:"inner_record_handling"`
}

// Data represents a row of the prices table. Dropped rows are kept as tombstones.
type Data struct {
	EntityID        string            `spanner:"entity_id"`
	PriceID         int64             `spanner:"price_id"`
	PriceList       string            `spanner:"price_list"`
	Currency        string            `spanner:"currency"`
	InnerRecordID   spanner.NullInt64 `spanner:"inner_record_id"`
	PriceWithoutTax big.Rat           `spanner:"price_without_tax"`
	TaxRate         big.Rat           `spanner:"tax_rate"`
	PriceWithTax    big.Rat           `spanner:"price_with_tax"`
	ValidFrom       spanner.NullTime  `spanner:"valid_from"`
	ValidTo         spanner.NullTime  `spanner:"valid_to"`
	Indexed         bool              `spanner:"indexed"`
	Version         int64             `spanner:"version"`
	Dropped         bool              `spanner:"dropped"`
}
