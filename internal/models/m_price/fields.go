package m_price

// Column name constants for the price_sets and prices tables.
const (
	SetsTableName = "price_sets"
	TableName     = "prices"

	EntityID            = "entity_id"
	Version             = "version"
	InnerRecordHandling = "inner_record_handling"

	PriceID         = "price_id"
	PriceList       = "price_list"
	Currency        = "currency"
	InnerRecordID   = "inner_record_id"
	PriceWithoutTax = "price_without_tax"
	TaxRate         = "tax_rate"
	PriceWithTax    = "price_with_tax"
	ValidFrom       = "valid_from"
	ValidTo         = "valid_to"
	Indexed         = "indexed"
	Dropped         = "dropped"
)

// SetColumns lists the price_sets columns read into SetData.
func SetColumns() []string {
	return []string{EntityID, Version, InnerRecordHandling}
}

// Columns lists the prices columns read into Data.
func Columns() []string {
	return []string{
		EntityID,
		PriceID,
		PriceList,
		Currency,
		InnerRecordID,
		PriceWithoutTax,
		TaxRate,
		PriceWithTax,
		ValidFrom,
		ValidTo,
		Indexed,
		Version,
		Dropped,
	}
}
