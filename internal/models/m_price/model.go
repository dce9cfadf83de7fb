package m_price

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe mutations on the price tables.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertSetMut creates a Spanner mutation for inserting or replacing a price set header.
func (m *Model) InsertSetMut(data *SetData) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		SetsTableName,
		SetColumns(),
		[]interface{}{
			data.EntityID,
			data.Version,
			data.InnerRecordHandling,
		},
	)
}

// InsertMut creates a Spanner mutation for inserting or replacing one price row.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		Columns(),
		[]interface{}{
			data.EntityID,
			data.PriceID,
			data.PriceList,
			data.Currency,
			data.InnerRecordID,
			&data.PriceWithoutTax,
			&data.TaxRate,
			&data.PriceWithTax,
			data.ValidFrom,
			data.ValidTo,
			data.Indexed,
			data.Version,
			data.Dropped,
		},
	)
}

// DeleteSetMut removes a price set header and, through the interleaved table, its prices.
func (m *Model) DeleteSetMut(entityID string) *spanner.Mutation {
	return spanner.Delete(SetsTableName, spanner.Key{entityID})
}
