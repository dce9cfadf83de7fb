package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_BasicSelect(t *testing.T) {
	stmt := From("prices").
		Select("entity_id", "price_id", "price_list").
		Build()

	assert.Equal(t, "SELECT entity_id, price_id, price_list FROM prices", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_SelectAllColumns(t *testing.T) {
	stmt := From("price_sets").Build()

	assert.Equal(t, "SELECT * FROM price_sets", stmt.SQL)
}

func TestBuilder_Where(t *testing.T) {
	t.Run("single condition", func(t *testing.T) {
		stmt := From("prices").
			Select("price_id").
			Where(Eq("entity_id", "e-1")).
			Build()

		assert.Equal(t, "SELECT price_id FROM prices WHERE entity_id = @p0", stmt.SQL)
		assert.Equal(t, map[string]interface{}{"p0": "e-1"}, stmt.Params)
	})

	t.Run("conditions are joined with AND", func(t *testing.T) {
		stmt := From("prices").
			Select("price_id").
			Where(Eq("entity_id", "e-1")).
			Where(Eq("currency", "EUR")).
			Where(In("price_list", []string{"vip", "basic"})).
			Build()

		assert.Equal(t, "SELECT price_id FROM prices WHERE entity_id = @p0 AND currency = @p1 AND price_list IN UNNEST(@p2)", stmt.SQL)
		assert.Equal(t, map[string]interface{}{
			"p0": "e-1",
			"p1": "EUR",
			"p2": []string{"vip", "basic"},
		}, stmt.Params)
	})
}

func TestBuilder_OrderBy(t *testing.T) {
	stmt := From("prices").
		Select("price_id").
		OrderBy("price_id", Asc).
		OrderBy("version", Desc).
		Build()

	assert.Equal(t, "SELECT price_id FROM prices ORDER BY price_id ASC, version DESC", stmt.SQL)
}

func TestBuilder_Limit(t *testing.T) {
	stmt := From("prices").
		Select("price_id").
		Where(Eq("entity_id", "e-1")).
		OrderBy("price_id", Asc).
		Limit(10).
		Build()

	assert.Equal(t, "SELECT price_id FROM prices WHERE entity_id = @p0 ORDER BY price_id ASC LIMIT @limit", stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"p0":    "e-1",
		"limit": int64(10),
	}, stmt.Params)
}

func TestBuilder_Immutability(t *testing.T) {
	base := From("prices").Select("price_id")

	stmt1 := base.Where(Eq("currency", "EUR")).Build()
	stmt2 := base.Where(Eq("price_list", "vip")).OrderBy("price_id", Asc).Build()

	assert.Equal(t, "SELECT price_id FROM prices WHERE currency = @p0", stmt1.SQL)
	assert.Equal(t, "SELECT price_id FROM prices WHERE price_list = @p0 ORDER BY price_id ASC", stmt2.SQL)
	assert.Equal(t, "SELECT price_id FROM prices", base.Build().SQL)
}

func TestCondition_ParamIndex(t *testing.T) {
	sql, params := Eq("currency", "EUR").SQL(5)
	assert.Equal(t, "currency = @p5", sql)
	assert.Equal(t, map[string]interface{}{"p5": "EUR"}, params)

	sql, params = In("price_list", []string{"vip"}).SQL(2)
	assert.Equal(t, "price_list IN UNNEST(@p2)", sql)
	assert.Equal(t, map[string]interface{}{"p2": []string{"vip"}}, params)
}

func TestBuilder_String(t *testing.T) {
	str := From("prices").Where(Eq("currency", "EUR")).String()

	require.NotEmpty(t, str)
	assert.Contains(t, str, "SQL:")
	assert.Contains(t, str, "Params:")
}
