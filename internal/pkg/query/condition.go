package query

import "fmt"

// Condition represents a WHERE clause condition.
type Condition interface {
	// SQL returns the fragment and its parameters. paramIndex is the number of
	// parameters already bound, used to name new ones (@p0, @p1, ...).
	SQL(paramIndex int) (string, map[string]interface{})
}

type eqCondition struct {
	field string
	value interface{}
}

// Eq creates an equality condition: Eq("currency", "EUR") renders "currency = @p0".
func Eq(field string, value interface{}) Condition {
	return &eqCondition{field: field, value: value}
}

func (c *eqCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	name := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("%s = @%s", c.field, name), map[string]interface{}{name: c.value}
}

type inCondition struct {
	field  string
	values []string
}

// In creates a membership condition bound as one array parameter:
// In("price_list", lists) renders "price_list IN UNNEST(@p0)".
func In(field string, values []string) Condition {
	return &inCondition{field: field, values: values}
}

func (c *inCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	name := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("%s IN UNNEST(@%s)", c.field, name), map[string]interface{}{name: c.values}
}
