package query

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"cloud.google.com/go/spanner"
)

// Direction represents ORDER BY direction.
type Direction int

const (
	// Asc represents ascending order.
	Asc Direction = iota
	// Desc represents descending order.
	Desc
)

type ordering struct {
	column    string
	direction Direction
}

// Builder constructs SELECT statements for Cloud Spanner.
// Every method returns a new Builder, so a partially built query can be shared.
// Parameter names (@p0, @p1, ...) are generated in condition order.
type Builder struct {
	table      string
	columns    []string
	conditions []Condition
	orderings  []ordering
	limit      int64
}

// From creates a new Builder for the specified table.
func From(table string) *Builder {
	return &Builder{table: table}
}

// Select appends columns to the projection. Without columns the query selects *.
func (b *Builder) Select(columns ...string) *Builder {
	next := b.clone()
	next.columns = append(next.columns, columns...)
	return next
}

// Where adds a condition. Conditions are combined with AND.
func (b *Builder) Where(condition Condition) *Builder {
	next := b.clone()
	next.conditions = append(next.conditions, condition)
	return next
}

// OrderBy appends a sort column; earlier calls take precedence.
func (b *Builder) OrderBy(column string, direction Direction) *Builder {
	next := b.clone()
	next.orderings = append(next.orderings, ordering{column: column, direction: direction})
	return next
}

// Limit sets the maximum number of rows to return. Zero means no limit.
func (b *Builder) Limit(limit int64) *Builder {
	next := b.clone()
	next.limit = limit
	return next
}

// Build renders the statement.
func (b *Builder) Build() spanner.Statement {
	var sql strings.Builder
	params := make(map[string]interface{})

	sql.WriteString("SELECT ")
	if len(b.columns) == 0 {
		sql.WriteString("*")
	} else {
		sql.WriteString(strings.Join(b.columns, ", "))
	}
	sql.WriteString(" FROM ")
	sql.WriteString(b.table)

	if len(b.conditions) > 0 {
		fragments := make([]string, 0, len(b.conditions))
		for _, condition := range b.conditions {
			fragment, condParams := condition.SQL(len(params))
			fragments = append(fragments, fragment)
			maps.Copy(params, condParams)
		}
		sql.WriteString(" WHERE ")
		sql.WriteString(strings.Join(fragments, " AND "))
	}

	if len(b.orderings) > 0 {
		parts := make([]string, 0, len(b.orderings))
		for _, o := range b.orderings {
			dir := "ASC"
			if o.direction == Desc {
				dir = "DESC"
			}
			parts = append(parts, o.column+" "+dir)
		}
		sql.WriteString(" ORDER BY ")
		sql.WriteString(strings.Join(parts, ", "))
	}

	if b.limit > 0 {
		sql.WriteString(" LIMIT @limit")
		params["limit"] = b.limit
	}

	return spanner.Statement{SQL: sql.String(), Params: params}
}

func (b *Builder) clone() *Builder {
	return &Builder{
		table:      b.table,
		columns:    slices.Clone(b.columns),
		conditions: slices.Clone(b.conditions),
		orderings:  slices.Clone(b.orderings),
		limit:      b.limit,
	}
}

// String returns a human-readable representation for debugging.
func (b *Builder) String() string {
	stmt := b.Build()
	return fmt.Sprintf("SQL: %s\nParams: %v", stmt.SQL, stmt.Params)
}
