// Package query builds parameterized SQL statements from projection maps
// and fluent filter conditions.
package query

import (
	"fmt"
	"strings"
)

// ProjectionMap relates view property names to alias-qualified column
// references for one table, and renders the pieces of a SELECT that
// depend on that relation.
type ProjectionMap struct {
	schema string
	table  string
	alias  string
	fields []projected
}

type projected struct {
	view   string
	column string
}

// NewProjectionMap returns an empty map over schema.table with the
// given alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema: schema,
		table:  table,
		alias:  alias,
	}
}

// Project registers a column under its view property name. Columns
// render in registration order.
func (p *ProjectionMap) Project(column, viewName string) *ProjectionMap {
	p.fields = append(p.fields, projected{
		view:   viewName,
		column: fmt.Sprintf("%s.%s", p.alias, column),
	})
	return p
}

// Alias returns the table alias.
func (p *ProjectionMap) Alias() string {
	return p.alias
}

// Table renders the FROM target: "schema.table alias".
func (p *ProjectionMap) Table() string {
	return fmt.Sprintf("%s.%s %s", p.schema, p.table, p.alias)
}

// Column resolves a view property name to its qualified column.
// Unmapped names pass through unchanged so raw column references
// still work.
func (p *ProjectionMap) Column(viewName string) string {
	for _, f := range p.fields {
		if f.view == viewName {
			return f.column
		}
	}
	return viewName
}

// Columns renders the select list as a comma-separated string.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.ColumnList(), ", ")
}

// ColumnList returns the qualified columns in registration order.
func (p *ProjectionMap) ColumnList() []string {
	columns := make([]string, len(p.fields))
	for i, f := range p.fields {
		columns[i] = f.column
	}
	return columns
}
