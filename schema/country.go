package schema

import (
	"github.com/arloliu/registrar/store"
	"github.com/arloliu/registrar/table"
)

// Country is a global reference entity with a small-integer id generated by
// the environment manager.
type Country struct {
	ID   int
	Name string
	Code string
}

// CountryDefinition returns the countries table definition.
func CountryDefinition() table.Definition[Country, int] {
	return table.Definition[Country, int]{
		Name:          "countries",
		Columns:       []string{"id", "name", "code"},
		KeyColumns:    []string{"id"},
		UpdateColumns: []string{"name", "code"},
		Schema:        "(id int, name text, code text, PRIMARY KEY (id))",
		Bind:          func(e *Country) []any { return []any{e.ID, e.Name, e.Code} },
		BindKey:       func(k int) []any { return []any{k} },
		BindUpdate:    func(e *Country) []any { return []any{e.Name, e.Code, e.ID} },
		Scan: func(row store.Row, e *Country) error {
			return row.Scan(&e.ID, &e.Name, &e.Code)
		},
	}
}
