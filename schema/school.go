package schema

import (
	"github.com/arloliu/registrar/store"
	"github.com/arloliu/registrar/table"
)

// School is the tenant root. Its small-integer id scopes almost every other
// table and is generated by the environment manager.
type School struct {
	ID        int
	Name      string
	CountryID int
}

// SchoolDefinition returns the schools table definition.
func SchoolDefinition() table.Definition[School, int] {
	return table.Definition[School, int]{
		Name:          "schools",
		Columns:       []string{"id", "name", "country_id"},
		KeyColumns:    []string{"id"},
		UpdateColumns: []string{"name", "country_id"},
		Schema:        "(id int, name text, country_id int, PRIMARY KEY (id))",
		Bind:          func(e *School) []any { return []any{e.ID, e.Name, e.CountryID} },
		BindKey:       func(k int) []any { return []any{k} },
		BindUpdate:    func(e *School) []any { return []any{e.Name, e.CountryID, e.ID} },
		Scan: func(row store.Row, e *School) error {
			return row.Scan(&e.ID, &e.Name, &e.CountryID)
		},
	}
}
