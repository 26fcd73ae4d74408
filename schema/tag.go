package schema

import (
	"github.com/gocql/gocql"

	"github.com/arloliu/registrar/store"
	"github.com/arloliu/registrar/table"
)

// Tag is a school-scoped label.
type Tag struct {
	SchoolID int
	ID       gocql.UUID
	Name     string
}

// TagKey is the full primary key of a tag row.
type TagKey struct {
	SchoolID int
	ID       gocql.UUID
}

// TagDefinition returns the tags table definition.
func TagDefinition() table.Definition[Tag, TagKey] {
	return table.Definition[Tag, TagKey]{
		Name:             "tags",
		Columns:          []string{"school_id", "id", "name"},
		KeyColumns:       []string{"school_id", "id"},
		PartitionColumns: []string{"school_id"},
		UpdateColumns:    []string{"name"},
		Schema:           "(school_id int, id uuid, name text, PRIMARY KEY (school_id, id))",
		Bind:             func(e *Tag) []any { return []any{e.SchoolID, e.ID, e.Name} },
		BindKey:          func(k TagKey) []any { return []any{k.SchoolID, k.ID} },
		BindUpdate:       func(e *Tag) []any { return []any{e.Name, e.SchoolID, e.ID} },
		Scan: func(row store.Row, e *Tag) error {
			return row.Scan(&e.SchoolID, &e.ID, &e.Name)
		},
	}
}
