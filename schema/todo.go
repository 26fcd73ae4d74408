package schema

import (
	"github.com/gocql/gocql"

	"github.com/arloliu/registrar/store"
	"github.com/arloliu/registrar/table"
)

// Todo is a school-scoped task, indexed per user through todos_by_user.
type Todo struct {
	SchoolID int
	ID       gocql.UUID
	Title    string
	Body     string
	Done     bool
}

// TodoKey is the full primary key of a todo row.
type TodoKey struct {
	SchoolID int
	ID       gocql.UUID
}

// TodoDefinition returns the todos table definition.
func TodoDefinition() table.Definition[Todo, TodoKey] {
	return table.Definition[Todo, TodoKey]{
		Name:             "todos",
		Columns:          []string{"school_id", "id", "title", "body", "done"},
		KeyColumns:       []string{"school_id", "id"},
		PartitionColumns: []string{"school_id"},
		UpdateColumns:    []string{"title", "body", "done"},
		Schema:           "(school_id int, id uuid, title text, body text, done boolean, PRIMARY KEY (school_id, id))",
		Bind:             func(e *Todo) []any { return []any{e.SchoolID, e.ID, e.Title, e.Body, e.Done} },
		BindKey:          func(k TodoKey) []any { return []any{k.SchoolID, k.ID} },
		BindUpdate:       func(e *Todo) []any { return []any{e.Title, e.Body, e.Done, e.SchoolID, e.ID} },
		Scan: func(row store.Row, e *Todo) error {
			return row.Scan(&e.SchoolID, &e.ID, &e.Title, &e.Body, &e.Done)
		},
	}
}
