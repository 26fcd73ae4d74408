package schema

import (
	"github.com/arloliu/registrar/store"
	"github.com/arloliu/registrar/table"
)

// Student is a school-scoped student record, referenced by grades.
type Student struct {
	SchoolID int
	Token    string
	Name     string
	Email    string
}

// StudentKey is the full primary key of a student row.
type StudentKey struct {
	SchoolID int
	Token    string
}

// StudentDefinition returns the students table definition.
func StudentDefinition() table.Definition[Student, StudentKey] {
	return table.Definition[Student, StudentKey]{
		Name:             "students",
		Columns:          []string{"school_id", "token", "name", "email"},
		KeyColumns:       []string{"school_id", "token"},
		PartitionColumns: []string{"school_id"},
		UpdateColumns:    []string{"name", "email"},
		Schema:           "(school_id int, token text, name text, email text, PRIMARY KEY (school_id, token))",
		Bind:             func(e *Student) []any { return []any{e.SchoolID, e.Token, e.Name, e.Email} },
		BindKey:          func(k StudentKey) []any { return []any{k.SchoolID, k.Token} },
		BindUpdate:       func(e *Student) []any { return []any{e.Name, e.Email, e.SchoolID, e.Token} },
		Scan: func(row store.Row, e *Student) error {
			return row.Scan(&e.SchoolID, &e.Token, &e.Name, &e.Email)
		},
	}
}
