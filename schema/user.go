package schema

import (
	"github.com/arloliu/registrar/store"
	"github.com/arloliu/registrar/table"
)

// User is a school-scoped account. The token is the opaque session
// identifier carried in bearer claims.
type User struct {
	SchoolID     int
	Token        string
	Name         string
	Email        string
	PasswordHash string
	Role         string
}

// UserKey is the full primary key of a user row.
type UserKey struct {
	SchoolID int
	Token    string
}

// UserDefinition returns the users table definition.
func UserDefinition() table.Definition[User, UserKey] {
	return table.Definition[User, UserKey]{
		Name:             "users",
		Columns:          []string{"school_id", "token", "name", "email", "password_hash", "role"},
		KeyColumns:       []string{"school_id", "token"},
		PartitionColumns: []string{"school_id"},
		UpdateColumns:    []string{"name", "email", "password_hash", "role"},
		Schema: "(school_id int, token text, name text, email text, password_hash text, role text, " +
			"PRIMARY KEY (school_id, token))",
		Bind: func(e *User) []any {
			return []any{e.SchoolID, e.Token, e.Name, e.Email, e.PasswordHash, e.Role}
		},
		BindKey: func(k UserKey) []any { return []any{k.SchoolID, k.Token} },
		BindUpdate: func(e *User) []any {
			return []any{e.Name, e.Email, e.PasswordHash, e.Role, e.SchoolID, e.Token}
		},
		Scan: func(row store.Row, e *User) error {
			return row.Scan(&e.SchoolID, &e.Token, &e.Name, &e.Email, &e.PasswordHash, &e.Role)
		},
	}
}
