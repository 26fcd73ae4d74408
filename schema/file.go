package schema

import (
	"github.com/gocql/gocql"

	"github.com/arloliu/registrar/store"
	"github.com/arloliu/registrar/table"
)

// File is the metadata record of an uploaded file, indexed per owner
// through files_by_user. Storage of the bytes themselves is external.
type File struct {
	SchoolID   int
	ID         gocql.UUID
	OwnerToken string
	Name       string
	Path       string
	Size       int64
}

// FileKey is the full primary key of a file row.
type FileKey struct {
	SchoolID int
	ID       gocql.UUID
}

// FileDefinition returns the files table definition.
func FileDefinition() table.Definition[File, FileKey] {
	return table.Definition[File, FileKey]{
		Name:             "files",
		Columns:          []string{"school_id", "id", "owner_token", "name", "path", "size"},
		KeyColumns:       []string{"school_id", "id"},
		PartitionColumns: []string{"school_id"},
		UpdateColumns:    []string{"name", "path"},
		Schema: "(school_id int, id uuid, owner_token text, name text, path text, size bigint, " +
			"PRIMARY KEY (school_id, id))",
		Bind: func(e *File) []any {
			return []any{e.SchoolID, e.ID, e.OwnerToken, e.Name, e.Path, e.Size}
		},
		BindKey:    func(k FileKey) []any { return []any{k.SchoolID, k.ID} },
		BindUpdate: func(e *File) []any { return []any{e.Name, e.Path, e.SchoolID, e.ID} },
		Scan: func(row store.Row, e *File) error {
			return row.Scan(&e.SchoolID, &e.ID, &e.OwnerToken, &e.Name, &e.Path, &e.Size)
		},
	}
}
