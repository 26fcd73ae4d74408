package manager

import (
	"context"

	"github.com/gocql/gocql"

	"github.com/arloliu/registrar/schema"
	"github.com/arloliu/registrar/types"
)

// FileManager owns uploaded-file metadata and the files_by_user index.
// Byte storage is external; only the metadata rows live here.
type FileManager struct {
	files     EntityStore[schema.File, schema.FileKey]
	userFiles LinkStore[string, gocql.UUID]
	logger    types.Logger
}

// NewFileManager wires the file aggregate.
func NewFileManager(
	files EntityStore[schema.File, schema.FileKey],
	userFiles LinkStore[string, gocql.UUID],
	logger types.Logger,
) *FileManager {
	return &FileManager{files: files, userFiles: userFiles, logger: logger}
}

// FileInput is the validated input for RegisterFile.
type FileInput struct {
	Name string `validate:"required"`
	Path string `validate:"required"`
	Size int64  `validate:"gte=0"`
}

// RegisterFile records file metadata for the owner and indexes it.
func (m *FileManager) RegisterFile(ctx context.Context, schoolID int, ownerToken string, in FileInput) Response {
	if err := validate.Struct(in); err != nil {
		return invalidInput(err)
	}

	file := schema.File{
		SchoolID:   schoolID,
		ID:         gocql.TimeUUID(),
		OwnerToken: ownerToken,
		Name:       in.Name,
		Path:       in.Path,
		Size:       in.Size,
	}
	res := m.files.Insert(ctx, &file)
	switch {
	case res.IsNotApplied():
		return conflict("file id collision, retry")
	case !res.IsOK():
		return internal(m.logger, "register file", res)
	}

	if res := m.userFiles.Link(ctx, schoolID, ownerToken, file.ID); !res.IsOK() && !res.IsNotApplied() {
		m.logger.Errorw("file registered but not indexed",
			"owner_token", ownerToken,
			"file_id", file.ID.String(),
			"result", res.String(),
		)

		return internal(m.logger, "index file", res)
	}

	return created(file)
}

// GetFile reads one file record by id.
func (m *FileManager) GetFile(ctx context.Context, schoolID int, id gocql.UUID) Response {
	file, res := m.files.Get(ctx, schema.FileKey{SchoolID: schoolID, ID: id})
	switch {
	case res.IsNotFound():
		return notFound("file not found")
	case !res.IsOK():
		return internal(m.logger, "get file", res)
	}

	return ok(file)
}

// ListFiles lists the owner's files through the index, skipping orphaned
// links; an empty list is OK.
func (m *FileManager) ListFiles(ctx context.Context, schoolID int, ownerToken string) Response {
	ids, res := m.userFiles.Members(ctx, schoolID, ownerToken)
	if !res.IsOK() {
		return internal(m.logger, "list files", res)
	}

	files := make([]schema.File, 0, len(ids))
	for _, id := range ids {
		file, res := m.files.Get(ctx, schema.FileKey{SchoolID: schoolID, ID: id})
		if res.IsNotFound() {
			m.logger.Warnw("skipping orphaned file link",
				"owner_token", ownerToken,
				"file_id", id.String(),
			)

			continue
		}
		if !res.IsOK() {
			return internal(m.logger, "list files", res)
		}
		files = append(files, file)
	}

	return ok(files)
}

// RenameFileInput is the validated input for RenameFile.
type RenameFileInput struct {
	Name string `validate:"required"`
	Path string `validate:"required"`
}

// RenameFile rewrites a file's name and path in place.
func (m *FileManager) RenameFile(ctx context.Context, schoolID int, id gocql.UUID, in RenameFileInput) Response {
	if err := validate.Struct(in); err != nil {
		return invalidInput(err)
	}

	current, res := m.files.Get(ctx, schema.FileKey{SchoolID: schoolID, ID: id})
	switch {
	case res.IsNotFound():
		return notFound("file not found")
	case !res.IsOK():
		return internal(m.logger, "rename file", res)
	}

	current.Name = in.Name
	current.Path = in.Path
	res = m.files.Update(ctx, &current)
	switch {
	case res.IsNotApplied():
		return notFound("file not found")
	case !res.IsOK():
		return internal(m.logger, "rename file", res)
	}

	return ok(current)
}

// DeleteFile removes a file record and its index row. A missing index row
// after a successful delete is only warned about.
func (m *FileManager) DeleteFile(ctx context.Context, schoolID int, ownerToken string, id gocql.UUID) Response {
	res := m.files.Delete(ctx, schema.FileKey{SchoolID: schoolID, ID: id})
	switch {
	case res.IsNotApplied():
		return notFound("file not found")
	case !res.IsOK():
		return internal(m.logger, "delete file", res)
	}

	if res := m.userFiles.Unlink(ctx, schoolID, ownerToken, id); !res.IsOK() && !res.IsNotApplied() {
		m.logger.Warnw("file deleted but index row remains",
			"owner_token", ownerToken,
			"file_id", id.String(),
			"result", res.String(),
		)
	}

	return ok(nil)
}
