package manager

import (
	"context"

	"github.com/gocql/gocql"

	"github.com/arloliu/registrar/schema"
	"github.com/arloliu/registrar/types"
)

// TagManager owns school-scoped tags. Plain CRUD, no relationships.
type TagManager struct {
	tags   EntityStore[schema.Tag, schema.TagKey]
	logger types.Logger
}

// NewTagManager wires the tag aggregate.
func NewTagManager(tags EntityStore[schema.Tag, schema.TagKey], logger types.Logger) *TagManager {
	return &TagManager{tags: tags, logger: logger}
}

// TagInput is the validated input for tag creation and update.
type TagInput struct {
	Name string `validate:"required"`
}

// CreateTag inserts a tag with a fresh id.
func (m *TagManager) CreateTag(ctx context.Context, schoolID int, in TagInput) Response {
	if err := validate.Struct(in); err != nil {
		return invalidInput(err)
	}

	tag := schema.Tag{SchoolID: schoolID, ID: gocql.TimeUUID(), Name: in.Name}
	res := m.tags.Insert(ctx, &tag)
	switch {
	case res.IsNotApplied():
		return conflict("tag id collision, retry")
	case !res.IsOK():
		return internal(m.logger, "create tag", res)
	}

	return created(tag)
}

// GetTag reads one tag by id.
func (m *TagManager) GetTag(ctx context.Context, schoolID int, id gocql.UUID) Response {
	tag, res := m.tags.Get(ctx, schema.TagKey{SchoolID: schoolID, ID: id})
	switch {
	case res.IsNotFound():
		return notFound("tag not found")
	case !res.IsOK():
		return internal(m.logger, "get tag", res)
	}

	return ok(tag)
}

// ListTags lists a school's tags; an empty list is OK.
func (m *TagManager) ListTags(ctx context.Context, schoolID int) Response {
	tags, res := m.tags.List(ctx, schoolID)
	if !res.IsOK() {
		return internal(m.logger, "list tags", res)
	}

	return ok(tags)
}

// UpdateTag renames a tag in place.
func (m *TagManager) UpdateTag(ctx context.Context, schoolID int, id gocql.UUID, in TagInput) Response {
	if err := validate.Struct(in); err != nil {
		return invalidInput(err)
	}

	tag := schema.Tag{SchoolID: schoolID, ID: id, Name: in.Name}
	res := m.tags.Update(ctx, &tag)
	switch {
	case res.IsNotApplied():
		return notFound("tag not found")
	case !res.IsOK():
		return internal(m.logger, "update tag", res)
	}

	return ok(tag)
}

// DeleteTag removes a tag.
func (m *TagManager) DeleteTag(ctx context.Context, schoolID int, id gocql.UUID) Response {
	res := m.tags.Delete(ctx, schema.TagKey{SchoolID: schoolID, ID: id})
	switch {
	case res.IsNotApplied():
		return notFound("tag not found")
	case !res.IsOK():
		return internal(m.logger, "delete tag", res)
	}

	return ok(nil)
}
