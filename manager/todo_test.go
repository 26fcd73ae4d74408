package manager

import (
	"context"
	"testing"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/registrar/internal/logging"
	"github.com/arloliu/registrar/schema"
	"github.com/arloliu/registrar/types"
)

type todoFixture struct {
	manager   *TodoManager
	todos     *fakeStore[schema.Todo, schema.TodoKey]
	users     *fakeStore[schema.User, schema.UserKey]
	userTodos *fakeLink[string, gocql.UUID]
}

func newTodoFixture() *todoFixture {
	todos := newFakeStore[schema.Todo, schema.TodoKey](todoKeyOf, todoMatches)
	users := newFakeStore[schema.User, schema.UserKey](
		func(e *schema.User) schema.UserKey {
			return schema.UserKey{SchoolID: e.SchoolID, Token: e.Token}
		}, nil)
	userTodos := newFakeLink[string, gocql.UUID]()

	f := &todoFixture{
		manager:   NewTodoManager(todos, users, userTodos, logging.NewNopLogger()),
		todos:     todos,
		users:     users,
		userTodos: userTodos,
	}
	f.users.put(schema.User{SchoolID: 1, Token: "tok", Name: "Ana", Email: "a@b.c", Role: "teacher"})

	return f
}

func TestCreateTodoIndexesByUser(t *testing.T) {
	f := newTodoFixture()
	ctx := context.Background()

	resp := f.manager.CreateTodo(ctx, 1, "tok", TodoInput{Title: "grade homework"})
	require.Equal(t, StatusCreated, resp.Status)

	todo := resp.Body.(schema.Todo)
	require.Len(t, f.todos.rows, 1)
	require.Equal(t, []linkRow[string, gocql.UUID]{{tenant: 1, owner: "tok", member: todo.ID}}, f.userTodos.rows)
}

func TestCreateTodoMissingUser(t *testing.T) {
	f := newTodoFixture()

	resp := f.manager.CreateTodo(context.Background(), 1, "absent", TodoInput{Title: "x"})
	require.Equal(t, StatusNotFound, resp.Status)
	require.Empty(t, f.todos.rows)
}

func TestCreateTodoLinkFailureSurfaces(t *testing.T) {
	f := newTodoFixture()
	f.userTodos.failLink = types.Failure(types.ResourceError, "write failure")

	resp := f.manager.CreateTodo(context.Background(), 1, "tok", TodoInput{Title: "x"})
	require.Equal(t, StatusInternal, resp.Status)
	// The entity row stays; the orphan is logged, not rolled back.
	require.Len(t, f.todos.rows, 1)
}

func TestListTodosSkipsOrphanedLinks(t *testing.T) {
	f := newTodoFixture()
	ctx := context.Background()
	live := gocql.TimeUUID()

	f.todos.put(schema.Todo{SchoolID: 1, ID: live, Title: "still here"})
	require.True(t, f.userTodos.Link(ctx, 1, "tok", live).IsOK())
	require.True(t, f.userTodos.Link(ctx, 1, "tok", gocql.TimeUUID()).IsOK())

	resp := f.manager.ListTodos(ctx, 1, "tok")
	require.Equal(t, StatusOK, resp.Status)
	listed := resp.Body.([]schema.Todo)
	require.Len(t, listed, 1)
	require.Equal(t, "still here", listed[0].Title)
}

func TestListTodosEmptyIsOK(t *testing.T) {
	f := newTodoFixture()

	resp := f.manager.ListTodos(context.Background(), 1, "tok")
	require.Equal(t, StatusOK, resp.Status)
	require.Empty(t, resp.Body.([]schema.Todo))
}

func TestUpdateTodoMissing(t *testing.T) {
	f := newTodoFixture()

	resp := f.manager.UpdateTodo(context.Background(), 1, gocql.TimeUUID(), TodoInput{Title: "x"})
	require.Equal(t, StatusNotFound, resp.Status)
}

func TestDeleteTodoUnlinks(t *testing.T) {
	f := newTodoFixture()
	ctx := context.Background()
	id := gocql.TimeUUID()

	f.todos.put(schema.Todo{SchoolID: 1, ID: id, Title: "x"})
	require.True(t, f.userTodos.Link(ctx, 1, "tok", id).IsOK())

	resp := f.manager.DeleteTodo(ctx, 1, "tok", id)
	require.Equal(t, StatusOK, resp.Status)
	require.Empty(t, f.todos.rows)
	require.Empty(t, f.userTodos.rows)
}

func TestTagCRUD(t *testing.T) {
	tags := newFakeStore[schema.Tag, schema.TagKey](
		func(e *schema.Tag) schema.TagKey {
			return schema.TagKey{SchoolID: e.SchoolID, ID: e.ID}
		},
		func(e *schema.Tag, partition []any) bool {
			return e.SchoolID == partition[0].(int)
		})
	m := NewTagManager(tags, logging.NewNopLogger())
	ctx := context.Background()

	resp := m.CreateTag(ctx, 1, TagInput{Name: "math"})
	require.Equal(t, StatusCreated, resp.Status)
	tag := resp.Body.(schema.Tag)

	resp = m.GetTag(ctx, 1, tag.ID)
	require.Equal(t, StatusOK, resp.Status)
	require.Equal(t, tag, resp.Body)

	resp = m.UpdateTag(ctx, 1, tag.ID, TagInput{Name: "maths"})
	require.Equal(t, StatusOK, resp.Status)

	resp = m.ListTags(ctx, 1)
	require.Equal(t, StatusOK, resp.Status)
	require.Len(t, resp.Body.([]schema.Tag), 1)

	resp = m.DeleteTag(ctx, 1, tag.ID)
	require.Equal(t, StatusOK, resp.Status)

	resp = m.GetTag(ctx, 1, tag.ID)
	require.Equal(t, StatusNotFound, resp.Status)
}

func TestTagValidation(t *testing.T) {
	tags := newFakeStore[schema.Tag, schema.TagKey](
		func(e *schema.Tag) schema.TagKey {
			return schema.TagKey{SchoolID: e.SchoolID, ID: e.ID}
		}, nil)
	m := NewTagManager(tags, logging.NewNopLogger())

	resp := m.CreateTag(context.Background(), 1, TagInput{})
	require.Equal(t, StatusBadRequest, resp.Status)
}
