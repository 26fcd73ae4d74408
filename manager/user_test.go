package manager

import (
	"context"
	"errors"
	"testing"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/registrar/internal/logging"
	"github.com/arloliu/registrar/schema"
)

type userFixture struct {
	manager   *UserManager
	users     *fakeStore[schema.User, schema.UserKey]
	todos     *fakeStore[schema.Todo, schema.TodoKey]
	userTodos *fakeLink[string, gocql.UUID]
	mailer    *fakeMailer
}

func todoKeyOf(e *schema.Todo) schema.TodoKey {
	return schema.TodoKey{SchoolID: e.SchoolID, ID: e.ID}
}

func todoMatches(e *schema.Todo, partition []any) bool {
	return e.SchoolID == partition[0].(int)
}

func newUserFixture() *userFixture {
	users := newFakeStore[schema.User, schema.UserKey](
		func(e *schema.User) schema.UserKey {
			return schema.UserKey{SchoolID: e.SchoolID, Token: e.Token}
		},
		func(e *schema.User, partition []any) bool {
			return e.SchoolID == partition[0].(int)
		})
	todos := newFakeStore[schema.Todo, schema.TodoKey](todoKeyOf, todoMatches)
	userTodos := newFakeLink[string, gocql.UUID]()
	mailer := &fakeMailer{}

	return &userFixture{
		manager:   NewUserManager(users, todos, userTodos, mailer, logging.NewNopLogger()),
		users:     users,
		todos:     todos,
		userTodos: userTodos,
		mailer:    mailer,
	}
}

func TestCreateUser(t *testing.T) {
	f := newUserFixture()

	resp := f.manager.CreateUser(context.Background(), 1,
		CreateUserInput{Name: "Ana", Email: "ana@example.com", Role: "teacher"})
	require.Equal(t, StatusCreated, resp.Status)

	body := resp.Body.(CreatedUser)
	require.NotEmpty(t, body.User.Token)
	require.NotEmpty(t, body.InitialPassword)
	require.Equal(t, hashPassword(body.InitialPassword), body.User.PasswordHash)
	require.Len(t, f.users.rows, 1)

	msgs := f.mailer.messages()
	require.Len(t, msgs, 1)
	require.Equal(t, "ana@example.com", msgs[0].To)
	require.Contains(t, msgs[0].Body, body.InitialPassword)
}

func TestCreateUserValidation(t *testing.T) {
	f := newUserFixture()

	resp := f.manager.CreateUser(context.Background(), 1,
		CreateUserInput{Name: "Ana", Email: "not-an-email", Role: "teacher"})
	require.Equal(t, StatusBadRequest, resp.Status)

	resp = f.manager.CreateUser(context.Background(), 1,
		CreateUserInput{Name: "Ana", Email: "ana@example.com", Role: "janitor"})
	require.Equal(t, StatusBadRequest, resp.Status)
}

func TestCreateUserMailFailureStillCreates(t *testing.T) {
	f := newUserFixture()
	f.mailer.err = errors.New("broker down")

	resp := f.manager.CreateUser(context.Background(), 1,
		CreateUserInput{Name: "Ana", Email: "ana@example.com", Role: "teacher"})
	require.Equal(t, StatusCreated, resp.Status)
	require.Len(t, f.users.rows, 1)
}

func TestGetUserMissing(t *testing.T) {
	f := newUserFixture()

	resp := f.manager.GetUser(context.Background(), 1, "absent")
	require.Equal(t, StatusNotFound, resp.Status)
}

func TestUpdateUserPreservesPasswordHash(t *testing.T) {
	f := newUserFixture()
	f.users.put(schema.User{
		SchoolID: 1, Token: "tok", Name: "Ana", Email: "ana@example.com",
		PasswordHash: "keep-me", Role: "teacher",
	})

	resp := f.manager.UpdateUser(context.Background(), 1, "tok",
		UpdateUserInput{Name: "Ana Maria", Email: "ana@example.com", Role: "admin"})
	require.Equal(t, StatusOK, resp.Status)

	updated := f.users.rows[schema.UserKey{SchoolID: 1, Token: "tok"}]
	require.Equal(t, "Ana Maria", updated.Name)
	require.Equal(t, "admin", updated.Role)
	require.Equal(t, "keep-me", updated.PasswordHash)
}

func TestDeleteUserCascadesTodos(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	id1 := gocql.TimeUUID()
	id2 := gocql.TimeUUID()

	f.users.put(schema.User{SchoolID: 1, Token: "tok", Name: "Ana", Email: "a@b.c", Role: "teacher"})
	f.todos.put(schema.Todo{SchoolID: 1, ID: id1, Title: "one"})
	f.todos.put(schema.Todo{SchoolID: 1, ID: id2, Title: "two"})
	require.True(t, f.userTodos.Link(ctx, 1, "tok", id1).IsOK())
	require.True(t, f.userTodos.Link(ctx, 1, "tok", id2).IsOK())

	resp := f.manager.DeleteUser(ctx, 1, "tok")
	require.Equal(t, StatusOK, resp.Status)
	require.Empty(t, f.users.rows)
	require.Empty(t, f.todos.rows)
	require.Empty(t, f.userTodos.rows)
}

func TestDeleteUserSkipsOrphanedLinks(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()

	f.users.put(schema.User{SchoolID: 1, Token: "tok", Name: "Ana", Email: "a@b.c", Role: "teacher"})
	// Link without a backing todo row.
	require.True(t, f.userTodos.Link(ctx, 1, "tok", gocql.TimeUUID()).IsOK())

	resp := f.manager.DeleteUser(ctx, 1, "tok")
	require.Equal(t, StatusOK, resp.Status)
	require.Empty(t, f.users.rows)
	require.Empty(t, f.userTodos.rows)
}

func TestDeleteUserMissing(t *testing.T) {
	f := newUserFixture()

	resp := f.manager.DeleteUser(context.Background(), 1, "absent")
	require.Equal(t, StatusNotFound, resp.Status)
}
