package manager

import (
	"context"

	"github.com/gocql/gocql"

	"github.com/arloliu/registrar/schema"
	"github.com/arloliu/registrar/types"
)

// TodoManager owns per-user todos and the todos_by_user index.
type TodoManager struct {
	todos     EntityStore[schema.Todo, schema.TodoKey]
	users     EntityStore[schema.User, schema.UserKey]
	userTodos LinkStore[string, gocql.UUID]
	logger    types.Logger
}

// NewTodoManager wires the todo aggregate.
func NewTodoManager(
	todos EntityStore[schema.Todo, schema.TodoKey],
	users EntityStore[schema.User, schema.UserKey],
	userTodos LinkStore[string, gocql.UUID],
	logger types.Logger,
) *TodoManager {
	return &TodoManager{
		todos:     todos,
		users:     users,
		userTodos: userTodos,
		logger:    logger,
	}
}

// TodoInput is the validated input for todo creation and update.
type TodoInput struct {
	Title string `validate:"required"`
	Body  string
	Done  bool
}

// CreateTodo inserts a todo for the user and indexes it. The entity row is
// written first; a failure to write the index row afterwards leaves an
// unindexed todo, which is logged and surfaced as a 500, not rolled back.
func (m *TodoManager) CreateTodo(ctx context.Context, schoolID int, userToken string, in TodoInput) Response {
	if err := validate.Struct(in); err != nil {
		return invalidInput(err)
	}

	_, res := m.users.Get(ctx, schema.UserKey{SchoolID: schoolID, Token: userToken})
	switch {
	case res.IsNotFound():
		return notFound("user not found")
	case !res.IsOK():
		return internal(m.logger, "create todo", res)
	}

	todo := schema.Todo{
		SchoolID: schoolID,
		ID:       gocql.TimeUUID(),
		Title:    in.Title,
		Body:     in.Body,
		Done:     in.Done,
	}
	res = m.todos.Insert(ctx, &todo)
	switch {
	case res.IsNotApplied():
		return conflict("todo id collision, retry")
	case !res.IsOK():
		return internal(m.logger, "create todo", res)
	}

	if res := m.userTodos.Link(ctx, schoolID, userToken, todo.ID); !res.IsOK() && !res.IsNotApplied() {
		m.logger.Errorw("todo created but not indexed",
			"user_token", userToken,
			"todo_id", todo.ID.String(),
			"result", res.String(),
		)

		return internal(m.logger, "index todo", res)
	}

	return created(todo)
}

// GetTodo reads one todo by id.
func (m *TodoManager) GetTodo(ctx context.Context, schoolID int, id gocql.UUID) Response {
	todo, res := m.todos.Get(ctx, schema.TodoKey{SchoolID: schoolID, ID: id})
	switch {
	case res.IsNotFound():
		return notFound("todo not found")
	case !res.IsOK():
		return internal(m.logger, "get todo", res)
	}

	return ok(todo)
}

// ListTodos lists the user's todos through the index. Links whose todo row
// is gone are skipped with a warning; an empty list is OK.
func (m *TodoManager) ListTodos(ctx context.Context, schoolID int, userToken string) Response {
	ids, res := m.userTodos.Members(ctx, schoolID, userToken)
	if !res.IsOK() {
		return internal(m.logger, "list todos", res)
	}

	todos := make([]schema.Todo, 0, len(ids))
	for _, id := range ids {
		todo, res := m.todos.Get(ctx, schema.TodoKey{SchoolID: schoolID, ID: id})
		if res.IsNotFound() {
			m.logger.Warnw("skipping orphaned todo link",
				"user_token", userToken,
				"todo_id", id.String(),
			)

			continue
		}
		if !res.IsOK() {
			return internal(m.logger, "list todos", res)
		}
		todos = append(todos, todo)
	}

	return ok(todos)
}

// UpdateTodo rewrites a todo's attributes in place.
func (m *TodoManager) UpdateTodo(ctx context.Context, schoolID int, id gocql.UUID, in TodoInput) Response {
	if err := validate.Struct(in); err != nil {
		return invalidInput(err)
	}

	todo := schema.Todo{SchoolID: schoolID, ID: id, Title: in.Title, Body: in.Body, Done: in.Done}
	res := m.todos.Update(ctx, &todo)
	switch {
	case res.IsNotApplied():
		return notFound("todo not found")
	case !res.IsOK():
		return internal(m.logger, "update todo", res)
	}

	return ok(todo)
}

// DeleteTodo removes a todo and its index row. A missing index row after a
// successful entity delete is only warned about.
func (m *TodoManager) DeleteTodo(ctx context.Context, schoolID int, userToken string, id gocql.UUID) Response {
	res := m.todos.Delete(ctx, schema.TodoKey{SchoolID: schoolID, ID: id})
	switch {
	case res.IsNotApplied():
		return notFound("todo not found")
	case !res.IsOK():
		return internal(m.logger, "delete todo", res)
	}

	if res := m.userTodos.Unlink(ctx, schoolID, userToken, id); !res.IsOK() && !res.IsNotApplied() {
		m.logger.Warnw("todo deleted but index row remains",
			"user_token", userToken,
			"todo_id", id.String(),
			"result", res.String(),
		)
	}

	return ok(nil)
}
