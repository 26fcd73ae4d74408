package manager

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"github.com/arloliu/registrar/mail"
	"github.com/arloliu/registrar/schema"
	"github.com/arloliu/registrar/types"
)

// UserManager owns school-scoped user accounts and their todo index.
type UserManager struct {
	users     EntityStore[schema.User, schema.UserKey]
	todos     EntityStore[schema.Todo, schema.TodoKey]
	userTodos LinkStore[string, gocql.UUID]
	mailer    mail.Sender
	logger    types.Logger
}

// NewUserManager wires the user aggregate.
func NewUserManager(
	users EntityStore[schema.User, schema.UserKey],
	todos EntityStore[schema.Todo, schema.TodoKey],
	userTodos LinkStore[string, gocql.UUID],
	mailer mail.Sender,
	logger types.Logger,
) *UserManager {
	return &UserManager{
		users:     users,
		todos:     todos,
		userTodos: userTodos,
		mailer:    mailer,
		logger:    logger,
	}
}

// CreateUserInput is the validated input for CreateUser.
type CreateUserInput struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
	Role  string `validate:"required,oneof=admin teacher student"`
}

// CreatedUser is the creation payload: the stored record plus the generated
// initial password, returned exactly once.
type CreatedUser struct {
	User            schema.User
	InitialPassword string
}

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))

	return hex.EncodeToString(sum[:])
}

// CreateUser creates an account with a fresh token and a generated initial
// password, and sends a welcome mail as a side effect.
func (m *UserManager) CreateUser(ctx context.Context, schoolID int, in CreateUserInput) Response {
	if err := validate.Struct(in); err != nil {
		return invalidInput(err)
	}

	password := uuid.NewString()
	user := schema.User{
		SchoolID:     schoolID,
		Token:        uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hashPassword(password),
		Role:         in.Role,
	}

	res := m.users.Insert(ctx, &user)
	switch {
	case res.IsNotApplied():
		return conflict("user token collision, retry")
	case !res.IsOK():
		return internal(m.logger, "create user", res)
	}

	msg := mail.Message{
		To:      user.Email,
		Subject: "Welcome",
		Body:    fmt.Sprintf("Hello %s, your initial password is %s", user.Name, password),
	}
	if err := m.mailer.Send(ctx, msg); err != nil {
		m.logger.Warnw("welcome mail not sent",
			"user_token", user.Token,
			"error", err.Error(),
		)
	}

	return created(CreatedUser{User: user, InitialPassword: password})
}

// GetUser reads one user by token.
func (m *UserManager) GetUser(ctx context.Context, schoolID int, token string) Response {
	user, res := m.users.Get(ctx, schema.UserKey{SchoolID: schoolID, Token: token})
	switch {
	case res.IsNotFound():
		return notFound("user not found")
	case !res.IsOK():
		return internal(m.logger, "get user", res)
	}

	return ok(user)
}

// ListUsers lists a school's users.
func (m *UserManager) ListUsers(ctx context.Context, schoolID int) Response {
	users, res := m.users.List(ctx, schoolID)
	if !res.IsOK() {
		return internal(m.logger, "list users", res)
	}

	return ok(users)
}

// UpdateUserInput is the validated input for UpdateUser.
type UpdateUserInput struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
	Role  string `validate:"required,oneof=admin teacher student"`
}

// UpdateUser rewrites a user's attributes; the password hash is preserved.
func (m *UserManager) UpdateUser(ctx context.Context, schoolID int, token string, in UpdateUserInput) Response {
	if err := validate.Struct(in); err != nil {
		return invalidInput(err)
	}

	current, res := m.users.Get(ctx, schema.UserKey{SchoolID: schoolID, Token: token})
	switch {
	case res.IsNotFound():
		return notFound("user not found")
	case !res.IsOK():
		return internal(m.logger, "update user", res)
	}

	current.Name = in.Name
	current.Email = in.Email
	current.Role = in.Role
	res = m.users.Update(ctx, &current)
	switch {
	case res.IsNotApplied():
		return notFound("user not found")
	case !res.IsOK():
		return internal(m.logger, "update user", res)
	}

	return ok(current)
}

// DeleteUser removes an account and cascades into its todos: every linked
// todo is deleted, then the link rows, then the user. The first cascade
// failure aborts; already-deleted todos stay deleted.
func (m *UserManager) DeleteUser(ctx context.Context, schoolID int, token string) Response {
	todoIDs, res := m.userTodos.Members(ctx, schoolID, token)
	if !res.IsOK() {
		return internal(m.logger, "delete user", res)
	}

	for _, id := range todoIDs {
		res = m.todos.Delete(ctx, schema.TodoKey{SchoolID: schoolID, ID: id})
		if res.IsNotApplied() {
			// Orphaned link row: the todo is already gone.
			m.logger.Warnw("skipping orphaned todo link",
				"user_token", token,
				"todo_id", id.String(),
			)

			continue
		}
		if !res.IsOK() {
			m.logger.Errorw("user cascade aborted",
				"user_token", token,
				"todo_id", id.String(),
			)

			return internal(m.logger, "delete user todos", res)
		}
	}

	if res := m.userTodos.UnlinkAll(ctx, schoolID, token); !res.IsOK() {
		return internal(m.logger, "delete user links", res)
	}

	res = m.users.Delete(ctx, schema.UserKey{SchoolID: schoolID, Token: token})
	switch {
	case res.IsNotApplied():
		return notFound("user not found")
	case !res.IsOK():
		return internal(m.logger, "delete user", res)
	}

	return ok(nil)
}
