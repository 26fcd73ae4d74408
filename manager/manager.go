// Package manager implements the relation managers: the layer that turns
// validated inputs into sequences of table operations, enforces business
// rules, and maps outcomes to HTTP-like status codes.
//
// Managers are the only layer allowed to translate Result codes into
// statuses. The mapping is uniform: validation failure 400, missing
// referenced entity 404, lost conditional-write race 409, successful
// creation 201, other success 200, anything unexpected 500. Internal
// diagnostic detail is logged, never forwarded to the client.
package manager

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/arloliu/registrar/types"
)

// Status is the HTTP-like status a manager operation resolves to.
type Status int

// Statuses produced by managers.
const (
	StatusOK         Status = 200
	StatusCreated    Status = 201
	StatusBadRequest Status = 400
	StatusNotFound   Status = 404
	StatusConflict   Status = 409
	StatusInternal   Status = 500
)

// Response is the outcome of one manager operation. Body is the payload for
// 2xx statuses and an ErrorBody otherwise.
type Response struct {
	Status Status
	Body   any
}

// ErrorBody is the payload of every non-2xx response.
type ErrorBody struct {
	Error string `json:"error"`
}

// EntityStore is the table surface managers operate on. *table.Table
// satisfies it; tests substitute map-backed fakes.
type EntityStore[E any, K any] interface {
	Insert(ctx context.Context, e *E) types.Result
	Get(ctx context.Context, k K) (E, types.Result)
	List(ctx context.Context, partition ...any) ([]E, types.Result)
	Update(ctx context.Context, e *E) types.Result
	Delete(ctx context.Context, k K) types.Result
	DeleteAll(ctx context.Context, partition ...any) types.Result
}

// LinkStore is the relationship-table surface managers operate on.
// *table.LinkTable satisfies it.
type LinkStore[O any, M any] interface {
	Link(ctx context.Context, tenant int, owner O, member M) types.Result
	Members(ctx context.Context, tenant int, owner O) ([]M, types.Result)
	Unlink(ctx context.Context, tenant int, owner O, member M) types.Result
	UnlinkAll(ctx context.Context, tenant int, owner O) types.Result
}

// validate checks struct tags on manager inputs.
var validate = validator.New()

func ok(body any) Response {
	return Response{Status: StatusOK, Body: body}
}

func created(body any) Response {
	return Response{Status: StatusCreated, Body: body}
}

func badRequest(msg string) Response {
	return Response{Status: StatusBadRequest, Body: ErrorBody{Error: msg}}
}

func notFound(msg string) Response {
	return Response{Status: StatusNotFound, Body: ErrorBody{Error: msg}}
}

func conflict(msg string) Response {
	return Response{Status: StatusConflict, Body: ErrorBody{Error: msg}}
}

// internal logs the detailed failure and returns a generic 500. Driver
// detail stays in the logs.
func internal(logger types.Logger, op string, res types.Result) Response {
	logger.Errorw("manager operation failed",
		"op", op,
		"result", res.String(),
	)

	return Response{Status: StatusInternal, Body: ErrorBody{Error: "internal error"}}
}

// invalidInput formats a validation error as a 400.
func invalidInput(err error) Response {
	return badRequest(err.Error())
}
