package store

import (
	"context"
	"errors"

	"github.com/gocql/gocql"

	"github.com/arloliu/registrar/types"
)

// MapError classifies a driver error into the closed Result-code set.
//
// The mapping follows the access-layer contract: server-side invalid
// statements are programmer errors (InvalidRequest), host exhaustion is a
// ConnectionError, read/write/function failures are ResourceErrors,
// consistency shortfalls are Unavailable, every timeout variant is Timeout,
// and anything unrecognized is Unknown. The driver message is preserved for
// logs.
//
// Parameters:
//   - err: Error returned by the driver, may be nil
//
// Returns:
//   - types.Result: OK when err is nil, otherwise the mapped failure
func MapError(err error) types.Result {
	if err == nil {
		return types.Ok()
	}

	switch {
	case errors.Is(err, gocql.ErrNotFound):
		return types.NotFoundResult()
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, gocql.ErrTimeoutNoResponse),
		errors.Is(err, gocql.ErrTooManyTimeouts):
		return types.Failure(types.Timeout, err.Error())
	case errors.Is(err, gocql.ErrNoConnections),
		errors.Is(err, gocql.ErrConnectionClosed),
		errors.Is(err, gocql.ErrSessionClosed):
		return types.Failure(types.ConnectionError, err.Error())
	}

	var reqErr gocql.RequestError
	if errors.As(err, &reqErr) {
		switch reqErr.Code() {
		case gocql.ErrCodeSyntax, gocql.ErrCodeInvalid, gocql.ErrCodeAlreadyExists,
			gocql.ErrCodeUnprepared, gocql.ErrCodeConfig:
			return types.Failure(types.InvalidRequest, err.Error())
		case gocql.ErrCodeUnavailable:
			return types.Failure(types.Unavailable, err.Error())
		case gocql.ErrCodeReadTimeout, gocql.ErrCodeWriteTimeout:
			return types.Failure(types.Timeout, err.Error())
		case gocql.ErrCodeReadFailure, gocql.ErrCodeWriteFailure,
			gocql.ErrCodeFunctionFailure, gocql.ErrCodeOverloaded,
			gocql.ErrCodeBootstrapping, gocql.ErrCodeTruncate:
			return types.Failure(types.ResourceError, err.Error())
		}
	}

	return types.Failure(types.Unknown, err.Error())
}
