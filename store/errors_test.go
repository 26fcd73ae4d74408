package store

import (
	"context"
	"errors"
	"testing"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/registrar/types"
)

// requestError implements gocql.RequestError for mapping tests.
type requestError struct {
	code int
	msg  string
}

func (e requestError) Code() int       { return e.code }
func (e requestError) Message() string { return e.msg }
func (e requestError) Error() string   { return e.msg }

func TestMapErrorNil(t *testing.T) {
	require.True(t, MapError(nil).IsOK())
}

func TestMapErrorSentinels(t *testing.T) {
	cases := []struct {
		err  error
		want types.Code
	}{
		{gocql.ErrNotFound, types.NotFound},
		{gocql.ErrTimeoutNoResponse, types.Timeout},
		{gocql.ErrTooManyTimeouts, types.Timeout},
		{context.DeadlineExceeded, types.Timeout},
		{gocql.ErrNoConnections, types.ConnectionError},
		{gocql.ErrConnectionClosed, types.ConnectionError},
		{gocql.ErrSessionClosed, types.ConnectionError},
		{errors.New("something odd"), types.Unknown},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, MapError(tc.err).Code, tc.err.Error())
	}
}

func TestMapErrorRequestCodes(t *testing.T) {
	cases := []struct {
		code int
		want types.Code
	}{
		{gocql.ErrCodeSyntax, types.InvalidRequest},
		{gocql.ErrCodeInvalid, types.InvalidRequest},
		{gocql.ErrCodeAlreadyExists, types.InvalidRequest},
		{gocql.ErrCodeUnprepared, types.InvalidRequest},
		{gocql.ErrCodeUnavailable, types.Unavailable},
		{gocql.ErrCodeReadTimeout, types.Timeout},
		{gocql.ErrCodeWriteTimeout, types.Timeout},
		{gocql.ErrCodeReadFailure, types.ResourceError},
		{gocql.ErrCodeWriteFailure, types.ResourceError},
		{gocql.ErrCodeFunctionFailure, types.ResourceError},
		{gocql.ErrCodeOverloaded, types.ResourceError},
		{gocql.ErrCodeServer, types.Unknown},
	}
	for _, tc := range cases {
		res := MapError(requestError{code: tc.code, msg: "server says no"})
		require.Equal(t, tc.want, res.Code)
		require.Equal(t, "server says no", res.Message)
	}
}
