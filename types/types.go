// Package types provides shared types and errors for the registrar library.
//
// This is a "leaf" package with no imports from other registrar packages,
// allowing it to be imported by any package without causing import cycles.
package types

import (
	"errors"
	"fmt"
)

// Code is the closed set of outcome codes produced by the data-access layer.
//
// Every operation against the store reports one of these codes; the access
// layer never lets a driver error escape as a raw error value. Managers are
// the only layer allowed to translate a Code into an HTTP status.
type Code int

const (
	// OK indicates the operation completed and, for conditional writes,
	// that the condition held.
	OK Code = iota

	// NotFound indicates a by-key read matched zero rows.
	NotFound

	// NotApplied indicates a conditional write was rejected: the key already
	// existed on an INSERT ... IF NOT EXISTS, or was absent on an
	// UPDATE/DELETE ... IF EXISTS. It is a correctness signal, never retried.
	NotApplied

	// InvalidRequest indicates the server rejected the statement as
	// malformed. In steady state this is a programmer error in a statement
	// template, not a runtime condition.
	InvalidRequest

	// ConnectionError indicates the session could not reach any host.
	ConnectionError

	// ResourceError indicates a store-side read, write, or function failure.
	ResourceError

	// Unavailable indicates the store could not meet the consistency level.
	Unavailable

	// Timeout indicates any driver timeout variant.
	Timeout

	// Unknown is the catch-all for unexpected driver states and recovered
	// panics in row handling.
	Unknown
)

// String returns the canonical name of the code.
func (c Code) String() string {
	switch c {
	case OK:
		return "OK"
	case NotFound:
		return "NOT_FOUND"
	case NotApplied:
		return "NOT_APPLIED"
	case InvalidRequest:
		return "INVALID_REQUEST"
	case ConnectionError:
		return "CONNECTION_ERROR"
	case ResourceError:
		return "RESOURCE_ERROR"
	case Unavailable:
		return "UNAVAILABLE"
	case Timeout:
		return "TIMEOUT"
	case Unknown:
		return "UNKNOWN_ERROR"
	default:
		return fmt.Sprintf("CODE(%d)", int(c))
	}
}

// Transient reports whether the code represents a condition that may clear
// on retry. NotApplied and NotFound are deliberately excluded: both carry
// meaning about current state and retrying them would mask it.
func (c Code) Transient() bool {
	switch c {
	case ConnectionError, ResourceError, Unavailable, Timeout:
		return true
	default:
		return false
	}
}

// Result pairs an outcome code with an optional diagnostic message.
//
// Result is returned by every data-access operation in place of an error.
// The message is for logs and operators; it must not be forwarded verbatim
// to clients on internal failures.
type Result struct {
	// Code is the outcome of the operation.
	Code Code

	// Message carries driver or mapper diagnostics. Empty on OK.
	Message string
}

// Ok returns an OK result with no message.
func Ok() Result {
	return Result{Code: OK}
}

// Failure returns a result with the given code and message.
func Failure(code Code, message string) Result {
	return Result{Code: code, Message: message}
}

// Failuref returns a result with the given code and a formatted message.
func Failuref(code Code, format string, args ...any) Result {
	return Result{Code: code, Message: fmt.Sprintf(format, args...)}
}

// NotFoundResult returns a NotFound result with no message.
func NotFoundResult() Result {
	return Result{Code: NotFound}
}

// NotAppliedResult returns a NotApplied result with no message.
func NotAppliedResult() Result {
	return Result{Code: NotApplied}
}

// IsOK reports whether the result code is OK.
func (r Result) IsOK() bool { return r.Code == OK }

// IsNotFound reports whether the result code is NotFound.
func (r Result) IsNotFound() bool { return r.Code == NotFound }

// IsNotApplied reports whether the result code is NotApplied.
func (r Result) IsNotApplied() bool { return r.Code == NotApplied }

// String renders the result for logs.
func (r Result) String() string {
	if r.Message == "" {
		return r.Code.String()
	}

	return r.Code.String() + ": " + r.Message
}

// Consistency represents the Cassandra consistency level.
type Consistency uint16

// Common consistency levels matching gocql.
const (
	Any         Consistency = 0x00
	One         Consistency = 0x01
	Two         Consistency = 0x02
	Three       Consistency = 0x03
	Quorum      Consistency = 0x04
	All         Consistency = 0x05
	LocalQuorum Consistency = 0x06
	EachQuorum  Consistency = 0x07
	Serial      Consistency = 0x08
	LocalSerial Consistency = 0x09
	LocalOne    Consistency = 0x0A
)

// Sentinel errors for programmer misuse of the access layer. These are the
// only plain errors the library surfaces; store outcomes travel as Results.
var (
	// ErrNilSession indicates that a nil session was provided.
	ErrNilSession = errors.New("registrar: session cannot be nil")

	// ErrNotConfigured indicates a table module was used before Configure.
	ErrNotConfigured = errors.New("registrar: table is not configured")

	// ErrNilConn indicates that a nil connection was provided.
	ErrNilConn = errors.New("registrar: connection cannot be nil")
)
