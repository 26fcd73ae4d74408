// Package types defines the shared result model, logging and metrics
// interfaces, and sentinel errors used by every registrar package.
//
// # Result Model
//
// Operations against the store never return raw driver errors. They return a
// Result carrying one of a closed set of Codes:
//
//	OK, NOT_FOUND, NOT_APPLIED, INVALID_REQUEST, CONNECTION_ERROR,
//	RESOURCE_ERROR, UNAVAILABLE, TIMEOUT, UNKNOWN_ERROR
//
// NOT_APPLIED is specific to lightweight transactions (conditional writes):
// the statement executed successfully at the transport level but its
// IF [NOT] EXISTS condition did not hold. Callers must treat it as a state
// signal, distinct from both success and failure.
package types
