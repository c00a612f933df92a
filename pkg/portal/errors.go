// Package portal is the client SDK for the telehealth API: a typed gateway
// client, a persistent session store, the cart/order state machine and a
// notification poller.
package portal

import (
	"errors"
	"fmt"
	"strings"
)

// NetworkError means the server could not be reached at all.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: server not reachable: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError is a non-2xx response. Message carries the server's error text
// when the body had one.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("server returned status %d: %s", e.Status, e.Message)
}

// ValidationError is a client-side precondition failure. Fields lists what
// was missing or invalid.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// ParseError is a malformed response or persisted-state payload.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("malformed payload: %v", e.Err) }

func (e *ParseError) Unwrap() error { return e.Err }

func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

func IsHTTPError(err error) bool {
	var he *HTTPError
	return errors.As(err, &he)
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
