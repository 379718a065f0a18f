package transport

import "errors"

var (
	// ErrInvalidOptions is returned when an Options value violates the
	// transport contract (non-positive timeout, negative retry count, zero
	// port).
	ErrInvalidOptions = errors.New("radius/transport: invalid transport options")

	// ErrTimeout is returned when every retry of an exchange times out
	// waiting for a response.
	ErrTimeout = errors.New("radius/transport: exchange timed out after exhausting retries")

	// ErrUnexpectedResponseCode is returned by Authenticate when a response
	// to an Access-Request is neither Access-Accept nor Access-Reject.
	ErrUnexpectedResponseCode = errors.New("radius/transport: unexpected response packet code")
)
