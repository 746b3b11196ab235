package figma

import (
	"errors"
	"fmt"
)

// ConnectionError means the local design query service could not be
// reached at all (transport failure or timeout). It is user-actionable
// and distinguishable from every other extraction failure.
type ConnectionError struct {
	url string
	err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("design query service unreachable at %s: %v\n"+
		"Make sure the design tool is running with its local query service enabled,\n"+
		"dev interaction mode turned on, and the target component node selected.", e.url, e.err)
}

func (e *ConnectionError) Unwrap() error { return e.err }

func newConnectionError(url string, err error) *ConnectionError {
	return &ConnectionError{url: url, err: err}
}

// ProtocolError means the service answered but returned an
// application-level error; the underlying message is surfaced verbatim.
type ProtocolError struct {
	message string
}

func (e *ProtocolError) Error() string { return e.message }

// Message returns the service's error message verbatim.
func (e *ProtocolError) Message() string { return e.message }

// IsConnectionError reports whether err is a ConnectionError.
func IsConnectionError(err error) bool {
	var ce *ConnectionError
	return errors.As(err, &ce)
}

// IsProtocolError reports whether err is a ProtocolError.
func IsProtocolError(err error) bool {
	var pe *ProtocolError
	return errors.As(err, &pe)
}

// ErrUnmappedType marks a design property type the contract model cannot
// represent. Extraction fails rather than dropping the property: a
// contract missing a property is worse than no contract at all.
var ErrUnmappedType = errors.New("unmapped design property type")
