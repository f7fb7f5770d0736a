package advisor

import (
	"errors"
	"fmt"
)

// Kind classifies an advisor API failure.
type Kind int

const (
	// KindTransport covers DNS, connection, and timeout failures
	// where no HTTP response was received.
	KindTransport Kind = iota

	// KindProtocol covers responses with an unexpected HTTP
	// status code.
	KindProtocol

	// KindContract covers success responses whose body is
	// missing required fields or cannot be decoded.
	KindContract
)

// String returns the human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindProtocol:
		return "protocol"
	case KindContract:
		return "contract"
	}
	return "unknown"
}

// Error is the failure type returned by every client wrapper.
// Status and Body are populated for protocol errors; Err holds
// the underlying cause for transport and decode failures.
type Error struct {
	Kind   Kind
	Op     string
	Status int
	Body   string
	Err    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case KindProtocol:
		return fmt.Sprintf(
			"%s: unexpected status %d: %s",
			e.Op, e.Status, truncate(e.Body, 200),
		)
	case KindContract:
		if e.Err != nil {
			return fmt.Sprintf(
				"%s: contract violation: %v", e.Op, e.Err,
			)
		}
		return fmt.Sprintf("%s: contract violation", e.Op)
	default:
		return fmt.Sprintf("%s: request failed: %v", e.Op, e.Err)
	}
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is an advisor Error of the given
// kind.
func IsKind(err error, kind Kind) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind == kind
	}
	return false
}

// transportErr builds a transport-kind error.
func transportErr(op string, err error) *Error {
	return &Error{Kind: KindTransport, Op: op, Err: err}
}

// protocolErr builds a protocol-kind error carrying the status
// code and raw body.
func protocolErr(op string, status int, body []byte) *Error {
	return &Error{
		Kind:   KindProtocol,
		Op:     op,
		Status: status,
		Body:   string(body),
	}
}

// contractErr builds a contract-kind error.
func contractErr(op string, err error) *Error {
	return &Error{Kind: KindContract, Op: op, Err: err}
}

// truncate shortens s to at most n bytes for error messages.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
