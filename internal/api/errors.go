package api

import "fmt"

// ErrorKind classifies a RemoteError for logging. Display code should use
// Error() and ignore the kind.
type ErrorKind int

const (
	// ErrorKindTransport is a network or connection failure.
	ErrorKindTransport ErrorKind = iota
	// ErrorKindProtocol is a non-2xx response carrying a decodable message.
	ErrorKindProtocol
	// ErrorKindUnknownServer is a non-2xx response without a decodable
	// message, or a 2xx response whose payload could not be decoded.
	ErrorKindUnknownServer
	// ErrorKindInvalidRequest is an input rejected before anything was sent.
	ErrorKindInvalidRequest
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindTransport:
		return "transport"
	case ErrorKindProtocol:
		return "protocol"
	case ErrorKindUnknownServer:
		return "unknown-server"
	case ErrorKindInvalidRequest:
		return "invalid-request"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// unknownAPIError is used when neither the body nor the status carry any text.
// A JSON error body without a message (e.g. {"error":"boom"}) therefore
// reports the status text ("Internal Server Error"), not this string; the
// status is tried first because it still says something about the failure.
const unknownAPIError = "An unknown API error occurred"

// RemoteError is the single error type returned by FleetAPI operations.
type RemoteError struct {
	Kind       ErrorKind
	Op         string // e.g. "POST /computers"
	StatusCode int    // 0 for transport and invalid-request errors
	Message    string
	Err        error
}

// Error returns the human-readable message only, so it can be embedded
// directly in user-facing notifications.
func (e *RemoteError) Error() string {
	return e.Message
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}
