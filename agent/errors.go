package agent

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport covers failures to reach the endpoint or read its reply.
	ErrTransport = errors.New("transport failure")
	// ErrStatus is returned for non-2xx responses.
	ErrStatus = errors.New("unexpected status")
	// ErrDecode is returned when the response body is not a JSON object.
	ErrDecode = errors.New("malformed response")
	// ErrNoContent is returned when a well-formed response has no
	// choices[0].message.content, or it is empty.
	ErrNoContent = errors.New("no content in response")
	// ErrInvalidConfig is returned by New for an unusable AgentConfig.
	ErrInvalidConfig = errors.New("invalid agent config")
)

// StatusError carries the HTTP status of a rejected request along with the
// provider's error message when one was decodable.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %d", ErrStatus, e.Code)
	}
	return fmt.Sprintf("%s: %d: %s", ErrStatus, e.Code, e.Message)
}

func (e *StatusError) Unwrap() error {
	return ErrStatus
}
