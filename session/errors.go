package session

import "errors"

var (
	// ErrCredentialRequired is returned when an empty credential is committed.
	ErrCredentialRequired = errors.New("credential required")
	// ErrEmptyMessage is returned when an empty message is submitted.
	ErrEmptyMessage = errors.New("message required")
	// ErrSetupIncomplete is returned when a message is submitted before a
	// credential has been committed.
	ErrSetupIncomplete = errors.New("setup incomplete")
	// ErrAwaitingResponse is returned when a message is submitted while the
	// previous one is still waiting for its reply.
	ErrAwaitingResponse = errors.New("awaiting response")
	// ErrNotAwaiting is returned when a reply is recorded with no message in
	// flight.
	ErrNotAwaiting = errors.New("no response pending")
)

// ValidationError reports a rejected local operation. The session state is
// unchanged whenever one is returned; callers re-prompt the user.
type ValidationError struct {
	Op  string
	Err error
}

func (e *ValidationError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is, or wraps, a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func invalid(op string, err error) error {
	return &ValidationError{Op: op, Err: err}
}
