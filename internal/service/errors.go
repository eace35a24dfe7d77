package service

import "errors"

// Error taxonomy. A denied access check is NOT an error; only the
// inability to evaluate (bad input, missing visit, broken datastore)
// surfaces as one.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

// Error pairs a taxonomy sentinel with a caller-facing message.
type Error struct {
	kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.kind }

func validationErr(msg string) error {
	return &Error{kind: ErrValidation, Message: msg}
}

func notFoundErr(msg string) error {
	return &Error{kind: ErrNotFound, Message: msg}
}

func conflictErr(msg string) error {
	return &Error{kind: ErrConflict, Message: msg}
}

func unauthorizedErr(msg string) error {
	return &Error{kind: ErrUnauthorized, Message: msg}
}
