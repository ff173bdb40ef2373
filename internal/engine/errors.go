package engine

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindNotFound           Kind = "not_found"
	KindInvalidState       Kind = "invalid_state"
	KindNotYourTurn        Kind = "not_your_turn"
	KindValidation         Kind = "validation_error"
	KindPreconditionFailed Kind = "precondition_failed"
)

// Error is the only error type the engine returns. Hosts discriminate on
// Kind and show Message to the user.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewError lets hosts surface failures in the same shape the engine
// uses, so transports map them to responses uniformly.
func NewError(kind Kind, format string, args ...any) *Error {
	return newError(kind, format, args...)
}

// ErrKind extracts the engine error kind, or "" for foreign errors.
func ErrKind(err error) Kind {
	var engineErr *Error
	if errors.As(err, &engineErr) {
		return engineErr.Kind
	}
	return ""
}

func IsKind(err error, kind Kind) bool {
	return ErrKind(err) == kind
}
