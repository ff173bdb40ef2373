package server

import (
	"fmt"
	"net/http"

	"fishbowl/internal/engine"
)

func errRoomNotFound(code string) *engine.Error {
	return &engine.Error{
		Kind:    engine.KindNotFound,
		Message: "room " + normalizeRoomCode(code) + " not found",
	}
}

func errValidation(format string, args ...any) *engine.Error {
	return &engine.Error{
		Kind:    engine.KindValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

// statusForKind maps engine error kinds onto HTTP responses.
func statusForKind(kind engine.Kind) int {
	switch kind {
	case engine.KindNotFound:
		return http.StatusNotFound
	case engine.KindNotYourTurn:
		return http.StatusForbidden
	case engine.KindInvalidState:
		return http.StatusConflict
	case engine.KindPreconditionFailed:
		return http.StatusUnprocessableEntity
	case engine.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
