package server

import (
	"encoding/json"
	"io"
	"net/http"

	"fishbowl/internal/engine"
)

func readJSON(body io.Reader, dest any) error {
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}

// writeEngineError translates an engine rejection to the matching HTTP
// status, carrying the kind so clients can discriminate.
func writeEngineError(w http.ResponseWriter, err error) {
	kind := engine.ErrKind(err)
	if kind == "" {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, statusForKind(kind), map[string]string{
		"error": err.Error(),
		"kind":  string(kind),
	})
}
