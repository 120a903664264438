// Package envelope defines the canonical response shape returned by every
// gateway endpoint, success or failure.
package envelope

import (
	"encoding/json"
	"net/http"
)

// Envelope wraps every response sent to clients.
// Invariant: Success=false implies Data is absent; Success=true implies
// Error is absent.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// OK builds a success envelope carrying the handler payload.
func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// Fail builds a failure envelope. message carries optional diagnostics
// and may be empty in production mode.
func Fail(errMsg, message string) Envelope {
	return Envelope{Success: false, Error: errMsg, Message: message}
}

// Write serializes the envelope as JSON with the given status code.
// Marshal failures fall back to a plain 500 so clients never receive a
// half-written body.
func Write(w http.ResponseWriter, status int, env Envelope) {
	body, err := json.Marshal(env)
	if err != nil {
		http.Error(w, `{"success":false,"error":"Internal Server Error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
