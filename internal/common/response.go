package common

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform response wrapper for every endpoint.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondWithJSON(w http.ResponseWriter, code int, message string, data interface{}) {
	payload := Envelope{Success: code < 400, Message: message, Data: data}
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"message":"Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, message, nil)
}

// RespondWithDomainError translates a service error into an envelope
// response. Unexpected failures are masked in production.
func RespondWithDomainError(w http.ResponseWriter, err error, production bool) {
	code := HTTPStatusFromError(err)
	message := err.Error()
	if code == http.StatusInternalServerError && production {
		message = "Internal server error"
	}
	RespondWithError(w, code, message)
}
