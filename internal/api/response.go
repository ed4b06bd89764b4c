package api

import (
	"encoding/json"
	"net/http"
)

// Error is the error half of the response envelope
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Envelope is the shape of every JSON response
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// WriteSuccess writes a success envelope
func WriteSuccess(w http.ResponseWriter, statusCode int, data interface{}) {
	write(w, statusCode, Envelope{Success: true, Data: data})
}

// WriteSuccessMeta writes a success envelope with metadata
func WriteSuccessMeta(w http.ResponseWriter, statusCode int, data, meta interface{}) {
	write(w, statusCode, Envelope{Success: true, Data: data, Meta: meta})
}

// WriteError writes an error envelope
func WriteError(w http.ResponseWriter, statusCode int, code, message string) {
	write(w, statusCode, Envelope{Success: false, Error: &Error{Code: code, Message: message}})
}

func write(w http.ResponseWriter, statusCode int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(env)
}
