package chi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/kailas-cloud/mflix/internal/domain/page"
)

// SuccessResponse is the envelope every successful endpoint returns.
type SuccessResponse struct {
	Success    bool       `json:"success"`
	Message    string     `json:"message"`
	Data       any        `json:"data"`
	Timestamp  string     `json:"timestamp"`
	Pagination *page.Info `json:"pagination,omitempty"`
}

// ErrorDetails carries the machine-readable part of an error envelope.
type ErrorDetails struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// ErrorResponse is the envelope every failed endpoint returns.
type ErrorResponse struct {
	Success   bool         `json:"success"`
	Message   string       `json:"message"`
	Error     ErrorDetails `json:"error"`
	Timestamp string       `json:"timestamp"`
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSuccess(w http.ResponseWriter, status int, data any, message string) {
	writeJSON(w, status, SuccessResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: timestamp(),
	})
}

func writePage(w http.ResponseWriter, status int, data any, message string, info page.Info) {
	writeJSON(w, status, SuccessResponse{
		Success:    true,
		Message:    message,
		Data:       data,
		Timestamp:  timestamp(),
		Pagination: &info,
	})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Success: false,
		Message: message,
		Error: ErrorDetails{
			Message: message,
			Code:    code,
		},
		Timestamp: timestamp(),
	})
}
