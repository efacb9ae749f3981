package httpapi

import (
	"encoding/json"
	"net/http"
)

// Response is the JSON envelope of every endpoint.
type Response struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

// HTTPError pairs a status code with a stable machine readable code.
type HTTPError struct {
	Status int
	Code   string
}

func (e HTTPError) Error() string {
	return e.Code
}

var (
	ErrNotFound            = HTTPError{Status: http.StatusNotFound, Code: "not_found"}
	ErrUnknownCategory     = HTTPError{Status: http.StatusNotFound, Code: "unknown_category"}
	ErrLocaleNotSupported  = HTTPError{Status: http.StatusNotFound, Code: "locale_not_supported"}
	ErrMethodNotAllowed    = HTTPError{Status: http.StatusMethodNotAllowed, Code: "method_not_allowed"}
	ErrFormat              = HTTPError{Status: http.StatusUnprocessableEntity, Code: "format_error"}
	ErrServiceUnavailable  = HTTPError{Status: http.StatusServiceUnavailable, Code: "catalog_unavailable"}
	ErrInternalServerError = HTTPError{Status: http.StatusInternalServerError, Code: "internal_error"}
)

func writeJSON(w http.ResponseWriter, status int, body Response) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, httpErr HTTPError, message string, data any) error {
	if message == "" {
		message = http.StatusText(httpErr.Status)
	}
	return writeJSON(w, httpErr.Status, Response{
		Data:  data,
		Error: &ErrorDetail{Code: httpErr.Code, Message: message},
	})
}
