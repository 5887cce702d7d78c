package errmap

import (
	"errors"
	"net/http"

	"tidytodo/server/pkg/service/sitem"
	"tidytodo/server/pkg/service/slist"

	json "github.com/goccy/go-json"
)

// Code classifies high-level error categories for API responses.
type Code string

const (
	CodeNotFound        Code = "not_found"
	CodeInvalidArgument Code = "invalid_argument"
	CodeInvalidOrder    Code = "invalid_order"
	CodeConflict        Code = "conflict"
	CodeUnexpected      Code = "unexpected"
)

// Error carries a code and message while preserving the cause via Unwrap.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Message != "" {
		return e.Message
	}
	if e.cause != nil {
		return e.cause.Error()
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error { return e.cause }

func New(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// Map converts a service error into an *Error with a best-effort code.
// Already-mapped errors pass through unchanged.
func Map(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	switch {
	case errors.Is(err, slist.ErrNoListFound),
		errors.Is(err, sitem.ErrNoListFound),
		errors.Is(err, sitem.ErrNoItemFound):
		return &Error{Code: CodeNotFound, Message: err.Error(), cause: err}
	case errors.Is(err, sitem.ErrInvalidOrder):
		return &Error{Code: CodeInvalidOrder, Message: err.Error(), cause: err}
	case errors.Is(err, slist.ErrNameExists), errors.Is(err, sitem.ErrConflict):
		return &Error{Code: CodeConflict, Message: err.Error(), cause: err}
	case errors.Is(err, slist.ErrInvalidName), errors.Is(err, sitem.ErrInvalidText):
		return &Error{Code: CodeInvalidArgument, Message: err.Error(), cause: err}
	}
	return &Error{Code: CodeUnexpected, Message: err.Error(), cause: err}
}

// Status maps an error code to the HTTP status the original API used:
// invalid order payloads are plain bad requests, constraint conflicts are
// 409 so callers know a retry is reasonable.
func Status(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidArgument, CodeInvalidOrder:
		return http.StatusBadRequest
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteJSON maps err and renders the {"error","message"} body shape.
func WriteJSON(w http.ResponseWriter, err error) {
	mapped := Map(err)
	status := Status(mapped)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{
		Error:   http.StatusText(status),
		Message: mapped.Error(),
	})
}
