// Package response provides the JSON writers for the plantid API. Successful
// responses carry the payload as-is; failures carry a flat {"error": message}.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/verdantlabs/plantid/pkg/constants"
	"github.com/verdantlabs/plantid/pkg/errors"
)

// Error is the body of every failed request.
type Error struct {
	Error string `json:"error"`
}

// JSON writes v as JSON with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Encoding errors are ignored as headers are already sent (best effort)
	_ = json.NewEncoder(w).Encode(v)
}

// Fail writes an error body with the given status code.
func Fail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Error{Error: message})
}

// OK writes a successful response with 200 status.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// BadRequest writes a 400 error response.
func BadRequest(w http.ResponseWriter, message string) {
	Fail(w, http.StatusBadRequest, message)
}

// NotFound writes a 404 error response.
func NotFound(w http.ResponseWriter, message string) {
	Fail(w, http.StatusNotFound, message)
}

// MethodNotAllowed writes a 405 error response.
func MethodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	Fail(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// TooLarge writes a 413 error response.
func TooLarge(w http.ResponseWriter) {
	Fail(w, http.StatusRequestEntityTooLarge, constants.ErrMsgTooLarge)
}

// InternalError writes a 500 error response. The cause is never exposed;
// callers log it.
func InternalError(w http.ResponseWriter, _ error) {
	Fail(w, http.StatusInternalServerError, constants.ErrMsgIdentifyFailed)
}

// ServiceUnavailable writes a 503 response with a data payload.
func ServiceUnavailable(w http.ResponseWriter, data any) {
	JSON(w, http.StatusServiceUnavailable, data)
}

// ErrorFromType maps the errors returned by an identification to responses.
func ErrorFromType(w http.ResponseWriter, err error) {
	switch err.(type) {
	case *errors.ValidationError:
		BadRequest(w, constants.ErrMsgNoImage)
	case *errors.NotFoundError:
		NotFound(w, constants.ErrMsgNoPlant)
	default:
		InternalError(w, err)
	}
}
