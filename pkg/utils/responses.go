package utils

import (
	"encoding/json"
	"net/http"

	"furniture-store/internal/apperror"
)

type Response struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    any               `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// ResponseJSON writes the envelope with a custom status code
func ResponseJSON(w http.ResponseWriter, code int, response Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(response)
}

// ------------- Success responses -------------

// returns 200 OK
func ResponseSuccess(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusOK, Response{Success: true, Message: message, Data: data})
}

// returns 201 Created
func ResponseCreated(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusCreated, Response{Success: true, Message: message, Data: data})
}

// returns 202 Accepted
func ResponseAccepted(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusAccepted, Response{Success: true, Message: message})
}

// ------------- Error responses -------------

// ResponseError writes a failure envelope for any status code
func ResponseError(w http.ResponseWriter, code int, message string, fields map[string]string) {
	ResponseJSON(w, code, Response{Success: false, Error: message, Errors: fields})
}

// returns 400 Bad Request
func ResponseBadRequest(w http.ResponseWriter, message string, fields map[string]string) {
	ResponseError(w, http.StatusBadRequest, message, fields)
}

// returns 401 Unauthorized
func ResponseUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="furniture-store"`)
	ResponseError(w, http.StatusUnauthorized, message, nil)
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusInternalServerError, message, nil)
}

// ResponseAppError writes the envelope for a service error and returns it as
// *apperror.Error so the caller can log the cause.
func ResponseAppError(w http.ResponseWriter, err error) *apperror.Error {
	appErr := apperror.From(err)

	switch appErr.Kind {
	case apperror.KindAuth:
		ResponseUnauthorized(w, appErr.Message)
	case apperror.KindPersistence:
		if appErr.Retryable {
			w.Header().Set("Retry-After", "1")
		}
		ResponseInternalError(w, appErr.Message)
	default:
		ResponseError(w, appErr.Kind.HTTPStatus(), appErr.Message, appErr.Fields)
	}
	return appErr
}
