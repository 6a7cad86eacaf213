package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/CameronXie/mealserve/internal/apperror"
)

const internalServerErrorMessage = "internal server error"

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Code    apperror.Code     `json:"code,omitempty"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// JSONResponse writes the given data as a JSON response with the specified status code.
func JSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// JSONErrorResponse writes an error message as a JSON response with the specified status code.
func JSONErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	JSONResponse(w, statusCode, ErrorBody{Message: message})
}

// AppErrorResponse writes err using the status of its code and returns that status.
// Errors without a code are reported as a bare internal server error.
func AppErrorResponse(w http.ResponseWriter, err error) int {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		JSONErrorResponse(w, http.StatusInternalServerError, internalServerErrorMessage)
		return http.StatusInternalServerError
	}

	status := StatusOf(appErr.Code)
	JSONResponse(w, status, ErrorBody{Code: appErr.Code, Message: appErr.Message, Fields: appErr.Fields})
	return status
}

// StatusOf maps an error code to an HTTP status.
func StatusOf(code apperror.Code) int {
	switch code {
	case apperror.CodeStoreNotFound, apperror.CodeMenuNotFound, apperror.CodeAccountNotFound:
		return http.StatusNotFound
	case apperror.CodeDuplicateEmail:
		return http.StatusConflict
	case apperror.CodeInsufficientPoint:
		return http.StatusUnprocessableEntity
	case apperror.CodeInvalidRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
