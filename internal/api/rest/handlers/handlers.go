package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/CameronXie/mealserve/internal/api/rest/middlewares"
	"github.com/CameronXie/mealserve/internal/api/rest/response"
	"github.com/CameronXie/mealserve/internal/apperror"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 64 << 10

const (
	invalidRequestBodyMessage = "invalid request body"
	bodyTooLargeMessage       = "request body too large"
	unauthorizedMessage       = "unauthorized"
)

var errMissingAccountID = errors.New("account id missing from request context")

// writeError writes err as a JSON error and logs it when it is a server side failure.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, msg string, err error) {
	if status := response.AppErrorResponse(w, err); status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), msg, "request_id", middlewares.GetRequestIDFromContext(r.Context()), "error", err)
	}
}

// decodeJSON decodes a body of at most maxBodyBytes into v, writing a 413 or
// 400 and returning false when it cannot.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.JSONErrorResponse(w, http.StatusRequestEntityTooLarge, bodyTooLargeMessage)
		return false
	}

	response.JSONErrorResponse(w, http.StatusBadRequest, invalidRequestBodyMessage)
	return false
}

// pathID reads the numeric path variable name.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.ErrInvalidRequest.WithFields(map[string]string{name: name + " must be a positive integer"})
	}

	return id, nil
}

// accountID returns the authenticated account, writing a 401 when there is none.
func accountID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (int64, bool) {
	id, ok := middlewares.GetAccountIDFromContext(r.Context())
	if !ok {
		logger.ErrorContext(
			r.Context(),
			"failed to resolve account",
			"request_id", middlewares.GetRequestIDFromContext(r.Context()),
			"error", errMissingAccountID,
		)
		response.JSONErrorResponse(w, http.StatusUnauthorized, unauthorizedMessage)
	}

	return id, ok
}
