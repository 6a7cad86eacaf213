package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/CameronXie/mealserve/internal/account"
	"github.com/CameronXie/mealserve/internal/api/rest/response"
	"github.com/CameronXie/mealserve/internal/domain"
)

type AccountService interface {
	Signup(ctx context.Context, req *account.SignupRequest) (*domain.Account, error)
}

// SignupHandler registers a new account.
type SignupHandler struct {
	service AccountService
	logger  *slog.Logger
}

func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req := new(account.SignupRequest)
	if !decodeJSON(w, r, req) {
		return
	}

	created, err := h.service.Signup(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, "failed to sign up", err)
		return
	}

	response.JSONResponse(w, http.StatusCreated, created)
}

func NewSignupHandler(service AccountService, logger *slog.Logger) http.Handler {
	return &SignupHandler{service: service, logger: logger}
}
