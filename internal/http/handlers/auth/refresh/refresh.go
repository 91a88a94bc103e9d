// Package refresh implements the HTTP handler exchanging a refresh
// token for a new access token. A missing token is 401, an invalid or
// expired one 403, and a token whose user no longer exists 404.
package refresh

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/http/response"
	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/lib/sl"
	authservice "github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/services/auth"
)

// Request carries the refresh token.
type Request struct {
	RefreshToken string `json:"refreshToken"`
}

// Response is the successful refresh body.
type Response struct {
	Token string `json:"token"`
}

// Service is the auth operation this handler delegates to.
type Service interface {
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

// Handler handles POST /api/auth/refresh.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New creates a refresh Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.refresh"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Invalid request body"))
		return
	}

	if req.RefreshToken == "" {
		log.Error("missing refresh token")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("Refresh token required"))
		return
	}

	token, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, authservice.ErrInvalidToken):
			log.Info("invalid refresh token")
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("Invalid refresh token"))
		case errors.Is(err, authservice.ErrUserNotFound):
			log.Info("refresh token for missing user")
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("User not found"))
		default:
			log.Error("refresh failed", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Server error"))
		}
		return
	}

	render.JSON(w, r, Response{Token: token})
}
