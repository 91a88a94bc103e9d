// Package login implements the HTTP handler for credential login.
// On success it returns the user summary together with a fresh
// access/refresh token pair.
package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/http/response"
	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/lib/sl"
	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/models"
	authservice "github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/services/auth"
)

// Request carries the login form.
type Request struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Response is the successful login body.
type Response struct {
	User         models.UserSummary `json:"user"`
	Token        string             `json:"token"`
	RefreshToken string             `json:"refreshToken"`
}

// Service is the auth operation this handler delegates to.
type Service interface {
	Login(ctx context.Context, email, password string) (*authservice.LoginResult, error)
}

// Handler handles POST /api/auth/login.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New creates a login Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Log in with email and password
// @Description Verifies credentials and returns the user summary with
// @Description an access token and a refresh token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Credentials"
// @Success 200 {object} Response
// @Failure 401 {object} response.Message "Invalid credentials"
// @Router /auth/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

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

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		// Unknown email and wrong password both land here with the
		// same message.
		if errors.Is(err, authservice.ErrInvalidCredentials) {
			log.Info("login rejected")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("Invalid credentials"))
			return
		}
		log.Error("login failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Server error"))
		return
	}

	log.Info("login success", slog.String("email", req.Email))
	render.JSON(w, r, Response{
		User:         result.User,
		Token:        result.AccessToken,
		RefreshToken: result.RefreshToken,
	})
}
