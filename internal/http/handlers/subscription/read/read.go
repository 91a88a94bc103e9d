// Package read implements the HTTP handler answering the
// my-subscription query for the authenticated user.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/http/middlewarectx"
	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/http/response"
	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/lib/sl"
	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/models"
	subservice "github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/services/subscription"
)

// Service is the subscription operation this handler delegates to.
type Service interface {
	GetMySubscription(ctx context.Context, userID string) (*models.SubscriptionWithPlan, error)
}

// Handler handles GET /api/my-subscription.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New creates a my-subscription Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, _ := r.Context().Value(middlewarectx.UserID).(string)

	sub, err := h.service.GetMySubscription(r.Context(), userID)
	if err != nil {
		if errors.Is(err, subservice.ErrNoActiveSubscription) {
			log.Info("no active subscription", slog.String("user_id", userID))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("No active subscription found"))
			return
		}
		log.Error("failed to read subscription", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Server error"))
		return
	}

	render.JSON(w, r, sub)
}
