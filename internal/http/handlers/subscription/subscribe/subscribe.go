// Package subscribe implements the HTTP handler creating a
// subscription for the authenticated user.
package subscribe

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/http/middlewarectx"
	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/http/response"
	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/lib/sl"
	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/models"
	subservice "github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/services/subscription"
)

// Response is the successful subscribe body.
type Response struct {
	Message      string                      `json:"message"`
	Subscription models.SubscriptionWithPlan `json:"subscription"`
}

// Service is the subscription operation this handler delegates to.
type Service interface {
	Subscribe(ctx context.Context, userID string, planID int) (*models.SubscriptionWithPlan, error)
}

// Handler handles POST /api/subscribe/{planId}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New creates a subscribe Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Subscribe to a plan
// @Tags Subscriptions
// @Security BearerAuth
// @Produce json
// @Param planId path int true "Plan id"
// @Success 201 {object} Response
// @Failure 404 {object} response.Message "Plan not found"
// @Failure 400 {object} response.Message "Already subscribed"
// @Router /subscribe/{planId} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.subscribe"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	planID, err := strconv.Atoi(chi.URLParam(r, "planId"))
	if err != nil {
		log.Error("failed to decode plan id from url", sl.Err(err))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Plan not found"))
		return
	}

	userID, _ := r.Context().Value(middlewarectx.UserID).(string)

	sub, err := h.service.Subscribe(r.Context(), userID, planID)
	if err != nil {
		switch {
		case errors.Is(err, subservice.ErrPlanNotFound):
			log.Info("plan not found", slog.Int("plan_id", planID))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("Plan not found"))
		case errors.Is(err, subservice.ErrAlreadySubscribed):
			log.Info("already subscribed", slog.String("user_id", userID))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("You already have an active subscription"))
		default:
			log.Error("failed to create subscription", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Server error"))
		}
		return
	}

	log.Info("subscription created", slog.String("id", sub.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, Response{
		Message:      "Subscription created successfully",
		Subscription: *sub,
	})
}
