// Package list implements the public HTTP handler returning the plan
// catalog.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/http/response"
	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/lib/sl"
	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/models"
)

// Service is the catalog operation this handler delegates to.
type Service interface {
	ListPlans(ctx context.Context) ([]models.Plan, error)
}

// Handler handles GET /api/plans.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New creates a plan list Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plan.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	plans, err := h.service.ListPlans(r.Context())
	if err != nil {
		log.Error("failed to list plans", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Server error"))
		return
	}
	if plans == nil {
		plans = []models.Plan{}
	}

	render.JSON(w, r, plans)
}
