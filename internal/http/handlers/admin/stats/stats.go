// Package stats implements the admin HTTP handler returning aggregate
// user counts.
package stats

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

// Service is the stats operation this handler delegates to.
type Service interface {
	UserStats(ctx context.Context) (*models.UserStats, error)
}

// Handler handles GET /api/admin/users/stats.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New creates a stats Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.stats"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userStats, err := h.service.UserStats(r.Context())
	if err != nil {
		log.Error("failed to count user stats", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Error fetching user statistics"))
		return
	}

	render.JSON(w, r, userStats)
}
