// Package list implements the admin HTTP handler returning every
// subscription enriched with user summary and plan.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/http/response"
	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/lib/sl"
	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/models"
)

// Service is the subscription operation this handler delegates to.
type Service interface {
	ListAll(ctx context.Context, limit, offset int) ([]*models.AdminSubscriptionEntry, error)
}

// Handler handles GET /api/admin/subscriptions.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New creates an admin list Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	// Optional pagination; zero values fall back to a full listing.
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	entries, err := h.service.ListAll(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list subscriptions", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Server error"))
		return
	}
	if entries == nil {
		entries = []*models.AdminSubscriptionEntry{}
	}

	render.JSON(w, r, entries)
}
