package app

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	adminlist "github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/http/handlers/admin/list"
	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/http/handlers/admin/stats"
	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/http/handlers/auth/login"
	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/http/handlers/auth/refresh"
	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/http/handlers/auth/register"
	planlist "github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/http/handlers/plan/list"
	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/http/handlers/subscription/read"
	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/http/handlers/subscription/subscribe"
	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/http/middlewarectx"
	authservice "github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/services/auth"
	subservice "github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/services/subscription"
)

// RegisterRoutes mounts every endpoint of the service.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authSvc *authservice.Service, subSvc *subservice.Service) {
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.MetricsMiddleware(),
	)

	// Auth endpoints share one bucket: each login costs a bcrypt check.
	authLimiter := rate.NewLimiter(rate.Limit(5), 10)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger, authLimiter))
			r.Post("/auth/register", register.New(logger, authSvc).ServeHTTP)
			r.Post("/auth/login", login.New(logger, authSvc).ServeHTTP)
			r.Post("/auth/refresh", refresh.New(logger, authSvc).ServeHTTP)
		})

		r.Get("/plans", planlist.New(logger, subSvc).ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authSvc, logger))
			r.Post("/subscribe/{planId}", subscribe.New(logger, subSvc).ServeHTTP)
			r.Get("/my-subscription", read.New(logger, subSvc).ServeHTTP)

			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminMiddleware(logger))
				r.Get("/admin/subscriptions", adminlist.New(logger, subSvc).ServeHTTP)
				r.Get("/admin/users/stats", stats.New(logger, subSvc).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
