// Package middlewarectx contains the HTTP middleware of the service:
// bearer-token authentication, the admin role gate, rate limiting and
// request metrics. The auth middleware puts the verified identity into
// the request context for the handlers downstream.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/http/response"
	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/lib/jwt"
	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/lib/sl"
)

// Key is the context key type for request-scoped identity values.
type Key string

const (
	// UserID is the context key of the authenticated user's id.
	UserID Key = "user_id"
	// Email is the context key of the authenticated user's email.
	Email Key = "email"
	// Role is the context key of the authenticated user's role.
	Role Key = "role"
)

// Service validates an access token and returns its claims.
type Service interface {
	ValidateAccessToken(ctx context.Context, token string) (*jwt.AccessClaims, error)
}

// JWTMiddleware authenticates requests with a bearer access token.
// A missing token is 401, a structurally invalid or expired one is 403
// (the signal the client uses to attempt a refresh).
func JWTMiddleware(authService Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("Access token required"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := authService.ValidateAccessToken(r.Context(), tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("Invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), UserID, claims.UserID)
			ctx = context.WithValue(ctx, Email, claims.Email)
			ctx = context.WithValue(ctx, Role, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
