// Package apiclient provides a typed Go client for the subscription
// dashboard API. It holds the access/refresh token pair from login and
// implements the session-refresh contract: on a 401 it performs exactly
// one refresh and retries the original request once; when the refresh
// itself fails it clears the stored credentials so the caller can send
// the user back to login.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/models"
)

// Client is a typed API client. Safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

// Option customises client construction.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// New constructs a Client pointing at the API base URL.
func New(base string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(base, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is an error response from the API.
type APIError struct {
	Status  int
	Message string
}

func (e APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api request failed with status %d", e.Status)
	}
	return fmt.Sprintf("api request failed (%d): %s", e.Status, e.Message)
}

// LoginResponse is the successful login body.
type LoginResponse struct {
	User         models.UserSummary `json:"user"`
	Token        string             `json:"token"`
	RefreshToken string             `json:"refreshToken"`
}

// SubscribeResponse is the successful subscribe body.
type SubscribeResponse struct {
	Message      string                      `json:"message"`
	Subscription models.SubscriptionWithPlan `json:"subscription"`
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	body := map[string]string{"name": name, "email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/api/auth/register", body, false, nil)
}

// Login authenticates and stores the returned token pair for
// subsequent authenticated calls.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, false, &resp); err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.accessToken = resp.Token
	c.refreshToken = resp.RefreshToken
	c.mu.Unlock()
	return &resp, nil
}

// Plans returns the plan catalog.
func (c *Client) Plans(ctx context.Context) ([]models.Plan, error) {
	var plans []models.Plan
	if err := c.do(ctx, http.MethodGet, "/api/plans", nil, false, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// Subscribe subscribes the logged-in user to the plan.
func (c *Client) Subscribe(ctx context.Context, planID int) (*SubscribeResponse, error) {
	var resp SubscribeResponse
	path := fmt.Sprintf("/api/subscribe/%d", planID)
	if err := c.doWithRetry(ctx, http.MethodPost, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MySubscription returns the logged-in user's active subscription.
func (c *Client) MySubscription(ctx context.Context) (*models.SubscriptionWithPlan, error) {
	var sub models.SubscriptionWithPlan
	if err := c.doWithRetry(ctx, http.MethodGet, "/api/my-subscription", nil, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// AdminSubscriptions returns every subscription (admin only).
func (c *Client) AdminSubscriptions(ctx context.Context) ([]models.AdminSubscriptionEntry, error) {
	var entries []models.AdminSubscriptionEntry
	if err := c.doWithRetry(ctx, http.MethodGet, "/api/admin/subscriptions", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// UserStats returns the aggregate account counts (admin only).
func (c *Client) UserStats(ctx context.Context) (*models.UserStats, error) {
	var stats models.UserStats
	if err := c.doWithRetry(ctx, http.MethodGet, "/api/admin/users/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Refresh exchanges the stored refresh token for a new access token.
func (c *Client) Refresh(ctx context.Context) error {
	c.mu.Lock()
	refreshToken := c.refreshToken
	c.mu.Unlock()
	if refreshToken == "" {
		return APIError{Status: http.StatusUnauthorized, Message: "no refresh token"}
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/refresh",
		map[string]string{"refreshToken": refreshToken}, false, &resp); err != nil {
		c.clearCredentials()
		return err
	}

	c.mu.Lock()
	c.accessToken = resp.Token
	c.mu.Unlock()
	return nil
}

// HasCredentials reports whether a token pair is stored. After a failed
// refresh it turns false, the caller's cue to re-login.
func (c *Client) HasCredentials() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken != "" || c.refreshToken != ""
}

func (c *Client) clearCredentials() {
	c.mu.Lock()
	c.accessToken = ""
	c.refreshToken = ""
	c.mu.Unlock()
}

// doWithRetry performs an authenticated request; on 401 it refreshes
// once and retries once. 403 and other statuses are returned as is.
func (c *Client) doWithRetry(ctx context.Context, method, path string, body, v any) error {
	err := c.do(ctx, method, path, body, true, v)
	var apiErr APIError
	if err == nil || !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
		return err
	}

	if refreshErr := c.Refresh(ctx); refreshErr != nil {
		return err
	}
	return c.do(ctx, method, path, body, true, v)
}

func (c *Client) do(ctx context.Context, method, path string, body any, authed bool, v any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		c.mu.Lock()
		token := c.accessToken
		c.mu.Unlock()
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		return APIError{Status: resp.StatusCode, Message: extractMessage(resp.Body)}
	}
	if v == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func extractMessage(body io.Reader) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return ""
	}
	return payload.Message
}
