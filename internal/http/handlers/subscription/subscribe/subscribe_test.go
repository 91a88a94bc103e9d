package subscribe_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/http/handlers/subscription/subscribe"
	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/http/middlewarectx"
	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/http/response"
	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/models"
	subservice "github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/services/subscription"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Subscribe(ctx context.Context, userID string, planID int) (*models.SubscriptionWithPlan, error) {
	args := m.Called(ctx, userID, planID)
	if res := args.Get(0); res != nil {
		return res.(*models.SubscriptionWithPlan), args.Error(1)
	}
	return nil, args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// newRequest builds an authenticated request routed with the planId
// URL parameter, the way the router hands it to the handler.
func newRequest(planID, userID string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/subscribe/"+planID, nil)

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("planId", planID)

	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)
	ctx = context.WithValue(ctx, middlewarectx.UserID, userID)
	return req.WithContext(ctx)
}

func TestSubscribeHandlerSuccess(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	result := &models.SubscriptionWithPlan{
		Subscription: models.Subscription{
			ID:        "sub-1",
			UserID:    "user-1",
			PlanID:    1,
			StartDate: now,
			EndDate:   now.AddDate(0, 0, 30),
			Status:    models.StatusActive,
		},
		Plan: models.Plan{
			ID:           1,
			Name:         "Basic",
			Price:        9.99,
			DurationDays: 30,
			Features:     []string{"Access to basic features", "Email support", "1 project"},
		},
	}

	mockService := new(MockService)
	mockService.On("Subscribe", mock.Anything, "user-1", 1).Return(result, nil)

	handler := subscribe.New(testLogger(), mockService)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, newRequest("1", "user-1"))

	require.Equal(t, http.StatusCreated, w.Code)

	var resp subscribe.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Subscription created successfully", resp.Message)
	assert.Equal(t, "sub-1", resp.Subscription.ID)
	assert.Equal(t, "Basic", resp.Subscription.Plan.Name)
	mockService.AssertExpectations(t)
}

func TestSubscribeHandlerErrors(t *testing.T) {
	tests := []struct {
		name           string
		planID         string
		setupMock      func(*MockService)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:           "non-numeric plan id",
			planID:         "abc",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "Plan not found",
		},
		{
			name:   "plan not in catalog",
			planID: "999",
			setupMock: func(m *MockService) {
				m.On("Subscribe", mock.Anything, "user-1", 999).
					Return(nil, fmt.Errorf("subscription.Subscribe: %w", subservice.ErrPlanNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "Plan not found",
		},
		{
			name:   "already subscribed",
			planID: "1",
			setupMock: func(m *MockService) {
				m.On("Subscribe", mock.Anything, "user-1", 1).
					Return(nil, fmt.Errorf("subscription.Subscribe: %w", subservice.ErrAlreadySubscribed))
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "You already have an active subscription",
		},
		{
			name:   "storage failure",
			planID: "1",
			setupMock: func(m *MockService) {
				m.On("Subscribe", mock.Anything, "user-1", 1).
					Return(nil, errors.New("connection refused"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "Server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := subscribe.New(testLogger(), mockService)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, newRequest(tt.planID, "user-1"))

			assert.Equal(t, tt.expectedStatus, w.Code)

			var msg response.Message
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msg))
			assert.Equal(t, tt.expectedMsg, msg.Message)

			mockService.AssertExpectations(t)
		})
	}
}
