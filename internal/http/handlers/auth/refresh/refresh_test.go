package refresh_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/http/handlers/auth/refresh"
	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/http/response"
	authservice "github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/services/auth"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestRefreshHandlerSuccess(t *testing.T) {
	mockService := new(MockService)
	mockService.On("Refresh", mock.Anything, "refresh-token").Return("new-access-token", nil)

	handler := refresh.New(testLogger(), mockService)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh",
		bytes.NewBufferString(`{"refreshToken":"refresh-token"}`))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp refresh.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "new-access-token", resp.Token)
	mockService.AssertExpectations(t)
}

func TestRefreshHandlerErrors(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:           "invalid json",
			body:           `{"refreshToken":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request body",
		},
		{
			name:           "missing token",
			body:           `{}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "Refresh token required",
		},
		{
			name: "invalid token",
			body: `{"refreshToken":"bad-token"}`,
			setupMock: func(m *MockService) {
				m.On("Refresh", mock.Anything, "bad-token").
					Return("", fmt.Errorf("auth.Refresh: %w", authservice.ErrInvalidToken))
			},
			expectedStatus: http.StatusForbidden,
			expectedMsg:    "Invalid refresh token",
		},
		{
			name: "user no longer exists",
			body: `{"refreshToken":"orphan-token"}`,
			setupMock: func(m *MockService) {
				m.On("Refresh", mock.Anything, "orphan-token").
					Return("", fmt.Errorf("auth.Refresh: %w", authservice.ErrUserNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "User not found",
		},
		{
			name: "storage failure",
			body: `{"refreshToken":"refresh-token"}`,
			setupMock: func(m *MockService) {
				m.On("Refresh", mock.Anything, "refresh-token").
					Return("", errors.New("connection refused"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "Server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := refresh.New(testLogger(), mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh",
				bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var msg response.Message
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msg))
			assert.Equal(t, tt.expectedMsg, msg.Message)

			mockService.AssertExpectations(t)
		})
	}
}
