package login_test

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

	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/http/handlers/auth/login"
	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/http/response"
	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/models"
	authservice "github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/services/auth"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Login(ctx context.Context, email, password string) (*authservice.LoginResult, error) {
	args := m.Called(ctx, email, password)
	if res := args.Get(0); res != nil {
		return res.(*authservice.LoginResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoginHandlerSuccess(t *testing.T) {
	result := &authservice.LoginResult{
		User: models.UserSummary{
			ID:    "user-1",
			Name:  "Alice",
			Email: "alice@example.com",
			Role:  models.RoleUser,
		},
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
	}

	mockService := new(MockService)
	mockService.On("Login", mock.Anything, "alice@example.com", "pw123456").Return(result, nil)

	handler := login.New(testLogger(), mockService)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		bytes.NewBufferString(`{"email":"alice@example.com","password":"pw123456"}`))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp login.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, result.User, resp.User)
	assert.Equal(t, "access-token", resp.Token)
	assert.Equal(t, "refresh-token", resp.RefreshToken)
	mockService.AssertExpectations(t)
}

func TestLoginHandlerErrors(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:           "invalid json",
			body:           `{"email":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request body",
		},
		{
			name:           "missing password",
			body:           `{"email":"alice@example.com"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "field Password is a required field",
		},
		{
			name: "invalid credentials",
			body: `{"email":"alice@example.com","password":"wrong"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "alice@example.com", "wrong").
					Return(nil, fmt.Errorf("auth.Login: %w", authservice.ErrInvalidCredentials))
			},
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "Invalid credentials",
		},
		{
			name: "storage failure",
			body: `{"email":"alice@example.com","password":"pw123456"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "alice@example.com", "pw123456").
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

			handler := login.New(testLogger(), mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
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
