package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/florienmf/portfolio-backend/internal/apperror"
	"github.com/florienmf/portfolio-backend/internal/http/httperr"
	"github.com/florienmf/portfolio-backend/internal/http/middlewarectx"
	"github.com/florienmf/portfolio-backend/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	args := m.Called(ctx, email, password)
	user, _ := args.Get(1).(*models.User)
	return args.String(0), user, args.Error(2)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestHandler_Login(t *testing.T) {
	logger := newNoopLogger()
	norm := httperr.New(logger, false)

	user := &models.User{
		ID:    primitive.NewObjectID(),
		Name:  "Admin",
		Email: "admin@example.com",
		Role:  models.RoleAdmin,
	}

	tests := []struct {
		name           string
		requestBody    any
		setupMocks     func(m *ServiceMock)
		wantStatusCode int
		wantStatus     string
		wantMessage    string
		wantToken      string
	}{
		{
			name:        "valid login",
			requestBody: LoginRequest{Email: "admin@example.com", Password: "password123"},
			setupMocks: func(m *ServiceMock) {
				m.On("Login", mock.Anything, "admin@example.com", "password123").
					Return("jwt-token-123", user, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantStatus:     "success",
			wantToken:      "jwt-token-123",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			setupMocks:     func(_ *ServiceMock) {},
			wantStatusCode: http.StatusBadRequest,
			wantStatus:     "fail",
			wantMessage:    "Invalid request body",
		},
		{
			name:           "missing password",
			requestBody:    LoginRequest{Email: "admin@example.com"},
			setupMocks:     func(_ *ServiceMock) {},
			wantStatusCode: http.StatusBadRequest,
			wantStatus:     "fail",
			wantMessage:    "Please provide email and password",
		},
		{
			name:        "invalid credentials",
			requestBody: LoginRequest{Email: "admin@example.com", Password: "wrongpassword"},
			setupMocks: func(m *ServiceMock) {
				m.On("Login", mock.Anything, "admin@example.com", "wrongpassword").
					Return("", nil, apperror.New(http.StatusUnauthorized, "Incorrect email or password")).Once()
			},
			wantStatusCode: http.StatusUnauthorized,
			wantStatus:     "fail",
			wantMessage:    "Incorrect email or password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			tt.setupMocks(svc)
			handler := New(logger, svc, norm)

			var bodyBytes []byte
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				var err error
				bodyBytes, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatal(err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			rec := httptest.NewRecorder()

			handler.Login(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tt.wantStatus, got["status"])

			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, got["message"])
			}
			if tt.wantToken != "" {
				assert.Equal(t, tt.wantToken, got["token"])

				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				userData, ok := data["user"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, "admin@example.com", userData["email"])
				// Хэш пароля никогда не попадает в JSON-ответ
				_, hasPassword := userData["password"]
				assert.False(t, hasPassword)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_Logout(t *testing.T) {
	handler := New(newNoopLogger(), new(ServiceMock), httperr.New(newNoopLogger(), false))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()

	handler.Logout(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "success", got["status"])
	assert.Equal(t, "Logged out successfully", got["message"])
}

func TestHandler_Me(t *testing.T) {
	logger := newNoopLogger()
	norm := httperr.New(logger, false)
	handler := New(logger, new(ServiceMock), norm)

	t.Run("authenticated", func(t *testing.T) {
		user := &models.User{ID: primitive.NewObjectID(), Email: "admin@example.com"}
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserKey, user))
		rec := httptest.NewRecorder()

		handler.Me(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var got map[string]any
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		data := got["data"].(map[string]any)
		userData := data["user"].(map[string]any)
		assert.Equal(t, "admin@example.com", userData["email"])
	})

	t.Run("no user in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		rec := httptest.NewRecorder()

		handler.Me(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
