package user

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/florienmf/portfolio-backend/internal/http/httperr"
	"github.com/florienmf/portfolio-backend/internal/http/middlewarectx"
	"github.com/florienmf/portfolio-backend/internal/models"
	userservice "github.com/florienmf/portfolio-backend/internal/services/user"
	"github.com/florienmf/portfolio-backend/internal/storage/mongodb"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Create(ctx context.Context, u *models.User, rawPassword string) (*models.User, error) {
	args := m.Called(ctx, u, rawPassword)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *ServiceMock) List(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]*models.User)
	return users, args.Error(1)
}

func (m *ServiceMock) Get(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *ServiceMock) Update(ctx context.Context, id string, input userservice.UpdateInput) (*models.User, error) {
	args := m.Called(ctx, id, input)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *ServiceMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ServiceMock) UpdatePassword(ctx context.Context, id, rawPassword string) error {
	args := m.Called(ctx, id, rawPassword)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newTestHandler(svc *ServiceMock) *Handler {
	logger := newNoopLogger()
	return New(logger, svc, httperr.New(logger, false))
}

// withURLParam добавляет path-параметр chi в контекст запроса.
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var got map[string]any
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	return got
}

func TestHandler_List(t *testing.T) {
	t.Run("empty collection", func(t *testing.T) {
		svc := new(ServiceMock)
		svc.On("List", mock.Anything).Return([]*models.User{}, nil).Once()
		handler := newTestHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		rec := httptest.NewRecorder()

		handler.List(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		got := decodeBody(t, rec)
		assert.Equal(t, "No users found", got["message"])
		svc.AssertExpectations(t)
	})

	t.Run("returns users with count", func(t *testing.T) {
		svc := new(ServiceMock)
		svc.On("List", mock.Anything).Return([]*models.User{
			{ID: primitive.NewObjectID(), Email: "a@example.com"},
			{ID: primitive.NewObjectID(), Email: "b@example.com"},
		}, nil).Once()
		handler := newTestHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		rec := httptest.NewRecorder()

		handler.List(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		got := decodeBody(t, rec)
		assert.Equal(t, "success", got["status"])
		assert.Equal(t, float64(2), got["results"])
		svc.AssertExpectations(t)
	})
}

func TestHandler_Create(t *testing.T) {
	t.Run("validation error lists fields", func(t *testing.T) {
		svc := new(ServiceMock)
		handler := newTestHandler(svc)

		body, _ := json.Marshal(CreateRequest{Name: "User", Location: "Berlin", Password: "password123"})
		req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		handler.Create(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		got := decodeBody(t, rec)
		assert.Equal(t, "fail", got["status"])
		msg, _ := got["message"].(string)
		assert.Contains(t, msg, "Invalid input data.")
		assert.Contains(t, msg, "Email is required")
		svc.AssertNotCalled(t, "Create")
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc := new(ServiceMock)
		svc.On("Create", mock.Anything, mock.Anything, "password123").
			Return(nil, mongo.WriteException{WriteErrors: mongo.WriteErrors{{
				Code:    11000,
				Message: `E11000 duplicate key error dup key: { email: "taken@example.com" }`,
			}}}).Once()
		handler := newTestHandler(svc)

		body, _ := json.Marshal(CreateRequest{
			Name: "User", Email: "taken@example.com", Location: "Berlin", Password: "password123",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		handler.Create(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		got := decodeBody(t, rec)
		assert.Equal(t, `Duplicate field value: "taken@example.com". Please use another value!`, got["message"])
		svc.AssertExpectations(t)
	})

	t.Run("created", func(t *testing.T) {
		created := &models.User{
			ID: primitive.NewObjectID(), Name: "User", Email: "new@example.com",
			Location: "Berlin", Role: models.RoleUser, Photo: "default.jpg",
		}
		svc := new(ServiceMock)
		svc.On("Create", mock.Anything, mock.Anything, "password123").Return(created, nil).Once()
		handler := newTestHandler(svc)

		body, _ := json.Marshal(CreateRequest{
			Name: "User", Email: "new@example.com", Location: "Berlin", Password: "password123",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		handler.Create(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		got := decodeBody(t, rec)
		data, _ := got["data"].(map[string]any)
		assert.Equal(t, "new@example.com", data["email"])
		_, hasPassword := data["password"]
		assert.False(t, hasPassword)
		svc.AssertExpectations(t)
	})
}

func TestHandler_Update(t *testing.T) {
	t.Run("rejects password fields", func(t *testing.T) {
		svc := new(ServiceMock)
		handler := newTestHandler(svc)

		req := httptest.NewRequest(http.MethodPatch, "/api/users/abc",
			bytes.NewReader([]byte(`{"name":"New Name","password":"newpassword1"}`)))
		req = withURLParam(req, "id", "abc")
		rec := httptest.NewRecorder()

		handler.Update(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		got := decodeBody(t, rec)
		assert.Equal(t,
			"This route is not for password updates. Please use /api/users/{id}/password.",
			got["message"])
		svc.AssertNotCalled(t, "Update")
	})

	t.Run("unknown id", func(t *testing.T) {
		svc := new(ServiceMock)
		svc.On("Update", mock.Anything, "missing", mock.Anything).
			Return(nil, mongodb.ErrNotFound).Once()
		handler := newTestHandler(svc)

		req := httptest.NewRequest(http.MethodPatch, "/api/users/missing",
			bytes.NewReader([]byte(`{"name":"New Name"}`)))
		req = withURLParam(req, "id", "missing")
		rec := httptest.NewRecorder()

		handler.Update(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		got := decodeBody(t, rec)
		assert.Equal(t, "No user found with that ID", got["message"])
		svc.AssertExpectations(t)
	})
}

func TestHandler_UpdatePassword(t *testing.T) {
	ownID := primitive.NewObjectID()
	otherID := primitive.NewObjectID()

	tests := []struct {
		name       string
		actor      *models.User
		targetID   string
		body       string
		setupMocks func(m *ServiceMock)
		wantCode   int
	}{
		{
			name:     "owner changes own password",
			actor:    &models.User{ID: ownID, Role: models.RoleUser},
			targetID: ownID.Hex(),
			body:     `{"password":"newpassword1"}`,
			setupMocks: func(m *ServiceMock) {
				m.On("UpdatePassword", mock.Anything, ownID.Hex(), "newpassword1").Return(nil).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name:     "admin changes another user password",
			actor:    &models.User{ID: otherID, Role: models.RoleAdmin},
			targetID: ownID.Hex(),
			body:     `{"password":"newpassword1"}`,
			setupMocks: func(m *ServiceMock) {
				m.On("UpdatePassword", mock.Anything, ownID.Hex(), "newpassword1").Return(nil).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name:       "regular user cannot change someone else password",
			actor:      &models.User{ID: otherID, Role: models.RoleUser},
			targetID:   ownID.Hex(),
			body:       `{"password":"newpassword1"}`,
			setupMocks: func(_ *ServiceMock) {},
			wantCode:   http.StatusForbidden,
		},
		{
			name:       "too short password",
			actor:      &models.User{ID: ownID, Role: models.RoleUser},
			targetID:   ownID.Hex(),
			body:       `{"password":"short"}`,
			setupMocks: func(_ *ServiceMock) {},
			wantCode:   http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			tt.setupMocks(svc)
			handler := newTestHandler(svc)

			req := httptest.NewRequest(http.MethodPatch, "/api/users/"+tt.targetID+"/password",
				bytes.NewReader([]byte(tt.body)))
			req = withURLParam(req, "id", tt.targetID)
			req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserKey, tt.actor))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			rec := httptest.NewRecorder()

			handler.UpdatePassword(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_Remove(t *testing.T) {
	t.Run("removed", func(t *testing.T) {
		svc := new(ServiceMock)
		svc.On("Delete", mock.Anything, "abc").Return(nil).Once()
		handler := newTestHandler(svc)

		req := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/users/abc", nil), "id", "abc")
		rec := httptest.NewRecorder()

		handler.Remove(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("unknown id", func(t *testing.T) {
		svc := new(ServiceMock)
		svc.On("Delete", mock.Anything, "missing").Return(mongodb.ErrNotFound).Once()
		handler := newTestHandler(svc)

		req := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/users/missing", nil), "id", "missing")
		rec := httptest.NewRecorder()

		handler.Remove(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		svc.AssertExpectations(t)
	})
}
