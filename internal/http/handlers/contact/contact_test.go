package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/florienmf/portfolio-backend/internal/http/httperr"
	"github.com/florienmf/portfolio-backend/internal/models"
	contactservice "github.com/florienmf/portfolio-backend/internal/services/contact"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Create(ctx context.Context, c *models.Contact) (*models.Contact, error) {
	args := m.Called(ctx, c)
	contact, _ := args.Get(0).(*models.Contact)
	return contact, args.Error(1)
}

func (m *ServiceMock) List(ctx context.Context) ([]*models.Contact, error) {
	args := m.Called(ctx)
	contacts, _ := args.Get(0).([]*models.Contact)
	return contacts, args.Error(1)
}

func (m *ServiceMock) Get(ctx context.Context, id string) (*models.Contact, error) {
	args := m.Called(ctx, id)
	contact, _ := args.Get(0).(*models.Contact)
	return contact, args.Error(1)
}

func (m *ServiceMock) Update(ctx context.Context, id string, input contactservice.UpdateInput) (*models.Contact, error) {
	args := m.Called(ctx, id, input)
	contact, _ := args.Get(0).(*models.Contact)
	return contact, args.Error(1)
}

func (m *ServiceMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestHandler_Create(t *testing.T) {
	logger := newNoopLogger()
	norm := httperr.New(logger, false)

	t.Run("created", func(t *testing.T) {
		created := &models.Contact{
			ID:      primitive.NewObjectID(),
			Name:    "Visitor",
			Email:   "visitor@example.com",
			Subject: "Hiring question",
			Message: "I would like to discuss a position.",
		}
		svc := new(ServiceMock)
		svc.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Contact) bool {
			return c.Email == "visitor@example.com" && c.Subject == "Hiring question"
		})).Return(created, nil).Once()
		handler := New(logger, svc, norm)

		body, _ := json.Marshal(CreateRequest{
			Name:    "Visitor",
			Email:   "visitor@example.com",
			Subject: "Hiring question",
			Message: "I would like to discuss a position.",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/contacts", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		handler.Create(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var got map[string]any
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, "success", got["status"])
		svc.AssertExpectations(t)
	})

	t.Run("message too short", func(t *testing.T) {
		svc := new(ServiceMock)
		handler := New(logger, svc, norm)

		body, _ := json.Marshal(CreateRequest{
			Name:    "Visitor",
			Email:   "visitor@example.com",
			Subject: "Hiring question",
			Message: "Hi",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/contacts", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		handler.Create(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var got map[string]any
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, "fail", got["status"])
		msg, _ := got["message"].(string)
		assert.Contains(t, msg, "Message must be at least 10 characters")

		fields, ok := got["errors"].([]any)
		assert.True(t, ok)
		assert.Len(t, fields, 1)
		field, _ := fields[0].(map[string]any)
		assert.Equal(t, "message", field["field"])
		svc.AssertNotCalled(t, "Create")
	})
}
