package contact_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/florienmf/portfolio-backend/internal/models"
	"github.com/florienmf/portfolio-backend/internal/services/contact"
)

type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) CreateContact(ctx context.Context, c *models.Contact) (*models.Contact, error) {
	args := m.Called(ctx, c)
	created, _ := args.Get(0).(*models.Contact)
	return created, args.Error(1)
}

func (m *RepoMock) ListContacts(ctx context.Context) ([]*models.Contact, error) {
	args := m.Called(ctx)
	contacts, _ := args.Get(0).([]*models.Contact)
	return contacts, args.Error(1)
}

func (m *RepoMock) FindContactByID(ctx context.Context, id string) (*models.Contact, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*models.Contact)
	return c, args.Error(1)
}

func (m *RepoMock) UpdateContactByID(ctx context.Context, id string, patch bson.M) (*models.Contact, error) {
	args := m.Called(ctx, id, patch)
	c, _ := args.Get(0).(*models.Contact)
	return c, args.Error(1)
}

func (m *RepoMock) DeleteContactByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MailerMock сигнализирует в канал о каждой отправке, чтобы тест
// мог дождаться завершения фоновой горутины.
type MailerMock struct {
	sent chan *models.Contact
	err  error
}

func newMailerMock(err error) *MailerMock {
	return &MailerMock{sent: make(chan *models.Contact, 1), err: err}
}

func (m *MailerMock) SendContactNotification(c *models.Contact) error {
	m.sent <- c
	return m.err
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func waitForNotification(t *testing.T, mailer *MailerMock) *models.Contact {
	t.Helper()
	select {
	case c := <-mailer.sent:
		return c
	case <-time.After(time.Second):
		t.Fatal("notification was not sent")
		return nil
	}
}

func TestService_Create(t *testing.T) {
	input := &models.Contact{
		Name:    "Visitor",
		Email:   "  Visitor@Example.COM ",
		Subject: "Hiring question",
		Message: "I would like to discuss a position.",
	}
	created := &models.Contact{
		ID:      primitive.NewObjectID(),
		Name:    "Visitor",
		Email:   "visitor@example.com",
		Subject: "Hiring question",
		Message: "I would like to discuss a position.",
	}

	repo := new(RepoMock)
	repo.On("CreateContact", mock.Anything, mock.MatchedBy(func(c *models.Contact) bool {
		return c.Email == "visitor@example.com" && !c.CreatedAt.IsZero()
	})).Return(created, nil).Once()

	mailer := newMailerMock(nil)
	svc := contact.NewService(repo, mailer, newNoopLogger())

	got, err := svc.Create(context.Background(), input)
	assert.NoError(t, err)
	assert.Equal(t, created, got)

	notified := waitForNotification(t, mailer)
	assert.Equal(t, created.ID, notified.ID)
	assert.Equal(t, "visitor@example.com", notified.Email)

	repo.AssertExpectations(t)
}

// Сбой доставки письма не влияет на результат запроса:
// обращение уже сохранено в хранилище.
func TestService_CreateMailFailureIgnored(t *testing.T) {
	created := &models.Contact{ID: primitive.NewObjectID(), Email: "visitor@example.com"}

	repo := new(RepoMock)
	repo.On("CreateContact", mock.Anything, mock.Anything).Return(created, nil).Once()

	mailer := newMailerMock(errors.New("smtp: connection refused"))
	svc := contact.NewService(repo, mailer, newNoopLogger())

	got, err := svc.Create(context.Background(), &models.Contact{Email: "visitor@example.com"})
	assert.NoError(t, err)
	assert.Equal(t, created, got)

	waitForNotification(t, mailer)
	repo.AssertExpectations(t)
}

func TestService_CreateRepoErrorSkipsMail(t *testing.T) {
	repo := new(RepoMock)
	repo.On("CreateContact", mock.Anything, mock.Anything).
		Return(nil, errors.New("write failed")).Once()

	mailer := newMailerMock(nil)
	svc := contact.NewService(repo, mailer, newNoopLogger())

	_, err := svc.Create(context.Background(), &models.Contact{Email: "visitor@example.com"})
	assert.Error(t, err)

	select {
	case <-mailer.sent:
		t.Fatal("notification must not be sent when storage write fails")
	case <-time.After(50 * time.Millisecond):
	}
	repo.AssertExpectations(t)
}

func TestService_UpdateEmptyPatch(t *testing.T) {
	existing := &models.Contact{ID: primitive.NewObjectID()}

	repo := new(RepoMock)
	repo.On("FindContactByID", mock.Anything, existing.ID.Hex()).Return(existing, nil).Once()

	svc := contact.NewService(repo, newMailerMock(nil), newNoopLogger())

	got, err := svc.Update(context.Background(), existing.ID.Hex(), contact.UpdateInput{})
	assert.NoError(t, err)
	assert.Equal(t, existing, got)

	repo.AssertNotCalled(t, "UpdateContactByID")
	repo.AssertExpectations(t)
}
