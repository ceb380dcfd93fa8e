// Package contact содержит бизнес-логику обращений через контактную форму.
//
// Создание обращения запускает отправку почтового уведомления в отдельной
// горутине: сбой доставки письма логируется, но не влияет на результат
// запроса — запись в хранилище уже состоялась.
package contact

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/florienmf/portfolio-backend/internal/lib/sl"
	"github.com/florienmf/portfolio-backend/internal/models"
)

// Repository описывает контракт хранилища обращений.
type Repository interface {
	CreateContact(ctx context.Context, contact *models.Contact) (*models.Contact, error)
	ListContacts(ctx context.Context) ([]*models.Contact, error)
	FindContactByID(ctx context.Context, id string) (*models.Contact, error)
	UpdateContactByID(ctx context.Context, id string, patch bson.M) (*models.Contact, error)
	DeleteContactByID(ctx context.Context, id string) error
}

// Mailer описывает интерфейс отправки уведомления о новом обращении.
type Mailer interface {
	SendContactNotification(contact *models.Contact) error
}

// UpdateInput описывает частичное обновление обращения. Nil-поля не меняются.
type UpdateInput struct {
	Name    *string
	Email   *string
	Subject *string
	Message *string
}

// Service реализует операции над обращениями.
type Service struct {
	repo   Repository
	mailer Mailer
	log    *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(repo Repository, mailer Mailer, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		mailer: mailer,
		log:    log,
	}
}

// Create сохраняет обращение и асинхронно отправляет уведомление.
func (s *Service) Create(ctx context.Context, c *models.Contact) (*models.Contact, error) {
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.CreatedAt = time.Now().UTC()

	created, err := s.repo.CreateContact(ctx, c)
	if err != nil {
		return nil, err
	}

	// Доставка письма не привязана к жизненному циклу запроса:
	// обращение уже сохранено, клиент получает 201 в любом случае.
	notification := *created
	go func() {
		if err := s.mailer.SendContactNotification(&notification); err != nil {
			s.log.Error("failed to send contact notification",
				slog.String("contact_id", notification.ID.Hex()), sl.Err(err))
		}
	}()

	return created, nil
}

// List возвращает все обращения.
func (s *Service) List(ctx context.Context) ([]*models.Contact, error) {
	return s.repo.ListContacts(ctx)
}

// Get возвращает обращение по ID.
func (s *Service) Get(ctx context.Context, id string) (*models.Contact, error) {
	return s.repo.FindContactByID(ctx, id)
}

// Update применяет частичное обновление и возвращает обновлённое обращение.
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*models.Contact, error) {
	patch := bson.M{}
	if input.Name != nil {
		patch["name"] = *input.Name
	}
	if input.Email != nil {
		patch["email"] = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.Subject != nil {
		patch["subject"] = *input.Subject
	}
	if input.Message != nil {
		patch["message"] = *input.Message
	}
	if len(patch) == 0 {
		return s.repo.FindContactByID(ctx, id)
	}
	return s.repo.UpdateContactByID(ctx, id, patch)
}

// Delete удаляет обращение.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteContactByID(ctx, id)
}
