// Package certification содержит бизнес-логику раздела сертификатов,
// наград и пройденных курсов.
package certification

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/florienmf/portfolio-backend/internal/models"
)

// Repository описывает контракт хранилища сертификатов.
type Repository interface {
	CreateCertification(ctx context.Context, cert *models.Certification) (*models.Certification, error)
	ListCertifications(ctx context.Context) ([]*models.Certification, error)
	FindCertificationByID(ctx context.Context, id string) (*models.Certification, error)
	UpdateCertificationByID(ctx context.Context, id string, patch bson.M) (*models.Certification, error)
	DeleteCertificationByID(ctx context.Context, id string) error
}

// UpdateInput описывает частичное обновление сертификата. Nil-поля не меняются.
type UpdateInput struct {
	Title       *string
	Year        *string
	Type        *string
	Highlight   *bool
	Description *string
	Skills      *[]string
	Issuer      *string
}

// Service реализует операции над сертификатами.
type Service struct {
	repo Repository
}

// NewService создает новый экземпляр Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create сохраняет новый сертификат.
func (s *Service) Create(ctx context.Context, cert *models.Certification) (*models.Certification, error) {
	now := time.Now().UTC()
	cert.CreatedAt = now
	cert.UpdatedAt = now
	return s.repo.CreateCertification(ctx, cert)
}

// List возвращает все сертификаты.
func (s *Service) List(ctx context.Context) ([]*models.Certification, error) {
	return s.repo.ListCertifications(ctx)
}

// Get возвращает сертификат по ID.
func (s *Service) Get(ctx context.Context, id string) (*models.Certification, error) {
	return s.repo.FindCertificationByID(ctx, id)
}

// Update применяет частичное обновление и возвращает обновлённый сертификат.
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*models.Certification, error) {
	patch := bson.M{"updated_at": time.Now().UTC()}
	if input.Title != nil {
		patch["title"] = *input.Title
	}
	if input.Year != nil {
		patch["year"] = *input.Year
	}
	if input.Type != nil {
		patch["type"] = *input.Type
	}
	if input.Highlight != nil {
		patch["highlight"] = *input.Highlight
	}
	if input.Description != nil {
		patch["description"] = *input.Description
	}
	if input.Skills != nil {
		patch["skills"] = *input.Skills
	}
	if input.Issuer != nil {
		patch["issuer"] = *input.Issuer
	}
	return s.repo.UpdateCertificationByID(ctx, id, patch)
}

// Delete удаляет сертификат.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteCertificationByID(ctx, id)
}
