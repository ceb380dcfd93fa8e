// Package reference содержит бизнес-логику раздела рекомендаций.
package reference

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/florienmf/portfolio-backend/internal/models"
)

// Repository описывает контракт хранилища рекомендаций.
type Repository interface {
	CreateReference(ctx context.Context, ref *models.Reference) (*models.Reference, error)
	ListReferences(ctx context.Context) ([]*models.Reference, error)
	FindReferenceByID(ctx context.Context, id string) (*models.Reference, error)
	UpdateReferenceByID(ctx context.Context, id string, patch bson.M) (*models.Reference, error)
	DeleteReferenceByID(ctx context.Context, id string) error
}

// UpdateInput описывает частичное обновление рекомендации. Nil-поля не меняются.
type UpdateInput struct {
	Title       *string
	Name        *string
	Description *string
	Profile     *string
}

// Service реализует операции над рекомендациями.
type Service struct {
	repo Repository
}

// NewService создает новый экземпляр Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create сохраняет новую рекомендацию.
func (s *Service) Create(ctx context.Context, ref *models.Reference) (*models.Reference, error) {
	now := time.Now().UTC()
	ref.CreatedAt = now
	ref.UpdatedAt = now
	return s.repo.CreateReference(ctx, ref)
}

// List возвращает все рекомендации.
func (s *Service) List(ctx context.Context) ([]*models.Reference, error) {
	return s.repo.ListReferences(ctx)
}

// Get возвращает рекомендацию по ID.
func (s *Service) Get(ctx context.Context, id string) (*models.Reference, error) {
	return s.repo.FindReferenceByID(ctx, id)
}

// Update применяет частичное обновление и возвращает обновлённую рекомендацию.
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*models.Reference, error) {
	patch := bson.M{"updated_at": time.Now().UTC()}
	if input.Title != nil {
		patch["title"] = *input.Title
	}
	if input.Name != nil {
		patch["name"] = *input.Name
	}
	if input.Description != nil {
		patch["description"] = *input.Description
	}
	if input.Profile != nil {
		patch["profile"] = *input.Profile
	}
	return s.repo.UpdateReferenceByID(ctx, id, patch)
}

// Delete удаляет рекомендацию.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteReferenceByID(ctx, id)
}
