// Package experience содержит бизнес-логику раздела «опыт работы».
package experience

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/florienmf/portfolio-backend/internal/models"
)

// Repository описывает контракт хранилища записей об опыте работы.
type Repository interface {
	CreateExperience(ctx context.Context, exp *models.Experience) (*models.Experience, error)
	ListExperiences(ctx context.Context) ([]*models.Experience, error)
	FindExperienceByID(ctx context.Context, id string) (*models.Experience, error)
	UpdateExperienceByID(ctx context.Context, id string, patch bson.M) (*models.Experience, error)
	DeleteExperienceByID(ctx context.Context, id string) error
}

// UpdateInput описывает частичное обновление записи. Nil-поля не меняются.
type UpdateInput struct {
	Company     *string
	Title       *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
}

// Service реализует операции над записями об опыте работы.
type Service struct {
	repo Repository
}

// NewService создает новый экземпляр Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create сохраняет новую запись.
func (s *Service) Create(ctx context.Context, exp *models.Experience) (*models.Experience, error) {
	now := time.Now().UTC()
	exp.CreatedAt = now
	exp.UpdatedAt = now
	return s.repo.CreateExperience(ctx, exp)
}

// List возвращает все записи, новые места работы первыми.
func (s *Service) List(ctx context.Context) ([]*models.Experience, error) {
	return s.repo.ListExperiences(ctx)
}

// Get возвращает запись по ID.
func (s *Service) Get(ctx context.Context, id string) (*models.Experience, error) {
	return s.repo.FindExperienceByID(ctx, id)
}

// Update применяет частичное обновление и возвращает обновлённую запись.
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*models.Experience, error) {
	patch := bson.M{"updated_at": time.Now().UTC()}
	if input.Company != nil {
		patch["company"] = *input.Company
	}
	if input.Title != nil {
		patch["title"] = *input.Title
	}
	if input.Description != nil {
		patch["description"] = *input.Description
	}
	if input.StartDate != nil {
		patch["starting_date"] = *input.StartDate
	}
	if input.EndDate != nil {
		patch["ending_date"] = *input.EndDate
	}
	return s.repo.UpdateExperienceByID(ctx, id, patch)
}

// Delete удаляет запись.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteExperienceByID(ctx, id)
}
