// Package user содержит бизнес-логику управления пользователями.
//
// Хеширование пароля выполняется ровно в двух местах: при создании
// пользователя и при смене пароля через выделенный метод UpdatePassword.
// Общий путь обновления профиля поле password не трогает.
package user

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/florienmf/portfolio-backend/internal/lib/password"
	"github.com/florienmf/portfolio-backend/internal/models"
)

// Repository описывает контракт хранилища пользователей.
type Repository interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUserByID(ctx context.Context, id string, patch bson.M) (*models.User, error)
	DeleteUserByID(ctx context.Context, id string) error
	UpdateUserPassword(ctx context.Context, id, passwordHash string) error
}

// UpdateInput описывает частичное обновление профиля. Nil-поля не меняются.
// Пароль сюда не входит: для него есть UpdatePassword.
type UpdateInput struct {
	Name     *string
	Email    *string
	Location *string
	Role     *string
	Photo    *string
}

// Service реализует операции над пользователями.
type Service struct {
	repo Repository
}

// NewService создает новый экземпляр Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create сохраняет нового пользователя: нормализует email, подставляет
// значения по умолчанию и хеширует пароль. Нарушение уникальности email
// отдаётся вызывающему как есть — его классифицирует нормализатор ошибок.
func (s *Service) Create(ctx context.Context, u *models.User, rawPassword string) (*models.User, error) {
	hash, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, err
	}

	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.PasswordHash = hash
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	if u.Photo == "" {
		u.Photo = "default.jpg"
	}
	u.CreatedAt = time.Now().UTC()

	return s.repo.CreateUser(ctx, u)
}

// List возвращает всех пользователей.
func (s *Service) List(ctx context.Context) ([]*models.User, error) {
	return s.repo.ListUsers(ctx)
}

// Get возвращает пользователя по ID.
func (s *Service) Get(ctx context.Context, id string) (*models.User, error) {
	return s.repo.FindUserByID(ctx, id)
}

// Update применяет частичное обновление профиля и возвращает
// обновлённого пользователя.
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*models.User, error) {
	patch := bson.M{}
	if input.Name != nil {
		patch["name"] = *input.Name
	}
	if input.Email != nil {
		patch["email"] = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.Location != nil {
		patch["location"] = *input.Location
	}
	if input.Role != nil {
		patch["role"] = *input.Role
	}
	if input.Photo != nil {
		patch["photo"] = *input.Photo
	}
	if len(patch) == 0 {
		return s.repo.FindUserByID(ctx, id)
	}
	return s.repo.UpdateUserByID(ctx, id, patch)
}

// Delete удаляет пользователя.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteUserByID(ctx, id)
}

// UpdatePassword хеширует и сохраняет новый пароль пользователя.
// Это единственный путь смены пароля.
func (s *Service) UpdatePassword(ctx context.Context, id, rawPassword string) error {
	hash, err := password.GetHash(rawPassword)
	if err != nil {
		return err
	}
	return s.repo.UpdateUserPassword(ctx, id, hash)
}
