// Package auth содержит бизнес-логику аутентификации: проверку учётных
// данных при входе и восстановление личности по токену доступа.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/florienmf/portfolio-backend/internal/apperror"
	"github.com/florienmf/portfolio-backend/internal/lib/jwt"
	"github.com/florienmf/portfolio-backend/internal/lib/password"
	"github.com/florienmf/portfolio-backend/internal/models"
	"github.com/florienmf/portfolio-backend/internal/storage/mongodb"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// FindUserByEmail возвращает пользователя по email, включая хэш пароля.
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)

	// FindUserByID возвращает пользователя по ID или mongodb.ErrNotFound.
	FindUserByID(ctx context.Context, id string) (*models.User, error)
}

// Service отвечает за вход в систему и проверку токенов доступа.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewService создает новый экземпляр Service.
func NewService(users UserRepository, jwtMaker jwt.Maker) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// invalidCredentials возвращается и для неизвестного email, и для
// неверного пароля: ответ не должен позволять перебор адресов.
func invalidCredentials() *apperror.AppError {
	return apperror.New(http.StatusUnauthorized, "Incorrect email or password")
}

// Login проверяет пароль пользователя и выпускает токен доступа.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindUserByEmail(ctx, email)
	if errors.Is(err, mongodb.ErrNotFound) {
		return "", nil, invalidCredentials()
	}
	if err != nil {
		return "", nil, err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, invalidCredentials()
	}

	token, err := s.jwtMaker.GenerateToken(user.ID.Hex())
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Authenticate проверяет токен доступа и возвращает пользователя,
// которому он был выпущен.
//
// Ошибки проверки токена отдаются как есть, чтобы нормализатор различил
// истёкший и некорректный токен. Если пользователь был удалён после
// выпуска токена, возвращается операционная ошибка 401.
func (s *Service) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindUserByID(ctx, claims.Subject)
	if errors.Is(err, mongodb.ErrNotFound) {
		return nil, apperror.New(http.StatusUnauthorized, "The user belonging to this token no longer exists")
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
