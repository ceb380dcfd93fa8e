// Package middlewarectx содержит HTTP middleware для аутентификации
// и авторизации запросов.
//
// AuthMiddleware проверяет наличие и валидность токена доступа в заголовке
// Authorization, загружает пользователя и добавляет его в контекст запроса.
// RequireRoles — отдельное middleware, проверяющее роль уже
// аутентифицированного пользователя для конкретного маршрута.
//
// Шаги фиксированы: извлечение токена, его проверка, загрузка пользователя,
// привязка к контексту и только затем проверка роли. Любой сбой обрывает
// цепочку — обработчик маршрута не выполняется.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/florienmf/portfolio-backend/internal/apperror"
	"github.com/florienmf/portfolio-backend/internal/http/httperr"
	"github.com/florienmf/portfolio-backend/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// UserKey — ключ для аутентифицированного пользователя в контексте.
const UserKey Key = "user"

// IdentityService описывает интерфейс восстановления личности по токену.
type IdentityService interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// UserFromContext возвращает аутентифицированного пользователя из контекста.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserKey).(*models.User)
	return user, ok
}

// AuthMiddleware возвращает HTTP middleware, которое проверяет токен доступа
// в заголовке Authorization.
//
// Если токен валиден и пользователь существует, он добавляется в контекст
// запроса; иначе запрос завершается ответом 401 через нормализатор ошибок.
func AuthMiddleware(identity IdentityService, norm *httperr.Normalizer, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AuthMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				norm.Respond(w, r, apperror.New(http.StatusUnauthorized,
					"You are not logged in! Please log in to get access"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			user, err := identity.Authenticate(r.Context(), tokenStr)
			if err != nil {
				log.Error("authentication failed", slog.String("error", err.Error()))
				norm.Respond(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles возвращает middleware, которое пропускает запрос только
// если роль пользователя из контекста входит в список разрешённых.
// Подключается после AuthMiddleware и параметризуется для каждого маршрута.
func RequireRoles(norm *httperr.Normalizer, roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				norm.Respond(w, r, apperror.New(http.StatusUnauthorized,
					"You are not logged in! Please log in to get access"))
				return
			}
			if _, ok := allowed[user.Role]; !ok {
				norm.Respond(w, r, apperror.New(http.StatusForbidden,
					"You do not have permission to perform this action"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
