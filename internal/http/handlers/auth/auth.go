// Package auth реализует HTTP-обработчики аутентификации: вход,
// выход и получение текущего пользователя.
package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/florienmf/portfolio-backend/internal/apperror"
	"github.com/florienmf/portfolio-backend/internal/http/httperr"
	"github.com/florienmf/portfolio-backend/internal/http/middlewarectx"
	"github.com/florienmf/portfolio-backend/internal/http/response"
	"github.com/florienmf/portfolio-backend/internal/lib/sl"
	"github.com/florienmf/portfolio-backend/internal/models"
)

// LoginRequest — структура входных данных для входа в систему.
//
// Поля не валидируются по длине: неизвестный email и неверный пароль
// дают одинаковый ответ 401, а не ошибку валидации.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Service описывает интерфейс бизнес-логики аутентификации.
type Service interface {
	Login(ctx context.Context, email, password string) (string, *models.User, error)
}

// Handler обрабатывает HTTP-запросы аутентификации.
type Handler struct {
	log     *slog.Logger
	service Service
	err     *httperr.Normalizer
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, norm *httperr.Normalizer) *Handler {
	return &Handler{
		log:     log,
		service: service,
		err:     norm,
	}
}

// Login godoc
// @Summary Вход в систему
// @Description Аутентифицирует пользователя по email и паролю, возвращает JWT.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body LoginRequest true "Учетные данные пользователя"
// @Success 200 {object} response.Response "Токен и данные пользователя"
// @Failure 400 {object} response.ErrorResponse "Не указан email или пароль"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Router /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.Login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		h.err.Respond(w, r, apperror.New(http.StatusBadRequest, "Invalid request body"))
		return
	}

	if req.Email == "" || req.Password == "" {
		log.Error("email or password missing")
		h.err.Respond(w, r, apperror.New(http.StatusBadRequest, "Please provide email and password"))
		return
	}

	token, user, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Error("login failed", sl.Err(err))
		h.err.Respond(w, r, err)
		return
	}

	log.Info("login success", slog.String("email", user.Email))
	render.JSON(w, r, response.SuccessWithToken(token, map[string]any{
		"user": user,
	}))
}

// Logout godoc
// @Summary Выход из системы
// @Description Токены не хранятся на сервере, выход — операция на стороне клиента.
// @Tags Auth
// @Produce  json
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.SuccessMessage("Logged out successfully"))
}

// Me godoc
// @Summary Текущий пользователь
// @Description Возвращает пользователя, которому принадлежит токен доступа.
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		h.err.Respond(w, r, apperror.New(http.StatusUnauthorized,
			"You are not logged in! Please log in to get access"))
		return
	}
	render.JSON(w, r, response.Success(map[string]any{
		"user": user,
	}))
}
