// Package user реализует HTTP-обработчики управления пользователями.
//
// Общий путь обновления профиля отклоняет поля пароля: смена пароля
// идёт только через выделенный маршрут PATCH /api/users/{id}/password.
package user

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/florienmf/portfolio-backend/internal/apperror"
	"github.com/florienmf/portfolio-backend/internal/http/httperr"
	"github.com/florienmf/portfolio-backend/internal/http/middlewarectx"
	"github.com/florienmf/portfolio-backend/internal/http/response"
	"github.com/florienmf/portfolio-backend/internal/lib/sl"
	"github.com/florienmf/portfolio-backend/internal/lib/validate"
	"github.com/florienmf/portfolio-backend/internal/models"
	userservice "github.com/florienmf/portfolio-backend/internal/services/user"
	"github.com/florienmf/portfolio-backend/internal/storage/mongodb"
)

// CreateRequest — входные данные для создания пользователя.
type CreateRequest struct {
	Name     string `json:"name" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Location string `json:"location" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin moderator"`
	Photo    string `json:"photo"`
}

// UpdateRequest — входные данные для частичного обновления профиля.
// Поля Password и PasswordConfirm декодируются только для того,
// чтобы отклонить запрос, если клиент пытается сменить пароль здесь.
type UpdateRequest struct {
	Name            *string `json:"name" validate:"omitempty,max=50"`
	Email           *string `json:"email" validate:"omitempty,email"`
	Location        *string `json:"location"`
	Role            *string `json:"role" validate:"omitempty,oneof=user admin moderator"`
	Photo           *string `json:"photo"`
	Password        *string `json:"password"`
	PasswordConfirm *string `json:"passwordConfirm"`
}

// UpdatePasswordRequest — входные данные выделенного маршрута смены пароля.
type UpdatePasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

// Service описывает интерфейс бизнес-логики пользователей.
type Service interface {
	Create(ctx context.Context, u *models.User, rawPassword string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, id string, input userservice.UpdateInput) (*models.User, error)
	Delete(ctx context.Context, id string) error
	UpdatePassword(ctx context.Context, id, rawPassword string) error
}

// Handler обрабатывает HTTP-запросы управления пользователями.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
	err      *httperr.Normalizer
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, norm *httperr.Normalizer) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validate.New(),
		err:      norm,
	}
}

// List godoc
// @Summary Список пользователей
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse "Пользователи не найдены"
// @Router /users [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.List"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	users, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		h.err.Respond(w, r, err)
		return
	}
	if len(users) == 0 {
		h.err.Respond(w, r, apperror.New(http.StatusNotFound, "No users found"))
		return
	}

	render.JSON(w, r, response.SuccessList(len(users), users))
}

// Create godoc
// @Summary Создание пользователя
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRequest true "Данные пользователя"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации или дубликат email"
// @Router /users [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.Create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		h.err.Respond(w, r, apperror.New(http.StatusBadRequest, "Invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		h.err.Respond(w, r, err)
		return
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Location: req.Location,
		Role:     req.Role,
		Photo:    req.Photo,
	}
	created, err := h.service.Create(r.Context(), user, req.Password)
	if err != nil {
		log.Error("failed to create user", sl.Err(err))
		h.err.Respond(w, r, err)
		return
	}

	log.Info("user created", slog.String("id", created.ID.Hex()))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.Success(created))
}

// Read godoc
// @Summary Пользователь по ID
// @Tags Users
// @Produce json
// @Param id path string true "ID пользователя"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /users/{id} [get]
func (h *Handler) Read(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.Read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, mongodb.ErrNotFound) {
		h.err.Respond(w, r, apperror.New(http.StatusNotFound, "No user found with that ID"))
		return
	}
	if err != nil {
		log.Error("failed to read user", sl.Err(err))
		h.err.Respond(w, r, err)
		return
	}

	render.JSON(w, r, response.Success(user))
}

// Update godoc
// @Summary Обновление профиля
// @Description Частичное обновление полей профиля. Поля пароля отклоняются.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID пользователя"
// @Param request body UpdateRequest true "Изменяемые поля"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /users/{id} [patch]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.Update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		h.err.Respond(w, r, apperror.New(http.StatusBadRequest, "Invalid request body"))
		return
	}

	if req.Password != nil || req.PasswordConfirm != nil {
		log.Error("password field in profile update")
		h.err.Respond(w, r, apperror.New(http.StatusBadRequest,
			"This route is not for password updates. Please use /api/users/{id}/password."))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		h.err.Respond(w, r, err)
		return
	}

	updated, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), userservice.UpdateInput{
		Name:     req.Name,
		Email:    req.Email,
		Location: req.Location,
		Role:     req.Role,
		Photo:    req.Photo,
	})
	if errors.Is(err, mongodb.ErrNotFound) {
		h.err.Respond(w, r, apperror.New(http.StatusNotFound, "No user found with that ID"))
		return
	}
	if err != nil {
		log.Error("failed to update user", sl.Err(err))
		h.err.Respond(w, r, err)
		return
	}

	render.JSON(w, r, response.Success(updated))
}

// Remove godoc
// @Summary Удаление пользователя
// @Tags Users
// @Security BearerAuth
// @Param id path string true "ID пользователя"
// @Success 204 "Пользователь удалён"
// @Failure 404 {object} response.ErrorResponse
// @Router /users/{id} [delete]
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.Remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, mongodb.ErrNotFound) {
		h.err.Respond(w, r, apperror.New(http.StatusNotFound, "No user found with that ID"))
		return
	}
	if err != nil {
		log.Error("failed to delete user", sl.Err(err))
		h.err.Respond(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdatePassword godoc
// @Summary Смена пароля
// @Description Выделенный маршрут смены пароля: доступен владельцу учётной записи и администратору.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID пользователя"
// @Param request body UpdatePasswordRequest true "Новый пароль"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /users/{id}/password [patch]
func (h *Handler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.UpdatePassword"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	actor, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		h.err.Respond(w, r, apperror.New(http.StatusUnauthorized,
			"You are not logged in! Please log in to get access"))
		return
	}
	if actor.ID.Hex() != id && actor.Role != models.RoleAdmin {
		h.err.Respond(w, r, apperror.New(http.StatusForbidden,
			"You do not have permission to perform this action"))
		return
	}

	var req UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		h.err.Respond(w, r, apperror.New(http.StatusBadRequest, "Invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		h.err.Respond(w, r, err)
		return
	}

	err := h.service.UpdatePassword(r.Context(), id, req.Password)
	if errors.Is(err, mongodb.ErrNotFound) {
		h.err.Respond(w, r, apperror.New(http.StatusNotFound, "No user found with that ID"))
		return
	}
	if err != nil {
		log.Error("failed to update password", sl.Err(err))
		h.err.Respond(w, r, err)
		return
	}

	log.Info("password updated", slog.String("id", id))
	render.JSON(w, r, response.SuccessMessage("Password updated successfully"))
}
