// Package contact реализует HTTP-обработчики контактной формы.
//
// Создание обращения открыто для всех посетителей; просмотр, изменение
// и удаление доступны только администратору.
package contact

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
	"github.com/florienmf/portfolio-backend/internal/http/response"
	"github.com/florienmf/portfolio-backend/internal/lib/sl"
	"github.com/florienmf/portfolio-backend/internal/lib/validate"
	"github.com/florienmf/portfolio-backend/internal/models"
	contactservice "github.com/florienmf/portfolio-backend/internal/services/contact"
	"github.com/florienmf/portfolio-backend/internal/storage/mongodb"
)

// CreateRequest — входные данные контактной формы.
type CreateRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=50"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,min=5,max=100"`
	Message string `json:"message" validate:"required,min=10,max=1000"`
}

// UpdateRequest — входные данные для частичного обновления обращения.
type UpdateRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=2,max=50"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Subject *string `json:"subject" validate:"omitempty,min=5,max=100"`
	Message *string `json:"message" validate:"omitempty,min=10,max=1000"`
}

// Service описывает интерфейс бизнес-логики обращений.
type Service interface {
	Create(ctx context.Context, c *models.Contact) (*models.Contact, error)
	List(ctx context.Context) ([]*models.Contact, error)
	Get(ctx context.Context, id string) (*models.Contact, error)
	Update(ctx context.Context, id string, input contactservice.UpdateInput) (*models.Contact, error)
	Delete(ctx context.Context, id string) error
}

// Handler обрабатывает HTTP-запросы контактной формы.
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

// Create godoc
// @Summary Отправка обращения через контактную форму
// @Description Сохраняет обращение и асинхронно отправляет почтовое уведомление.
// @Tags Contacts
// @Accept json
// @Produce json
// @Param request body CreateRequest true "Данные обращения"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Router /contacts [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contact.Create"

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

	created, err := h.service.Create(r.Context(), &models.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		log.Error("failed to create contact", sl.Err(err))
		h.err.Respond(w, r, err)
		return
	}

	log.Info("contact created", slog.String("id", created.ID.Hex()))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.Success(created))
}

// List godoc
// @Summary Список обращений
// @Tags Contacts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /contacts [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contact.List"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	items, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list contacts", sl.Err(err))
		h.err.Respond(w, r, err)
		return
	}

	render.JSON(w, r, response.SuccessList(len(items), items))
}

// Read godoc
// @Summary Обращение по ID
// @Tags Contacts
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID обращения"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /contacts/{id} [get]
func (h *Handler) Read(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contact.Read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	item, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, mongodb.ErrNotFound) {
		h.err.Respond(w, r, apperror.New(http.StatusNotFound, "Contact not found"))
		return
	}
	if err != nil {
		log.Error("failed to read contact", sl.Err(err))
		h.err.Respond(w, r, err)
		return
	}

	render.JSON(w, r, response.Success(item))
}

// Update godoc
// @Summary Обновление обращения
// @Tags Contacts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID обращения"
// @Param request body UpdateRequest true "Изменяемые поля"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /contacts/{id} [patch]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contact.Update"

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
	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		h.err.Respond(w, r, err)
		return
	}

	updated, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), contactservice.UpdateInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if errors.Is(err, mongodb.ErrNotFound) {
		h.err.Respond(w, r, apperror.New(http.StatusNotFound, "Contact not found"))
		return
	}
	if err != nil {
		log.Error("failed to update contact", sl.Err(err))
		h.err.Respond(w, r, err)
		return
	}

	render.JSON(w, r, response.Success(updated))
}

// Remove godoc
// @Summary Удаление обращения
// @Tags Contacts
// @Security BearerAuth
// @Param id path string true "ID обращения"
// @Success 204 "Обращение удалено"
// @Failure 404 {object} response.ErrorResponse
// @Router /contacts/{id} [delete]
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contact.Remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, mongodb.ErrNotFound) {
		h.err.Respond(w, r, apperror.New(http.StatusNotFound, "Contact not found"))
		return
	}
	if err != nil {
		log.Error("failed to delete contact", sl.Err(err))
		h.err.Respond(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
