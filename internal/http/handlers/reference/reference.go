// Package reference реализует HTTP-обработчики раздела рекомендаций.
package reference

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
	refservice "github.com/florienmf/portfolio-backend/internal/services/reference"
	"github.com/florienmf/portfolio-backend/internal/storage/mongodb"
)

// CreateRequest — входные данные для создания рекомендации.
type CreateRequest struct {
	Title       string `json:"title" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Profile     string `json:"profile" validate:"required"`
}

// UpdateRequest — входные данные для частичного обновления рекомендации.
type UpdateRequest struct {
	Title       *string `json:"title"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Profile     *string `json:"profile"`
}

// Service описывает интерфейс бизнес-логики раздела.
type Service interface {
	Create(ctx context.Context, ref *models.Reference) (*models.Reference, error)
	List(ctx context.Context) ([]*models.Reference, error)
	Get(ctx context.Context, id string) (*models.Reference, error)
	Update(ctx context.Context, id string, input refservice.UpdateInput) (*models.Reference, error)
	Delete(ctx context.Context, id string) error
}

// Handler обрабатывает HTTP-запросы раздела рекомендаций.
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
// @Summary Список рекомендаций
// @Tags References
// @Produce json
// @Success 200 {object} response.Response
// @Router /references [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reference.List"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	items, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list references", sl.Err(err))
		h.err.Respond(w, r, err)
		return
	}

	render.JSON(w, r, response.SuccessList(len(items), items))
}

// Create godoc
// @Summary Создание рекомендации
// @Tags References
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRequest true "Данные рекомендации"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Router /references [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reference.Create"

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

	created, err := h.service.Create(r.Context(), &models.Reference{
		Title:       req.Title,
		Name:        req.Name,
		Description: req.Description,
		Profile:     req.Profile,
	})
	if err != nil {
		log.Error("failed to create reference", sl.Err(err))
		h.err.Respond(w, r, err)
		return
	}

	log.Info("reference created", slog.String("id", created.ID.Hex()))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.Success(created))
}

// Read godoc
// @Summary Рекомендация по ID
// @Tags References
// @Produce json
// @Param id path string true "ID рекомендации"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /references/{id} [get]
func (h *Handler) Read(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reference.Read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	item, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, mongodb.ErrNotFound) {
		h.err.Respond(w, r, apperror.New(http.StatusNotFound, "Reference not found"))
		return
	}
	if err != nil {
		log.Error("failed to read reference", sl.Err(err))
		h.err.Respond(w, r, err)
		return
	}

	render.JSON(w, r, response.Success(item))
}

// Update godoc
// @Summary Обновление рекомендации
// @Tags References
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID рекомендации"
// @Param request body UpdateRequest true "Изменяемые поля"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /references/{id} [patch]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reference.Update"

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

	updated, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), refservice.UpdateInput{
		Title:       req.Title,
		Name:        req.Name,
		Description: req.Description,
		Profile:     req.Profile,
	})
	if errors.Is(err, mongodb.ErrNotFound) {
		h.err.Respond(w, r, apperror.New(http.StatusNotFound, "Reference not found"))
		return
	}
	if err != nil {
		log.Error("failed to update reference", sl.Err(err))
		h.err.Respond(w, r, err)
		return
	}

	render.JSON(w, r, response.Success(updated))
}

// Remove godoc
// @Summary Удаление рекомендации
// @Tags References
// @Security BearerAuth
// @Param id path string true "ID рекомендации"
// @Success 204 "Рекомендация удалена"
// @Failure 404 {object} response.ErrorResponse
// @Router /references/{id} [delete]
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reference.Remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, mongodb.ErrNotFound) {
		h.err.Respond(w, r, apperror.New(http.StatusNotFound, "Reference not found"))
		return
	}
	if err != nil {
		log.Error("failed to delete reference", sl.Err(err))
		h.err.Respond(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
