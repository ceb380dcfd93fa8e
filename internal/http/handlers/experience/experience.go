// Package experience реализует HTTP-обработчики раздела «опыт работы».
package experience

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

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
	expservice "github.com/florienmf/portfolio-backend/internal/services/experience"
	"github.com/florienmf/portfolio-backend/internal/storage/mongodb"
)

// CreateRequest — входные данные для создания записи об опыте работы.
type CreateRequest struct {
	Company     string    `json:"company" validate:"required"`
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description" validate:"required"`
	StartDate   time.Time `json:"startingDate" validate:"required"`
	EndDate     time.Time `json:"endingDate" validate:"required"`
}

// UpdateRequest — входные данные для частичного обновления записи.
type UpdateRequest struct {
	Company     *string    `json:"company"`
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	StartDate   *time.Time `json:"startingDate"`
	EndDate     *time.Time `json:"endingDate"`
}

// Service описывает интерфейс бизнес-логики раздела.
type Service interface {
	Create(ctx context.Context, exp *models.Experience) (*models.Experience, error)
	List(ctx context.Context) ([]*models.Experience, error)
	Get(ctx context.Context, id string) (*models.Experience, error)
	Update(ctx context.Context, id string, input expservice.UpdateInput) (*models.Experience, error)
	Delete(ctx context.Context, id string) error
}

// Handler обрабатывает HTTP-запросы раздела «опыт работы».
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
// @Summary Список записей об опыте работы
// @Tags Experiences
// @Produce json
// @Success 200 {object} response.Response
// @Router /experiences [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.experience.List"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	items, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list experiences", sl.Err(err))
		h.err.Respond(w, r, err)
		return
	}

	render.JSON(w, r, response.SuccessList(len(items), items))
}

// Create godoc
// @Summary Создание записи об опыте работы
// @Tags Experiences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRequest true "Данные записи"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Router /experiences [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.experience.Create"

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

	created, err := h.service.Create(r.Context(), &models.Experience{
		Company:     req.Company,
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		log.Error("failed to create experience", sl.Err(err))
		h.err.Respond(w, r, err)
		return
	}

	log.Info("experience created", slog.String("id", created.ID.Hex()))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.Success(created))
}

// Read godoc
// @Summary Запись об опыте работы по ID
// @Tags Experiences
// @Produce json
// @Param id path string true "ID записи"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /experiences/{id} [get]
func (h *Handler) Read(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.experience.Read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	item, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, mongodb.ErrNotFound) {
		h.err.Respond(w, r, apperror.New(http.StatusNotFound, "Experience not found"))
		return
	}
	if err != nil {
		log.Error("failed to read experience", sl.Err(err))
		h.err.Respond(w, r, err)
		return
	}

	render.JSON(w, r, response.Success(item))
}

// Update godoc
// @Summary Обновление записи об опыте работы
// @Tags Experiences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID записи"
// @Param request body UpdateRequest true "Изменяемые поля"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /experiences/{id} [patch]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.experience.Update"

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

	updated, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), expservice.UpdateInput{
		Company:     req.Company,
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if errors.Is(err, mongodb.ErrNotFound) {
		h.err.Respond(w, r, apperror.New(http.StatusNotFound, "Experience not found"))
		return
	}
	if err != nil {
		log.Error("failed to update experience", sl.Err(err))
		h.err.Respond(w, r, err)
		return
	}

	render.JSON(w, r, response.Success(updated))
}

// Remove godoc
// @Summary Удаление записи об опыте работы
// @Tags Experiences
// @Security BearerAuth
// @Param id path string true "ID записи"
// @Success 204 "Запись удалена"
// @Failure 404 {object} response.ErrorResponse
// @Router /experiences/{id} [delete]
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.experience.Remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, mongodb.ErrNotFound) {
		h.err.Respond(w, r, apperror.New(http.StatusNotFound, "Experience not found"))
		return
	}
	if err != nil {
		log.Error("failed to delete experience", sl.Err(err))
		h.err.Respond(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
