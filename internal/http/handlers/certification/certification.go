// Package certification реализует HTTP-обработчики раздела сертификатов,
// наград и пройденных курсов.
package certification

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
	certservice "github.com/florienmf/portfolio-backend/internal/services/certification"
	"github.com/florienmf/portfolio-backend/internal/storage/mongodb"
)

// CreateRequest — входные данные для создания сертификата.
type CreateRequest struct {
	Title       string   `json:"title" validate:"required"`
	Year        string   `json:"year" validate:"required"`
	Type        string   `json:"type" validate:"required,oneof=certification award course"`
	Highlight   bool     `json:"highlight"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	Issuer      string   `json:"issuer"`
}

// UpdateRequest — входные данные для частичного обновления сертификата.
type UpdateRequest struct {
	Title       *string   `json:"title"`
	Year        *string   `json:"year"`
	Type        *string   `json:"type" validate:"omitempty,oneof=certification award course"`
	Highlight   *bool     `json:"highlight"`
	Description *string   `json:"description"`
	Skills      *[]string `json:"skills"`
	Issuer      *string   `json:"issuer"`
}

// Service описывает интерфейс бизнес-логики раздела.
type Service interface {
	Create(ctx context.Context, cert *models.Certification) (*models.Certification, error)
	List(ctx context.Context) ([]*models.Certification, error)
	Get(ctx context.Context, id string) (*models.Certification, error)
	Update(ctx context.Context, id string, input certservice.UpdateInput) (*models.Certification, error)
	Delete(ctx context.Context, id string) error
}

// Handler обрабатывает HTTP-запросы раздела сертификатов.
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
// @Summary Список сертификатов
// @Tags Certifications
// @Produce json
// @Success 200 {object} response.Response
// @Router /certifications [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.certification.List"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	items, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list certifications", sl.Err(err))
		h.err.Respond(w, r, err)
		return
	}

	render.JSON(w, r, response.SuccessList(len(items), items))
}

// Create godoc
// @Summary Создание сертификата
// @Tags Certifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRequest true "Данные сертификата"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Router /certifications [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.certification.Create"

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

	created, err := h.service.Create(r.Context(), &models.Certification{
		Title:       req.Title,
		Year:        req.Year,
		Type:        req.Type,
		Highlight:   req.Highlight,
		Description: req.Description,
		Skills:      req.Skills,
		Issuer:      req.Issuer,
	})
	if err != nil {
		log.Error("failed to create certification", sl.Err(err))
		h.err.Respond(w, r, err)
		return
	}

	log.Info("certification created", slog.String("id", created.ID.Hex()))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.Success(created))
}

// Read godoc
// @Summary Сертификат по ID
// @Tags Certifications
// @Produce json
// @Param id path string true "ID сертификата"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /certifications/{id} [get]
func (h *Handler) Read(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.certification.Read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	item, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, mongodb.ErrNotFound) {
		h.err.Respond(w, r, apperror.New(http.StatusNotFound, "Certification not found"))
		return
	}
	if err != nil {
		log.Error("failed to read certification", sl.Err(err))
		h.err.Respond(w, r, err)
		return
	}

	render.JSON(w, r, response.Success(item))
}

// Update godoc
// @Summary Обновление сертификата
// @Tags Certifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID сертификата"
// @Param request body UpdateRequest true "Изменяемые поля"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /certifications/{id} [patch]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.certification.Update"

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

	updated, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), certservice.UpdateInput{
		Title:       req.Title,
		Year:        req.Year,
		Type:        req.Type,
		Highlight:   req.Highlight,
		Description: req.Description,
		Skills:      req.Skills,
		Issuer:      req.Issuer,
	})
	if errors.Is(err, mongodb.ErrNotFound) {
		h.err.Respond(w, r, apperror.New(http.StatusNotFound, "Certification not found"))
		return
	}
	if err != nil {
		log.Error("failed to update certification", sl.Err(err))
		h.err.Respond(w, r, err)
		return
	}

	render.JSON(w, r, response.Success(updated))
}

// Remove godoc
// @Summary Удаление сертификата
// @Tags Certifications
// @Security BearerAuth
// @Param id path string true "ID сертификата"
// @Success 204 "Сертификат удалён"
// @Failure 404 {object} response.ErrorResponse
// @Router /certifications/{id} [delete]
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.certification.Remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, mongodb.ErrNotFound) {
		h.err.Respond(w, r, apperror.New(http.StatusNotFound, "Certification not found"))
		return
	}
	if err != nil {
		log.Error("failed to delete certification", sl.Err(err))
		h.err.Respond(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
