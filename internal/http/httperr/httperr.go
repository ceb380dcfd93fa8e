// Package httperr реализует нормализатор ошибок — единственную точку,
// через которую любой сбой обработчика или middleware превращается
// в JSON-ответ канонической формы {status, message}.
//
// Нормализатор классифицирует ошибку (операционная, некорректный
// идентификатор, нарушение уникальности, ошибка валидации, истёкший
// или некорректный токен, неизвестная), подбирает HTTP-статус и
// сообщение. Детали неизвестных ошибок и stack trace уходят клиенту
// только вне production; в production клиент видит обезличенное
// "Something went wrong!", а полная ошибка пишется в лог.
package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"runtime/debug"
	"strings"

	"log/slog"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/florienmf/portfolio-backend/internal/apperror"
	"github.com/florienmf/portfolio-backend/internal/http/response"
	"github.com/florienmf/portfolio-backend/internal/lib/sl"
)

// Фиксированные сообщения для ошибок токена.
const (
	msgTokenInvalid = "Invalid token. Please log in again!"
	msgTokenExpired = "Your token has expired! Please log in again."
	msgInternal     = "Something went wrong!"
)

// quotedValue выделяет первое значение в кавычках из текста ошибки
// драйвера. Go-драйвер MongoDB не отдаёт конфликтующее значение
// структурно, поэтому извлечение идёт по тексту сообщения.
var quotedValue = regexp.MustCompile(`"[^"]*"|'[^']*'`)

// Normalizer преобразует любую ошибку в канонический JSON-ответ.
type Normalizer struct {
	log        *slog.Logger
	production bool
}

// New создает нормализатор. Флаг production управляет видимостью
// деталей ошибок для клиента.
func New(log *slog.Logger, production bool) *Normalizer {
	return &Normalizer{
		log:        log,
		production: production,
	}
}

// Respond классифицирует ошибку и пишет JSON-ответ.
// Вызывается из каждого обработчика и middleware для любого сбоя.
func (n *Normalizer) Respond(w http.ResponseWriter, r *http.Request, err error) {
	const op = "httperr.Respond"

	log := n.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	statusCode := http.StatusInternalServerError
	resp := response.ErrorResponse{
		Status:  apperror.StatusError,
		Message: err.Error(),
	}
	operational := false

	var (
		appErr    *apperror.AppError
		castErr   *apperror.CastError
		fieldErrs validator.ValidationErrors
	)

	switch {
	case errors.As(err, &appErr):
		statusCode = appErr.StatusCode
		resp.Status = appErr.Status
		resp.Message = appErr.Message
		operational = appErr.IsOperational

	case errors.As(err, &castErr):
		statusCode = http.StatusBadRequest
		resp.Status = apperror.StatusFail
		resp.Message = fmt.Sprintf("Invalid %s: %s", castErr.Path, castErr.Value)
		operational = true

	case mongo.IsDuplicateKeyError(err):
		statusCode = http.StatusBadRequest
		resp.Status = apperror.StatusFail
		resp.Message = fmt.Sprintf("Duplicate field value: %s. Please use another value!", duplicateValue(err))
		operational = true

	case errors.As(err, &fieldErrs):
		statusCode = http.StatusBadRequest
		resp.Status = apperror.StatusFail
		resp.Message = "Invalid input data. " + joinFieldMessages(fieldErrs)
		operational = true
		if !n.production {
			for _, fe := range fieldErrs {
				resp.Errors = append(resp.Errors, response.FieldError{
					Field:   fe.Field(),
					Message: fieldMessage(fe),
				})
			}
		}

	case errors.Is(err, jwt.ErrTokenExpired):
		statusCode = http.StatusUnauthorized
		resp.Status = apperror.StatusFail
		resp.Message = msgTokenExpired
		operational = true

	case isTokenError(err):
		statusCode = http.StatusUnauthorized
		resp.Status = apperror.StatusFail
		resp.Message = msgTokenInvalid
		operational = true
	}

	if !operational {
		log.Error("unexpected error", sl.Err(err))
		if n.production {
			statusCode = http.StatusInternalServerError
			resp = response.ErrorResponse{
				Status:  apperror.StatusError,
				Message: msgInternal,
			}
		} else {
			resp.Stack = string(debug.Stack())
		}
	} else if statusCode >= 500 {
		log.Error("operational server error", sl.Err(err))
	}

	w.WriteHeader(statusCode)
	render.JSON(w, r, resp)
}

// duplicateValue извлекает конфликтующее значение из ошибки нарушения
// уникальности: первое значение в кавычках из текста сообщения,
// иначе буквальное "field".
func duplicateValue(err error) string {
	if match := quotedValue.FindString(err.Error()); match != "" {
		return match
	}
	return "field"
}

// isTokenError распознаёт ошибки проверки JWT, кроме истечения срока,
// которое классифицируется отдельно.
func isTokenError(err error) bool {
	for _, target := range []error{
		jwt.ErrTokenMalformed,
		jwt.ErrTokenSignatureInvalid,
		jwt.ErrSignatureInvalid,
		jwt.ErrTokenUnverifiable,
		jwt.ErrTokenInvalidClaims,
		jwt.ErrTokenNotValidYet,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// joinFieldMessages объединяет сообщения всех полей через ". ".
func joinFieldMessages(errs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return strings.Join(msgs, ". ")
}

// fieldMessage формирует человеко-читаемое сообщение для одного поля.
func fieldMessage(fe validator.FieldError) string {
	field := capitalize(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", field, fe.Param())
	case "email":
		return "Please enter a valid email"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is not valid", field)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
