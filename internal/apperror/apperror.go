// Package apperror определяет тип операционной ошибки с HTTP-статусом
// и фиксированным сообщением для клиента. Такие ошибки поднимаются
// осознанно (не найден ресурс, неверные учётные данные, нет прав)
// и проходят через нормализатор без изменений, в отличие от
// неклассифицированных программных ошибок.
package apperror

import "fmt"

// Статусы нормализованной ошибки.
// "fail" — ошибка по вине клиента (4xx), "error" — внутренняя ошибка (5xx).
const (
	StatusFail  = "fail"
	StatusError = "error"
)

// AppError представляет операционную ошибку с заранее назначенным
// HTTP-статусом и сообщением для клиента.
type AppError struct {
	StatusCode    int
	Status        string
	Message       string
	IsOperational bool
}

// Error реализует интерфейс error.
func (e *AppError) Error() string {
	return e.Message
}

// New создает операционную ошибку с указанным кодом и сообщением.
// Статус ("fail"/"error") выводится из кода: 4xx — вина клиента.
func New(statusCode int, message string) *AppError {
	status := StatusError
	if statusCode >= 400 && statusCode < 500 {
		status = StatusFail
	}
	return &AppError{
		StatusCode:    statusCode,
		Status:        status,
		Message:       message,
		IsOperational: true,
	}
}

// CastError возникает, когда значение из запроса не удаётся привести
// к типу поля хранилища (например, некорректный идентификатор документа).
type CastError struct {
	Path  string // Имя поля
	Value string // Полученное значение
}

// Error реализует интерфейс error.
func (e *CastError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Path, e.Value)
}
