// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON-ответов HTTP-обработчиков. Успешные ответы имеют
// статус "success"; ошибки формируются нормализатором (пакет httperr)
// со статусами "fail" (вина клиента) и "error" (внутренний сбой).
package response

// StatusSuccess — значение статуса для успешного ответа.
const StatusSuccess = "success"

// Response описывает стандартную структуру успешного JSON-ответа сервера.
type Response struct {
	Status  string `json:"status"`
	Token   string `json:"token,omitempty"`
	Message string `json:"message,omitempty"`
	Results *int   `json:"results,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse — каноническая структура ошибки, которую формирует
// нормализатор. Поля Errors и Stack заполняются только вне production.
type ErrorResponse struct {
	Status  string       `json:"status" example:"fail"`
	Message string       `json:"message" example:"No user found with that ID"`
	Errors  []FieldError `json:"errors,omitempty"`
	Stack   string       `json:"stack,omitempty"`
}

// FieldError описывает одну ошибку валидации конкретного поля.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Success возвращает успешный Response с переданными данными.
func Success(data any) Response {
	return Response{
		Status: StatusSuccess,
		Data:   data,
	}
}

// SuccessList возвращает успешный Response со списком и количеством элементов.
func SuccessList(results int, data any) Response {
	return Response{
		Status:  StatusSuccess,
		Results: &results,
		Data:    data,
	}
}

// SuccessMessage возвращает успешный Response с текстовым сообщением.
func SuccessMessage(msg string) Response {
	return Response{
		Status:  StatusSuccess,
		Message: msg,
	}
}

// SuccessWithToken возвращает успешный Response с токеном доступа и данными.
// Используется при входе в систему.
func SuccessWithToken(token string, data any) Response {
	return Response{
		Status: StatusSuccess,
		Token:  token,
		Data:   data,
	}
}
