// Package validate создаёт настроенный валидатор входных данных.
// Имена полей в ошибках берутся из json-тегов, чтобы клиент видел
// те же имена, что отправлял в запросе.
package validate

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator"
)

// New возвращает валидатор, который в ошибках использует имя поля
// из json-тега структуры запроса.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
