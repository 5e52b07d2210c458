// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов об ошибках. Тело каждой ошибки несет момент
// возникновения, числовой статус, текст статуса, сообщение и путь запроса;
// ошибки валидации дополнительно несут словарь поле→сообщение.
package response

import (
	"fmt"
	"net/http"
	"time"
	"unicode"

	"github.com/go-playground/validator"
)

// ErrorResponse описывает стандартную структуру JSON‑ответа с ошибкой.
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp" example:"2025-01-01T10:00:00Z"`
	Status    int       `json:"status" example:"400"`
	Error     string    `json:"error" example:"Bad Request"`
	Message   string    `json:"message" example:"invalid request body"`
	Path      string    `json:"path" example:"/api/users"`
}

// ValidationErrorResponse ответ с ошибками валидации: к стандартной
// структуре добавляется словарь поле→сообщение.
type ValidationErrorResponse struct {
	ErrorResponse
	Errors map[string]string `json:"errors"`
}

// Error формирует ответ с ошибкой для данного запроса и статуса.
func Error(r *http.Request, status int, msg string) ErrorResponse {
	return ErrorResponse{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   msg,
		Path:      r.URL.Path,
	}
}

// ValidationError формирует ответ со словарем поле→сообщение на основе
// ошибок валидации структуры запроса.
func ValidationError(r *http.Request, errs validator.ValidationErrors) ValidationErrorResponse {
	fields := make(map[string]string, len(errs))

	for _, err := range errs {
		name := jsonField(err.Field())
		switch err.ActualTag() {
		case "required":
			fields[name] = fmt.Sprintf("field %s is a required field", name)
		case "min":
			fields[name] = fmt.Sprintf("field %s is below the minimum of %s", name, err.Param())
		case "max":
			fields[name] = fmt.Sprintf("field %s exceeds the maximum of %s", name, err.Param())
		case "gt":
			fields[name] = fmt.Sprintf("field %s must be greater than %s", name, err.Param())
		case "email":
			fields[name] = fmt.Sprintf("field %s must be a valid email address", name)
		case "oneof":
			fields[name] = fmt.Sprintf("field %s must be one of: %s", name, err.Param())
		case "datetime":
			fields[name] = fmt.Sprintf("field %s can contain only date in format %s", name, err.Param())
		default:
			fields[name] = fmt.Sprintf("field %s is not a valid", name)
		}
	}
	return ValidationErrorResponse{
		ErrorResponse: Error(r, http.StatusBadRequest, "Validation failed"),
		Errors:        fields,
	}
}

// jsonField приводит имя поля структуры к имени в JSON (FullName -> fullName).
func jsonField(name string) string {
	if name == "" {
		return name
	}
	runes := []rune(name)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}
