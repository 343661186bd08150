package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/linemk/farmconnect/internal/service"
)

// MessageResponse - стандартный ответ об успешной операции
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

var validate = newValidator()

// newValidator возвращает валидатор, который называет поля по json-тегам
func newValidator() *validator.Validate {
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

// validationMessage перечисляет поля, не прошедшие валидацию
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Validation error"
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return "Invalid or missing fields: " + strings.Join(fields, ", ")
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func writeError(w http.ResponseWriter, logger *slog.Logger, status int, msg string) {
	writeJSON(w, logger, status, ErrorResponse{Error: msg})
}

// writeServiceError сопоставляет ошибку сервисного слоя с HTTP-статусом.
// Внутренние ошибки клиенту не раскрываются.
func writeServiceError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		writeError(w, logger, http.StatusBadRequest, "Validation error")
	case errors.Is(err, service.ErrDuplicateEmail):
		writeError(w, logger, http.StatusConflict, "Email already registered")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, logger, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, service.ErrNotFound):
		writeError(w, logger, http.StatusNotFound, "Not found")
	case errors.Is(err, service.ErrConflict):
		writeError(w, logger, http.StatusConflict, "Conflict")
	default:
		logger.Error("internal error", slog.Any("error", err))
		writeError(w, logger, http.StatusInternalServerError, "Internal server error")
	}
}

// decodeAndValidate разбирает JSON-тело запроса и проверяет его теги validate
func decodeAndValidate(r *http.Request, dst any) (string, bool) {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return "Invalid request", false
	}
	if err := validate.Struct(dst); err != nil {
		return validationMessage(err), false
	}
	return "", true
}

// idParam извлекает положительный числовой параметр пути
func idParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// flexInt принимает целое как JSON-число или как строку ("12"):
// формы фронтенда отправляют числовые поля строками
type flexInt int64

func (n *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		*n = 0
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid integer %s", b)
	}
	*n = flexInt(v)
	return nil
}
