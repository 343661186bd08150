package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/linemk/farmconnect/internal/security/jwtmiddleware"
	"github.com/linemk/farmconnect/internal/service"
)

// RegisterRequest представляет структуру запроса на регистрацию с тегами валидации
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	UserType string `json:"user_type" validate:"required"`
}

// LoginRequest представляет структуру запроса на вход
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse - ответ при успешном входе
type LoginResponse struct {
	Message  string `json:"message"`
	UserType string `json:"user_type"`
	UserID   int64  `json:"user_id"`
	Token    string `json:"token"`
}

// ProfileResponse - данные текущего пользователя
type ProfileResponse struct {
	UserID   int64  `json:"user_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	UserType string `json:"user_type"`
}

// RegisterHandler обрабатывает POST /api/register
func RegisterHandler(log *slog.Logger, authService service.AuthServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.RegisterHandler"
		logger := log.With(slog.String("op", op))

		var req RegisterRequest
		if msg, ok := decodeAndValidate(r, &req); !ok {
			logger.Warn("invalid register request", slog.String("reason", msg))
			writeError(w, logger, http.StatusBadRequest, msg)
			return
		}

		if _, err := authService.Register(r.Context(), req.Name, req.Email, req.Password, req.UserType); err != nil {
			logger.Warn("registration failed", slog.Any("error", err))
			writeServiceError(w, logger, err)
			return
		}

		writeJSON(w, logger, http.StatusCreated, MessageResponse{Message: "User registered successfully"})
	}
}

// LoginHandler обрабатывает POST /api/login
func LoginHandler(log *slog.Logger, authService service.AuthServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.LoginHandler"
		logger := log.With(slog.String("op", op))

		var req LoginRequest
		if msg, ok := decodeAndValidate(r, &req); !ok {
			logger.Warn("invalid login request", slog.String("reason", msg))
			writeError(w, logger, http.StatusBadRequest, msg)
			return
		}

		res, err := authService.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			logger.Warn("login failed", slog.Any("error", err))
			writeServiceError(w, logger, err)
			return
		}

		writeJSON(w, logger, http.StatusOK, LoginResponse{
			Message:  "Login successful",
			UserType: res.UserType,
			UserID:   res.UserID,
			Token:    res.Token,
		})
	}
}

// ProfileHandler обрабатывает GET /api/users/me; userID кладёт в контекст JWT-middleware
func ProfileHandler(log *slog.Logger, authService service.AuthServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ProfileHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("userID not found in context")
			writeError(w, logger, http.StatusUnauthorized, "Unauthorized")
			return
		}

		user, err := authService.Profile(r.Context(), userID)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				writeError(w, logger, http.StatusNotFound, "User not found")
				return
			}
			writeServiceError(w, logger, err)
			return
		}

		writeJSON(w, logger, http.StatusOK, ProfileResponse{
			UserID:   user.ID,
			Name:     user.Name,
			Email:    user.Email,
			UserType: user.UserType,
		})
	}
}
