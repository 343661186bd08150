package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/linemk/farmconnect/internal/domain/models"
	"github.com/linemk/farmconnect/internal/security"
	"github.com/linemk/farmconnect/internal/storage"
)

type AuthService struct {
	log       *slog.Logger
	userRepo  storage.UserStorage
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(log *slog.Logger, userRepo storage.UserStorage, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		log:       log,
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

type AuthServiceInterface interface {
	Register(ctx context.Context, name, email, password, userType string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Profile(ctx context.Context, userID int64) (*models.User, error)
}

// LoginResult - результат успешного входа
type LoginResult struct {
	UserID   int64
	UserType string
	Token    string
}

// хэш для сравнения, когда пользователь не найден: время ответа не выдаёт, существует ли email
var dummyHash = sync.OnceValue(func() []byte {
	hash, _ := bcrypt.GenerateFromPassword([]byte("farmconnect-dummy-password"), bcrypt.DefaultCost)
	return hash
})

// Register создаёт пользователя. Пароль хэшируется через bcrypt (соль добавляется автоматически).
func (a *AuthService) Register(ctx context.Context, name, email, password, userType string) (*models.User, error) {
	const op = "auth.Register"
	logger := a.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)

	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" || strings.TrimSpace(userType) == "" {
		logger.Warn("missing required fields")
		return nil, fmt.Errorf("%s: name, email, password and user_type are required: %w", op, ErrValidation)
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("failed to hash password", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to hash password: %w", op, err)
	}

	user, err := a.userRepo.CreateUser(ctx, &models.User{
		Name:     name,
		Email:    email,
		PassHash: passHash,
		UserType: userType,
	})
	if err != nil {
		if errors.Is(err, storage.ErrEmailExists) {
			logger.Info("email already registered")
			return nil, fmt.Errorf("%s: %w", op, ErrDuplicateEmail)
		}
		logger.Error("failed to create user", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to create user: %w", op, err)
	}

	logger.Info("user registered", slog.Int64("userID", user.ID), slog.String("userType", user.UserType))
	return user, nil
}

// Login проверяет email и пароль и выдаёт JWT-токен.
// Неизвестный email и неверный пароль неразличимы для клиента: в обоих случаях ErrInvalidCredentials.
func (a *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	const op = "auth.Login"
	logger := a.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)
	logger.Info("checking user")

	user, err := a.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
			logger.Warn("user not found")
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		logger.Error("failed to get user", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(password)); err != nil {
		logger.Warn("invalid password")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := security.NewToken(user, a.jwtSecret, a.tokenTTL)
	if err != nil {
		logger.Error("failed to generate token", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to generate token: %w", op, err)
	}

	logger.Info("user logged in successfully", slog.Int64("userID", user.ID))
	return &LoginResult{
		UserID:   user.ID,
		UserType: user.UserType,
		Token:    token,
	}, nil
}

// Profile возвращает пользователя по идентификатору из токена
func (a *AuthService) Profile(ctx context.Context, userID int64) (*models.User, error) {
	const op = "auth.Profile"

	user, err := a.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, fmt.Errorf("%s: user %d: %w", op, userID, ErrNotFound)
		}
		a.log.Error("failed to get user by id", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}
	return user, nil
}
