package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/linemk/farmconnect/internal/domain/models"
)

type UserStorage interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserStorage {
	return &userRepository{db: db}
}

// CreateUser сохраняет пользователя; email уникален на уровне БД
func (r *userRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO users (name, email, password, user_type) VALUES ($1, $2, $3, $4) RETURNING user_id, created_at",
		user.Name, user.Email, user.PassHash, user.UserType,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isPQCode(err, pqUniqueViolation) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT user_id, name, email, password, user_type, created_at FROM users WHERE email = $1", email)
	return scanUser(row)
}

func (r *userRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT user_id, name, email, password, user_type, created_at FROM users WHERE user_id = $1", id)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PassHash, &user.UserType, &user.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
