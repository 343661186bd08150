package service

import "errors"

// Ошибки сервисного слоя; транспорт сопоставляет их с HTTP-статусами через errors.Is
var (
	ErrValidation         = errors.New("validation error")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
)
