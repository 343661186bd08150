package models

import "time"

// роли пользователей; набор открытый, в БД хранится строка как есть
const (
	UserTypeFarmer = "farmer"
	UserTypeBuyer  = "buyer"
)

// User представляет зарегистрированного пользователя (фермера или покупателя)
type User struct {
	ID        int64
	Name      string
	Email     string
	PassHash  []byte
	UserType  string
	CreatedAt time.Time
}
