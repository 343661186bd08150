package storage

import (
	"errors"

	"github.com/lib/pq"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrEmailExists       = errors.New("email already exists")
	ErrReferenceNotFound = errors.New("referenced user or product does not exist")
	ErrProductHasOrders  = errors.New("product is referenced by orders")
)

// коды ошибок PostgreSQL, которые переводятся в доменные ошибки
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// isPQCode проверяет, что err (или обёрнутая в неё ошибка) - ошибка драйвера pq с указанным кодом
func isPQCode(err error, code string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == code
	}
	return false
}
