package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/linemk/farmconnect/internal/domain/models"
)

// OrderStorage описывает методы для работы с заказами.
type OrderStorage interface {
	// CreateOrder вставляет строку заказа в рамках транзакции и заполняет ID и время создания.
	CreateOrder(ctx context.Context, tx *sql.Tx, order *models.Order) error
	// GetOrdersByBuyerID возвращает заказы покупателя с JOIN на products (текущие название и цена).
	GetOrdersByBuyerID(ctx context.Context, buyerID int64) ([]*models.OrderHistoryEntry, error)
}

// orderRepository - конкретная реализация OrderStorage.
type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт новый репозиторий заказов.
func NewOrderRepository(db *sql.DB) OrderStorage {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateOrder(ctx context.Context, tx *sql.Tx, order *models.Order) error {
	query := `INSERT INTO orders (buyer_id, product_id, quantity, status)
	          VALUES ($1, $2, $3, $4) RETURNING order_id, created_at`
	err := tx.QueryRowContext(ctx, query, order.BuyerID, order.ProductID, order.Quantity, order.Status).
		Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		if isPQCode(err, pqForeignKeyViolation) {
			return ErrReferenceNotFound
		}
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *orderRepository) GetOrdersByBuyerID(ctx context.Context, buyerID int64) ([]*models.OrderHistoryEntry, error) {
	query := `
		SELECT o.order_id, o.quantity, o.status, p.product_name, p.price
		FROM orders o
		JOIN products p ON o.product_id = p.product_id
		WHERE o.buyer_id = $1
		ORDER BY o.order_id`
	rows, err := r.db.QueryContext(ctx, query, buyerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*models.OrderHistoryEntry, 0)
	for rows.Next() {
		entry := &models.OrderHistoryEntry{}
		if err := rows.Scan(&entry.OrderID, &entry.Quantity, &entry.Status, &entry.ProductName, &entry.Price); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}
