package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const OrderStatusPending = "pending"

// Order - одна строка заказа, создаётся на каждую позицию корзины
type Order struct {
	ID        int64
	BuyerID   int64
	ProductID int64
	Quantity  int
	Status    string
	CreatedAt time.Time
}

// LineItem - позиция корзины при оформлении заказа
type LineItem struct {
	ProductID int64
	Quantity  int
}

// OrderHistoryEntry - заказ покупателя вместе с текущими названием и ценой товара (JOIN с products)
type OrderHistoryEntry struct {
	OrderID     int64           `json:"order_id"`
	Quantity    int             `json:"quantity"`
	Status      string          `json:"status"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
}
