package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/linemk/farmconnect/internal/domain/models"
	"github.com/linemk/farmconnect/internal/storage"
)

type OrderService interface {
	PlaceOrder(ctx context.Context, buyerID int64, items []models.LineItem) ([]*models.Order, error)
	ListOrdersForBuyer(ctx context.Context, buyerID int64) ([]*models.OrderHistoryEntry, error)
}

type orderService struct {
	log       *slog.Logger
	orderRepo storage.OrderStorage
	db        *sql.DB
}

func NewOrderService(log *slog.Logger, db *sql.DB, orderRepo storage.OrderStorage) OrderService {
	return &orderService{
		log:       log,
		db:        db,
		orderRepo: orderRepo,
	}
}

// PlaceOrder создаёт по одной строке заказа на каждую позицию корзины.
// Все вставки выполняются в одной транзакции: при любой ошибке откатывается весь заказ
func (s *orderService) PlaceOrder(ctx context.Context, buyerID int64, items []models.LineItem) ([]*models.Order, error) {
	const op = "service.OrderService.PlaceOrder"
	logger := s.log.With(slog.String("op", op), slog.Int64("buyerID", buyerID), slog.Int("items", len(items)))

	if buyerID <= 0 || len(items) == 0 {
		logger.Warn("missing order data")
		return nil, fmt.Errorf("%s: buyer_id and orders are required: %w", op, ErrValidation)
	}
	for i, item := range items {
		if item.ProductID <= 0 || item.Quantity <= 0 {
			logger.Warn("invalid line item", slog.Int("index", i))
			return nil, fmt.Errorf("%s: line item %d needs product_id and positive quantity: %w", op, i, ErrValidation)
		}
		if item.Quantity > maxQuantity {
			logger.Warn("line item quantity out of range", slog.Int("index", i))
			return nil, fmt.Errorf("%s: line item %d quantity exceeds %d: %w", op, i, maxQuantity, ErrValidation)
		}
	}

	logger.Info("starting order transaction")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	orders := make([]*models.Order, 0, len(items))
	for _, item := range items {
		order := &models.Order{
			BuyerID:   buyerID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Status:    models.OrderStatusPending,
		}
		if err := s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.Error("transaction rollback failed", slog.Any("error", rbErr))
			}
			if errors.Is(err, storage.ErrReferenceNotFound) {
				logger.Warn("unknown buyer or product", slog.Int64("productID", item.ProductID))
				return nil, fmt.Errorf("%s: unknown buyer or product %d: %w", op, item.ProductID, ErrValidation)
			}
			logger.Error("failed to create order", slog.Any("error", err))
			return nil, fmt.Errorf("%s: failed to create order: %w", op, err)
		}
		orders = append(orders, order)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	logger.Info("order placed successfully")
	return orders, nil
}

// ListOrdersForBuyer возвращает историю заказов с актуальными названием и ценой товара
func (s *orderService) ListOrdersForBuyer(ctx context.Context, buyerID int64) ([]*models.OrderHistoryEntry, error) {
	const op = "service.OrderService.ListOrdersForBuyer"

	orders, err := s.orderRepo.GetOrdersByBuyerID(ctx, buyerID)
	if err != nil {
		s.log.Error("failed to get orders", slog.String("op", op), slog.Int64("buyerID", buyerID), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orders, nil
}
