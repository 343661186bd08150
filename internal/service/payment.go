package service

import (
	"context"
	"fmt"
	"log/slog"
)

// PaymentService - заглушка платёжного шлюза: ничего не списывает и не сохраняет.
type PaymentService interface {
	ProcessPayment(ctx context.Context, productID, buyerID int64) (string, error)
}

type paymentService struct {
	log *slog.Logger
}

func NewPaymentService(log *slog.Logger) PaymentService {
	return &paymentService{log: log}
}

// ProcessPayment возвращает идентификатор транзакции вида TXN<productID><buyerID>.
func (s *paymentService) ProcessPayment(_ context.Context, productID, buyerID int64) (string, error) {
	const op = "service.PaymentService.ProcessPayment"

	if productID <= 0 || buyerID <= 0 {
		return "", fmt.Errorf("%s: product_id and buyer_id are required: %w", op, ErrValidation)
	}

	txnID := fmt.Sprintf("TXN%d%d", productID, buyerID)
	s.log.Info("payment processed",
		slog.String("op", op),
		slog.Int64("productID", productID),
		slog.Int64("buyerID", buyerID),
		slog.String("transactionID", txnID),
	)
	return txnID, nil
}
