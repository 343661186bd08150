package handlers

import (
	"log/slog"
	"net/http"

	"github.com/linemk/farmconnect/internal/service"
)

// PaymentRequest - тело запроса POST /api/payments
type PaymentRequest struct {
	ProductID flexInt `json:"product_id" validate:"required,gt=0"`
	BuyerID   flexInt `json:"buyer_id" validate:"required,gt=0"`
}

// PaymentResponse - ответ с идентификатором транзакции
type PaymentResponse struct {
	Message       string `json:"message"`
	TransactionID string `json:"transaction_id"`
}

// PaymentHandler обрабатывает POST /api/payments. Платёж не сохраняется.
func PaymentHandler(log *slog.Logger, paymentService service.PaymentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.PaymentHandler"
		logger := log.With(slog.String("op", op))

		var req PaymentRequest
		if msg, ok := decodeAndValidate(r, &req); !ok {
			logger.Warn("invalid payment request", slog.String("reason", msg))
			writeError(w, logger, http.StatusBadRequest, msg)
			return
		}

		txID, err := paymentService.ProcessPayment(r.Context(), int64(req.ProductID), int64(req.BuyerID))
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		writeJSON(w, logger, http.StatusOK, PaymentResponse{
			Message:       "Payment processed",
			TransactionID: txID,
		})
	}
}
