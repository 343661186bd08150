package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/linemk/farmconnect/internal/domain/models"
	"github.com/linemk/farmconnect/internal/service"
)

// OrderItemRequest - одна позиция заказа
type OrderItemRequest struct {
	ProductID flexInt `json:"product_id"`
	Quantity  flexInt `json:"quantity"`
}

// PlaceOrderRequest - тело запроса POST /api/orders.
// Пустые и некорректные позиции отклоняет сервис.
type PlaceOrderRequest struct {
	BuyerID flexInt            `json:"buyer_id"`
	Orders  []OrderItemRequest `json:"orders"`
}

// PlaceOrderHandler обрабатывает POST /api/orders
func PlaceOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.PlaceOrderHandler"
		logger := log.With(slog.String("op", op))

		var req PlaceOrderRequest
		if msg, ok := decodeAndValidate(r, &req); !ok {
			logger.Warn("invalid order request", slog.String("reason", msg))
			writeError(w, logger, http.StatusBadRequest, "Missing order data")
			return
		}

		items := make([]models.LineItem, 0, len(req.Orders))
		for _, it := range req.Orders {
			items = append(items, models.LineItem{
				ProductID: int64(it.ProductID),
				Quantity:  int(it.Quantity),
			})
		}

		orders, err := orderService.PlaceOrder(r.Context(), int64(req.BuyerID), items)
		if err != nil {
			if errors.Is(err, service.ErrValidation) {
				logger.Warn("order rejected", slog.Any("error", err))
				writeError(w, logger, http.StatusBadRequest, "Missing order data")
				return
			}
			writeServiceError(w, logger, err)
			return
		}

		logger.Info("order placed", slog.Int64("buyer_id", int64(req.BuyerID)), slog.Int("items", len(orders)))
		writeJSON(w, logger, http.StatusCreated, MessageResponse{Message: "Order placed successfully"})
	}
}

// BuyerOrdersHandler обрабатывает GET /api/orders/buyer/{id}
func BuyerOrdersHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", "handlers.BuyerOrdersHandler"))

		buyerID, err := idParam(r, "id")
		if err != nil {
			logger.Warn("bad path parameter", slog.Any("error", err))
			writeError(w, logger, http.StatusBadRequest, "Invalid id")
			return
		}

		history, err := orderService.ListOrdersForBuyer(r.Context(), buyerID)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, history)
	}
}
