package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/linemk/farmconnect/internal/domain/models"
	"github.com/linemk/farmconnect/internal/service"
)

// ProductRequest - тело запроса на создание товара.
// Числовые поля принимаются и числами, и строками.
type ProductRequest struct {
	FarmerID    flexInt          `json:"farmer_id" validate:"required,gt=0"`
	Name        string           `json:"product_name" validate:"required"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *flexInt         `json:"quantity" validate:"required,gte=0"`
	Image       *string          `json:"image"`
}

// UpdateProductRequest - полная замена полей товара (владелец не меняется)
type UpdateProductRequest struct {
	Name        string           `json:"product_name" validate:"required"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *flexInt         `json:"quantity" validate:"required,gte=0"`
	Image       *string          `json:"image"`
}

// CreateProductResponse - ответ на создание товара
type CreateProductResponse struct {
	Message   string `json:"message"`
	ProductID int64  `json:"product_id"`
}

// CreateProductHandler обрабатывает POST /api/products
func CreateProductHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateProductHandler"
		logger := log.With(slog.String("op", op))

		var req ProductRequest
		if msg, ok := decodeAndValidate(r, &req); !ok {
			logger.Warn("invalid product request", slog.String("reason", msg))
			writeError(w, logger, http.StatusBadRequest, msg)
			return
		}
		if req.Price == nil || req.Price.IsNegative() {
			writeError(w, logger, http.StatusBadRequest, "Invalid or missing fields: price")
			return
		}

		product, err := productService.CreateProduct(r.Context(), &models.Product{
			FarmerID:    int64(req.FarmerID),
			Name:        req.Name,
			Description: req.Description,
			Price:       *req.Price,
			Quantity:    int(*req.Quantity),
			Image:       req.Image,
		})
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		writeJSON(w, logger, http.StatusCreated, CreateProductResponse{
			Message:   "Product added successfully",
			ProductID: product.ID,
		})
	}
}

// ListProductsHandler обрабатывает GET /api/products
func ListProductsHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", "handlers.ListProductsHandler"))

		products, err := productService.ListProducts(r.Context())
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, products)
	}
}

// ListFarmerProductsHandler обрабатывает GET /api/products/farmer/{id}
func ListFarmerProductsHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", "handlers.ListFarmerProductsHandler"))

		farmerID, err := idParam(r, "id")
		if err != nil {
			logger.Warn("bad path parameter", slog.Any("error", err))
			writeError(w, logger, http.StatusBadRequest, "Invalid id")
			return
		}

		products, err := productService.ListProductsByFarmer(r.Context(), farmerID)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, products)
	}
}

// GetProductHandler обрабатывает GET /api/products/{id}
func GetProductHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", "handlers.GetProductHandler"))

		id, err := idParam(r, "id")
		if err != nil {
			logger.Warn("bad path parameter", slog.Any("error", err))
			writeError(w, logger, http.StatusBadRequest, "Invalid id")
			return
		}

		product, err := productService.GetProduct(r.Context(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				writeError(w, logger, http.StatusNotFound, "Product not found")
				return
			}
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, product)
	}
}

// UpdateProductHandler обрабатывает PUT /api/products/{id}
func UpdateProductHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateProductHandler"
		logger := log.With(slog.String("op", op))

		id, err := idParam(r, "id")
		if err != nil {
			logger.Warn("bad path parameter", slog.Any("error", err))
			writeError(w, logger, http.StatusBadRequest, "Invalid id")
			return
		}

		var req UpdateProductRequest
		if msg, ok := decodeAndValidate(r, &req); !ok {
			logger.Warn("invalid product request", slog.String("reason", msg))
			writeError(w, logger, http.StatusBadRequest, msg)
			return
		}
		if req.Price == nil || req.Price.IsNegative() {
			writeError(w, logger, http.StatusBadRequest, "Invalid or missing fields: price")
			return
		}

		err = productService.UpdateProduct(r.Context(), &models.Product{
			ID:          id,
			Name:        req.Name,
			Description: req.Description,
			Price:       *req.Price,
			Quantity:    int(*req.Quantity),
			Image:       req.Image,
		})
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, MessageResponse{Message: "Product updated successfully"})
	}
}

// DeleteProductHandler обрабатывает DELETE /api/products/{id}
func DeleteProductHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", "handlers.DeleteProductHandler"))

		id, err := idParam(r, "id")
		if err != nil {
			logger.Warn("bad path parameter", slog.Any("error", err))
			writeError(w, logger, http.StatusBadRequest, "Invalid id")
			return
		}

		if err := productService.DeleteProduct(r.Context(), id); err != nil {
			if errors.Is(err, service.ErrConflict) {
				writeError(w, logger, http.StatusConflict, "Product has orders and cannot be deleted")
				return
			}
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, MessageResponse{Message: "Product deleted successfully"})
	}
}
