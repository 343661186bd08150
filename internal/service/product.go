package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/linemk/farmconnect/internal/domain/models"
	"github.com/linemk/farmconnect/internal/storage"
)

// ProductService определяет операции каталога товаров.
type ProductService interface {
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	ListProducts(ctx context.Context) ([]*models.Product, error)
	ListProductsByFarmer(ctx context.Context, farmerID int64) ([]*models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id int64) error
}

type productService struct {
	log         *slog.Logger
	productRepo storage.ProductStorage
}

func NewProductService(log *slog.Logger, productRepo storage.ProductStorage) ProductService {
	return &productService{
		log:         log,
		productRepo: productRepo,
	}
}

// CreateProduct добавляет товар фермера. Роль владельца не проверяется,
// но несуществующий farmer_id отклоняется внешним ключом.
func (s *productService) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	const op = "service.ProductService.CreateProduct"
	logger := s.log.With(slog.String("op", op), slog.Int64("farmerID", product.FarmerID))

	if product.FarmerID <= 0 {
		return nil, fmt.Errorf("%s: farmer_id is required: %w", op, ErrValidation)
	}
	if err := validateProductFields(product); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.productRepo.CreateProduct(ctx, product)
	if err != nil {
		if errors.Is(err, storage.ErrReferenceNotFound) {
			logger.Warn("unknown farmer")
			return nil, fmt.Errorf("%s: unknown farmer: %w", op, ErrValidation)
		}
		logger.Error("failed to create product", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("product created", slog.Int64("productID", created.ID))
	return created, nil
}

func (s *productService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	const op = "service.ProductService.ListProducts"

	products, err := s.productRepo.ListProducts(ctx)
	if err != nil {
		s.log.Error("failed to list products", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return products, nil
}

func (s *productService) ListProductsByFarmer(ctx context.Context, farmerID int64) ([]*models.Product, error) {
	const op = "service.ProductService.ListProductsByFarmer"

	products, err := s.productRepo.ListProductsByFarmer(ctx, farmerID)
	if err != nil {
		s.log.Error("failed to list farmer products", slog.String("op", op), slog.Int64("farmerID", farmerID), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return products, nil
}

func (s *productService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	const op = "service.ProductService.GetProduct"

	product, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			return nil, fmt.Errorf("%s: product %d: %w", op, id, ErrNotFound)
		}
		s.log.Error("failed to get product", slog.String("op", op), slog.Int64("productID", id), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return product, nil
}

// UpdateProduct полностью перезаписывает товар.
// Обновление несуществующего товара - успешный no-op (только предупреждение в логе).
func (s *productService) UpdateProduct(ctx context.Context, product *models.Product) error {
	const op = "service.ProductService.UpdateProduct"
	logger := s.log.With(slog.String("op", op), slog.Int64("productID", product.ID))

	if err := validateProductFields(product); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.productRepo.UpdateProduct(ctx, product); err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			logger.Warn("product not found, nothing updated")
			return nil
		}
		logger.Error("failed to update product", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("product updated")
	return nil
}

// DeleteProduct удаляет товар; отсутствие товара - no-op, как и при обновлении.
// Товар, на который ссылаются заказы, не удаляется.
func (s *productService) DeleteProduct(ctx context.Context, id int64) error {
	const op = "service.ProductService.DeleteProduct"
	logger := s.log.With(slog.String("op", op), slog.Int64("productID", id))

	if err := s.productRepo.DeleteProduct(ctx, id); err != nil {
		switch {
		case errors.Is(err, storage.ErrProductNotFound):
			logger.Warn("product not found, nothing deleted")
			return nil
		case errors.Is(err, storage.ErrProductHasOrders):
			logger.Warn("product has orders")
			return fmt.Errorf("%s: product has orders: %w", op, ErrConflict)
		default:
			logger.Error("failed to delete product", slog.Any("error", err))
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	logger.Info("product deleted")
	return nil
}

// границы колонок: price NUMERIC(12,2), quantity INTEGER
const (
	priceScale  = 2
	maxQuantity = math.MaxInt32
)

var maxPrice = decimal.New(1, 10)

func validateProductFields(product *models.Product) error {
	if strings.TrimSpace(product.Name) == "" {
		return fmt.Errorf("product_name is required: %w", ErrValidation)
	}
	if product.Price.IsNegative() {
		return fmt.Errorf("price must not be negative: %w", ErrValidation)
	}
	if !product.Price.Equal(product.Price.Truncate(priceScale)) {
		return fmt.Errorf("price must have at most %d decimal places: %w", priceScale, ErrValidation)
	}
	if product.Price.GreaterThanOrEqual(maxPrice) {
		return fmt.Errorf("price must be less than %s: %w", maxPrice, ErrValidation)
	}
	if product.Quantity < 0 {
		return fmt.Errorf("quantity must not be negative: %w", ErrValidation)
	}
	if product.Quantity > maxQuantity {
		return fmt.Errorf("quantity must not exceed %d: %w", maxQuantity, ErrValidation)
	}
	return nil
}
