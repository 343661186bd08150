package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/linemk/farmconnect/internal/domain/models"
)

// ProductStorage описывает методы для работы с таблицей products.
type ProductStorage interface {
	// CreateProduct вставляет товар и заполняет его идентификатор.
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	ListProducts(ctx context.Context) ([]*models.Product, error)
	ListProductsByFarmer(ctx context.Context, farmerID int64) ([]*models.Product, error)
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	// UpdateProduct полностью перезаписывает товар (кроме владельца).
	// Если товара нет, возвращается ErrProductNotFound.
	UpdateProduct(ctx context.Context, product *models.Product) error
	// DeleteProduct удаляет товар. Если товара нет, возвращается ErrProductNotFound.
	DeleteProduct(ctx context.Context, id int64) error
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository создаёт новый репозиторий товаров.
func NewProductRepository(db *sql.DB) ProductStorage {
	return &productRepository{db: db}
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	query := `INSERT INTO products (farmer_id, product_name, description, price, quantity, image)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING product_id`
	err := r.db.QueryRowContext(ctx, query,
		product.FarmerID, product.Name, product.Description, product.Price, product.Quantity, product.Image,
	).Scan(&product.ID)
	if err != nil {
		if isPQCode(err, pqForeignKeyViolation) {
			return nil, ErrReferenceNotFound
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (r *productRepository) ListProducts(ctx context.Context) ([]*models.Product, error) {
	query := `
		SELECT product_id, farmer_id, product_name, description, price, quantity, image
		FROM products
		ORDER BY product_id`
	return r.queryProducts(ctx, query)
}

func (r *productRepository) ListProductsByFarmer(ctx context.Context, farmerID int64) ([]*models.Product, error) {
	query := `
		SELECT product_id, farmer_id, product_name, description, price, quantity, image
		FROM products
		WHERE farmer_id = $1
		ORDER BY product_id`
	return r.queryProducts(ctx, query, farmerID)
}

func (r *productRepository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	query := `
		SELECT product_id, farmer_id, product_name, description, price, quantity, image
		FROM products
		WHERE product_id = $1`
	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	query := `UPDATE products SET product_name = $1, description = $2, price = $3, quantity = $4, image = $5
	          WHERE product_id = $6`
	res, err := r.db.ExecContext(ctx, query,
		product.Name, product.Description, product.Price, product.Quantity, product.Image, product.ID)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return checkAffected(res, ErrProductNotFound)
}

func (r *productRepository) DeleteProduct(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE product_id = $1", id)
	if err != nil {
		if isPQCode(err, pqForeignKeyViolation) {
			return ErrProductHasOrders
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return checkAffected(res, ErrProductNotFound)
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args ...any) ([]*models.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	// пустой список отдаём как [], а не null
	products := make([]*models.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	p := &models.Product{}
	if err := row.Scan(&p.ID, &p.FarmerID, &p.Name, &p.Description, &p.Price, &p.Quantity, &p.Image); err != nil {
		return nil, err
	}
	return p, nil
}

func checkAffected(res sql.Result, notFound error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
