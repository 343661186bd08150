package service_test

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"sort"

	"github.com/linemk/farmconnect/internal/domain/models"
	"github.com/linemk/farmconnect/internal/storage"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeUserRepo struct {
	users map[string]*models.User // ключ - email
	err   error
}

var _ storage.UserStorage = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.users[user.Email]; ok {
		return nil, storage.ErrEmailExists
	}
	user.ID = int64(len(f.users) + 1)
	f.users[user.Email] = user
	return user, nil
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.users[email]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

type fakeProductRepo struct {
	products map[int64]*models.Product
	nextID   int64
	// ids товаров, на которые ссылаются заказы
	ordered map[int64]bool
	err     error
}

var _ storage.ProductStorage = (*fakeProductRepo)(nil)

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		products: make(map[int64]*models.Product),
		ordered:  make(map[int64]bool),
		nextID:   1,
	}
}

func (f *fakeProductRepo) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	product.ID = f.nextID
	f.nextID++
	stored := *product
	f.products[product.ID] = &stored
	return product, nil
}

func (f *fakeProductRepo) ListProducts(ctx context.Context) ([]*models.Product, error) {
	return f.filter(func(*models.Product) bool { return true })
}

func (f *fakeProductRepo) ListProductsByFarmer(ctx context.Context, farmerID int64) ([]*models.Product, error) {
	return f.filter(func(p *models.Product) bool { return p.FarmerID == farmerID })
}

func (f *fakeProductRepo) filter(keep func(*models.Product) bool) ([]*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*models.Product, 0)
	for _, p := range f.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeProductRepo) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.products[id]
	if !ok {
		return nil, storage.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) UpdateProduct(ctx context.Context, product *models.Product) error {
	if f.err != nil {
		return f.err
	}
	existing, ok := f.products[product.ID]
	if !ok {
		return storage.ErrProductNotFound
	}
	updated := *product
	updated.FarmerID = existing.FarmerID
	f.products[product.ID] = &updated
	return nil
}

func (f *fakeProductRepo) DeleteProduct(ctx context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.products[id]; !ok {
		return storage.ErrProductNotFound
	}
	if f.ordered[id] {
		return storage.ErrProductHasOrders
	}
	delete(f.products, id)
	return nil
}

type fakeOrderRepo struct {
	created []*models.Order
	history map[int64][]*models.OrderHistoryEntry // ключ: buyerID
	// failOn - номер вызова CreateOrder (с 1), который вернёт err
	failOn  int
	err     error
	listErr error
	calls   int
}

var _ storage.OrderStorage = (*fakeOrderRepo)(nil)

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{history: make(map[int64][]*models.OrderHistoryEntry)}
}

func (f *fakeOrderRepo) CreateOrder(ctx context.Context, tx *sql.Tx, order *models.Order) error {
	f.calls++
	if f.failOn == f.calls {
		return f.err
	}
	order.ID = int64(len(f.created) + 1)
	f.created = append(f.created, order)
	return nil
}

func (f *fakeOrderRepo) GetOrdersByBuyerID(ctx context.Context, buyerID int64) ([]*models.OrderHistoryEntry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if orders, ok := f.history[buyerID]; ok {
		return orders, nil
	}
	return []*models.OrderHistoryEntry{}, nil
}
