package service_test

import (
	"context"
	"errors"
	"math"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linemk/farmconnect/internal/domain/models"
	"github.com/linemk/farmconnect/internal/service"
	"github.com/linemk/farmconnect/internal/storage"
)

func TestOrderService_PlaceOrder_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// Вся корзина - одна транзакция.
	mock.ExpectBegin()
	mock.ExpectCommit()

	orderRepo := newFakeOrderRepo()
	svc := service.NewOrderService(newTestLogger(), db, orderRepo)

	orders, err := svc.PlaceOrder(context.Background(), 7, []models.LineItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	})
	require.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.Len(t, orderRepo.created, 2, "exactly two order rows are created")
	for _, o := range orderRepo.created {
		assert.Equal(t, int64(7), o.BuyerID)
		assert.Equal(t, models.OrderStatusPending, o.Status)
	}
	assert.Equal(t, int64(1), orderRepo.created[0].ProductID)
	assert.Equal(t, 2, orderRepo.created[0].Quantity)
	assert.Equal(t, int64(2), orderRepo.created[1].ProductID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderService_PlaceOrder_MissingData(t *testing.T) {
	cases := []struct {
		name    string
		buyerID int64
		items   []models.LineItem
	}{
		{"missing buyer", 0, []models.LineItem{{ProductID: 1, Quantity: 1}}},
		{"empty orders", 7, []models.LineItem{}},
		{"nil orders", 7, nil},
		{"zero quantity", 7, []models.LineItem{{ProductID: 1, Quantity: 0}}},
		{"missing product", 7, []models.LineItem{{ProductID: 1, Quantity: 1}, {Quantity: 3}}},
		{"quantity overflows integer", 7, []models.LineItem{{ProductID: 1, Quantity: math.MaxInt32 + 1}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			orderRepo := newFakeOrderRepo()
			svc := service.NewOrderService(newTestLogger(), db, orderRepo)

			orders, err := svc.PlaceOrder(context.Background(), tc.buyerID, tc.items)
			assert.True(t, errors.Is(err, service.ErrValidation))
			assert.Nil(t, orders)
			assert.Zero(t, orderRepo.calls, "no rows must be inserted")

			// транзакция даже не начинается
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestOrderService_PlaceOrder_RollbackOnMidBatchFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	insert := regexp.QuoteMeta("INSERT INTO orders (buyer_id, product_id, quantity, status)")
	mock.ExpectBegin()
	mock.ExpectQuery(insert).WithArgs(int64(7), int64(1), 2, "pending").
		WillReturnRows(sqlmock.NewRows([]string{"order_id", "created_at"}).AddRow(1, time.Now()))
	mock.ExpectQuery(insert).WithArgs(int64(7), int64(2), 1, "pending").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	svc := service.NewOrderService(newTestLogger(), db, storage.NewOrderRepository(db))

	orders, err := svc.PlaceOrder(context.Background(), 7, []models.LineItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
		{ProductID: 3, Quantity: 5},
	})
	assert.Error(t, err)
	assert.False(t, errors.Is(err, service.ErrValidation))
	assert.Nil(t, orders)

	// Commit не вызывался, третья вставка не выполнялась
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderService_PlaceOrder_UnknownProduct(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	orderRepo := newFakeOrderRepo()
	orderRepo.failOn = 2
	orderRepo.err = storage.ErrReferenceNotFound
	svc := service.NewOrderService(newTestLogger(), db, orderRepo)

	_, err = svc.PlaceOrder(context.Background(), 7, []models.LineItem{
		{ProductID: 1, Quantity: 1},
		{ProductID: 404, Quantity: 1},
	})
	assert.True(t, errors.Is(err, service.ErrValidation))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderService_PlaceOrder_CommitError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("commit failed"))

	svc := service.NewOrderService(newTestLogger(), db, newFakeOrderRepo())

	orders, err := svc.PlaceOrder(context.Background(), 7, []models.LineItem{{ProductID: 1, Quantity: 1}})
	assert.Error(t, err)
	assert.Nil(t, orders)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderService_ListOrdersForBuyer(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	orderRepo := newFakeOrderRepo()
	orderRepo.history[7] = []*models.OrderHistoryEntry{
		{OrderID: 1, Quantity: 2, Status: "pending", ProductName: "Tomatoes", Price: decimal.RequireFromString("9.99")},
	}
	svc := service.NewOrderService(newTestLogger(), db, orderRepo)

	orders, err := svc.ListOrdersForBuyer(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, "Tomatoes", orders[0].ProductName)

	empty, err := svc.ListOrdersForBuyer(context.Background(), 8)
	require.NoError(t, err)
	assert.Empty(t, empty)

	orderRepo.listErr = assert.AnError
	_, err = svc.ListOrdersForBuyer(context.Background(), 7)
	assert.ErrorIs(t, err, assert.AnError)
}
