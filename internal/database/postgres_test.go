package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"codgate/internal/model"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

// helperTestEntry is a log entry for tests.
var helperTestEntry = &model.OrderLogEntry{
	ShopID:       "demo-shop.example.com",
	OrderName:    "#1001",
	CustomerName: "Asha Patel",
	Phone:        "9876543210",
	Address:      "12 Lane St, Mumbai, MH 400001",
	Email:        "asha@example.com",
	ProductID:    "prod-1",
	VariantID:    "var-1",
	ProductTitle: "Steel Bottle",
	Quantity:     2,
	TotalPrice:   998,
	Currency:     "INR",
	Status:       model.StatusPending,
}

// setupStorageWithMock builds a postgresStorage over a sqlmock connection.
func setupStorageWithMock(t *testing.T) (*postgresStorage, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	sqlxDB := sqlx.NewDb(db, "postgres")

	storage := &postgresStorage{
		db:     sqlxDB,
		tracer: otel.Tracer("postgres-storage-test"),
	}
	return storage, mock
}

func TestPostgresStorage_Close(t *testing.T) {
	storage, mock := setupStorageWithMock(t)

	mock.ExpectClose()

	assert.NoError(t, storage.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_InsertOrder_Success(t *testing.T) {
	storage, mock := setupStorageWithMock(t)
	ctx := context.Background()
	entry := *helperTestEntry

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs(entry.ShopID, entry.OrderName, entry.CustomerName, entry.Phone, entry.Address, entry.Email,
			entry.ProductID, entry.VariantID, entry.ProductTitle, entry.Quantity, entry.TotalPrice,
			entry.Currency, entry.Status, entry.Notes, entry.ShippingMethod, entry.IsPartialCod,
			entry.AdvanceAmount, entry.RemainingAmount, entry.DraftOrderID, entry.DraftOrderName).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(42, now, now))

	err := storage.InsertOrder(ctx, &entry)
	require.NoError(t, err)
	assert.Equal(t, int64(42), entry.ID)
	assert.Equal(t, now, entry.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_InsertOrder_UniqueViolation(t *testing.T) {
	storage, mock := setupStorageWithMock(t)
	ctx := context.Background()
	entry := *helperTestEntry

	mock.ExpectQuery(`INSERT INTO orders`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "orders_shop_order_name_key"})

	err := storage.InsertOrder(ctx, &entry)
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_GetOrderByName_NotFound(t *testing.T) {
	storage, mock := setupStorageWithMock(t)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT .+ FROM orders WHERE shop_id`).
		WithArgs("demo-shop.example.com", "#9999").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	entry, err := storage.GetOrderByName(ctx, "demo-shop.example.com", "#9999")
	assert.Nil(t, entry)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_CountOrders(t *testing.T) {
	storage, mock := setupStorageWithMock(t)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM orders WHERE shop_id`).
		WithArgs("demo-shop.example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	count, err := storage.CountOrders(ctx, "demo-shop.example.com")
	require.NoError(t, err)
	assert.Equal(t, 12, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_NextSequence(t *testing.T) {
	storage, mock := setupStorageWithMock(t)
	ctx := context.Background()

	mock.ExpectQuery(`INSERT INTO order_counters`).
		WithArgs("demo-shop.example.com", 1001).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1005))

	n, err := storage.NextSequence(ctx, "demo-shop.example.com", 1001)
	require.NoError(t, err)
	assert.Equal(t, 1005, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_NextSequence_Error(t *testing.T) {
	storage, mock := setupStorageWithMock(t)
	ctx := context.Background()

	mock.ExpectQuery(`INSERT INTO order_counters`).
		WillReturnError(errors.New("connection refused"))

	_, err := storage.NextSequence(ctx, "demo-shop.example.com", 1001)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_UpdateOrderStatus_NotFound(t *testing.T) {
	storage, mock := setupStorageWithMock(t)
	ctx := context.Background()

	mock.ExpectExec(`UPDATE orders SET status`).
		WithArgs(model.StatusConfirmed, "demo-shop.example.com", "#9999").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := storage.UpdateOrderStatus(ctx, "demo-shop.example.com", "#9999", model.StatusConfirmed)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_UpsertCustomer(t *testing.T) {
	storage, mock := setupStorageWithMock(t)
	ctx := context.Background()

	rec := &model.CustomerRecord{
		ShopID: "demo-shop.example.com", Phone: "9876543210", Name: "Asha Patel",
		Address: "12 Lane St", City: "Mumbai", Province: "Maharashtra",
		PostalCode: "400001", Email: "asha@example.com",
	}

	mock.ExpectExec(`INSERT INTO customers`).
		WithArgs(rec.ShopID, rec.Phone, rec.Name, rec.Address, rec.City, rec.Province, rec.PostalCode, rec.Email).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assert.NoError(t, storage.UpsertCustomer(ctx, rec))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_GetCustomerByPhone_NotFound(t *testing.T) {
	storage, mock := setupStorageWithMock(t)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT .+ FROM customers WHERE shop_id`).
		WithArgs("demo-shop.example.com", "5556667778").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rec, err := storage.GetCustomerByPhone(ctx, "demo-shop.example.com", "5556667778")
	assert.Nil(t, rec)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_GetPolicy(t *testing.T) {
	storage, mock := setupStorageWithMock(t)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT required_fields, max_quantity FROM shop_policies`).
		WithArgs("demo-shop.example.com").
		WillReturnRows(sqlmock.NewRows([]string{"required_fields", "max_quantity"}).
			AddRow([]byte(`{name,phone}`), 5))

	policy, err := storage.GetPolicy(ctx, "demo-shop.example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "phone"}, policy.RequiredFields)
	assert.Equal(t, 5, policy.MaxQuantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_GetPolicy_NotFound(t *testing.T) {
	storage, mock := setupStorageWithMock(t)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT required_fields, max_quantity FROM shop_policies`).
		WithArgs("other-shop.example.com").
		WillReturnRows(sqlmock.NewRows([]string{"required_fields", "max_quantity"}))

	_, err := storage.GetPolicy(ctx, "other-shop.example.com")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
