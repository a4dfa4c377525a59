package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"codgate/internal/metrics"
	"codgate/internal/model"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

//go:generate mockgen -source=postgres.go -destination=./mocks/storage_mock.go -package=mocks Storage

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("record not found")

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation. The sequencer relies on this to retry a colliding order name.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// Storage defines how the pipeline talks to the order log, the customer
// directory and the per-shop counters.
type Storage interface {
	InsertOrder(ctx context.Context, entry *model.OrderLogEntry) error
	GetOrderByName(ctx context.Context, shopID, orderName string) (*model.OrderLogEntry, error)
	ListOrders(ctx context.Context, shopID string, limit int) ([]model.OrderLogEntry, error)
	CountOrders(ctx context.Context, shopID string) (int, error)
	NextSequence(ctx context.Context, shopID string, seed int) (int, error)
	UpdateOrderStatus(ctx context.Context, shopID, orderName, status string) error

	FindOrderByPhone(ctx context.Context, shopID, phone string) (*model.OrderLogEntry, error)
	UpsertCustomer(ctx context.Context, rec *model.CustomerRecord) error
	GetCustomerByPhone(ctx context.Context, shopID, phone string) (*model.CustomerRecord, error)
	RecentCustomers(ctx context.Context, shopID string, limit int) ([]model.CustomerRecord, error)

	GetPolicy(ctx context.Context, shopID string) (model.ValidationPolicy, error)

	Close() error
}

// postgresStorage is the PostgreSQL implementation of Storage.
type postgresStorage struct {
	db     *sqlx.DB
	tracer trace.Tracer
}

// New connects to the database, applies migrations and returns a Storage.
func New(dbURL, migrationsPath string) (Storage, error) {
	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := runMigrations(dbURL, migrationsPath); err != nil {
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &postgresStorage{
		db:     db,
		tracer: otel.Tracer("postgres-storage"),
	}, nil
}

// runMigrations brings the schema up to the latest version.
func runMigrations(dbURL, migrationsPath string) error {
	log.Println("Applying migrations...")

	m, err := migrate.New(fmt.Sprintf("file://%s", migrationsPath), dbURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	if dirty {
		log.Printf("database is in a dirty state at version %d, manual inspection recommended", version)
	}

	log.Printf("Migrations applied. Schema version: %d", version)
	return nil
}

const orderColumns = `id, shop_id, order_name, customer_name, phone, address, email,
	product_id, variant_id, product_title, quantity, total_price, currency, status,
	notes, shipping_method, is_partial_cod, advance_amount, remaining_amount,
	draft_order_id, draft_order_name, created_at, updated_at`

// InsertOrder persists an order log entry. A unique-constraint violation on
// (shop_id, order_name) is returned unwrapped enough for IsUniqueViolation,
// so the sequencer can regenerate the name and retry.
func (s *postgresStorage) InsertOrder(ctx context.Context, entry *model.OrderLogEntry) error {
	ctx, span := s.tracer.Start(ctx, "DB.InsertOrder")
	defer span.End()

	query := `INSERT INTO orders (shop_id, order_name, customer_name, phone, address, email,
			product_id, variant_id, product_title, quantity, total_price, currency, status,
			notes, shipping_method, is_partial_cod, advance_amount, remaining_amount,
			draft_order_id, draft_order_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING id, created_at, updated_at`

	row := s.db.QueryRowxContext(ctx, query,
		entry.ShopID, entry.OrderName, entry.CustomerName, entry.Phone, entry.Address, entry.Email,
		entry.ProductID, entry.VariantID, entry.ProductTitle, entry.Quantity, entry.TotalPrice,
		entry.Currency, entry.Status, entry.Notes, entry.ShippingMethod, entry.IsPartialCod,
		entry.AdvanceAmount, entry.RemainingAmount, entry.DraftOrderID, entry.DraftOrderName)

	if err := row.Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt); err != nil {
		if !IsUniqueViolation(err) {
			metrics.DBErrors.WithLabelValues("insert_order").Inc()
		}
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

// GetOrderByName fetches a single order by its generated name.
func (s *postgresStorage) GetOrderByName(ctx context.Context, shopID, orderName string) (*model.OrderLogEntry, error) {
	ctx, span := s.tracer.Start(ctx, "DB.GetOrderByName")
	defer span.End()

	var entry model.OrderLogEntry
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE shop_id = $1 AND order_name = $2`, orderColumns)
	if err := s.db.GetContext(ctx, &entry, query, shopID, orderName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		metrics.DBErrors.WithLabelValues("get_order").Inc()
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &entry, nil
}

// ListOrders returns the most recent orders for a shop, newest first.
func (s *postgresStorage) ListOrders(ctx context.Context, shopID string, limit int) ([]model.OrderLogEntry, error) {
	ctx, span := s.tracer.Start(ctx, "DB.ListOrders")
	defer span.End()

	var entries []model.OrderLogEntry
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE shop_id = $1 ORDER BY created_at DESC LIMIT $2`, orderColumns)
	if err := s.db.SelectContext(ctx, &entries, query, shopID, limit); err != nil {
		metrics.DBErrors.WithLabelValues("list_orders").Inc()
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return entries, nil
}

// CountOrders returns the number of recorded orders for a shop.
func (s *postgresStorage) CountOrders(ctx context.Context, shopID string) (int, error) {
	ctx, span := s.tracer.Start(ctx, "DB.CountOrders")
	defer span.End()

	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM orders WHERE shop_id = $1`, shopID); err != nil {
		metrics.DBErrors.WithLabelValues("count_orders").Inc()
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

// NextSequence atomically advances the per-shop order counter and returns
// the new value. When the shop has no counter row yet, one is created with
// the given seed. The increment happens inside a single statement, so
// concurrent callers always observe distinct values.
func (s *postgresStorage) NextSequence(ctx context.Context, shopID string, seed int) (int, error) {
	ctx, span := s.tracer.Start(ctx, "DB.NextSequence")
	defer span.End()

	query := `INSERT INTO order_counters (shop_id, n) VALUES ($1, $2)
		ON CONFLICT (shop_id) DO UPDATE SET n = order_counters.n + 1
		RETURNING n`

	var n int
	if err := s.db.GetContext(ctx, &n, query, shopID, seed); err != nil {
		metrics.DBErrors.WithLabelValues("next_sequence").Inc()
		return 0, fmt.Errorf("failed to advance order counter: %w", err)
	}
	return n, nil
}

// UpdateOrderStatus sets the lifecycle status of an order. Transition
// legality is checked by the intake service before calling this.
func (s *postgresStorage) UpdateOrderStatus(ctx context.Context, shopID, orderName, status string) error {
	ctx, span := s.tracer.Start(ctx, "DB.UpdateOrderStatus")
	defer span.End()

	res, err := s.db.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = now() WHERE shop_id = $2 AND order_name = $3`,
		status, shopID, orderName)
	if err != nil {
		metrics.DBErrors.WithLabelValues("update_status").Inc()
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindOrderByPhone returns the most recent order recorded for a phone.
func (s *postgresStorage) FindOrderByPhone(ctx context.Context, shopID, phone string) (*model.OrderLogEntry, error) {
	ctx, span := s.tracer.Start(ctx, "DB.FindOrderByPhone")
	defer span.End()

	var entry model.OrderLogEntry
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE shop_id = $1 AND phone = $2 ORDER BY created_at DESC LIMIT 1`, orderColumns)
	if err := s.db.GetContext(ctx, &entry, query, shopID, phone); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		metrics.DBErrors.WithLabelValues("find_order_by_phone").Inc()
		return nil, fmt.Errorf("failed to find order by phone: %w", err)
	}
	return &entry, nil
}

// UpsertCustomer writes a directory entry keyed by (shop_id, phone),
// last write wins.
func (s *postgresStorage) UpsertCustomer(ctx context.Context, rec *model.CustomerRecord) error {
	ctx, span := s.tracer.Start(ctx, "DB.UpsertCustomer")
	defer span.End()

	query := `INSERT INTO customers (shop_id, phone, name, address, city, province, postal_code, email)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (shop_id, phone) DO UPDATE SET
			name = EXCLUDED.name,
			address = EXCLUDED.address,
			city = EXCLUDED.city,
			province = EXCLUDED.province,
			postal_code = EXCLUDED.postal_code,
			email = EXCLUDED.email,
			updated_at = now()`

	if _, err := s.db.ExecContext(ctx, query,
		rec.ShopID, rec.Phone, rec.Name, rec.Address, rec.City, rec.Province, rec.PostalCode, rec.Email); err != nil {
		metrics.DBErrors.WithLabelValues("upsert_customer").Inc()
		return fmt.Errorf("failed to upsert customer: %w", err)
	}
	return nil
}

const customerColumns = `id, shop_id, phone, name, address, city, province, postal_code, email, updated_at`

// GetCustomerByPhone returns the most recently updated directory entry for
// an exact phone match.
func (s *postgresStorage) GetCustomerByPhone(ctx context.Context, shopID, phone string) (*model.CustomerRecord, error) {
	ctx, span := s.tracer.Start(ctx, "DB.GetCustomerByPhone")
	defer span.End()

	var rec model.CustomerRecord
	query := fmt.Sprintf(`SELECT %s FROM customers WHERE shop_id = $1 AND phone = $2 ORDER BY updated_at DESC LIMIT 1`, customerColumns)
	if err := s.db.GetContext(ctx, &rec, query, shopID, phone); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		metrics.DBErrors.WithLabelValues("get_customer").Inc()
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &rec, nil
}

// RecentCustomers returns the most recently updated directory entries for
// the normalized-phone fallback scan.
func (s *postgresStorage) RecentCustomers(ctx context.Context, shopID string, limit int) ([]model.CustomerRecord, error) {
	ctx, span := s.tracer.Start(ctx, "DB.RecentCustomers")
	defer span.End()

	var recs []model.CustomerRecord
	query := fmt.Sprintf(`SELECT %s FROM customers WHERE shop_id = $1 ORDER BY updated_at DESC LIMIT $2`, customerColumns)
	if err := s.db.SelectContext(ctx, &recs, query, shopID, limit); err != nil {
		metrics.DBErrors.WithLabelValues("recent_customers").Inc()
		return nil, fmt.Errorf("failed to fetch recent customers: %w", err)
	}
	return recs, nil
}

// GetPolicy returns the shop's stored intake policy. ErrNotFound means the
// shop never configured one and the caller should use model.DefaultPolicy.
func (s *postgresStorage) GetPolicy(ctx context.Context, shopID string) (model.ValidationPolicy, error) {
	ctx, span := s.tracer.Start(ctx, "DB.GetPolicy")
	defer span.End()

	var row struct {
		RequiredFields pq.StringArray `db:"required_fields"`
		MaxQuantity    int            `db:"max_quantity"`
	}
	query := `SELECT required_fields, max_quantity FROM shop_policies WHERE shop_id = $1`
	if err := s.db.GetContext(ctx, &row, query, shopID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ValidationPolicy{}, ErrNotFound
		}
		metrics.DBErrors.WithLabelValues("get_policy").Inc()
		return model.ValidationPolicy{}, fmt.Errorf("failed to get shop policy: %w", err)
	}
	return model.ValidationPolicy{
		RequiredFields: []string(row.RequiredFields),
		MaxQuantity:    row.MaxQuantity,
	}, nil
}

// Close closes the database connection.
func (s *postgresStorage) Close() error {
	return s.db.Close()
}
