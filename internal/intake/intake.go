package intake

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"codgate/internal/address"
	"codgate/internal/cache"
	"codgate/internal/database"
	"codgate/internal/events"
	"codgate/internal/identity"
	"codgate/internal/metrics"
	"codgate/internal/model"
	"codgate/internal/sequence"
	"codgate/internal/validation"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// insertAttempts bounds the unique-constraint retry loop. Each retry pulls
// a fresh name from the sequencer, so one pass is normally enough.
const insertAttempts = 3

// Service is the standard COD intake pipeline: validate, normalize the
// address, generate the order name, persist the entry in "pending".
type Service struct {
	storage   database.Storage
	sequencer *sequence.Sequencer
	cache     cache.Cache
	publisher events.Publisher
	defaults  model.RegionDefaults
	currency  string
	tracer    trace.Tracer
}

// NewService wires the intake pipeline.
func NewService(storage database.Storage, seq *sequence.Sequencer, lookupCache cache.Cache, publisher events.Publisher, defaults model.RegionDefaults, currency string) *Service {
	return &Service{
		storage:   storage,
		sequencer: seq,
		cache:     lookupCache,
		publisher: publisher,
		defaults:  defaults,
		currency:  currency,
		tracer:    otel.Tracer("order-intake"),
	}
}

// CreateOrder runs a submission through the full pipeline and returns the
// persisted entry. Validation failures come back as *validation.Error;
// anything else is a store failure, fatal for this request.
func (s *Service) CreateOrder(ctx context.Context, sub *model.OrderSubmission) (*model.OrderLogEntry, error) {
	ctx, span := s.tracer.Start(ctx, "Intake.CreateOrder")
	defer span.End()

	policy := s.policyFor(ctx, sub.ShopID)
	if err := validation.Validate(sub, policy); err != nil {
		return nil, err
	}

	entry := &model.OrderLogEntry{
		ShopID:         sub.ShopID,
		CustomerName:   strings.TrimSpace(sub.CustomerName),
		Phone:          strings.TrimSpace(sub.Phone),
		Address:        strings.TrimSpace(sub.Address),
		Email:          strings.TrimSpace(sub.Email),
		ProductID:      sub.ProductID,
		VariantID:      sub.VariantID,
		ProductTitle:   sub.ProductTitle,
		Quantity:       sub.Quantity,
		TotalPrice:     sub.UnitPrice * float64(sub.Quantity),
		Currency:       s.currency,
		Status:         model.StatusPending,
		Notes:          sub.Notes,
		ShippingMethod: sub.ShippingMethod,
	}

	if err := s.PersistPending(ctx, entry); err != nil {
		return nil, err
	}

	metrics.OrdersCreated.WithLabelValues("cod").Inc()
	return entry, nil
}

// PersistPending assigns an order name and inserts the entry, retrying
// with a fresh name when a concurrent submission claimed the same one.
// On success it also feeds the customer directory and the event stream;
// both are best-effort and never fail the request.
func (s *Service) PersistPending(ctx context.Context, entry *model.OrderLogEntry) error {
	ctx, span := s.tracer.Start(ctx, "Intake.PersistPending")
	defer span.End()

	var err error
	for attempt := 0; attempt < insertAttempts; attempt++ {
		entry.OrderName = s.sequencer.NextOrderName(ctx, entry.ShopID)
		err = s.storage.InsertOrder(ctx, entry)
		if err == nil {
			break
		}
		if !database.IsUniqueViolation(err) {
			return fmt.Errorf("failed to persist order: %w", err)
		}
		metrics.SequenceRetries.Inc()
		log.Printf("order name %s collided for shop %s, regenerating", entry.OrderName, entry.ShopID)
	}
	if err != nil {
		return fmt.Errorf("failed to persist order after %d attempts: %w", insertAttempts, err)
	}

	s.upsertCustomer(ctx, entry)
	go s.publisher.OrderCreated(context.WithoutCancel(ctx), entry)

	return nil
}

// UpdateStatus applies a merchant-driven lifecycle transition. Illegal
// transitions are rejected as validation errors; unknown orders surface
// database.ErrNotFound.
func (s *Service) UpdateStatus(ctx context.Context, shopID, orderName, next string) error {
	ctx, span := s.tracer.Start(ctx, "Intake.UpdateStatus")
	defer span.End()

	entry, err := s.storage.GetOrderByName(ctx, shopID, orderName)
	if err != nil {
		return err
	}
	if !model.CanTransition(entry.Status, next) {
		return &validation.Error{
			Field:   "status",
			Message: fmt.Sprintf("cannot move order from %s to %s", entry.Status, next),
		}
	}
	return s.storage.UpdateOrderStatus(ctx, shopID, orderName, next)
}

// ListOrders returns the shop's most recent orders for the dashboard.
func (s *Service) ListOrders(ctx context.Context, shopID string, limit int) ([]model.OrderLogEntry, error) {
	return s.storage.ListOrders(ctx, shopID, limit)
}

// policyFor loads the shop's intake policy, degrading to the default on a
// missing row or a store failure. Policy reads must never block intake.
func (s *Service) policyFor(ctx context.Context, shopID string) model.ValidationPolicy {
	policy, err := s.storage.GetPolicy(ctx, shopID)
	if err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			log.Printf("policy read for shop %s failed, using defaults: %v", shopID, err)
		}
		return model.DefaultPolicy()
	}
	if policy.MaxQuantity <= 0 {
		policy.MaxQuantity = model.DefaultMaxQuantity
	}
	return policy
}

// upsertCustomer opportunistically refreshes the autofill directory from a
// persisted order. Best-effort: failures are logged and swallowed.
func (s *Service) upsertCustomer(ctx context.Context, entry *model.OrderLogEntry) {
	if entry.Phone == "" {
		return
	}
	key, ok := identity.CacheKey(entry.ShopID, entry.Phone)
	if !ok {
		return
	}

	var parsed model.AddressParseResult
	if entry.Address != "" {
		parsed = address.Parse(entry.Address, s.defaults)
	}
	rec := &model.CustomerRecord{
		ShopID:     entry.ShopID,
		Phone:      entry.Phone,
		Name:       entry.CustomerName,
		Address:    entry.Address,
		City:       parsed.City,
		Province:   parsed.Province,
		PostalCode: parsed.PostalCode,
		Email:      entry.Email,
	}
	if err := s.storage.UpsertCustomer(ctx, rec); err != nil {
		log.Printf("customer upsert for %s failed: %v", entry.Phone, err)
		return
	}

	// Stale autofill data is worse than a re-read.
	s.cache.Invalidate(ctx, key)
}
