package identity

import (
	"context"
	"strings"

	"codgate/internal/cache"
	"codgate/internal/database"
	"codgate/internal/metrics"
	"codgate/internal/model"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// scanWindow bounds the normalized fallback scan: only this many of the
// most recent directory entries / orders are compared per source.
const scanWindow = 50

// NormalizePhone strips whitespace, dashes, parentheses and plus signs.
// ok is false unless the remainder is 8-15 digits.
func NormalizePhone(phone string) (normalized string, ok bool) {
	var b strings.Builder
	for _, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '-' || r == '(' || r == ')' || r == '+':
			// stripped
		default:
			return "", false
		}
	}
	normalized = b.String()
	return normalized, len(normalized) >= 8 && len(normalized) <= 15
}

// CacheKey builds the lookup cache key for a shop/phone pair. ok is false
// when the phone does not normalize to a valid number.
func CacheKey(shopID, phone string) (string, bool) {
	normalized, ok := NormalizePhone(phone)
	if !ok {
		return "", false
	}
	return shopID + "|" + normalized, true
}

// lookupStrategy is one way of finding a customer by phone. Strategies are
// tried in priority order, first hit wins. A strategy never returns an
// error: store failures degrade to a miss.
type lookupStrategy struct {
	source string
	find   func(ctx context.Context, shopID, phone, normalized string) *model.CustomerMatch
}

// Resolver resolves a returning customer by phone for autofill. It is an
// availability-over-consistency component: any failure yields not-found,
// never an error that could block checkout.
type Resolver struct {
	storage    database.Storage
	cache      cache.Cache
	strategies []lookupStrategy
	tracer     trace.Tracer
}

// New creates a Resolver over the given storage and lookup cache.
func New(storage database.Storage, lookupCache cache.Cache) *Resolver {
	r := &Resolver{
		storage: storage,
		cache:   lookupCache,
		tracer:  otel.Tracer("identity-resolver"),
	}
	r.strategies = []lookupStrategy{
		{source: "directory", find: r.directoryExact},
		{source: "orders", find: r.ordersExact},
		{source: "directory_normalized", find: r.directoryNormalized},
		{source: "orders_normalized", find: r.ordersNormalized},
	}
	return r
}

// Lookup finds a previously seen customer by phone. Used purely for
// autofill convenience, never for authorization. The boolean is false when
// the phone is malformed, nothing matches within the bounded windows, or
// the store is unreachable.
func (r *Resolver) Lookup(ctx context.Context, shopID, phone string) (*model.CustomerMatch, bool) {
	ctx, span := r.tracer.Start(ctx, "Resolver.Lookup")
	defer span.End()

	normalized, ok := NormalizePhone(phone)
	if !ok {
		metrics.LookupResults.WithLabelValues("not_found").Inc()
		return nil, false
	}

	key := shopID + "|" + normalized
	if match, found := r.cache.Get(ctx, key); found {
		metrics.CacheHits.Inc()
		metrics.LookupResults.WithLabelValues("cache").Inc()
		return match, true
	}
	metrics.CacheMisses.Inc()

	phone = strings.TrimSpace(phone)
	for _, strat := range r.strategies {
		if match := strat.find(ctx, shopID, phone, normalized); match != nil {
			match.Source = strat.source
			r.cache.Set(ctx, key, match)
			metrics.LookupResults.WithLabelValues(strat.source).Inc()
			return match, true
		}
	}

	metrics.LookupResults.WithLabelValues("not_found").Inc()
	return nil, false
}

func (r *Resolver) directoryExact(ctx context.Context, shopID, phone, _ string) *model.CustomerMatch {
	rec, err := r.storage.GetCustomerByPhone(ctx, shopID, phone)
	if err != nil {
		return nil
	}
	return matchFromCustomer(rec)
}

func (r *Resolver) ordersExact(ctx context.Context, shopID, phone, _ string) *model.CustomerMatch {
	entry, err := r.storage.FindOrderByPhone(ctx, shopID, phone)
	if err != nil {
		return nil
	}
	return matchFromOrder(entry)
}

func (r *Resolver) directoryNormalized(ctx context.Context, shopID, _, normalized string) *model.CustomerMatch {
	recs, err := r.storage.RecentCustomers(ctx, shopID, scanWindow)
	if err != nil {
		return nil
	}
	for i := range recs {
		if stored, ok := NormalizePhone(recs[i].Phone); ok && stored == normalized {
			return matchFromCustomer(&recs[i])
		}
	}
	return nil
}

func (r *Resolver) ordersNormalized(ctx context.Context, shopID, _, normalized string) *model.CustomerMatch {
	entries, err := r.storage.ListOrders(ctx, shopID, scanWindow)
	if err != nil {
		return nil
	}
	for i := range entries {
		if stored, ok := NormalizePhone(entries[i].Phone); ok && stored == normalized {
			return matchFromOrder(&entries[i])
		}
	}
	return nil
}

// matchFromCustomer maps a directory record to an autofill match. Missing
// fields stay empty strings so the widget can treat the payload uniformly.
func matchFromCustomer(rec *model.CustomerRecord) *model.CustomerMatch {
	return &model.CustomerMatch{
		Name:       rec.Name,
		Address:    rec.Address,
		City:       rec.City,
		Province:   rec.Province,
		PostalCode: rec.PostalCode,
		Email:      rec.Email,
	}
}

// matchFromOrder maps an order log entry to an autofill match. Orders only
// carry the free-text address, so the structured fields stay empty.
func matchFromOrder(entry *model.OrderLogEntry) *model.CustomerMatch {
	return &model.CustomerMatch{
		Name:    entry.CustomerName,
		Address: entry.Address,
		Email:   entry.Email,
	}
}
