package sequence

import (
	"context"
	"fmt"
	"log"

	"codgate/internal/database"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// BaseOffset is where a shop's numbering starts: the first order is #1001.
const BaseOffset = 1001

// Sequencer produces the next human-readable order name for a shop.
//
// The number comes from a per-shop atomic counter seeded at
// BaseOffset + count-of-existing-orders, so a counter advanced inside a
// single statement never hands the same value to two concurrent
// submissions. When the counter itself is unreachable the sequencer
// degrades to the seed value instead of blocking order creation; the
// intake's unique-constraint retry then absorbs any collision.
type Sequencer struct {
	storage database.Storage
	tracer  trace.Tracer
}

// New creates a Sequencer over the given storage.
func New(storage database.Storage) *Sequencer {
	return &Sequencer{
		storage: storage,
		tracer:  otel.Tracer("order-sequencer"),
	}
}

// NextOrderName returns the next order name for the shop, e.g. "#1001".
// It never fails: counting or counter errors degrade to a best-effort
// number rather than blocking the submission.
func (s *Sequencer) NextOrderName(ctx context.Context, shopID string) string {
	ctx, span := s.tracer.Start(ctx, "Sequencer.NextOrderName")
	defer span.End()

	count, err := s.storage.CountOrders(ctx, shopID)
	if err != nil {
		log.Printf("order count for shop %s failed, seeding from base offset: %v", shopID, err)
		count = 0
	}
	seed := BaseOffset + count

	n, err := s.storage.NextSequence(ctx, shopID, seed)
	if err != nil {
		// Degraded path: use the seed directly. The insert retry in the
		// intake pipeline handles the collision this can produce.
		log.Printf("order counter for shop %s failed, using seed %d: %v", shopID, seed, err)
		n = seed
	}

	return Format(n)
}

// Format renders a counter value as an order name.
func Format(n int) string {
	return fmt.Sprintf("#%d", n)
}
