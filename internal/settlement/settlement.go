package settlement

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"codgate/internal/address"
	"codgate/internal/intake"
	"codgate/internal/metrics"
	"codgate/internal/model"
	"codgate/internal/platform"
	"codgate/internal/validation"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// ErrAuthFailed means neither credential path could authorize the draft
// order call. Always reported as a single failure, not per token.
var ErrAuthFailed = errors.New("authentication failed against the commerce platform")

// DraftOrderCreator is the one platform capability this pipeline consumes.
type DraftOrderCreator interface {
	CreateDraftOrder(ctx context.Context, shopDomain, token string, draft *platform.DraftOrderRequest) (*platform.DraftOrder, error)
}

// credential is one of the alternative authentication paths; tried in
// order, storefront proxy before merchant admin.
type credential struct {
	kind  string
	token string
}

// Service splits a partial-COD sale into an online advance and a delivery
// remainder and hosts the advance on an external draft order.
type Service struct {
	platform DraftOrderCreator
	intake   *intake.Service
	creds    []credential
	defaults model.RegionDefaults
	currency string
	tracer   trace.Tracer
}

// NewService wires the partial settlement pipeline. proxyToken and
// adminToken are the two credential paths; empty ones are skipped.
func NewService(client DraftOrderCreator, intakeSvc *intake.Service, proxyToken, adminToken string, defaults model.RegionDefaults, currency string) *Service {
	var creds []credential
	if proxyToken != "" {
		creds = append(creds, credential{kind: "proxy", token: proxyToken})
	}
	if adminToken != "" {
		creds = append(creds, credential{kind: "admin", token: adminToken})
	}
	return &Service{
		platform: client,
		intake:   intakeSvc,
		creds:    creds,
		defaults: defaults,
		currency: currency,
		tracer:   otel.Tracer("partial-settlement"),
	}
}

// CreatePartialCheckout computes the advance/remainder split, creates the
// external draft order hosting the advance payment, and records the order.
// The returned checkout URL is where the caller must send the customer.
func (s *Service) CreatePartialCheckout(ctx context.Context, sub *model.OrderSubmission, advanceAmount float64) (*model.PartialCODSplit, error) {
	ctx, span := s.tracer.Start(ctx, "Settlement.CreatePartialCheckout")
	defer span.End()

	if strings.TrimSpace(sub.ShopID) == "" {
		return nil, &validation.Error{Field: "shop_id", Message: "Shop is required"}
	}
	if strings.TrimSpace(sub.ProductID) == "" {
		return nil, &validation.Error{Field: "product_id", Message: "Product ID is required"}
	}
	if advanceAmount <= 0 {
		return nil, &validation.Error{Field: "advance_amount", Message: "Advance amount is required"}
	}

	total := round2(sub.UnitPrice*float64(sub.Quantity) + sub.ShippingPrice)
	remaining := round2(total - advanceAmount)
	if remaining < 0 {
		// A negative remainder indicates a misconfigured advance; reject,
		// never clamp.
		return nil, &validation.Error{
			Field:   "advance_amount",
			Message: fmt.Sprintf("Advance amount %.2f exceeds the order total %.2f", advanceAmount, total),
		}
	}

	draft := s.buildDraftOrder(sub, advanceAmount, remaining, total)

	created, err := s.createWithFallback(ctx, sub.ShopID, draft)
	if err != nil {
		return nil, err
	}

	entry := &model.OrderLogEntry{
		ShopID:          sub.ShopID,
		CustomerName:    strings.TrimSpace(sub.CustomerName),
		Phone:           strings.TrimSpace(sub.Phone),
		Address:         strings.TrimSpace(sub.Address),
		Email:           strings.TrimSpace(sub.Email),
		ProductID:       sub.ProductID,
		VariantID:       sub.VariantID,
		ProductTitle:    sub.ProductTitle,
		Quantity:        sub.Quantity,
		TotalPrice:      total,
		Currency:        s.currency,
		Status:          model.StatusPending,
		Notes:           sub.Notes,
		ShippingMethod:  sub.ShippingMethod,
		IsPartialCod:    true,
		AdvanceAmount:   advanceAmount,
		RemainingAmount: remaining,
		DraftOrderID:    strconv.FormatInt(created.ID, 10),
		DraftOrderName:  created.Name,
	}
	if err := s.intake.PersistPending(ctx, entry); err != nil {
		return nil, err
	}
	metrics.OrdersCreated.WithLabelValues("partial_cod").Inc()

	return &model.PartialCODSplit{
		TotalOrderValue: total,
		AdvanceAmount:   advanceAmount,
		RemainingAmount: remaining,
		DraftOrderID:    entry.DraftOrderID,
		DraftOrderName:  created.Name,
		CheckoutURL:     created.InvoiceURL,
	}, nil
}

// buildDraftOrder assembles the reconciliation payload: a single line item
// priced at exactly the advance, the structured shipping address, and note
// attributes recording the original sale plus the remainder to collect at
// delivery.
func (s *Service) buildDraftOrder(sub *model.OrderSubmission, advanceAmount, remaining, total float64) *platform.DraftOrderRequest {
	parsed := address.Parse(sub.Address, s.defaults)

	title := sub.ProductTitle
	if title == "" {
		title = "Order"
	}

	return &platform.DraftOrderRequest{
		LineItems: []platform.LineItem{{
			Title:    fmt.Sprintf("Advance payment - %s", title),
			Price:    formatAmount(advanceAmount),
			Quantity: 1,
		}},
		ShippingAddress: &platform.ShippingAddress{
			FirstName: sub.CustomerName,
			Phone:     strings.TrimSpace(sub.Phone),
			Address1:  parsed.Address1,
			City:      parsed.City,
			Province:  parsed.Province,
			Zip:       parsed.PostalCode,
			Country:   "India",
		},
		NoteAttributes: []platform.NoteAttribute{
			{Name: "original_product_id", Value: sub.ProductID},
			{Name: "original_variant_id", Value: sub.VariantID},
			{Name: "original_quantity", Value: strconv.Itoa(sub.Quantity)},
			{Name: "original_unit_price", Value: formatAmount(sub.UnitPrice)},
			{Name: "total_order_value", Value: formatAmount(total)},
			{Name: "remaining_cod_amount", Value: formatAmount(remaining)},
		},
		Tags:  "partial-cod",
		Email: strings.TrimSpace(sub.Email),
	}
}

// createWithFallback tries each credential path in order. Only an
// authorization rejection moves on to the next token; user errors and
// transport failures surface immediately.
func (s *Service) createWithFallback(ctx context.Context, shopDomain string, draft *platform.DraftOrderRequest) (*platform.DraftOrder, error) {
	if len(s.creds) == 0 {
		return nil, ErrAuthFailed
	}

	for _, cred := range s.creds {
		created, err := s.platform.CreateDraftOrder(ctx, shopDomain, cred.token, draft)
		if err == nil {
			return created, nil
		}
		if errors.Is(err, platform.ErrUnauthorized) {
			continue
		}
		var userErr *platform.UserError
		if errors.As(err, &userErr) {
			return nil, userErr
		}
		return nil, fmt.Errorf("draft order creation failed: %w", err)
	}

	return nil, ErrAuthFailed
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(round2(v), 'f', 2, 64)
}
