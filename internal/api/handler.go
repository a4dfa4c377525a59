package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"codgate/internal/database"
	"codgate/internal/metrics"
	"codgate/internal/model"
	"codgate/internal/platform"
	"codgate/internal/pricing"
	"codgate/internal/settlement"
	"codgate/internal/validation"
	"codgate/internal/validator"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

//go:generate mockgen -source=handler.go -destination=./mocks/services_mock.go -package=mocks

// IntakeService is the order pipeline surface the handlers depend on.
type IntakeService interface {
	CreateOrder(ctx context.Context, sub *model.OrderSubmission) (*model.OrderLogEntry, error)
	UpdateStatus(ctx context.Context, shopID, orderName, next string) error
	ListOrders(ctx context.Context, shopID string, limit int) ([]model.OrderLogEntry, error)
}

// SettlementService is the partial-COD surface the handlers depend on.
type SettlementService interface {
	CreatePartialCheckout(ctx context.Context, sub *model.OrderSubmission, advanceAmount float64) (*model.PartialCODSplit, error)
}

// CustomerResolver resolves returning customers for autofill.
type CustomerResolver interface {
	Lookup(ctx context.Context, shopID, phone string) (*model.CustomerMatch, bool)
}

// OrderHandler serves the storefront widget and merchant dashboard routes.
type OrderHandler struct {
	intake     IntakeService
	settlement SettlementService
	resolver   CustomerResolver
}

// NewOrderHandler creates an OrderHandler.
func NewOrderHandler(intakeSvc IntakeService, settlementSvc SettlementService, resolver CustomerResolver) *OrderHandler {
	return &OrderHandler{intake: intakeSvc, settlement: settlementSvc, resolver: resolver}
}

// partialRequest is a submission plus the advance to collect online.
type partialRequest struct {
	model.OrderSubmission
	AdvanceAmount float64 `json:"advance_amount"`
}

// CreateOrder handles POST /apps/cod/order: the standard COD intake.
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	handlerName := "CreateOrder"
	timer := prometheus.NewTimer(metrics.HttpRequestDuration.WithLabelValues(handlerName))
	defer timer.ObserveDuration()

	var sub model.OrderSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", handlerName)
		return
	}
	if err := validator.ValidateStruct(&sub); err != nil {
		respondWithError(w, http.StatusBadRequest, "shop_id is required", handlerName)
		return
	}

	entry, err := h.intake.CreateOrder(r.Context(), &sub)
	if err != nil {
		var valErr *validation.Error
		if errors.As(err, &valErr) {
			respondWithError(w, http.StatusBadRequest, valErr.Message, handlerName)
			return
		}
		log.Printf("order creation failed: %v", err)
		respondWithError(w, http.StatusBadGateway, "failed to create order", handlerName)
		return
	}

	metrics.HttpRequestsTotal.WithLabelValues(handlerName, "201").Inc()
	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"order_name": entry.OrderName,
		"order_id":   entry.ID,
	})
}

// CreatePartialCheckout handles POST /apps/cod/partial: the partial-COD
// split and draft-order checkout.
func (h *OrderHandler) CreatePartialCheckout(w http.ResponseWriter, r *http.Request) {
	handlerName := "CreatePartialCheckout"
	timer := prometheus.NewTimer(metrics.HttpRequestDuration.WithLabelValues(handlerName))
	defer timer.ObserveDuration()

	var req partialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", handlerName)
		return
	}

	split, err := h.settlement.CreatePartialCheckout(r.Context(), &req.OrderSubmission, req.AdvanceAmount)
	if err != nil {
		var valErr *validation.Error
		var userErr *platform.UserError
		switch {
		case errors.As(err, &valErr):
			respondWithError(w, http.StatusBadRequest, valErr.Message, handlerName)
		case errors.As(err, &userErr):
			respondWithError(w, http.StatusBadRequest, userErr.Error(), handlerName)
		case errors.Is(err, settlement.ErrAuthFailed):
			respondWithError(w, http.StatusUnauthorized, err.Error(), handlerName)
		default:
			log.Printf("partial checkout failed: %v", err)
			respondWithError(w, http.StatusBadGateway, "failed to create partial checkout", handlerName)
		}
		return
	}

	metrics.HttpRequestsTotal.WithLabelValues(handlerName, "200").Inc()
	respondWithJSON(w, http.StatusOK, split)
}

// LookupCustomer handles GET /apps/cod/customer?shop=&phone=: phone-based
// autofill for returning customers.
func (h *OrderHandler) LookupCustomer(w http.ResponseWriter, r *http.Request) {
	handlerName := "LookupCustomer"
	timer := prometheus.NewTimer(metrics.HttpRequestDuration.WithLabelValues(handlerName))
	defer timer.ObserveDuration()

	shopID := r.URL.Query().Get("shop")
	phone := r.URL.Query().Get("phone")
	if shopID == "" || phone == "" {
		respondWithError(w, http.StatusBadRequest, "shop and phone are required", handlerName)
		return
	}

	match, found := h.resolver.Lookup(r.Context(), shopID, phone)
	if !found {
		metrics.HttpRequestsTotal.WithLabelValues(handlerName, "404").Inc()
		respondWithJSON(w, http.StatusNotFound, map[string]bool{"found": false})
		return
	}

	metrics.HttpRequestsTotal.WithLabelValues(handlerName, "200").Inc()
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"found":    true,
		"customer": match,
	})
}

// UpdateStatus handles POST /api/order/{orderName}/status: merchant-driven
// lifecycle transitions.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	handlerName := "UpdateStatus"
	timer := prometheus.NewTimer(metrics.HttpRequestDuration.WithLabelValues(handlerName))
	defer timer.ObserveDuration()

	// Order names contain "#", so the path segment arrives percent-encoded.
	orderName := chi.URLParam(r, "orderName")
	if decoded, err := url.PathUnescape(orderName); err == nil {
		orderName = decoded
	}
	shopID := r.URL.Query().Get("shop")
	if orderName == "" || shopID == "" {
		respondWithError(w, http.StatusBadRequest, "shop and order name are required", handlerName)
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Status == "" {
		respondWithError(w, http.StatusBadRequest, "status is required", handlerName)
		return
	}

	if err := h.intake.UpdateStatus(r.Context(), shopID, orderName, body.Status); err != nil {
		var valErr *validation.Error
		switch {
		case errors.Is(err, database.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "order not found", handlerName)
		case errors.As(err, &valErr):
			respondWithError(w, http.StatusBadRequest, valErr.Message, handlerName)
		default:
			log.Printf("status update failed: %v", err)
			respondWithError(w, http.StatusBadGateway, "failed to update status", handlerName)
		}
		return
	}

	metrics.HttpRequestsTotal.WithLabelValues(handlerName, "200").Inc()
	respondWithJSON(w, http.StatusOK, map[string]string{"order_name": orderName, "status": body.Status})
}

// ListOrders handles GET /api/orders?shop=&limit=: the dashboard feed.
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	handlerName := "ListOrders"
	timer := prometheus.NewTimer(metrics.HttpRequestDuration.WithLabelValues(handlerName))
	defer timer.ObserveDuration()

	shopID := r.URL.Query().Get("shop")
	if shopID == "" {
		respondWithError(w, http.StatusBadRequest, "shop is required", handlerName)
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	entries, err := h.intake.ListOrders(r.Context(), shopID, limit)
	if err != nil {
		log.Printf("order listing failed: %v", err)
		respondWithError(w, http.StatusBadGateway, "failed to list orders", handlerName)
		return
	}

	metrics.HttpRequestsTotal.WithLabelValues(handlerName, "200").Inc()
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"orders": entries})
}

// QuotePrice handles GET /apps/cod/price: the bundle price breakdown the
// widget shows before submission.
func (h *OrderHandler) QuotePrice(w http.ResponseWriter, r *http.Request) {
	handlerName := "QuotePrice"
	timer := prometheus.NewTimer(metrics.HttpRequestDuration.WithLabelValues(handlerName))
	defer timer.ObserveDuration()

	q := r.URL.Query()
	unitPrice, err := strconv.ParseFloat(q.Get("unit_price"), 64)
	if err != nil || unitPrice <= 0 {
		respondWithError(w, http.StatusBadRequest, "unit_price must be a positive number", handlerName)
		return
	}

	quantity := 1
	if raw := q.Get("quantity"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondWithError(w, http.StatusBadRequest, "quantity must be a positive number", handlerName)
			return
		}
		quantity = parsed
	}

	discountPercent, _ := strconv.ParseFloat(q.Get("discount_percent"), 64)
	discountFixed, _ := strconv.ParseFloat(q.Get("discount_fixed"), 64)

	calc := pricing.Calculate(unitPrice, quantity, discountPercent, discountFixed)

	metrics.HttpRequestsTotal.WithLabelValues(handlerName, "200").Inc()
	respondWithJSON(w, http.StatusOK, calc)
}

// respondWithJSON writes a JSON response.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// respondWithError writes a structured error and records the metric.
func respondWithError(w http.ResponseWriter, code int, message string, handlerName string) {
	metrics.HttpRequestsTotal.WithLabelValues(handlerName, strconv.Itoa(code)).Inc()
	respondWithJSON(w, code, map[string]string{"error": message})
}
