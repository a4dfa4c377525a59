package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"codgate/internal/metrics"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// ErrUnauthorized means the platform rejected the access token. The
// settlement pipeline tries its second credential path on this error.
var ErrUnauthorized = errors.New("platform rejected the access token")

// UserError carries the platform's own validation messages for a rejected
// draft order. Surfaced to the caller verbatim, joined when multiple.
type UserError struct {
	Messages []string
}

func (e *UserError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// LineItem is a single custom line on a draft order.
type LineItem struct {
	Title    string `json:"title"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
}

// ShippingAddress is the structured destination attached to a draft order.
type ShippingAddress struct {
	FirstName string `json:"first_name"`
	Phone     string `json:"phone,omitempty"`
	Address1  string `json:"address1"`
	City      string `json:"city"`
	Province  string `json:"province"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
}

// NoteAttribute is a key/value pair of custom metadata on a draft order.
type NoteAttribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// DraftOrderRequest is the create-draft-order payload.
type DraftOrderRequest struct {
	LineItems       []LineItem       `json:"line_items"`
	ShippingAddress *ShippingAddress `json:"shipping_address,omitempty"`
	NoteAttributes  []NoteAttribute  `json:"note_attributes,omitempty"`
	Tags            string           `json:"tags,omitempty"`
	Email           string           `json:"email,omitempty"`
}

// DraftOrder is the platform's reference for a created draft order. The
// invoice URL is the customer-facing checkout for the advance payment.
type DraftOrder struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	InvoiceURL string `json:"invoice_url"`
}

// Client calls the external commerce platform's Admin REST API. One
// capability is consumed: create draft order.
type Client struct {
	// BaseURL overrides the scheme+host derived from the shop domain.
	// Used by tests; empty in production.
	BaseURL string

	httpClient *http.Client
	apiVersion string
	tracer     trace.Tracer
}

// NewClient builds a client with a bounded timeout; no call may hang a
// checkout indefinitely.
func NewClient(apiVersion string) *Client {
	return &Client{
		apiVersion: apiVersion,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
			},
		},
		tracer: otel.Tracer("platform-client"),
	}
}

// CreateDraftOrder creates a draft order on the shop using the given access
// token. Returns ErrUnauthorized on 401/403, *UserError on a 422 with the
// platform's messages, and a wrapped transport error otherwise.
func (c *Client) CreateDraftOrder(ctx context.Context, shopDomain, token string, draft *DraftOrderRequest) (*DraftOrder, error) {
	ctx, span := c.tracer.Start(ctx, "Platform.CreateDraftOrder")
	defer span.End()

	base := c.BaseURL
	if base == "" {
		base = "https://" + shopDomain
	}
	url := fmt.Sprintf("%s/admin/api/%s/draft_orders.json", base, c.apiVersion)

	body, err := json.Marshal(map[string]*DraftOrderRequest{"draft_order": draft})
	if err != nil {
		return nil, fmt.Errorf("failed to encode draft order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build draft order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.PlatformRequests.WithLabelValues("transport_error").Inc()
		return nil, fmt.Errorf("draft order request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusCreated || resp.StatusCode == http.StatusOK:
		var out struct {
			DraftOrder DraftOrder `json:"draft_order"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			metrics.PlatformRequests.WithLabelValues("transport_error").Inc()
			return nil, fmt.Errorf("failed to decode draft order response: %w", err)
		}
		metrics.PlatformRequests.WithLabelValues("success").Inc()
		return &out.DraftOrder, nil

	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		metrics.PlatformRequests.WithLabelValues("unauthorized").Inc()
		return nil, ErrUnauthorized

	case resp.StatusCode == http.StatusUnprocessableEntity:
		metrics.PlatformRequests.WithLabelValues("user_error").Inc()
		return nil, parseUserErrors(resp.Body)

	default:
		metrics.PlatformRequests.WithLabelValues("transport_error").Inc()
		return nil, fmt.Errorf("draft order request failed with status %d", resp.StatusCode)
	}
}

// parseUserErrors extracts the platform's validation messages. The errors
// payload is either a plain string or a field -> messages map.
func parseUserErrors(body io.Reader) *UserError {
	raw, err := io.ReadAll(body)
	if err != nil {
		return &UserError{Messages: []string{"draft order was rejected"}}
	}

	var withMap struct {
		Errors map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(raw, &withMap); err == nil && len(withMap.Errors) > 0 {
		var messages []string
		for field, msgs := range withMap.Errors {
			for _, m := range msgs {
				messages = append(messages, fmt.Sprintf("%s %s", field, m))
			}
		}
		return &UserError{Messages: messages}
	}

	var withString struct {
		Errors string `json:"errors"`
	}
	if err := json.Unmarshal(raw, &withString); err == nil && withString.Errors != "" {
		return &UserError{Messages: []string{withString.Errors}}
	}

	return &UserError{Messages: []string{"draft order was rejected"}}
}
