package platform

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDraft() *DraftOrderRequest {
	return &DraftOrderRequest{
		LineItems: []LineItem{{Title: "Advance payment - Steel Bottle", Price: "200.00", Quantity: 1}},
		ShippingAddress: &ShippingAddress{
			FirstName: "Asha Patel", Address1: "12 Lane St", City: "Mumbai",
			Province: "Maharashtra", Zip: "400001", Country: "India",
		},
		NoteAttributes: []NoteAttribute{{Name: "remaining_cod_amount", Value: "850.00"}},
		Tags:           "partial-cod",
	}
}

func TestCreateDraftOrder_Success(t *testing.T) {
	var gotToken string
	var gotBody map[string]*DraftOrderRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/admin/api/2024-01/draft_orders.json", r.URL.Path)
		gotToken = r.Header.Get("X-Shopify-Access-Token")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"draft_order": map[string]interface{}{
				"id":          450789469,
				"name":        "#D12",
				"invoice_url": "https://demo-shop.example.com/invoices/abc",
			},
		})
	}))
	defer server.Close()

	client := NewClient("2024-01")
	client.BaseURL = server.URL

	created, err := client.CreateDraftOrder(context.Background(), "demo-shop.example.com", "token-1", testDraft())
	require.NoError(t, err)
	assert.Equal(t, int64(450789469), created.ID)
	assert.Equal(t, "#D12", created.Name)
	assert.Equal(t, "https://demo-shop.example.com/invoices/abc", created.InvoiceURL)
	assert.Equal(t, "token-1", gotToken)
	assert.Equal(t, "200.00", gotBody["draft_order"].LineItems[0].Price)
}

func TestCreateDraftOrder_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient("2024-01")
	client.BaseURL = server.URL

	_, err := client.CreateDraftOrder(context.Background(), "demo-shop.example.com", "bad-token", testDraft())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCreateDraftOrder_UserErrorsSurfacedVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"errors":{"line_items":["must not be empty"]}}`))
	}))
	defer server.Close()

	client := NewClient("2024-01")
	client.BaseURL = server.URL

	_, err := client.CreateDraftOrder(context.Background(), "demo-shop.example.com", "token-1", testDraft())
	require.Error(t, err)

	var userErr *UserError
	require.True(t, errors.As(err, &userErr))
	assert.Contains(t, userErr.Error(), "line_items must not be empty")
}

func TestCreateDraftOrder_StringErrorPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"errors":"draft order limit reached"}`))
	}))
	defer server.Close()

	client := NewClient("2024-01")
	client.BaseURL = server.URL

	_, err := client.CreateDraftOrder(context.Background(), "demo-shop.example.com", "token-1", testDraft())

	var userErr *UserError
	require.True(t, errors.As(err, &userErr))
	assert.Equal(t, "draft order limit reached", userErr.Error())
}

func TestCreateDraftOrder_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient("2024-01")
	client.BaseURL = server.URL

	_, err := client.CreateDraftOrder(context.Background(), "demo-shop.example.com", "token-1", testDraft())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "500")
}
