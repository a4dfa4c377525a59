package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"codgate/internal/api/mocks"
	"codgate/internal/database"
	"codgate/internal/model"
	"codgate/internal/platform"
	"codgate/internal/settlement"
	"codgate/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testShop = "demo-shop.example.com"

func setupServer(t *testing.T) (*Server, *mocks.MockIntakeService, *mocks.MockSettlementService, *mocks.MockCustomerResolver) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	intakeSvc := mocks.NewMockIntakeService(ctrl)
	settlementSvc := mocks.NewMockSettlementService(ctrl)
	resolver := mocks.NewMockCustomerResolver(ctrl)
	return NewServer("0", NewOrderHandler(intakeSvc, settlementSvc, resolver)), intakeSvc, settlementSvc, resolver
}

func postJSON(router http.Handler, path string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestCreateOrder_Created(t *testing.T) {
	server, intakeSvc, _, _ := setupServer(t)

	intakeSvc.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, sub *model.OrderSubmission) (*model.OrderLogEntry, error) {
			assert.Equal(t, testShop, sub.ShopID)
			assert.Equal(t, "9876543210", sub.Phone)
			return &model.OrderLogEntry{ID: 7, OrderName: "#1001"}, nil
		})

	rr := postJSON(server.router, "/apps/cod/order", map[string]interface{}{
		"shop_id":       testShop,
		"customer_name": "Asha Patel",
		"phone":         "9876543210",
		"address":       "12 Lane St, Mumbai",
		"product_id":    "prod-1",
		"quantity":      1,
		"unit_price":    499,
	})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))

	body := decodeBody(t, rr)
	assert.Equal(t, "#1001", body["order_name"])
	assert.Equal(t, float64(7), body["order_id"])
}

func TestCreateOrder_MissingShop(t *testing.T) {
	server, intakeSvc, _, _ := setupServer(t)
	intakeSvc.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Times(0)

	rr := postJSON(server.router, "/apps/cod/order", map[string]interface{}{
		"customer_name": "Asha Patel",
	})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "shop_id is required", decodeBody(t, rr)["error"])
}

func TestCreateOrder_ValidationError(t *testing.T) {
	server, intakeSvc, _, _ := setupServer(t)

	intakeSvc.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
		Return(nil, &validation.Error{Field: "phone", Message: "Phone number is required"})

	rr := postJSON(server.router, "/apps/cod/order", map[string]interface{}{"shop_id": testShop})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Phone number is required", decodeBody(t, rr)["error"])
}

func TestCreateOrder_StoreFailure(t *testing.T) {
	server, intakeSvc, _, _ := setupServer(t)

	intakeSvc.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection refused"))

	rr := postJSON(server.router, "/apps/cod/order", map[string]interface{}{"shop_id": testShop})

	assert.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestCreateOrder_MalformedBody(t *testing.T) {
	server, intakeSvc, _, _ := setupServer(t)
	intakeSvc.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Times(0)

	req := httptest.NewRequest(http.MethodPost, "/apps/cod/order", bytes.NewBufferString("{not json"))
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreatePartialCheckout_Split(t *testing.T) {
	server, _, settlementSvc, _ := setupServer(t)

	settlementSvc.EXPECT().CreatePartialCheckout(gomock.Any(), gomock.Any(), 200.0).DoAndReturn(
		func(_ context.Context, sub *model.OrderSubmission, _ float64) (*model.PartialCODSplit, error) {
			assert.Equal(t, testShop, sub.ShopID)
			return &model.PartialCODSplit{
				TotalOrderValue: 1050,
				AdvanceAmount:   200,
				RemainingAmount: 850,
				CheckoutURL:     "https://demo-shop.example.com/invoice/abc",
			}, nil
		})

	rr := postJSON(server.router, "/apps/cod/partial", map[string]interface{}{
		"shop_id":        testShop,
		"product_id":     "prod-1",
		"quantity":       2,
		"unit_price":     500,
		"shipping_price": 50,
		"advance_amount": 200,
	})

	assert.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, 850.0, body["remaining_amount"])
	assert.Equal(t, "https://demo-shop.example.com/invoice/abc", body["checkout_url"])
}

func TestCreatePartialCheckout_AuthFailure(t *testing.T) {
	server, _, settlementSvc, _ := setupServer(t)

	settlementSvc.EXPECT().CreatePartialCheckout(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, settlement.ErrAuthFailed)

	rr := postJSON(server.router, "/apps/cod/partial", map[string]interface{}{"shop_id": testShop, "advance_amount": 200})

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCreatePartialCheckout_PlatformUserError(t *testing.T) {
	server, _, settlementSvc, _ := setupServer(t)

	settlementSvc.EXPECT().CreatePartialCheckout(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, &platform.UserError{Messages: []string{"line_items price invalid"}})

	rr := postJSON(server.router, "/apps/cod/partial", map[string]interface{}{"shop_id": testShop, "advance_amount": 200})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decodeBody(t, rr)["error"], "line_items price invalid")
}

func TestLookupCustomer_Found(t *testing.T) {
	server, _, _, resolver := setupServer(t)

	resolver.EXPECT().Lookup(gomock.Any(), testShop, "9876543210").
		Return(&model.CustomerMatch{Name: "Asha Patel", Address: "12 Lane St", City: "Mumbai"}, true)

	req := httptest.NewRequest(http.MethodGet, "/apps/cod/customer?shop="+testShop+"&phone=9876543210", nil)
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, true, body["found"])
	customer := body["customer"].(map[string]interface{})
	assert.Equal(t, "Asha Patel", customer["name"])
}

func TestLookupCustomer_NotFound(t *testing.T) {
	server, _, _, resolver := setupServer(t)

	resolver.EXPECT().Lookup(gomock.Any(), testShop, "0000000000").Return(nil, false)

	req := httptest.NewRequest(http.MethodGet, "/apps/cod/customer?shop="+testShop+"&phone=0000000000", nil)
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, false, decodeBody(t, rr)["found"])
}

func TestLookupCustomer_MissingParams(t *testing.T) {
	server, _, _, resolver := setupServer(t)
	resolver.EXPECT().Lookup(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	req := httptest.NewRequest(http.MethodGet, "/apps/cod/customer?shop="+testShop, nil)
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateStatus_OK(t *testing.T) {
	server, intakeSvc, _, _ := setupServer(t)

	intakeSvc.EXPECT().UpdateStatus(gomock.Any(), testShop, "#1001", model.StatusConfirmed).Return(nil)

	rr := postJSON(server.router, "/api/order/%231001/status?shop="+testShop, map[string]string{"status": model.StatusConfirmed})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, model.StatusConfirmed, decodeBody(t, rr)["status"])
}

func TestUpdateStatus_NotFound(t *testing.T) {
	server, intakeSvc, _, _ := setupServer(t)

	intakeSvc.EXPECT().UpdateStatus(gomock.Any(), testShop, "#9999", model.StatusConfirmed).
		Return(database.ErrNotFound)

	rr := postJSON(server.router, "/api/order/%239999/status?shop="+testShop, map[string]string{"status": model.StatusConfirmed})

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdateStatus_IllegalTransition(t *testing.T) {
	server, intakeSvc, _, _ := setupServer(t)

	intakeSvc.EXPECT().UpdateStatus(gomock.Any(), testShop, "#1001", model.StatusConfirmed).
		Return(&validation.Error{Field: "status", Message: "cannot move order from delivered to confirmed"})

	rr := postJSON(server.router, "/api/order/%231001/status?shop="+testShop, map[string]string{"status": model.StatusConfirmed})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateStatus_MissingStatus(t *testing.T) {
	server, intakeSvc, _, _ := setupServer(t)
	intakeSvc.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	rr := postJSON(server.router, "/api/order/%231001/status?shop="+testShop, map[string]string{})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestListOrders_DefaultLimit(t *testing.T) {
	server, intakeSvc, _, _ := setupServer(t)

	intakeSvc.EXPECT().ListOrders(gomock.Any(), testShop, 50).
		Return([]model.OrderLogEntry{{OrderName: "#1002"}, {OrderName: "#1001"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/orders?shop="+testShop, nil)
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	orders := decodeBody(t, rr)["orders"].([]interface{})
	assert.Len(t, orders, 2)
}

func TestListOrders_ExplicitLimit(t *testing.T) {
	server, intakeSvc, _, _ := setupServer(t)

	intakeSvc.EXPECT().ListOrders(gomock.Any(), testShop, 5).Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/orders?shop="+testShop+"&limit=5", nil)
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestQuotePrice_FixedDiscount(t *testing.T) {
	server, _, _, _ := setupServer(t)

	req := httptest.NewRequest(http.MethodGet, "/apps/cod/price?unit_price=500&quantity=2&discount_fixed=100", nil)
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, 1000.0, body["original"])
	assert.Equal(t, 900.0, body["discounted"])
	assert.Equal(t, 100.0, body["savings"])
	assert.Equal(t, 10.0, body["discount_percent"])
}

func TestQuotePrice_BadUnitPrice(t *testing.T) {
	server, _, _, _ := setupServer(t)

	req := httptest.NewRequest(http.MethodGet, "/apps/cod/price?unit_price=free", nil)
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPreflight(t *testing.T) {
	server, _, _, _ := setupServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/apps/cod/order", nil)
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), "OPTIONS")
}
