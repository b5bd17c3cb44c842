package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/storewise/storefront-api/internal/service"
)

func postCheckout(t *testing.T, env *testEnv, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/store-1/checkout", bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestCheckoutHandler_CreateCheckout(t *testing.T) {
	env := newTestEnv(t)

	w := postCheckout(t, env, CheckoutRequest{
		ProductIDs: []string{"p1", "p2"},
		UserInfo: service.UserInfo{
			Address: "12 Rue des Fleurs",
			Phone:   "+212600000000",
			Email:   "buyer@example.com",
			City:    "Casablanca",
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var res service.CheckoutResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.URL != "https://pay.example.test/cs_test" {
		t.Errorf("expected gateway redirect url, got %q", res.URL)
	}
	if env.orderRepo.OrderCount() != 1 {
		t.Fatalf("expected one order, got %d", env.orderRepo.OrderCount())
	}
	_, items, err := env.orderRepo.GetWithItems(context.Background(), "store-1", res.OrderID)
	if err != nil {
		t.Fatalf("load order: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if env.gateway.lastParams.Metadata["orderId"] != res.OrderID {
		t.Errorf("order id not in gateway metadata")
	}
}

func TestCheckoutHandler_EmptyProductIDs(t *testing.T) {
	env := newTestEnv(t)

	w := postCheckout(t, env, CheckoutRequest{ProductIDs: nil})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if resp["error"] != "Product ids are required" {
		t.Errorf("unexpected error message %q", resp["error"])
	}
	if env.orderRepo.OrderCount() != 0 {
		t.Error("order created for empty cart")
	}
}

func TestCheckoutHandler_GatewayFailure(t *testing.T) {
	env := newTestEnv(t)
	env.gateway.err = errors.New("gateway down")

	w := postCheckout(t, env, CheckoutRequest{ProductIDs: []string{"p1"}})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if resp["error"] != "Internal server error" {
		t.Errorf("unexpected error message %q", resp["error"])
	}
}

func TestCheckoutHandler_CORSPreflight(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodOptions, "/store-1/checkout", nil)
	req.Header.Set("Origin", "https://store.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 preflight, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected permissive allow-origin, got %q", got)
	}
	if w.Body.Len() != 0 {
		t.Errorf("expected empty preflight body, got %q", w.Body.String())
	}
}
