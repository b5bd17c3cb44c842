package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_CreateSession(t *testing.T) {
	var gotAuth string
	var gotParams SessionParams

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/checkout/sessions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotParams); err != nil {
			t.Fatalf("decode params: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Session{ID: "cs_123", URL: "https://pay.example.com/cs_123"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk_test")
	session, err := c.CreateSession(context.Background(), SessionParams{
		LineItems: []LineItem{
			{Name: "Mug", Currency: "MAD", UnitAmount: 9900, Quantity: 1},
		},
		SuccessURL: "https://store.example.com/cart?success=1",
		CancelURL:  "https://store.example.com/cart?canceled=1",
		Metadata:   map[string]string{"orderId": "ord-1"},
	})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	if session.URL != "https://pay.example.com/cs_123" {
		t.Errorf("unexpected url %q", session.URL)
	}
	if gotAuth != "Bearer sk_test" {
		t.Errorf("unexpected auth header %q", gotAuth)
	}
	if gotParams.Metadata["orderId"] != "ord-1" {
		t.Errorf("order id metadata not forwarded: %v", gotParams.Metadata)
	}
	if len(gotParams.LineItems) != 1 || gotParams.LineItems[0].UnitAmount != 9900 {
		t.Errorf("line items not forwarded: %+v", gotParams.LineItems)
	}
}

func TestClient_CreateSession_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk_bad")
	if _, err := c.CreateSession(context.Background(), SessionParams{}); err == nil {
		t.Fatal("expected error on non-2xx response")
	}
}

func TestClient_CreateSession_MissingURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cs_123"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk_test")
	if _, err := c.CreateSession(context.Background(), SessionParams{}); err == nil {
		t.Fatal("expected error when session has no url")
	}
}
