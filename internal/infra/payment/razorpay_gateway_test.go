//go:build !integration

package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"
)

func sign(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	const secret = "test-secret"
	orderID := "order_Mf2kqXg7Pq1Zty"
	paymentID := "pay_Mf2lDq3XAbCdEf"
	good := sign(orderID, paymentID, secret)

	t.Run("accepts a matching signature", func(t *testing.T) {
		if !VerifySignature(orderID, paymentID, good, secret) {
			t.Error("expected valid signature to verify")
		}
	})

	t.Run("rejects empty inputs", func(t *testing.T) {
		if VerifySignature("", paymentID, good, secret) {
			t.Error("empty order id must not verify")
		}
		if VerifySignature(orderID, "", good, secret) {
			t.Error("empty payment id must not verify")
		}
		if VerifySignature(orderID, paymentID, "", secret) {
			t.Error("empty signature must not verify")
		}
	})

	t.Run("any single-character mutation flips the result", func(t *testing.T) {
		flip := func(s string, i int) string {
			b := []byte(s)
			if b[i] == 'a' {
				b[i] = 'b'
			} else {
				b[i] = 'a'
			}
			return string(b)
		}
		for i := 0; i < len(good); i += 7 {
			if VerifySignature(orderID, paymentID, flip(good, i), secret) {
				t.Fatalf("mutated signature at index %d still verified", i)
			}
		}
		if VerifySignature(flip(orderID, 3), paymentID, good, secret) {
			t.Error("mutated order id still verified")
		}
		if VerifySignature(orderID, flip(paymentID, 3), good, secret) {
			t.Error("mutated payment id still verified")
		}
		if VerifySignature(orderID, paymentID, good, secret+"x") {
			t.Error("wrong secret still verified")
		}
	})
}

func TestRazorpayGateway_CreateOrder(t *testing.T) {
	t.Run("posts basic-auth order and maps the response", func(t *testing.T) {
		// --- Arrange ---
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/orders" || r.Method != http.MethodPost {
				t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			}
			if user, pass, ok := r.BasicAuth(); !ok || user != "key" || pass != "secret" {
				t.Error("expected basic auth with the configured key pair")
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":"order_1","entity":"order","amount":499900,"currency":"INR","receipt":"rcpt_1","status":"created","created_at":1700000000}`))
		}))
		defer srv.Close()

		g := NewRazorpayGateway("key", "secret")
		g.baseURL = srv.URL

		// --- Act ---
		order, err := g.CreateOrder(context.Background(), 499900, "INR", "rcpt_1", map[string]string{"plan": "Quarterly Plan"})

		// --- Assert ---
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if order.ID != "order_1" || order.Amount != 499900 || order.Currency != "INR" {
			t.Errorf("unexpected order: %+v", order)
		}
	})

	t.Run("surfaces gateway errors", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"amount too small"}}`))
		}))
		defer srv.Close()

		g := NewRazorpayGateway("key", "secret")
		g.baseURL = srv.URL

		_, err := g.CreateOrder(context.Background(), 1, "INR", "rcpt_1", nil)

		if err == nil {
			t.Fatal("expected an error from the gateway")
		}
	})
}
