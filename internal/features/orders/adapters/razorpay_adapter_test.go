package adapters

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miteshhgoyal/gearmates/internal/core/config"
)

func newTestRazorpayAdapter(t *testing.T, handler http.HandlerFunc) *RazorpayAdapter {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewRazorpayAdapter(config.PaymentConfig{
		URL:       server.URL,
		KeyID:     "rzp_test_key",
		KeySecret: "rzp_test_secret",
		Currency:  "INR",
	}, 5*time.Second)
}

func TestRazorpayAdapter_CreatePaymentOrder(t *testing.T) {
	var captured map[string]interface{}

	adapter := newTestRazorpayAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "rzp_test_key", user)
		assert.Equal(t, "rzp_test_secret", pass)

		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":       "order_abc123",
			"amount":   149900,
			"currency": "INR",
			"receipt":  "64f1c2",
			"status":   "created",
		})
	})

	order, err := adapter.CreatePaymentOrder(context.Background(), 149900, "INR", "64f1c2")
	require.NoError(t, err)

	assert.Equal(t, "order_abc123", order.ID)
	assert.Equal(t, int64(149900), order.Amount)
	assert.Equal(t, "64f1c2", order.Receipt)
	assert.False(t, order.Paid())

	assert.Equal(t, float64(149900), captured["amount"])
	assert.Equal(t, "INR", captured["currency"])
	assert.Equal(t, "64f1c2", captured["receipt"])
}

func TestRazorpayAdapter_FetchPaymentStatus(t *testing.T) {
	adapter := newTestRazorpayAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/orders/order_abc123", r.URL.Path)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":       "order_abc123",
			"amount":   149900,
			"currency": "INR",
			"receipt":  "64f1c2",
			"status":   "paid",
		})
	})

	order, err := adapter.FetchPaymentStatus(context.Background(), "order_abc123")
	require.NoError(t, err)
	assert.True(t, order.Paid())
}

func TestRazorpayAdapter_GatewayError(t *testing.T) {
	adapter := newTestRazorpayAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{
				"description": "amount must be at least 100",
			},
		})
	})

	_, err := adapter.CreatePaymentOrder(context.Background(), 1, "INR", "64f1c2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount must be at least 100")
}
