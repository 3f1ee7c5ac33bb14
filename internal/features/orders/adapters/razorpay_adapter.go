package adapters

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/miteshhgoyal/gearmates/internal/core/config"
	"github.com/miteshhgoyal/gearmates/internal/core/httpclient"
	"github.com/miteshhgoyal/gearmates/internal/features/orders/domain"
)

// RazorpayAdapter implements the PaymentGateway port against a Razorpay-style
// orders API: basic auth, JSON bodies, one resource per operation.
type RazorpayAdapter struct {
	client *http.Client
	config config.PaymentConfig
}

// NewRazorpayAdapter creates a new RazorpayAdapter.
func NewRazorpayAdapter(cfg config.PaymentConfig, timeout time.Duration) *RazorpayAdapter {
	return &RazorpayAdapter{
		client: httpclient.NewClient(timeout),
		config: cfg,
	}
}

// CreatePaymentOrder opens a gateway order carrying the local order id as receipt.
func (a *RazorpayAdapter) CreatePaymentOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*domain.PaymentOrder, error) {
	body, err := json.Marshal(map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode payment order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.URL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	a.authorize(req)

	return a.execute(req)
}

// FetchPaymentStatus returns the gateway's authoritative state for an order.
func (a *RazorpayAdapter) FetchPaymentStatus(ctx context.Context, gatewayOrderID string) (*domain.PaymentOrder, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.config.URL+"/v1/orders/"+gatewayOrderID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	a.authorize(req)

	return a.execute(req)
}

func (a *RazorpayAdapter) authorize(req *http.Request) {
	credentials := a.config.KeyID + ":" + a.config.KeySecret
	encoded := base64.StdEncoding.EncodeToString([]byte(credentials))
	req.Header.Set("Authorization", "Basic "+encoded)
}

func (a *RazorpayAdapter) execute(req *http.Request) (*domain.PaymentOrder, error) {
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var gatewayErr struct {
			Error struct {
				Description string `json:"description"`
			} `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&gatewayErr); err == nil && gatewayErr.Error.Description != "" {
			return nil, fmt.Errorf("payment gateway returned status %d: %s", resp.StatusCode, gatewayErr.Error.Description)
		}
		return nil, fmt.Errorf("payment gateway returned status %d", resp.StatusCode)
	}

	var order domain.PaymentOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &order, nil
}
