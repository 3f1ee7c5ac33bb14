package domain

// Payment gateway order states, as reported by the provider's status fetch.
const (
	// GatewayStatusPaid means the gateway captured the funds.
	GatewayStatusPaid = "paid"
)

// PaymentOrder is the gateway-side handle for an authorized payment.
// Receipt carries the local order id set at intent-creation time.
type PaymentOrder struct {
	// ID is the gateway order identifier.
	ID string `json:"id"`
	// Amount is in minor currency units (e.g., paise).
	Amount int64 `json:"amount"`
	// Currency is the ISO currency code.
	Currency string `json:"currency"`
	// Receipt is the local order id embedded at creation time.
	Receipt string `json:"receipt"`
	// Status is the gateway order status ("created", "attempted", "paid").
	Status string `json:"status"`
}

// Paid reports whether the gateway confirmed capture.
func (p *PaymentOrder) Paid() bool {
	return p.Status == GatewayStatusPaid
}
