package ports

import (
	"context"
	"errors"
	"time"

	"github.com/miteshhgoyal/gearmates/internal/features/orders/domain"
)

// ErrOrderNotFound is returned when an order id matches nothing in the store.
var ErrOrderNotFound = errors.New("order not found")

// TrackingOverride carries the shipment fields an operator may set manually
// when automation failed and the shipment was booked out-of-band. Zero values
// leave the stored field untouched.
type TrackingOverride struct {
	AWBCode              string
	CourierName          string
	TrackingURL          string
	ShiprocketOrderID    int64
	ShiprocketShipmentID int64
}

// OrderRepository persists orders. The booking workflow writes a checkpoint
// through the Set* methods after every successful step; each method performs
// a targeted field update, never a whole-document rewrite.
type OrderRepository interface {
	Insert(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	FindByUserID(ctx context.Context, userID string) ([]*domain.Order, error)
	FindAll(ctx context.Context) ([]*domain.Order, error)

	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
	UpdatePayment(ctx context.Context, id string, paid bool) error

	SetShipmentCreated(ctx context.Context, id string, remoteOrderID, remoteShipmentID int64) error
	SetAWBAssigned(ctx context.Context, id string, awbCode string, courierID int64, courierName, trackingURL string) error
	SetLabelGenerated(ctx context.Context, id string, labelURL string) error
	SetPickupScheduled(ctx context.Context, id string, date time.Time, pickupStatus string) error
	SetShipmentError(ctx context.Context, id string, message string) error

	UpdateTrackingInfo(ctx context.Context, id string, override TrackingOverride) error
	AppendTrackingEvent(ctx context.Context, id string, event domain.TrackingEvent) error
}

// CartStore owns the per-user cart aggregate.
type CartStore interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	Add(ctx context.Context, userID, productID string, quantity int) error
	Remove(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error
}

// PaymentGateway is the external payment provider.
type PaymentGateway interface {
	// CreatePaymentOrder opens a gateway order for the given amount in minor
	// units, tagging it with the local order id as receipt.
	CreatePaymentOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*domain.PaymentOrder, error)
	// FetchPaymentStatus returns the gateway's authoritative order state.
	FetchPaymentStatus(ctx context.Context, gatewayOrderID string) (*domain.PaymentOrder, error)
}
