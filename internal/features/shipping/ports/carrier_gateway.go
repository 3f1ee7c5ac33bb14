package ports

import (
	"context"
	"time"

	"github.com/miteshhgoyal/gearmates/internal/features/shipping/domain"
)

// CarrierGateway is the single point of contact with the logistics
// aggregator. Implementations hide authentication, fail fast (no retries),
// and normalize provider response shapes into the shipping domain types.
type CarrierGateway interface {
	// CreateOrder registers the booking with the aggregator and returns the
	// remote identifiers. Not guaranteed idempotent by the provider.
	CreateOrder(ctx context.Context, req domain.BookingRequest) (*domain.RemoteOrder, error)

	// CheckServiceability returns the courier options able to deliver between
	// the two postal codes, ranked by the provider. An empty slice is a valid
	// result meaning "not serviceable".
	CheckServiceability(ctx context.Context, pickupPincode, deliveryPincode string, weight float64, cod bool, declaredValue float64) ([]domain.CourierOption, error)

	// AssignAWB requests a waybill for the shipment. courierID zero lets the
	// provider pick.
	AssignAWB(ctx context.Context, shipmentID, courierID int64) (*domain.AWBAssignment, error)

	// GenerateLabel returns the URL of the shipping label document.
	GenerateLabel(ctx context.Context, shipmentIDs ...int64) (string, error)

	// SchedulePickup books the carrier visit. A zero pickupDate defaults to
	// the next day.
	SchedulePickup(ctx context.Context, pickupDate time.Time, shipmentIDs ...int64) (*domain.PickupConfirmation, error)

	// TrackByShipmentID returns the normalized tracking payload, or nil when
	// the provider has no data yet. nil is a normal outcome, not a failure.
	TrackByShipmentID(ctx context.Context, shipmentID int64) (*domain.TrackingPayload, error)

	// TrackByAWB is TrackByShipmentID keyed by waybill number.
	TrackByAWB(ctx context.Context, awbCode string) (*domain.TrackingPayload, error)
}
