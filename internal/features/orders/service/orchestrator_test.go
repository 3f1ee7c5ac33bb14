package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miteshhgoyal/gearmates/internal/core/config"
	"github.com/miteshhgoyal/gearmates/internal/features/orders/domain"
)

func testShiprocketConfig() config.ShiprocketConfig {
	return config.ShiprocketConfig{
		PickupPincode:   "110001",
		PickupLocation:  "Primary",
		TrackingURLBase: "https://track.example.com",
	}
}

func testOrder(method domain.PaymentMethod) *domain.Order {
	items := []domain.LineItem{
		{ProductID: "p1", Name: "Bar Tape", SKU: "TAPE-01", Price: 499, Quantity: 2, Weight: 0.2},
		{ProductID: "p2", Name: "Saddle", Price: 1999, Quantity: 1},
	}
	return &domain.Order{
		UserID:        "user-1",
		Items:         items,
		Amount:        2997,
		Address:       testAddress(),
		PaymentMethod: method,
		Status:        domain.OrderStatusPlaced,
		Dimensions:    domain.DefaultDimensions(domain.TotalWeight(items)),
		ShipmentState: domain.ShipmentPending,
	}
}

func testAddress() domain.Address {
	return domain.Address{
		FirstName: "Asha",
		LastName:  "Verma",
		Street:    "14 MG Road",
		City:      "Bengaluru",
		State:     "Karnataka",
		Zipcode:   "560001",
		Country:   "India",
		Phone:     "9876543210",
		Email:     "asha@example.com",
	}
}

func newTestOrchestrator(t *testing.T) (*ShipmentOrchestrator, *memoryOrderRepository, *mockCarrierGateway) {
	t.Helper()
	repo := newMemoryOrderRepository()
	gateway := &mockCarrierGateway{}
	return NewShipmentOrchestrator(gateway, repo, testShiprocketConfig()), repo, gateway
}

// TestOrchestrator_HappyPath verifies the full five-step booking run.
func TestOrchestrator_HappyPath(t *testing.T) {
	orch, repo, gateway := newTestOrchestrator(t)

	order := testOrder(domain.PaymentMethodCOD)
	require.NoError(t, repo.Insert(context.Background(), order))
	require.NoError(t, orch.Book(context.Background(), order))

	stored := repo.get(order.ID.Hex())
	assert.Equal(t, int64(9001), stored.ShiprocketOrderID)
	assert.Equal(t, int64(7001), stored.ShiprocketShipmentID)
	assert.Equal(t, "AWB123456", stored.AWBCode)
	assert.Equal(t, int64(42), stored.CourierID)
	assert.Equal(t, "Bluedart", stored.CourierName)
	assert.Equal(t, "https://track.example.com/AWB123456", stored.TrackingURL)
	assert.Equal(t, "https://labels.example.com/label-7001.pdf", stored.LabelURL)
	assert.True(t, stored.PickupScheduled)
	assert.Equal(t, "scheduled", stored.PickupStatus)
	assert.Equal(t, domain.ShipmentPickupScheduled, stored.ShipmentState)
	assert.Equal(t, domain.OrderStatusShipped, stored.Status)
	assert.Empty(t, stored.ShipmentError)

	assert.Equal(t, 1, gateway.createCalls)
	assert.Equal(t, 1, gateway.svcCalls)
	assert.Equal(t, 1, gateway.assignCalls)
	assert.Equal(t, 1, gateway.labelCalls)
	assert.Equal(t, 1, gateway.pickupCalls)
}

// TestOrchestrator_BookingRequestMapping verifies what the carrier receives.
func TestOrchestrator_BookingRequestMapping(t *testing.T) {
	orch, repo, gateway := newTestOrchestrator(t)

	order := testOrder(domain.PaymentMethodCOD)
	require.NoError(t, repo.Insert(context.Background(), order))
	require.NoError(t, orch.Book(context.Background(), order))

	booking := gateway.lastBooking
	assert.Equal(t, order.ID.Hex(), booking.Reference)
	assert.Equal(t, "Primary", booking.PickupLocation)
	assert.True(t, booking.COD)
	assert.Equal(t, 2997.0, booking.SubTotal)
	assert.Equal(t, "560001", booking.Recipient.Pincode)
	require.Len(t, booking.Items, 2)
	assert.Equal(t, "TAPE-01", booking.Items[0].SKU)
	assert.Equal(t, 2, booking.Items[0].Units)
	// 0.2*2 + 0.5*1 for the weightless item.
	assert.InDelta(t, 0.9, booking.Weight, 1e-9)
}

// TestOrchestrator_NotServiceable verifies an empty courier list parks the
// order in the error state with the operator-facing message, keeping the
// remote identifiers written by the create step.
func TestOrchestrator_NotServiceable(t *testing.T) {
	orch, repo, gateway := newTestOrchestrator(t)
	gateway.noCouriers = true

	order := testOrder(domain.PaymentMethodCOD)
	require.NoError(t, repo.Insert(context.Background(), order))

	err := orch.Book(context.Background(), order)
	require.ErrorIs(t, err, ErrNotServiceable)

	stored := repo.get(order.ID.Hex())
	assert.Equal(t, domain.ShipmentError, stored.ShipmentState)
	assert.Contains(t, stored.ShipmentError, "no courier")
	assert.Equal(t, int64(9001), stored.ShiprocketOrderID)
	assert.Equal(t, int64(7001), stored.ShiprocketShipmentID)
	assert.Equal(t, 0, gateway.assignCalls)
}

// TestOrchestrator_FailurePreservesEarlierCheckpoints verifies a label
// failure leaves the waybill and remote identifiers in place.
func TestOrchestrator_FailurePreservesEarlierCheckpoints(t *testing.T) {
	orch, repo, gateway := newTestOrchestrator(t)
	gateway.failLabel = errors.New("label service down")

	order := testOrder(domain.PaymentMethodCOD)
	require.NoError(t, repo.Insert(context.Background(), order))

	err := orch.Book(context.Background(), order)
	require.Error(t, err)

	stored := repo.get(order.ID.Hex())
	assert.Equal(t, domain.ShipmentError, stored.ShipmentState)
	assert.Contains(t, stored.ShipmentError, "label service down")
	assert.Equal(t, "AWB123456", stored.AWBCode)
	assert.Equal(t, int64(9001), stored.ShiprocketOrderID)
	assert.Empty(t, stored.LabelURL)
	assert.False(t, stored.PickupScheduled)
}

// TestOrchestrator_ResumeSkipsCompletedSteps verifies a re-run after a
// mid-flow failure resumes at the failed step instead of re-booking.
func TestOrchestrator_ResumeSkipsCompletedSteps(t *testing.T) {
	orch, repo, gateway := newTestOrchestrator(t)
	gateway.failLabel = errors.New("label service down")

	order := testOrder(domain.PaymentMethodCOD)
	require.NoError(t, repo.Insert(context.Background(), order))
	require.Error(t, orch.Book(context.Background(), order))

	gateway.failLabel = nil
	resumed := repo.get(order.ID.Hex())
	require.NoError(t, orch.Book(context.Background(), resumed))

	// Create, serviceability and assignment ran exactly once across both runs.
	assert.Equal(t, 1, gateway.createCalls)
	assert.Equal(t, 1, gateway.svcCalls)
	assert.Equal(t, 1, gateway.assignCalls)
	assert.Equal(t, 2, gateway.labelCalls)

	stored := repo.get(order.ID.Hex())
	assert.Equal(t, domain.ShipmentPickupScheduled, stored.ShipmentState)
	assert.Equal(t, domain.OrderStatusShipped, stored.Status)
}

// TestOrchestrator_ResumeAfterCreateFailure verifies the create step itself
// is retried when it never succeeded.
func TestOrchestrator_ResumeAfterCreateFailure(t *testing.T) {
	orch, repo, gateway := newTestOrchestrator(t)
	gateway.failCreate = errors.New("aggregator unavailable")

	order := testOrder(domain.PaymentMethodCOD)
	require.NoError(t, repo.Insert(context.Background(), order))
	require.Error(t, orch.Book(context.Background(), order))

	gateway.failCreate = nil
	resumed := repo.get(order.ID.Hex())
	require.NoError(t, orch.Book(context.Background(), resumed))

	assert.Equal(t, 2, gateway.createCalls)
	assert.Equal(t, domain.ShipmentPickupScheduled, repo.get(order.ID.Hex()).ShipmentState)
}

// TestOrchestrator_TerminalOrderIsNoop verifies a completed booking is never
// re-run.
func TestOrchestrator_TerminalOrderIsNoop(t *testing.T) {
	orch, repo, gateway := newTestOrchestrator(t)

	order := testOrder(domain.PaymentMethodCOD)
	require.NoError(t, repo.Insert(context.Background(), order))
	require.NoError(t, orch.Book(context.Background(), order))
	require.NoError(t, orch.Book(context.Background(), order))

	assert.Equal(t, 1, gateway.createCalls)
	assert.Equal(t, 1, gateway.pickupCalls)
}

// TestOrchestrator_StaleSnapshotDoesNotRebook verifies a run started from a
// pre-booking snapshot of an already-booked order sees the persisted state
// and no-ops instead of creating a second remote order.
func TestOrchestrator_StaleSnapshotDoesNotRebook(t *testing.T) {
	orch, repo, gateway := newTestOrchestrator(t)

	order := testOrder(domain.PaymentMethodPrepaid)
	require.NoError(t, repo.Insert(context.Background(), order))

	snapA, err := repo.FindByID(context.Background(), order.ID.Hex())
	require.NoError(t, err)
	snapB, err := repo.FindByID(context.Background(), order.ID.Hex())
	require.NoError(t, err)

	require.NoError(t, orch.Book(context.Background(), snapA))
	require.NoError(t, orch.Book(context.Background(), snapB))

	assert.Equal(t, 1, gateway.createCalls)
	assert.Equal(t, 1, gateway.pickupCalls)
	assert.Equal(t, domain.ShipmentPickupScheduled, snapB.ShipmentState)
	assert.Equal(t, int64(9001), snapB.ShiprocketOrderID)
}

// TestOrchestrator_ConcurrentBooksRunOnce verifies two simultaneous runs for
// the same order, each holding its own snapshot, book exactly once between
// them, and that the per-order lock entry is dropped afterwards.
func TestOrchestrator_ConcurrentBooksRunOnce(t *testing.T) {
	orch, repo, gateway := newTestOrchestrator(t)

	order := testOrder(domain.PaymentMethodPrepaid)
	require.NoError(t, repo.Insert(context.Background(), order))

	snapA, err := repo.FindByID(context.Background(), order.ID.Hex())
	require.NoError(t, err)
	snapB, err := repo.FindByID(context.Background(), order.ID.Hex())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for _, snap := range []*domain.Order{snapA, snapB} {
		wg.Add(1)
		go func(o *domain.Order) {
			defer wg.Done()
			assert.NoError(t, orch.Book(context.Background(), o))
		}(snap)
	}
	wg.Wait()

	assert.Equal(t, 1, gateway.createCalls)
	assert.Equal(t, 1, gateway.svcCalls)
	assert.Equal(t, 1, gateway.assignCalls)
	assert.Equal(t, 1, gateway.labelCalls)
	assert.Equal(t, 1, gateway.pickupCalls)
	assert.Equal(t, domain.ShipmentPickupScheduled, repo.get(order.ID.Hex()).ShipmentState)
	assert.Equal(t, 0, orch.locks.size())
}

// TestOrchestrator_PrepaidIsNotCOD verifies the COD flag tracks the payment
// method.
func TestOrchestrator_PrepaidIsNotCOD(t *testing.T) {
	orch, repo, gateway := newTestOrchestrator(t)

	order := testOrder(domain.PaymentMethodPrepaid)
	require.NoError(t, repo.Insert(context.Background(), order))
	require.NoError(t, orch.Book(context.Background(), order))

	assert.False(t, gateway.lastBooking.COD)
}
