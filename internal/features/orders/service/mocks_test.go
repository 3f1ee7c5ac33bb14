package service

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/miteshhgoyal/gearmates/internal/features/orders/domain"
	"github.com/miteshhgoyal/gearmates/internal/features/orders/ports"
	shipdomain "github.com/miteshhgoyal/gearmates/internal/features/shipping/domain"
)

// memoryOrderRepository is an in-memory OrderRepository mirroring the mongo
// adapter's targeted-update behavior.
type memoryOrderRepository struct {
	mu     sync.Mutex
	orders map[string]*domain.Order
}

func newMemoryOrderRepository() *memoryOrderRepository {
	return &memoryOrderRepository{orders: make(map[string]*domain.Order)}
}

func (r *memoryOrderRepository) Insert(ctx context.Context, o *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now
	stored := *o
	r.orders[o.ID.Hex()] = &stored
	return nil
}

func (r *memoryOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrOrderNotFound
	}
	copy := *stored
	return &copy, nil
}

func (r *memoryOrderRepository) FindByUserID(ctx context.Context, userID string) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			copy := *o
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (r *memoryOrderRepository) FindAll(ctx context.Context) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Order
	for _, o := range r.orders {
		copy := *o
		out = append(out, &copy)
	}
	return out, nil
}

func (r *memoryOrderRepository) update(id string, fn func(*domain.Order)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.orders[id]
	if !ok {
		return ports.ErrOrderNotFound
	}
	fn(stored)
	stored.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *memoryOrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	return r.update(id, func(o *domain.Order) { o.Status = status })
}

func (r *memoryOrderRepository) UpdatePayment(ctx context.Context, id string, paid bool) error {
	return r.update(id, func(o *domain.Order) { o.Payment = paid })
}

func (r *memoryOrderRepository) SetShipmentCreated(ctx context.Context, id string, remoteOrderID, remoteShipmentID int64) error {
	return r.update(id, func(o *domain.Order) {
		o.ShiprocketOrderID = remoteOrderID
		o.ShiprocketShipmentID = remoteShipmentID
		o.ShipmentState = domain.ShipmentCreated
	})
}

func (r *memoryOrderRepository) SetAWBAssigned(ctx context.Context, id string, awbCode string, courierID int64, courierName, trackingURL string) error {
	return r.update(id, func(o *domain.Order) {
		o.AWBCode = awbCode
		o.CourierID = courierID
		o.CourierName = courierName
		o.TrackingURL = trackingURL
		o.ShipmentState = domain.ShipmentAWBAssigned
	})
}

func (r *memoryOrderRepository) SetLabelGenerated(ctx context.Context, id string, labelURL string) error {
	return r.update(id, func(o *domain.Order) {
		o.LabelURL = labelURL
		o.ShipmentState = domain.ShipmentLabelGenerated
	})
}

func (r *memoryOrderRepository) SetPickupScheduled(ctx context.Context, id string, date time.Time, pickupStatus string) error {
	return r.update(id, func(o *domain.Order) {
		o.PickupScheduled = true
		o.PickupDate = date
		o.PickupStatus = pickupStatus
		o.ShipmentState = domain.ShipmentPickupScheduled
		o.Status = domain.OrderStatusShipped
	})
}

func (r *memoryOrderRepository) SetShipmentError(ctx context.Context, id string, message string) error {
	return r.update(id, func(o *domain.Order) {
		o.ShipmentState = domain.ShipmentError
		o.ShipmentError = message
	})
}

func (r *memoryOrderRepository) UpdateTrackingInfo(ctx context.Context, id string, override ports.TrackingOverride) error {
	return r.update(id, func(o *domain.Order) {
		if override.AWBCode != "" {
			o.AWBCode = override.AWBCode
		}
		if override.CourierName != "" {
			o.CourierName = override.CourierName
		}
		if override.TrackingURL != "" {
			o.TrackingURL = override.TrackingURL
		}
		if override.ShiprocketOrderID != 0 {
			o.ShiprocketOrderID = override.ShiprocketOrderID
		}
		if override.ShiprocketShipmentID != 0 {
			o.ShiprocketShipmentID = override.ShiprocketShipmentID
		}
	})
}

func (r *memoryOrderRepository) AppendTrackingEvent(ctx context.Context, id string, event domain.TrackingEvent) error {
	return r.update(id, func(o *domain.Order) {
		o.TrackingHistory = append(o.TrackingHistory, event)
	})
}

// get returns the stored order for assertions.
func (r *memoryOrderRepository) get(id string) *domain.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	copy := *r.orders[id]
	return &copy
}

// mockCarrierGateway is a scriptable CarrierGateway: each step can be told to
// fail, and every call is counted.
type mockCarrierGateway struct {
	mu sync.Mutex

	createCalls  int
	svcCalls     int
	assignCalls  int
	labelCalls   int
	pickupCalls  int
	trackSIDCall int
	trackAWBCall int

	failCreate         error
	failServiceability error
	failAssign         error
	failLabel          error
	failPickup         error

	noCouriers bool

	lastBooking shipdomain.BookingRequest

	trackByShipment *shipdomain.TrackingPayload
	trackByAWB      *shipdomain.TrackingPayload
}

func (m *mockCarrierGateway) CreateOrder(ctx context.Context, req shipdomain.BookingRequest) (*shipdomain.RemoteOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	m.lastBooking = req
	if m.failCreate != nil {
		return nil, m.failCreate
	}
	return &shipdomain.RemoteOrder{OrderID: 9001, ShipmentID: 7001}, nil
}

func (m *mockCarrierGateway) CheckServiceability(ctx context.Context, pickupPincode, deliveryPincode string, weight float64, cod bool, declaredValue float64) ([]shipdomain.CourierOption, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.svcCalls++
	if m.failServiceability != nil {
		return nil, m.failServiceability
	}
	if m.noCouriers {
		return nil, nil
	}
	return []shipdomain.CourierOption{
		{CourierID: 42, Name: "Bluedart", Rate: 85.5, EstimatedDays: "2"},
		{CourierID: 17, Name: "Delhivery", Rate: 92.0, EstimatedDays: "3"},
	}, nil
}

func (m *mockCarrierGateway) AssignAWB(ctx context.Context, shipmentID, courierID int64) (*shipdomain.AWBAssignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assignCalls++
	if m.failAssign != nil {
		return nil, m.failAssign
	}
	return &shipdomain.AWBAssignment{AWBCode: "AWB123456", CourierID: courierID, CourierName: "Bluedart"}, nil
}

func (m *mockCarrierGateway) GenerateLabel(ctx context.Context, shipmentIDs ...int64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.labelCalls++
	if m.failLabel != nil {
		return "", m.failLabel
	}
	return "https://labels.example.com/label-7001.pdf", nil
}

func (m *mockCarrierGateway) SchedulePickup(ctx context.Context, pickupDate time.Time, shipmentIDs ...int64) (*shipdomain.PickupConfirmation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pickupCalls++
	if m.failPickup != nil {
		return nil, m.failPickup
	}
	return &shipdomain.PickupConfirmation{
		Status: "scheduled",
		Date:   time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
	}, nil
}

func (m *mockCarrierGateway) TrackByShipmentID(ctx context.Context, shipmentID int64) (*shipdomain.TrackingPayload, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trackSIDCall++
	return m.trackByShipment, nil
}

func (m *mockCarrierGateway) TrackByAWB(ctx context.Context, awbCode string) (*shipdomain.TrackingPayload, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trackAWBCall++
	return m.trackByAWB, nil
}

// mockCartStore counts Clear calls; Get/Add/Remove are not exercised here.
type mockCartStore struct {
	mu         sync.Mutex
	clearCalls map[string]int
	clearErr   error
}

func newMockCartStore() *mockCartStore {
	return &mockCartStore{clearCalls: map[string]int{}}
}

func (m *mockCartStore) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	return domain.NewCart(), nil
}

func (m *mockCartStore) Add(ctx context.Context, userID, productID string, quantity int) error {
	return nil
}

func (m *mockCartStore) Remove(ctx context.Context, userID, productID string) error {
	return nil
}

func (m *mockCartStore) Clear(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearCalls[userID]++
	return m.clearErr
}

func (m *mockCartStore) cleared(userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clearCalls[userID]
}

// mockPaymentGateway returns a configurable payment order status.
type mockPaymentGateway struct {
	createCalls int
	createErr   error
	status      string
	receipt     string
}

func (m *mockPaymentGateway) CreatePaymentOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*domain.PaymentOrder, error) {
	m.createCalls++
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.receipt = receipt
	return &domain.PaymentOrder{
		ID:       "order_gw_1",
		Amount:   amountMinor,
		Currency: currency,
		Receipt:  receipt,
		Status:   "created",
	}, nil
}

func (m *mockPaymentGateway) FetchPaymentStatus(ctx context.Context, gatewayOrderID string) (*domain.PaymentOrder, error) {
	return &domain.PaymentOrder{
		ID:      gatewayOrderID,
		Receipt: m.receipt,
		Status:  m.status,
	}, nil
}
