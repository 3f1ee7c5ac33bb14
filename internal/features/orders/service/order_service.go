package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/miteshhgoyal/gearmates/internal/core/config"
	"github.com/miteshhgoyal/gearmates/internal/core/logger"
	"github.com/miteshhgoyal/gearmates/internal/core/metrics"
	"github.com/miteshhgoyal/gearmates/internal/features/orders/domain"
	"github.com/miteshhgoyal/gearmates/internal/features/orders/ports"
)

// ErrPaymentNotCaptured is returned when a payment confirmation arrives for a
// gateway order the gateway does not report as paid.
var ErrPaymentNotCaptured = errors.New("payment not captured")

// PlaceOrderInput is the checkout payload common to COD and prepaid orders.
type PlaceOrderInput struct {
	Items   []domain.LineItem `json:"items"`
	Amount  float64           `json:"amount"`
	Address domain.Address    `json:"address"`
}

// PaymentIntent pairs the stored order with the gateway order the customer
// must now pay.
type PaymentIntent struct {
	Order        *domain.Order        `json:"order"`
	GatewayOrder *domain.PaymentOrder `json:"gatewayOrder"`
}

// OrderService owns the order lifecycle: checkout, payment confirmation,
// fulfillment status changes and the operator controls over the shipment
// workflow. Shipment booking failures never fail a checkout; the order is
// stored first and the booking outcome lands on its shipment sub-state.
type OrderService struct {
	repo         ports.OrderRepository
	cart         ports.CartStore
	payments     ports.PaymentGateway
	orchestrator *ShipmentOrchestrator
	config       *config.AppConfig
}

// NewOrderService creates a new OrderService.
func NewOrderService(repo ports.OrderRepository, cart ports.CartStore, payments ports.PaymentGateway, orchestrator *ShipmentOrchestrator, cfg *config.AppConfig) *OrderService {
	return &OrderService{
		repo:         repo,
		cart:         cart,
		payments:     payments,
		orchestrator: orchestrator,
		config:       cfg,
	}
}

// PlaceOrder handles a cash-on-delivery checkout: persist the order, book the
// shipment, clear the cart. Booking failure is contained; the customer still
// gets their order id.
func (s *OrderService) PlaceOrder(ctx context.Context, userID string, input PlaceOrderInput) (*domain.Order, error) {
	order, err := s.newOrder(userID, input, domain.PaymentMethodCOD)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to store order: %w", err)
	}
	metrics.OrdersPlaced.WithLabelValues(string(domain.PaymentMethodCOD)).Inc()

	s.bookContained(ctx, order)
	s.clearCart(ctx, userID)

	return order, nil
}

// CreatePaymentIntent starts a prepaid checkout: the order is stored unpaid
// and a gateway order is opened for the amount, carrying the local order id
// as receipt. Shipment booking waits for the payment confirmation.
func (s *OrderService) CreatePaymentIntent(ctx context.Context, userID string, input PlaceOrderInput) (*PaymentIntent, error) {
	order, err := s.newOrder(userID, input, domain.PaymentMethodPrepaid)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to store order: %w", err)
	}
	metrics.OrdersPlaced.WithLabelValues(string(domain.PaymentMethodPrepaid)).Inc()

	amountMinor := int64(math.Round(order.Amount * 100))
	gatewayOrder, err := s.payments.CreatePaymentOrder(ctx, amountMinor, s.config.Payment.Currency, order.ID.Hex())
	if err != nil {
		return nil, fmt.Errorf("failed to create payment order: %w", err)
	}

	return &PaymentIntent{Order: order, GatewayOrder: gatewayOrder}, nil
}

// ConfirmPayment settles a prepaid order after the gateway reports capture.
// The gateway is the source of truth: the stored flag flips only when the
// fetched status says paid. Confirmations are idempotent; a duplicate for an
// order whose booking previously failed re-runs the booking only when
// RETRY_SHIPMENT_ON_RECONFIRM allows it.
func (s *OrderService) ConfirmPayment(ctx context.Context, gatewayOrderID string) (*domain.Order, error) {
	gatewayOrder, err := s.payments.FetchPaymentStatus(ctx, gatewayOrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment status: %w", err)
	}
	if !gatewayOrder.Paid() {
		return nil, fmt.Errorf("%w: gateway reports status %q", ErrPaymentNotCaptured, gatewayOrder.Status)
	}

	order, err := s.repo.FindByID(ctx, gatewayOrder.Receipt)
	if err != nil {
		return nil, err
	}

	if order.Payment {
		// Duplicate confirmation. The cart was already cleared; only an
		// unfinished booking may be resumed.
		switch {
		case order.ShipmentState.Terminal():
		case order.ShipmentState == domain.ShipmentError:
			if s.config.RetryShipmentOnReconfirm {
				s.bookContained(ctx, order)
			}
		default:
			s.bookContained(ctx, order)
		}
		return order, nil
	}

	if err := s.repo.UpdatePayment(ctx, order.ID.Hex(), true); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}
	order.Payment = true
	metrics.PaymentsConfirmed.Inc()

	s.bookContained(ctx, order)
	s.clearCart(ctx, order.UserID)

	return order, nil
}

// ListForUser returns the user's orders, newest first.
func (s *OrderService) ListForUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	return s.repo.FindByUserID(ctx, userID)
}

// ListAll returns every order, newest first.
func (s *OrderService) ListAll(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.FindAll(ctx)
}

// GetOrder returns one order by id.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateStatus sets the customer-visible fulfillment stage. Any known stage
// is accepted in any order; operators own the sequencing.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	if !domain.ValidStatus(status) {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, status)
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

// UpdatePaymentFlag records an out-of-band settlement, e.g. COD collected.
func (s *OrderService) UpdatePaymentFlag(ctx context.Context, id string, paid bool) error {
	return s.repo.UpdatePayment(ctx, id, paid)
}

// UpdateTrackingInfo lets an operator attach shipment identifiers booked
// outside the automated workflow.
func (s *OrderService) UpdateTrackingInfo(ctx context.Context, id string, override ports.TrackingOverride) error {
	return s.repo.UpdateTrackingInfo(ctx, id, override)
}

// RetryShipment re-runs the booking workflow for an order whose automation
// failed, resuming after the last persisted checkpoint. The outcome lands on
// the returned order's shipment sub-state; only a missing order is an error.
func (s *OrderService) RetryShipment(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.bookContained(ctx, order)
	return order, nil
}

func (s *OrderService) newOrder(userID string, input PlaceOrderInput, method domain.PaymentMethod) (*domain.Order, error) {
	order := &domain.Order{
		UserID:        userID,
		Items:         input.Items,
		Amount:        input.Amount,
		Address:       input.Address,
		PaymentMethod: method,
		Status:        domain.OrderStatusPlaced,
		Dimensions:    domain.DefaultDimensions(domain.TotalWeight(input.Items)),
		ShipmentState: domain.ShipmentPending,
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// bookContained runs the shipment workflow and swallows its error: checkout
// and payment confirmation must succeed even when the carrier is down.
func (s *OrderService) bookContained(ctx context.Context, order *domain.Order) {
	if err := s.orchestrator.Book(ctx, order); err != nil {
		logger.Get().Warn("shipment booking failed, order kept",
			zap.String("orderId", order.ID.Hex()),
			zap.Error(err))
	}
}

func (s *OrderService) clearCart(ctx context.Context, userID string) {
	if err := s.cart.Clear(ctx, userID); err != nil {
		logger.Get().Error("failed to clear cart",
			zap.String("userId", userID),
			zap.Error(err))
	}
}
