package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/miteshhgoyal/gearmates/internal/core/config"
	"github.com/miteshhgoyal/gearmates/internal/core/logger"
	"github.com/miteshhgoyal/gearmates/internal/core/metrics"
	"github.com/miteshhgoyal/gearmates/internal/features/orders/domain"
	"github.com/miteshhgoyal/gearmates/internal/features/orders/ports"
	shipdomain "github.com/miteshhgoyal/gearmates/internal/features/shipping/domain"
	shipports "github.com/miteshhgoyal/gearmates/internal/features/shipping/ports"
)

// ErrNotServiceable means the carrier offered no courier for the destination.
// The wording is surfaced to operators verbatim.
var ErrNotServiceable = errors.New("no courier service available for this address")

// Booking step names, used for metrics and log fields.
const (
	stepCreateOrder    = "create_order"
	stepServiceability = "serviceability"
	stepAssignAWB      = "assign_awb"
	stepGenerateLabel  = "generate_label"
	stepSchedulePickup = "schedule_pickup"
)

// ShipmentOrchestrator drives the five-step booking workflow against the
// carrier gateway, persisting a checkpoint after every successful step so a
// failure can later resume from where it stopped instead of starting over.
type ShipmentOrchestrator struct {
	gateway shipports.CarrierGateway
	repo    ports.OrderRepository
	config  config.ShiprocketConfig
	locks   *orderLocks
}

// NewShipmentOrchestrator creates a new ShipmentOrchestrator.
func NewShipmentOrchestrator(gateway shipports.CarrierGateway, repo ports.OrderRepository, cfg config.ShiprocketConfig) *ShipmentOrchestrator {
	return &ShipmentOrchestrator{
		gateway: gateway,
		repo:    repo,
		config:  cfg,
		locks:   newOrderLocks(),
	}
}

// Book runs the workflow for one order: create the remote order, pick a
// courier, assign a waybill, generate the label, schedule the pickup. Steps
// whose checkpoint already exists are skipped, which makes Book the resume
// path after an error as well as the happy path.
//
// On the first failing step the order is parked in the error state with the
// failure message and Book returns that error. Identifiers persisted by
// earlier steps are left intact.
func (s *ShipmentOrchestrator) Book(ctx context.Context, order *domain.Order) error {
	id := order.ID.Hex()

	lock := s.locks.acquire(id)
	defer s.locks.release(id, lock)

	// A concurrent run may have advanced the order between the caller's load
	// and this lock; the checkpoint and terminal checks have to see what is
	// actually persisted, not the caller's snapshot.
	fresh, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	*order = *fresh

	if order.ShipmentState.Terminal() {
		return nil
	}

	log := logger.Get().With(zap.String("orderId", id))

	if err := s.createRemoteOrder(ctx, order, log); err != nil {
		return err
	}
	if err := s.assignCourier(ctx, order, log); err != nil {
		return err
	}
	if err := s.generateLabel(ctx, order, log); err != nil {
		return err
	}
	return s.schedulePickup(ctx, order, log)
}

// createRemoteOrder registers the booking with the aggregator. A re-run with
// remote identifiers already on record skips the call so the provider never
// sees a duplicate booking.
func (s *ShipmentOrchestrator) createRemoteOrder(ctx context.Context, order *domain.Order, log *zap.Logger) error {
	if order.ShiprocketOrderID != 0 {
		log.Info("remote order already exists, resuming",
			zap.Int64("shiprocketOrderId", order.ShiprocketOrderID))
		return nil
	}
	if !order.ShipmentState.CanTransition(domain.ShipmentCreated) {
		return nil
	}

	remote, err := s.gateway.CreateOrder(ctx, s.bookingRequest(order))
	if err != nil {
		return s.fail(ctx, order, stepCreateOrder, log, err)
	}

	if err := s.repo.SetShipmentCreated(ctx, order.ID.Hex(), remote.OrderID, remote.ShipmentID); err != nil {
		return s.fail(ctx, order, stepCreateOrder, log, fmt.Errorf("failed to persist remote order: %w", err))
	}

	order.ShiprocketOrderID = remote.OrderID
	order.ShiprocketShipmentID = remote.ShipmentID
	order.ShipmentState = domain.ShipmentCreated
	metrics.StepSuccess(stepCreateOrder)
	log.Info("remote order created",
		zap.Int64("shiprocketOrderId", remote.OrderID),
		zap.Int64("shiprocketShipmentId", remote.ShipmentID))
	return nil
}

// assignCourier checks serviceability, takes the provider's top-ranked
// courier and requests a waybill for it.
func (s *ShipmentOrchestrator) assignCourier(ctx context.Context, order *domain.Order, log *zap.Logger) error {
	if order.AWBCode != "" {
		return nil
	}
	if !order.ShipmentState.CanTransition(domain.ShipmentAWBAssigned) {
		return nil
	}

	cod := order.PaymentMethod == domain.PaymentMethodCOD
	options, err := s.gateway.CheckServiceability(ctx,
		s.config.PickupPincode, order.Address.Zipcode,
		order.Dimensions.Weight, cod, order.Amount)
	if err != nil {
		return s.fail(ctx, order, stepServiceability, log, err)
	}
	if len(options) == 0 {
		return s.fail(ctx, order, stepServiceability, log, ErrNotServiceable)
	}
	metrics.StepSuccess(stepServiceability)

	courier := options[0]
	assignment, err := s.gateway.AssignAWB(ctx, order.ShiprocketShipmentID, courier.CourierID)
	if err != nil {
		return s.fail(ctx, order, stepAssignAWB, log, err)
	}

	courierName := assignment.CourierName
	if courierName == "" {
		courierName = courier.Name
	}
	trackingURL := s.config.TrackingURLBase + "/" + url.PathEscape(assignment.AWBCode)

	if err := s.repo.SetAWBAssigned(ctx, order.ID.Hex(), assignment.AWBCode, courier.CourierID, courierName, trackingURL); err != nil {
		return s.fail(ctx, order, stepAssignAWB, log, fmt.Errorf("failed to persist awb: %w", err))
	}

	order.AWBCode = assignment.AWBCode
	order.CourierID = courier.CourierID
	order.CourierName = courierName
	order.TrackingURL = trackingURL
	order.ShipmentState = domain.ShipmentAWBAssigned
	metrics.StepSuccess(stepAssignAWB)
	log.Info("awb assigned",
		zap.String("awbCode", assignment.AWBCode),
		zap.String("courier", courierName))
	return nil
}

func (s *ShipmentOrchestrator) generateLabel(ctx context.Context, order *domain.Order, log *zap.Logger) error {
	if order.LabelURL != "" {
		return nil
	}
	if !order.ShipmentState.CanTransition(domain.ShipmentLabelGenerated) {
		return nil
	}

	labelURL, err := s.gateway.GenerateLabel(ctx, order.ShiprocketShipmentID)
	if err != nil {
		return s.fail(ctx, order, stepGenerateLabel, log, err)
	}

	if err := s.repo.SetLabelGenerated(ctx, order.ID.Hex(), labelURL); err != nil {
		return s.fail(ctx, order, stepGenerateLabel, log, fmt.Errorf("failed to persist label: %w", err))
	}

	order.LabelURL = labelURL
	order.ShipmentState = domain.ShipmentLabelGenerated
	metrics.StepSuccess(stepGenerateLabel)
	log.Info("label generated", zap.String("labelUrl", labelURL))
	return nil
}

func (s *ShipmentOrchestrator) schedulePickup(ctx context.Context, order *domain.Order, log *zap.Logger) error {
	if order.PickupScheduled {
		return nil
	}
	if !order.ShipmentState.CanTransition(domain.ShipmentPickupScheduled) {
		return nil
	}

	// Zero date lets the gateway default to the next day.
	confirmation, err := s.gateway.SchedulePickup(ctx, time.Time{}, order.ShiprocketShipmentID)
	if err != nil {
		return s.fail(ctx, order, stepSchedulePickup, log, err)
	}

	if err := s.repo.SetPickupScheduled(ctx, order.ID.Hex(), confirmation.Date, confirmation.Status); err != nil {
		return s.fail(ctx, order, stepSchedulePickup, log, fmt.Errorf("failed to persist pickup: %w", err))
	}

	order.PickupScheduled = true
	order.PickupDate = confirmation.Date
	order.PickupStatus = confirmation.Status
	order.ShipmentState = domain.ShipmentPickupScheduled
	order.Status = domain.OrderStatusShipped
	metrics.StepSuccess(stepSchedulePickup)
	log.Info("pickup scheduled",
		zap.Time("pickupDate", confirmation.Date),
		zap.String("pickupStatus", confirmation.Status))
	return nil
}

// fail parks the order in the error state with the step's failure message.
// Identifiers written by earlier checkpoints are not touched.
func (s *ShipmentOrchestrator) fail(ctx context.Context, order *domain.Order, step string, log *zap.Logger, cause error) error {
	metrics.StepFailure(step)
	log.Error("shipment booking step failed", zap.String("step", step), zap.Error(cause))

	order.ShipmentState = domain.ShipmentError
	order.ShipmentError = cause.Error()
	if err := s.repo.SetShipmentError(ctx, order.ID.Hex(), cause.Error()); err != nil {
		log.Error("failed to persist shipment error", zap.Error(err))
	}
	return cause
}

// bookingRequest maps the stored order onto the provider-neutral booking shape.
func (s *ShipmentOrchestrator) bookingRequest(order *domain.Order) shipdomain.BookingRequest {
	items := make([]shipdomain.BookingItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, shipdomain.BookingItem{
			Name:         item.Name,
			SKU:          item.SKU,
			Units:        item.Quantity,
			SellingPrice: item.Price,
		})
	}

	return shipdomain.BookingRequest{
		Reference:      order.ID.Hex(),
		OrderDate:      order.CreatedAt,
		PickupLocation: s.config.PickupLocation,
		Recipient: shipdomain.Recipient{
			FirstName: order.Address.FirstName,
			LastName:  order.Address.LastName,
			Street:    order.Address.Street,
			City:      order.Address.City,
			State:     order.Address.State,
			Pincode:   order.Address.Zipcode,
			Country:   order.Address.Country,
			Phone:     order.Address.Phone,
			Email:     order.Address.Email,
		},
		Items:    items,
		COD:      order.PaymentMethod == domain.PaymentMethodCOD,
		SubTotal: order.Amount,
		Length:   order.Dimensions.Length,
		Breadth:  order.Dimensions.Breadth,
		Height:   order.Dimensions.Height,
		Weight:   order.Dimensions.Weight,
	}
}
