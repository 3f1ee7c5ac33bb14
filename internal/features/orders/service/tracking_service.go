package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/miteshhgoyal/gearmates/internal/core/logger"
	"github.com/miteshhgoyal/gearmates/internal/core/metrics"
	"github.com/miteshhgoyal/gearmates/internal/features/orders/domain"
	"github.com/miteshhgoyal/gearmates/internal/features/orders/ports"
	shipdomain "github.com/miteshhgoyal/gearmates/internal/features/shipping/domain"
	shipports "github.com/miteshhgoyal/gearmates/internal/features/shipping/ports"
)

// ErrForbidden is returned when a user asks for tracking on an order that is
// not theirs.
var ErrForbidden = errors.New("not allowed to view this order")

// TrackingResult is the customer-facing tracking view: the order's stored
// shipment metadata plus, when the carrier has data, the live payload.
// Available is false while the carrier has nothing to report yet; that is a
// normal state for a fresh shipment, not a failure.
type TrackingResult struct {
	OrderID              string                      `json:"orderId"`
	Status               domain.OrderStatus          `json:"status"`
	ShipmentState        domain.ShipmentState        `json:"shiprocketStatus"`
	ShiprocketOrderID    int64                       `json:"shiprocketOrderId,omitempty"`
	ShiprocketShipmentID int64                       `json:"shiprocketShipmentId,omitempty"`
	AWBCode              string                      `json:"awbCode,omitempty"`
	CourierName          string                      `json:"courierName,omitempty"`
	TrackingURL          string                      `json:"trackingUrl,omitempty"`
	TrackingHistory      []domain.TrackingEvent      `json:"trackingHistory,omitempty"`
	Available            bool                        `json:"available"`
	Tracking             *shipdomain.TrackingPayload `json:"tracking,omitempty"`
}

// TrackingService answers tracking queries by combining the stored order with
// a live carrier lookup, keyed by shipment id first and waybill second.
type TrackingService struct {
	repo    ports.OrderRepository
	gateway shipports.CarrierGateway
}

// NewTrackingService creates a new TrackingService.
func NewTrackingService(repo ports.OrderRepository, gateway shipports.CarrierGateway) *TrackingService {
	return &TrackingService{repo: repo, gateway: gateway}
}

// TrackOrder returns the tracking view for one order. Non-admin requesters
// may only see their own orders. Carrier lookup failures degrade to
// "not available yet" instead of erroring; the stored metadata still renders.
func (s *TrackingService) TrackOrder(ctx context.Context, orderID, requesterID string, isAdmin bool) (*TrackingResult, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.UserID != requesterID {
		return nil, ErrForbidden
	}

	result := &TrackingResult{
		OrderID:              order.ID.Hex(),
		Status:               order.Status,
		ShipmentState:        order.ShipmentState,
		ShiprocketOrderID:    order.ShiprocketOrderID,
		ShiprocketShipmentID: order.ShiprocketShipmentID,
		AWBCode:              order.AWBCode,
		CourierName:          order.CourierName,
		TrackingURL:          order.TrackingURL,
	}

	payload := s.lookup(ctx, order)
	if payload != nil {
		result.Available = true
		result.Tracking = payload
		s.recordLatest(ctx, order, payload)
	}
	result.TrackingHistory = order.TrackingHistory

	return result, nil
}

// lookup tries the shipment id first, then falls back to the waybill. Either
// lookup returning nil means the carrier has no data for that key yet.
func (s *TrackingService) lookup(ctx context.Context, order *domain.Order) *shipdomain.TrackingPayload {
	if order.ShiprocketShipmentID != 0 {
		metrics.TrackingLookups.WithLabelValues("shipment_id").Inc()
		if payload, err := s.gateway.TrackByShipmentID(ctx, order.ShiprocketShipmentID); err == nil && payload != nil {
			return payload
		}
	}
	if order.AWBCode != "" {
		metrics.TrackingLookups.WithLabelValues("awb").Inc()
		if payload, err := s.gateway.TrackByAWB(ctx, order.AWBCode); err == nil && payload != nil {
			return payload
		}
	}
	return nil
}

// recordLatest appends the carrier's current status to the order's tracking
// history when it is news. Best effort; a write failure never fails the query.
func (s *TrackingService) recordLatest(ctx context.Context, order *domain.Order, payload *shipdomain.TrackingPayload) {
	if payload.CurrentStatus == "" {
		return
	}
	if n := len(order.TrackingHistory); n > 0 && order.TrackingHistory[n-1].Status == payload.CurrentStatus {
		return
	}

	event := domain.TrackingEvent{
		Status:    payload.CurrentStatus,
		Timestamp: time.Now().UTC(),
	}
	if n := len(payload.Events); n > 0 {
		last := payload.Events[n-1]
		event.Location = last.Location
		event.EventDetail = last.Activity
	}

	if err := s.repo.AppendTrackingEvent(ctx, order.ID.Hex(), event); err != nil {
		logger.Get().Warn("failed to append tracking event",
			zap.String("orderId", order.ID.Hex()),
			zap.Error(err))
		return
	}
	order.TrackingHistory = append(order.TrackingHistory, event)
}
