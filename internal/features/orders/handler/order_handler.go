package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/miteshhgoyal/gearmates/internal/core/auth"
	"github.com/miteshhgoyal/gearmates/internal/features/orders/domain"
	"github.com/miteshhgoyal/gearmates/internal/features/orders/ports"
	"github.com/miteshhgoyal/gearmates/internal/features/orders/service"
)

// OrderHandler handles HTTP requests for the order lifecycle.
type OrderHandler struct {
	orders   *service.OrderService
	tracking *service.TrackingService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orders *service.OrderService, tracking *service.TrackingService) *OrderHandler {
	return &OrderHandler{
		orders:   orders,
		tracking: tracking,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

func rayID(c *fiber.Ctx) string {
	rid, _ := c.Locals("requestid").(string)
	return rid
}

// respondError maps service errors onto HTTP statuses.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, service.ErrPaymentNotCaptured):
		status = fiber.StatusBadRequest
	case errors.Is(err, ports.ErrOrderNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		status = fiber.StatusForbidden
	}
	return c.Status(status).JSON(ErrorResponse{
		Message: err.Error(),
		RayID:   rayID(c),
	})
}

// PlaceOrder godoc
// @Summary Place a cash-on-delivery order
// @Description Stores the order, books the shipment and clears the cart. A shipment booking failure does not fail the checkout.
// @Tags orders
// @Accept json
// @Produce json
// @Param order body service.PlaceOrderInput true "Checkout payload"
// @Success 201 {object} domain.Order
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/orders/place [post]
func (h *OrderHandler) PlaceOrder(c *fiber.Ctx) error {
	principal, ok := auth.FromCtx(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var input service.PlaceOrderInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   rayID(c),
		})
	}

	order, err := h.orders.PlaceOrder(c.UserContext(), principal.UserID, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// CreatePaymentOrder godoc
// @Summary Start a prepaid checkout
// @Description Stores an unpaid order and opens a payment gateway order for it.
// @Tags orders
// @Accept json
// @Produce json
// @Param order body service.PlaceOrderInput true "Checkout payload"
// @Success 201 {object} service.PaymentIntent
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/orders/payment-order [post]
func (h *OrderHandler) CreatePaymentOrder(c *fiber.Ctx) error {
	principal, ok := auth.FromCtx(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var input service.PlaceOrderInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   rayID(c),
		})
	}

	intent, err := h.orders.CreatePaymentIntent(c.UserContext(), principal.UserID, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(intent)
}

type verifyPaymentRequest struct {
	// GatewayOrderID is the payment gateway's order id handed out at intent time.
	GatewayOrderID string `json:"gatewayOrderId"`
}

// VerifyPayment godoc
// @Summary Confirm a prepaid payment
// @Description Fetches the authoritative payment status from the gateway; on capture, books the shipment and clears the cart. Safe to call more than once.
// @Tags orders
// @Accept json
// @Produce json
// @Param payment body verifyPaymentRequest true "Gateway order id"
// @Success 200 {object} domain.Order
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/orders/verify-payment [post]
func (h *OrderHandler) VerifyPayment(c *fiber.Ctx) error {
	var req verifyPaymentRequest
	if err := c.BodyParser(&req); err != nil || req.GatewayOrderID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "gatewayOrderId is required",
			RayID:   rayID(c),
		})
	}

	order, err := h.orders.ConfirmPayment(c.UserContext(), req.GatewayOrderID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// ListMine godoc
// @Summary List the caller's orders
// @Tags orders
// @Produce json
// @Success 200 {array} domain.Order
// @Security BearerAuth
// @Router /api/orders/mine [get]
func (h *OrderHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.FromCtx(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	orders, err := h.orders.ListForUser(c.UserContext(), principal.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// GetTracking godoc
// @Summary Get tracking for one order
// @Description Returns the stored shipment metadata plus live carrier tracking when available. "Not available yet" is a normal response for fresh shipments.
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} service.TrackingResult
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/orders/{id}/tracking [get]
func (h *OrderHandler) GetTracking(c *fiber.Ctx) error {
	principal, ok := auth.FromCtx(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	result, err := h.tracking.TrackOrder(c.UserContext(), c.Params("id"), principal.UserID, principal.Admin)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// ListAll godoc
// @Summary List every order
// @Tags admin
// @Produce json
// @Success 200 {array} domain.Order
// @Security BearerAuth
// @Router /api/orders [get]
func (h *OrderHandler) ListAll(c *fiber.Ctx) error {
	orders, err := h.orders.ListAll(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

type updateStatusRequest struct {
	OrderID string             `json:"orderId"`
	Status  domain.OrderStatus `json:"status"`
}

// UpdateStatus godoc
// @Summary Set an order's fulfillment status
// @Tags admin
// @Accept json
// @Produce json
// @Param update body updateStatusRequest true "Status update"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/orders/status [post]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil || req.OrderID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "orderId and status are required",
			RayID:   rayID(c),
		})
	}

	if err := h.orders.UpdateStatus(c.UserContext(), req.OrderID, req.Status); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type updatePaymentRequest struct {
	OrderID string `json:"orderId"`
	Payment bool   `json:"payment"`
}

// UpdatePayment godoc
// @Summary Record an out-of-band settlement
// @Tags admin
// @Accept json
// @Produce json
// @Param update body updatePaymentRequest true "Payment flag"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/orders/payment-status [post]
func (h *OrderHandler) UpdatePayment(c *fiber.Ctx) error {
	var req updatePaymentRequest
	if err := c.BodyParser(&req); err != nil || req.OrderID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "orderId is required",
			RayID:   rayID(c),
		})
	}

	if err := h.orders.UpdatePaymentFlag(c.UserContext(), req.OrderID, req.Payment); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type updateTrackingRequest struct {
	OrderID              string `json:"orderId"`
	AWBCode              string `json:"awbCode"`
	CourierName          string `json:"courierName"`
	TrackingURL          string `json:"trackingUrl"`
	ShiprocketOrderID    int64  `json:"shiprocketOrderId"`
	ShiprocketShipmentID int64  `json:"shiprocketShipmentId"`
}

// UpdateTracking godoc
// @Summary Attach manually booked shipment identifiers
// @Description For shipments booked outside the automated workflow. Only provided fields are written.
// @Tags admin
// @Accept json
// @Produce json
// @Param update body updateTrackingRequest true "Tracking override"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/orders/tracking-info [post]
func (h *OrderHandler) UpdateTracking(c *fiber.Ctx) error {
	var req updateTrackingRequest
	if err := c.BodyParser(&req); err != nil || req.OrderID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "orderId is required",
			RayID:   rayID(c),
		})
	}

	override := ports.TrackingOverride{
		AWBCode:              req.AWBCode,
		CourierName:          req.CourierName,
		TrackingURL:          req.TrackingURL,
		ShiprocketOrderID:    req.ShiprocketOrderID,
		ShiprocketShipmentID: req.ShiprocketShipmentID,
	}
	if err := h.orders.UpdateTrackingInfo(c.UserContext(), req.OrderID, override); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RetryShipment godoc
// @Summary Re-run a failed shipment booking
// @Description Resumes the booking workflow after the last persisted checkpoint. The outcome is reported on the returned order's shipment sub-state.
// @Tags admin
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/orders/{id}/retry-shipment [post]
func (h *OrderHandler) RetryShipment(c *fiber.Ctx) error {
	order, err := h.orders.RetryShipment(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}
