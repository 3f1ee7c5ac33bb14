package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/miteshhgoyal/gearmates/internal/core/auth"
	"github.com/miteshhgoyal/gearmates/internal/features/orders/ports"
)

// CartHandler handles HTTP requests for the per-user cart.
type CartHandler struct {
	cart ports.CartStore
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cart ports.CartStore) *CartHandler {
	return &CartHandler{cart: cart}
}

type cartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Get godoc
// @Summary Get the caller's cart
// @Tags cart
// @Produce json
// @Success 200 {object} domain.Cart
// @Security BearerAuth
// @Router /api/cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.FromCtx(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	cart, err := h.cart.Get(c.UserContext(), principal.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cart)
}

// Add godoc
// @Summary Add a product to the cart
// @Tags cart
// @Accept json
// @Produce json
// @Param item body cartItemRequest true "Product and quantity"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/cart/add [post]
func (h *CartHandler) Add(c *fiber.Ctx) error {
	principal, ok := auth.FromCtx(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var req cartItemRequest
	if err := c.BodyParser(&req); err != nil || req.ProductID == "" || req.Quantity <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "productId and a positive quantity are required",
			RayID:   rayID(c),
		})
	}

	if err := h.cart.Add(c.UserContext(), principal.UserID, req.ProductID, req.Quantity); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Remove godoc
// @Summary Remove a product from the cart
// @Tags cart
// @Accept json
// @Produce json
// @Param item body cartItemRequest true "Product to drop"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/cart/remove [post]
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	principal, ok := auth.FromCtx(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var req cartItemRequest
	if err := c.BodyParser(&req); err != nil || req.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "productId is required",
			RayID:   rayID(c),
		})
	}

	if err := h.cart.Remove(c.UserContext(), principal.UserID, req.ProductID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
