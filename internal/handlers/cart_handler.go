package handlers

import (
	"log"
	"strings"

	"github.com/Manzzzx/cafe-pos/internal/models"
	"github.com/Manzzzx/cafe-pos/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the cashier's cart. The cart is
// scoped to the authenticated user: one cashier, one cart.
type CartHandler struct {
	cartService  *services.CartService
	orderService *services.OrderService
	validate     *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cartService *services.CartService, orderService *services.OrderService) *CartHandler {
	return &CartHandler{
		cartService:  cartService,
		orderService: orderService,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/:id", h.HandleUpdateItem)
	cartRoutes.Delete("/items/:id", h.HandleRemoveItem)
	cartRoutes.Put("/order-type", h.HandleSetOrderType)
	cartRoutes.Delete("/", h.HandleClearCart)
}

// RegisterCheckoutRoute registers the checkout route; main mounts it on the
// cashier-restricted group.
func (h *CartHandler) RegisterCheckoutRoute(router fiber.Router) {
	router.Post("/cart/checkout", h.HandleCheckout)
}

func sessionID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}

// HandleGetCart returns the cart with totals derived at read time.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	summary, err := h.cartService.GetCart(c.UserContext(), sessionID(c))
	if err != nil {
		log.Printf("Error loading cart: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(summary)
}

// HandleAddItem adds an item to the cart, merging with an existing line when
// the product and variant combination matches.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var input services.CartItemInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing cart item body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	summary, err := h.cartService.AddItem(c.UserContext(), sessionID(c), input)
	if err != nil {
		log.Printf("Error adding cart item: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add item to cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(summary)
}

// UpdateCartItemRequest carries a quantity and/or notes change for one line.
type UpdateCartItemRequest struct {
	Quantity *int    `json:"quantity,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

// HandleUpdateItem updates a line's quantity or notes. A quantity of zero or
// less removes the line.
func (h *CartHandler) HandleUpdateItem(c *fiber.Ctx) error {
	lineID := c.Params("id")

	var req UpdateCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing cart update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.Quantity == nil && req.Notes == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Either quantity or notes must be provided",
		})
	}

	var summary *services.CartSummary
	var err error
	if req.Quantity != nil {
		summary, err = h.cartService.UpdateQuantity(c.UserContext(), sessionID(c), lineID, *req.Quantity)
	}
	if err == nil && req.Notes != nil {
		summary, err = h.cartService.UpdateNotes(c.UserContext(), sessionID(c), lineID, *req.Notes)
	}
	if err != nil {
		log.Printf("Error updating cart item %s: %v", lineID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update cart item",
			"error":   err.Error(),
		})
	}
	return c.JSON(summary)
}

// HandleRemoveItem removes a line from the cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	summary, err := h.cartService.RemoveItem(c.UserContext(), sessionID(c), c.Params("id"))
	if err != nil {
		log.Printf("Error removing cart item: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not remove cart item",
			"error":   err.Error(),
		})
	}
	return c.JSON(summary)
}

// SetOrderTypeRequest selects dine-in or take-away.
type SetOrderTypeRequest struct {
	OrderType models.OrderType `json:"order_type" validate:"required,oneof=DINE_IN TAKE_AWAY"`
}

// HandleSetOrderType sets the cart's order type.
func (h *CartHandler) HandleSetOrderType(c *fiber.Ctx) error {
	var req SetOrderTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	summary, err := h.cartService.SetOrderType(c.UserContext(), sessionID(c), req.OrderType)
	if err != nil {
		log.Printf("Error setting order type: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not set order type",
			"error":   err.Error(),
		})
	}
	return c.JSON(summary)
}

// HandleClearCart empties the cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	summary, err := h.cartService.ClearCart(c.UserContext(), sessionID(c))
	if err != nil {
		log.Printf("Error clearing cart: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not clear cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(summary)
}

// HandleCheckout snapshots the cart into an order and clears the cart on
// success. For CASH payments the response carries the change.
func (h *CartHandler) HandleCheckout(c *fiber.Ctx) error {
	var req services.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing checkout body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	order, change, err := h.cartService.Checkout(c.UserContext(), sessionID(c), sessionID(c), req, h.orderService)
	if err != nil {
		log.Printf("Checkout error: %v", err)
		if strings.Contains(err.Error(), "cart is empty") ||
			strings.Contains(err.Error(), "insufficient cash") ||
			strings.Contains(err.Error(), "not available") ||
			strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Checkout rejected",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not complete checkout",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"order":  order,
		"change": change,
	})
}
