package handlers

import (
	"fmt"
	"log"
	"strings"

	"github.com/Manzzzx/cafe-pos/internal/models"
	"github.com/Manzzzx/cafe-pos/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const recentOrdersLimit = 50

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Post("/", h.HandleCreateOrder)
}

// RegisterStatusRoute registers the status transition route; main mounts it on
// the kitchen-staff group.
func (h *OrderHandler) RegisterStatusRoute(router fiber.Router) {
	router.Patch("/orders/:id/status", h.HandleUpdateOrderStatus)
}

// RegisterKitchenRoutes registers the kitchen display routes.
func (h *OrderHandler) RegisterKitchenRoutes(router fiber.Router) {
	router.Get("/kitchen/orders", h.HandleKitchenQueue)
}

// HandleGetOrders retrieves the most recent orders.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetRecentOrders(recentOrdersLimit)
	if err != nil {
		log.Printf("Error getting orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
			"error":   err.Error(),
		})
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.service.GetOrderByID(orderID)
	if err != nil {
		log.Printf("Error getting order by ID %s: %v", orderID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Order with ID %s not found", orderID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve order",
			"error":   err.Error(),
		})
	}
	return c.JSON(order)
}

// HandleCreateOrder creates an order from a raw submission payload. The
// structured checkout flow lives on the cart handler; this endpoint exists
// for clients that assemble the payload themselves.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req services.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing order request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.CashierID == "" {
		req.CashierID, _ = c.Locals("user_id").(string)
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	order, change, err := h.service.CreateOrder(req)
	if err != nil {
		log.Printf("Error creating order: %v", err)
		if strings.Contains(err.Error(), "insufficient cash") ||
			strings.Contains(err.Error(), "not available") ||
			strings.Contains(err.Error(), "not found") ||
			strings.Contains(err.Error(), "at least one item") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Order rejected",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create order",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"order":  order,
		"change": change,
	})
}

// UpdateStatusRequest carries the requested lifecycle transition.
type UpdateStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required,oneof=PENDING PREPARING READY COMPLETED CANCELLED"`
}

// HandleUpdateOrderStatus moves an order through its lifecycle.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing status update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body for status update",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	order, err := h.service.UpdateOrderStatus(orderID, req.Status)
	if err != nil {
		log.Printf("Error updating order status for order %s: %v", orderID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Order with ID %s not found", orderID),
			})
		}
		if strings.Contains(err.Error(), "cannot transition") || strings.Contains(err.Error(), "invalid order status") {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Status transition rejected",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update order status",
			"error":   err.Error(),
		})
	}

	return c.JSON(order)
}

// HandleKitchenQueue returns the active orders partitioned for the kitchen
// display. This endpoint doubles as the manual refresh fallback for missed
// push notifications.
func (h *OrderHandler) HandleKitchenQueue(c *fiber.Ctx) error {
	queue, err := h.service.GetKitchenQueue()
	if err != nil {
		log.Printf("Error loading kitchen queue: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load kitchen queue",
			"error":   err.Error(),
		})
	}
	return c.JSON(queue)
}
