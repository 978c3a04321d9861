package services

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Manzzzx/cafe-pos/internal/models"
	"github.com/Manzzzx/cafe-pos/internal/repositories"
	"github.com/Manzzzx/cafe-pos/pkg/rabbitmq"

	"github.com/google/uuid"
)

// EventPublisher is the outbound notification channel. Publishing is
// best-effort: the persisted order is the source of truth, so a failed
// publish is logged and never rolls back a mutation.
type EventPublisher interface {
	Publish(event string, body []byte) error
}

// OrderItemInput is one line of an order submission payload. Price is the
// cart's snapshot in minor currency units.
type OrderItemInput struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	Variant   *models.Variant `json:"variant,omitempty"`
	Notes     string          `json:"notes,omitempty"`
	Price     int64           `json:"price" validate:"required,gt=0"`
}

// CreateOrderRequest is the order submission payload.
type CreateOrderRequest struct {
	Items          []OrderItemInput     `json:"items" validate:"required,min=1,dive"`
	CashierID      string               `json:"cashier_id" validate:"required"`
	CustomerName   string               `json:"customer_name,omitempty"`
	TableNumber    string               `json:"table_number,omitempty"`
	Notes          string               `json:"notes,omitempty"`
	PaymentMethod  models.PaymentMethod `json:"payment_method" validate:"required,oneof=CASH QRIS CARD"`
	OrderType      models.OrderType     `json:"order_type" validate:"required,oneof=DINE_IN TAKE_AWAY"`
	AmountTendered int64                `json:"amount_tendered,omitempty" validate:"omitempty,gte=0"`
}

// OrderService handles order creation and the status lifecycle.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	publisher   EventPublisher
	taxRateBps  int64
	orderNums   orderNumberGenerator
}

// NewOrderService creates a new OrderService. publisher may be nil, in which
// case events are skipped.
func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, publisher EventPublisher, taxRateBps int64) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		publisher:   publisher,
		taxRateBps:  taxRateBps,
	}
}

// GetRecentOrders retrieves the most recent orders, newest first.
func (s *OrderService) GetRecentOrders(limit int) ([]models.Order, error) {
	return s.orderRepo.GetRecent(limit)
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// CreateOrder creates an order from a cart snapshot. Items, prices and the
// computed totals are fixed here and never change afterwards. For CASH
// payments the change is returned; checkout is rejected when the tendered
// amount does not cover the grand total.
func (s *OrderService) CreateOrder(req CreateOrderRequest) (*models.Order, int64, error) {
	if len(req.Items) == 0 {
		return nil, 0, fmt.Errorf("order must contain at least one item")
	}

	var items []models.OrderItem
	var subtotal int64
	for _, in := range req.Items {
		product, err := s.productRepo.GetByID(in.ProductID)
		if err != nil {
			return nil, 0, fmt.Errorf("product %s not found: %w", in.ProductID, err)
		}
		if !product.IsAvailable {
			return nil, 0, fmt.Errorf("product %s is not available", product.Name)
		}
		if in.Quantity <= 0 {
			return nil, 0, fmt.Errorf("invalid quantity %d for product %s", in.Quantity, product.Name)
		}

		lineSubtotal := in.Price * int64(in.Quantity)
		items = append(items, models.OrderItem{
			ID:        uuid.New().String(),
			ProductID: in.ProductID,
			Name:      product.Name,
			Quantity:  in.Quantity,
			Variant:   in.Variant,
			Notes:     in.Notes,
			Price:     in.Price,
			Subtotal:  lineSubtotal,
		})
		subtotal += lineSubtotal
	}

	taxAmount := models.TaxFor(subtotal, s.taxRateBps)
	totalAmount := subtotal + taxAmount

	var change int64
	if req.PaymentMethod == models.PaymentCash {
		if req.AmountTendered < totalAmount {
			return nil, 0, fmt.Errorf("insufficient cash tendered: got %d, need %d", req.AmountTendered, totalAmount)
		}
		change = req.AmountTendered - totalAmount
	}

	orderType := req.OrderType
	if orderType == "" {
		orderType = models.OrderTypeDineIn
	}

	newOrder := &models.Order{
		ID:            uuid.New().String(),
		OrderNumber:   s.orderNums.Next(),
		CustomerName:  req.CustomerName,
		TableNumber:   req.TableNumber,
		Notes:         req.Notes,
		Items:         items,
		OrderType:     orderType,
		Status:        models.StatusPending,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: models.PaymentPaid,
		TotalAmount:   totalAmount,
		TaxAmount:     taxAmount,
		CashierID:     req.CashierID,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	for i := range newOrder.Items {
		newOrder.Items[i].OrderID = newOrder.ID
	}

	if err := s.orderRepo.Create(newOrder); err != nil {
		return nil, 0, fmt.Errorf("failed to create order in repository: %w", err)
	}

	// Publish only after the commit; a failed publish never undoes the order.
	s.publishEvent(rabbitmq.EventOrderCreated, newOrder)

	return newOrder, change, nil
}

// UpdateOrderStatus moves an order to a new status. The requested status must
// be a recognized value and reachable from the current status via the
// transition table. The write is compare-and-set on the status the caller's
// actor last observed, so racing staff members cannot both win.
func (s *OrderService) UpdateOrderStatus(id string, newStatus models.OrderStatus) (*models.Order, error) {
	if !models.IsValidStatus(newStatus) {
		return nil, fmt.Errorf("invalid order status: %s", newStatus)
	}

	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(order.Status, newStatus) {
		return nil, fmt.Errorf("cannot transition order %s from %s to %s", order.OrderNumber, order.Status, newStatus)
	}

	if err := s.orderRepo.UpdateStatus(id, order.Status, newStatus); err != nil {
		return nil, fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}
	order.Status = newStatus
	order.UpdatedAt = time.Now()

	s.publishEvent(rabbitmq.EventOrderUpdated, order)

	return order, nil
}

// publishEvent sends the full order snapshot to subscribers. Consumers treat
// snapshots as idempotent full-state replacements keyed by order ID, so a
// missed event self-corrects on the next delivery or a manual refresh.
func (s *OrderService) publishEvent(event string, order *models.Order) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(order)
	if err != nil {
		log.Printf("Failed to marshal order %s for %s event: %v", order.ID, event, err)
		return
	}
	if err := s.publisher.Publish(event, body); err != nil {
		log.Printf("Warning: failed to publish %s event for order %s: %v", event, order.OrderNumber, err)
	}
}

// orderNumberGenerator hands out human-readable order numbers unique within
// the process, resetting the sequence each day.
type orderNumberGenerator struct {
	mu   sync.Mutex
	date string
	seq  int
}

func (g *orderNumberGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	today := time.Now().Format("20060102")
	if g.date != today {
		g.date = today
		g.seq = 0
	}
	g.seq++
	return fmt.Sprintf("ORD-%s-%04d", today, g.seq)
}
