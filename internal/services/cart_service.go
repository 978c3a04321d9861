package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Manzzzx/cafe-pos/internal/models"
	"github.com/Manzzzx/cafe-pos/internal/repositories"
)

// CartItemInput is an item being added to a cart; it carries no ID because
// line IDs are generated by the engine.
type CartItemInput struct {
	ProductID string          `json:"product_id" validate:"required"`
	Name      string          `json:"name" validate:"required"`
	Price     int64           `json:"price" validate:"required,gt=0"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	Variant   *models.Variant `json:"variant,omitempty"`
	Notes     string          `json:"notes,omitempty"`
	ImageURL  string          `json:"image_url,omitempty"`
}

// CartSummary is a cart together with totals derived at read time.
type CartSummary struct {
	Items      []models.CartItem `json:"items"`
	OrderType  models.OrderType  `json:"order_type"`
	Subtotal   int64             `json:"subtotal"`
	Tax        int64             `json:"tax"`
	GrandTotal int64             `json:"grand_total"`
	ItemCount  int               `json:"item_count"`
}

// CartService owns the per-session cart: merge-on-add, quantity and notes
// mutation, and derived totals. Every mutation is load-modify-save against the
// cart repository so the cart survives restarts.
type CartService struct {
	cartRepo   repositories.CartRepository
	taxRateBps int64
}

// NewCartService creates a new CartService. taxRateBps is the configured tax
// rate in basis points.
func NewCartService(cartRepo repositories.CartRepository, taxRateBps int64) *CartService {
	return &CartService{
		cartRepo:   cartRepo,
		taxRateBps: taxRateBps,
	}
}

// GetCart returns the session's cart with totals computed from current items.
func (s *CartService) GetCart(ctx context.Context, sessionID string) (*CartSummary, error) {
	cart, err := s.cartRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.summarize(cart), nil
}

// AddItem adds an item to the cart. If a line with the same product and
// variant combination already exists its quantity is incremented; otherwise a
// new line is appended with a freshly generated ID. Always succeeds.
func (s *CartService) AddItem(ctx context.Context, sessionID string, input CartItemInput) (*CartSummary, error) {
	cart, err := s.cartRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i, line := range cart.Items {
		if line.ProductID == input.ProductID && line.Variant.Key() == input.Variant.Key() {
			cart.Items[i].Quantity += input.Quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, models.CartItem{
			ID:        newLineID(input.ProductID, input.Variant),
			ProductID: input.ProductID,
			Name:      input.Name,
			Price:     input.Price,
			Quantity:  input.Quantity,
			Variant:   input.Variant,
			Notes:     input.Notes,
			ImageURL:  input.ImageURL,
		})
	}

	if err := s.cartRepo.Save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return s.summarize(cart), nil
}

// RemoveItem deletes the line with the given ID. Removing an absent line is a
// no-op, not an error.
func (s *CartService) RemoveItem(ctx context.Context, sessionID, lineID string) (*CartSummary, error) {
	cart, err := s.cartRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	kept := cart.Items[:0]
	for _, line := range cart.Items {
		if line.ID != lineID {
			kept = append(kept, line)
		}
	}
	cart.Items = kept

	if err := s.cartRepo.Save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return s.summarize(cart), nil
}

// UpdateQuantity replaces a line's quantity. A quantity of zero or less
// removes the line entirely; no line ever holds a non-positive quantity.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID, lineID string, quantity int) (*CartSummary, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, sessionID, lineID)
	}

	cart, err := s.cartRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	for i, line := range cart.Items {
		if line.ID == lineID {
			cart.Items[i].Quantity = quantity
			break
		}
	}
	if err := s.cartRepo.Save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return s.summarize(cart), nil
}

// UpdateNotes replaces a line's notes. No validation on content.
func (s *CartService) UpdateNotes(ctx context.Context, sessionID, lineID, notes string) (*CartSummary, error) {
	cart, err := s.cartRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	for i, line := range cart.Items {
		if line.ID == lineID {
			cart.Items[i].Notes = notes
			break
		}
	}
	if err := s.cartRepo.Save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return s.summarize(cart), nil
}

// SetOrderType sets dine-in or take-away without touching existing items.
func (s *CartService) SetOrderType(ctx context.Context, sessionID string, orderType models.OrderType) (*CartSummary, error) {
	if orderType != models.OrderTypeDineIn && orderType != models.OrderTypeTakeAway {
		return nil, fmt.Errorf("invalid order type: %s", orderType)
	}

	cart, err := s.cartRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	cart.OrderType = orderType
	if err := s.cartRepo.Save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return s.summarize(cart), nil
}

// ClearCart empties the cart's items. The order type is kept.
func (s *CartService) ClearCart(ctx context.Context, sessionID string) (*CartSummary, error) {
	cart, err := s.cartRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	cart.Items = []models.CartItem{}
	if err := s.cartRepo.Save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return s.summarize(cart), nil
}

// CheckoutRequest carries the payment details collected at the register; the
// items come from the persisted cart, not the request.
type CheckoutRequest struct {
	CustomerName   string               `json:"customer_name,omitempty"`
	TableNumber    string               `json:"table_number,omitempty"`
	Notes          string               `json:"notes,omitempty"`
	PaymentMethod  models.PaymentMethod `json:"payment_method" validate:"required,oneof=CASH QRIS CARD"`
	AmountTendered int64                `json:"amount_tendered,omitempty" validate:"omitempty,gte=0"`
}

// Checkout snapshots the session's cart into an order, then clears the cart.
// The cart is only cleared after the order is durably created; on any failure
// the cart is left untouched.
func (s *CartService) Checkout(ctx context.Context, sessionID, cashierID string, req CheckoutRequest, orders *OrderService) (*models.Order, int64, error) {
	cart, err := s.cartRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, 0, err
	}
	if len(cart.Items) == 0 {
		return nil, 0, fmt.Errorf("cart is empty")
	}

	orderReq := CreateOrderRequest{
		CashierID:      cashierID,
		CustomerName:   req.CustomerName,
		TableNumber:    req.TableNumber,
		Notes:          req.Notes,
		PaymentMethod:  req.PaymentMethod,
		OrderType:      cart.OrderType,
		AmountTendered: req.AmountTendered,
	}
	for _, line := range cart.Items {
		orderReq.Items = append(orderReq.Items, OrderItemInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Variant:   line.Variant,
			Notes:     line.Notes,
			Price:     line.Price,
		})
	}

	order, change, err := orders.CreateOrder(orderReq)
	if err != nil {
		return nil, 0, err
	}

	cart.Items = []models.CartItem{}
	if err := s.cartRepo.Save(ctx, sessionID, cart); err != nil {
		// The order exists; a stale cart is recoverable by an explicit clear.
		return order, change, fmt.Errorf("order %s created but cart not cleared: %w", order.OrderNumber, err)
	}
	return order, change, nil
}

func (s *CartService) summarize(cart *models.Cart) *CartSummary {
	subtotal := cart.Subtotal()
	tax := models.TaxFor(subtotal, s.taxRateBps)
	return &CartSummary{
		Items:      cart.Items,
		OrderType:  cart.OrderType,
		Subtotal:   subtotal,
		Tax:        tax,
		GrandTotal: subtotal + tax,
		ItemCount:  cart.ItemCount(),
	}
}

// newLineID builds a line ID from the product, the variant and a creation
// timestamp so distinct variant combinations stay distinct lines.
func newLineID(productID string, variant *models.Variant) string {
	return fmt.Sprintf("%s-%s-%d", productID, variant.Key(), time.Now().UnixNano())
}
