package models

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPreparing OrderStatus = "PREPARING"
	StatusReady     OrderStatus = "READY"
	StatusCompleted OrderStatus = "COMPLETED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// validNext encodes the forward-only lifecycle. CANCELLED is reachable from any
// non-terminal state; COMPLETED and CANCELLED accept no further transitions.
var validNext = map[OrderStatus]map[OrderStatus]bool{
	StatusPending:   {StatusPreparing: true, StatusCancelled: true},
	StatusPreparing: {StatusReady: true, StatusCancelled: true},
	StatusReady:     {StatusCompleted: true, StatusCancelled: true},
	StatusCompleted: {},
	StatusCancelled: {},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to OrderStatus) bool {
	return validNext[from][to]
}

// IsTerminal reports whether a status admits no further transitions.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsValidStatus reports whether s is one of the five recognized statuses.
func IsValidStatus(s OrderStatus) bool {
	_, ok := validNext[s]
	return ok
}

// ActiveStatuses are the statuses shown on the kitchen queue.
var ActiveStatuses = []OrderStatus{StatusPending, StatusPreparing, StatusReady}

// OrderType distinguishes dine-in from take-away orders.
type OrderType string

const (
	OrderTypeDineIn   OrderType = "DINE_IN"
	OrderTypeTakeAway OrderType = "TAKE_AWAY"
)

// PaymentMethod is how the customer paid.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "CASH"
	PaymentQRIS PaymentMethod = "QRIS"
	PaymentCard PaymentMethod = "CARD"
)

// PaymentStatus records whether the order has been paid.
type PaymentStatus string

const (
	PaymentPaid   PaymentStatus = "PAID"
	PaymentUnpaid PaymentStatus = "UNPAID"
)

// OrderItem is an immutable line captured into an order at creation time.
// Price is a snapshot in minor currency units; later catalog edits do not
// affect it.
type OrderItem struct {
	ID        string   `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string   `json:"order_id" gorm:"index;type:varchar(36)"`
	ProductID string   `json:"product_id" gorm:"type:varchar(36)"`
	Name      string   `json:"name"`
	Quantity  int      `json:"quantity"`
	Variant   *Variant `json:"variant,omitempty" gorm:"serializer:json"`
	Notes     string   `json:"notes,omitempty"`
	Price     int64    `json:"price"`    // unit price, minor currency units
	Subtotal  int64    `json:"subtotal"` // Price * Quantity
}

// Order represents a placed order. Items and amounts are fixed at creation;
// only Status changes afterwards, via the transition table above.
type Order struct {
	ID            string        `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderNumber   string        `json:"order_number" gorm:"uniqueIndex;type:varchar(32)"`
	CustomerName  string        `json:"customer_name,omitempty"`
	TableNumber   string        `json:"table_number,omitempty"`
	Notes         string        `json:"notes,omitempty"`
	Items         []OrderItem   `json:"items" gorm:"foreignKey:OrderID"`
	OrderType     OrderType     `json:"order_type" gorm:"type:varchar(16)"`
	Status        OrderStatus   `json:"status" gorm:"index;type:varchar(16)"`
	PaymentMethod PaymentMethod `json:"payment_method" gorm:"type:varchar(16)"`
	PaymentStatus PaymentStatus `json:"payment_status" gorm:"type:varchar(16)"`
	TotalAmount   int64         `json:"total_amount"` // subtotal + tax, minor units
	TaxAmount     int64         `json:"tax_amount"`
	CashierID     string        `json:"cashier_id" gorm:"type:varchar(36)"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Subtotal returns the sum of item subtotals in minor currency units.
func (o *Order) Subtotal() int64 {
	var sum int64
	for _, item := range o.Items {
		sum += item.Subtotal
	}
	return sum
}

// TaxFor computes tax on a minor-unit subtotal at a rate given in basis
// points (500 = 5%). Integer arithmetic keeps amounts drift-free.
func TaxFor(subtotal int64, rateBps int64) int64 {
	return subtotal * rateBps / 10000
}
