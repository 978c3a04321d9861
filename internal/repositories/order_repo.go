package repositories

import (
	"time"

	"github.com/Manzzzx/cafe-pos/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	GetRecent(limit int) ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	Create(order *models.Order) error
	// UpdateStatus applies a compare-and-set status change: the new status is
	// written only if the stored status still equals expected. Two staff
	// members racing on the same order cannot both win.
	UpdateStatus(id string, expected, next models.OrderStatus) error
	// FindByStatuses returns orders whose status is in the given set, oldest
	// first (kitchen fairness).
	FindByStatuses(statuses []models.OrderStatus) ([]models.Order, error)
	// FindByCreatedRange returns orders created in [from, to).
	FindByCreatedRange(from, to time.Time) ([]models.Order, error)
}
