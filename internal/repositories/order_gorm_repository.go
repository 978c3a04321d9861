package repositories

import (
	"fmt"
	"time"

	"github.com/Manzzzx/cafe-pos/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// GetRecent retrieves the most recently created orders, newest first.
func (r *GORMOrderRepository) GetRecent(limit int) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items").Order("created_at desc").Limit(limit).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get recent orders: %w", err)
	}
	return orders, nil
}

// GetByID retrieves a single order with its item snapshot.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// Create creates a new order and its items in one transaction.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if err := r.db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// UpdateStatus writes the new status only if the stored status still equals
// expected. RowsAffected distinguishes a lost race (or missing order) from
// success.
func (r *GORMOrderRepository) UpdateStatus(id string, expected, next models.OrderStatus) error {
	res := r.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", id, expected).
		Update("status", next)
	if res.Error != nil {
		return fmt.Errorf("failed to update order status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %s not found in status %s", id, expected)
	}
	return nil
}

// FindByStatuses retrieves orders in the given statuses, oldest first.
func (r *GORMOrderRepository) FindByStatuses(statuses []models.OrderStatus) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items").
		Where("status IN ?", statuses).
		Order("created_at asc").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to find orders by statuses: %w", err)
	}
	return orders, nil
}

// FindByCreatedRange retrieves orders created in [from, to).
func (r *GORMOrderRepository) FindByCreatedRange(from, to time.Time) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items").
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at asc").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to find orders by created range: %w", err)
	}
	return orders, nil
}
