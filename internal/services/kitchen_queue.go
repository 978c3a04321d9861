package services

import (
	"time"

	"github.com/Manzzzx/cafe-pos/internal/models"
)

// Urgency levels surfaced on the kitchen display, escalating with the time an
// order has been waiting.
const (
	UrgencyNormal   = "NORMAL"
	UrgencyWarning  = "WARNING"  // waiting over 5 minutes
	UrgencyCritical = "CRITICAL" // waiting over 10 minutes
)

const (
	urgencyWarningAfter  = 5 * time.Minute
	urgencyCriticalAfter = 10 * time.Minute
)

// KitchenOrder is an order annotated for the kitchen display.
type KitchenOrder struct {
	models.Order
	ElapsedSeconds int64  `json:"elapsed_seconds"`
	Urgency        string `json:"urgency"`
}

// KitchenQueue partitions the active orders into the three display columns.
// Within each column orders are oldest first.
type KitchenQueue struct {
	Pending   []KitchenOrder `json:"pending"`
	Preparing []KitchenOrder `json:"preparing"`
	Ready     []KitchenOrder `json:"ready"`
}

// GetKitchenQueue returns all non-terminal orders partitioned by status.
// COMPLETED and CANCELLED orders never appear here.
func (s *OrderService) GetKitchenQueue() (*KitchenQueue, error) {
	orders, err := s.orderRepo.FindByStatuses(models.ActiveStatuses)
	if err != nil {
		return nil, err
	}

	queue := &KitchenQueue{
		Pending:   []KitchenOrder{},
		Preparing: []KitchenOrder{},
		Ready:     []KitchenOrder{},
	}
	now := time.Now()
	for _, order := range orders {
		annotated := KitchenOrder{
			Order:          order,
			ElapsedSeconds: int64(now.Sub(order.CreatedAt).Seconds()),
			Urgency:        urgencyFor(now.Sub(order.CreatedAt)),
		}
		switch order.Status {
		case models.StatusPending:
			queue.Pending = append(queue.Pending, annotated)
		case models.StatusPreparing:
			queue.Preparing = append(queue.Preparing, annotated)
		case models.StatusReady:
			queue.Ready = append(queue.Ready, annotated)
		}
	}
	return queue, nil
}

func urgencyFor(elapsed time.Duration) string {
	switch {
	case elapsed >= urgencyCriticalAfter:
		return UrgencyCritical
	case elapsed >= urgencyWarningAfter:
		return UrgencyWarning
	default:
		return UrgencyNormal
	}
}
