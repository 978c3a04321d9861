package services_test

import (
	"testing"
	"time"

	"github.com/Manzzzx/cafe-pos/internal/models"
	"github.com/Manzzzx/cafe-pos/internal/repositories"
	"github.com/Manzzzx/cafe-pos/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestReportService_DailySummary(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	today := time.Now()

	orders := []*models.Order{
		{
			ID: "ord-1", OrderNumber: "ORD-1", Status: models.StatusCompleted,
			PaymentMethod: models.PaymentCash, TotalAmount: 88200, TaxAmount: 4200,
			Items: []models.OrderItem{
				{ProductID: "prod-latte", Name: "Latte", Quantity: 3, Price: 28000, Subtotal: 84000},
			},
			CreatedAt: today,
		},
		{
			ID: "ord-2", OrderNumber: "ORD-2", Status: models.StatusPending,
			PaymentMethod: models.PaymentQRIS, TotalAmount: 10500, TaxAmount: 500,
			Items: []models.OrderItem{
				{ProductID: "prod-tea", Name: "Iced Tea", Quantity: 1, Price: 10000, Subtotal: 10000},
			},
			CreatedAt: today,
		},
		{
			// Cancelled: excluded from every figure
			ID: "ord-3", OrderNumber: "ORD-3", Status: models.StatusCancelled,
			PaymentMethod: models.PaymentCash, TotalAmount: 99999, TaxAmount: 9999,
			Items: []models.OrderItem{
				{ProductID: "prod-latte", Name: "Latte", Quantity: 9, Price: 28000, Subtotal: 252000},
			},
			CreatedAt: today,
		},
		{
			// Yesterday: outside the window
			ID: "ord-4", OrderNumber: "ORD-4", Status: models.StatusCompleted,
			PaymentMethod: models.PaymentCard, TotalAmount: 55000, TaxAmount: 5000,
			CreatedAt: today.Add(-24 * time.Hour),
		},
	}
	for _, o := range orders {
		assert.NoError(t, orderRepo.Create(o))
	}

	report, err := services.NewReportService(orderRepo).DailySummary(today)
	assert.NoError(t, err)

	assert.Equal(t, 2, report.OrderCount)
	assert.Equal(t, int64(98700), report.Revenue)
	assert.Equal(t, int64(4700), report.TaxCollected)

	assert.Equal(t, 1, report.Payments[models.PaymentCash].Orders)
	assert.Equal(t, int64(88200), report.Payments[models.PaymentCash].Amount)
	assert.Equal(t, 1, report.Payments[models.PaymentQRIS].Orders)
	assert.NotContains(t, report.Payments, models.PaymentCard)

	assert.Len(t, report.TopProducts, 2)
	assert.Equal(t, "Latte", report.TopProducts[0].Name)
	assert.Equal(t, 3, report.TopProducts[0].Quantity)
	assert.Equal(t, int64(84000), report.TopProducts[0].Revenue)
}

func TestReportService_DailySummaryEmptyDay(t *testing.T) {
	report, err := services.NewReportService(repositories.NewMockOrderRepository()).DailySummary(time.Now())
	assert.NoError(t, err)
	assert.Zero(t, report.OrderCount)
	assert.Zero(t, report.Revenue)
	assert.Empty(t, report.TopProducts)
}
