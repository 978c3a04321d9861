package models_test

import (
	"testing"

	"github.com/Manzzzx/cafe-pos/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	// Forward path
	assert.True(t, models.CanTransition(models.StatusPending, models.StatusPreparing))
	assert.True(t, models.CanTransition(models.StatusPreparing, models.StatusReady))
	assert.True(t, models.CanTransition(models.StatusReady, models.StatusCompleted))

	// Cancellation from any non-terminal state
	assert.True(t, models.CanTransition(models.StatusPending, models.StatusCancelled))
	assert.True(t, models.CanTransition(models.StatusPreparing, models.StatusCancelled))
	assert.True(t, models.CanTransition(models.StatusReady, models.StatusCancelled))

	// No skipping, no going backwards
	assert.False(t, models.CanTransition(models.StatusPending, models.StatusReady))
	assert.False(t, models.CanTransition(models.StatusPending, models.StatusCompleted))
	assert.False(t, models.CanTransition(models.StatusPreparing, models.StatusPending))
	assert.False(t, models.CanTransition(models.StatusReady, models.StatusPreparing))

	// Terminal states accept nothing
	assert.False(t, models.CanTransition(models.StatusCompleted, models.StatusCancelled))
	assert.False(t, models.CanTransition(models.StatusCancelled, models.StatusPending))

	// Unknown values never transition
	assert.False(t, models.CanTransition(models.OrderStatus("SHIPPED"), models.StatusPending))
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, models.StatusCompleted.IsTerminal())
	assert.True(t, models.StatusCancelled.IsTerminal())
	assert.False(t, models.StatusPending.IsTerminal())
	assert.False(t, models.StatusPreparing.IsTerminal())
	assert.False(t, models.StatusReady.IsTerminal())
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range []models.OrderStatus{
		models.StatusPending, models.StatusPreparing, models.StatusReady,
		models.StatusCompleted, models.StatusCancelled,
	} {
		assert.True(t, models.IsValidStatus(s))
	}
	assert.False(t, models.IsValidStatus(models.OrderStatus("SHIPPED")))
	assert.False(t, models.IsValidStatus(models.OrderStatus("")))
}

func TestTaxFor(t *testing.T) {
	assert.Equal(t, int64(4200), models.TaxFor(84000, 500))   // 5%
	assert.Equal(t, int64(8400), models.TaxFor(84000, 1000))  // 10%
	assert.Equal(t, int64(0), models.TaxFor(84000, 0))
	assert.Equal(t, int64(0), models.TaxFor(0, 500))
}

func TestOrderSubtotal(t *testing.T) {
	order := models.Order{
		Items: []models.OrderItem{
			{Subtotal: 84000},
			{Subtotal: 10000},
		},
	}
	assert.Equal(t, int64(94000), order.Subtotal())
}

func TestCartAggregates(t *testing.T) {
	cart := models.NewCart()
	assert.Equal(t, models.OrderTypeDineIn, cart.OrderType)
	assert.Zero(t, cart.Subtotal())
	assert.Zero(t, cart.ItemCount())

	cart.Items = []models.CartItem{
		{Price: 28000, Quantity: 3},
		{Price: 10000, Quantity: 1},
	}
	assert.Equal(t, int64(94000), cart.Subtotal())
	assert.Equal(t, 4, cart.ItemCount())
}

func TestVariantKey(t *testing.T) {
	var nilVariant *models.Variant
	assert.Equal(t, "-", nilVariant.Key())

	hotLarge := &models.Variant{Size: "Large", Temperature: "Hot"}
	icedLarge := &models.Variant{Size: "Large", Temperature: "Iced"}
	assert.NotEqual(t, hotLarge.Key(), icedLarge.Key())
	assert.Equal(t, hotLarge.Key(), (&models.Variant{Size: "Large", Temperature: "Hot"}).Key())
}
