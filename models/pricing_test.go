package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartTotal(t *testing.T) {
	items := []CartItem{
		{Price: 500, Quantity: 2},
		{Price: 149.50, Quantity: 1},
	}
	assert.Equal(t, 1149.50, CartTotal(items))
}

func TestCartTotalEmpty(t *testing.T) {
	assert.Equal(t, 0.0, CartTotal(nil))
}

func TestCartTotalAvoidsFloatDrift(t *testing.T) {
	// 0.1 is not representable in binary; naive float accumulation drifts
	items := []CartItem{{Price: 0.1, Quantity: 3}}
	assert.Equal(t, 0.3, CartTotal(items))
}

func TestOrderItemsTotalRoundsToTwoDecimals(t *testing.T) {
	items := []OrderItem{
		{Price: 33.333, Quantity: 3},
	}
	assert.Equal(t, 100.0, OrderItemsTotal(items))
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []string{"Pending", "Packed", "Delivered", "Cancelled"} {
		got, ok := ValidOrderStatus(s)
		assert.True(t, ok, s)
		assert.Equal(t, OrderStatus(s), got)
	}

	_, ok := ValidOrderStatus("Shipped")
	assert.False(t, ok)
	_, ok = ValidOrderStatus("pending")
	assert.False(t, ok)
}
