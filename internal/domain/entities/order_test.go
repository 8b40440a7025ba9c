package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	allowed := []struct {
		from, to Status
	}{
		{StatusCart, StatusWaiting},
		{StatusWaiting, StatusShipping},
		{StatusWaiting, StatusCancelled},
		{StatusShipping, StatusCompleted},
		{StatusShipping, StatusCancelled},
	}
	for _, tt := range allowed {
		assert.True(t, tt.from.CanTransitionTo(tt.to), "%s -> %s should be allowed", tt.from, tt.to)
	}

	denied := []struct {
		from, to Status
	}{
		{StatusCart, StatusCompleted},
		{StatusCart, StatusCancelled},
		{StatusCart, StatusShipping},
		{StatusShipping, StatusWaiting},
		{StatusWaiting, StatusCompleted},
		{StatusCompleted, StatusCancelled},
		{StatusCancelled, StatusWaiting},
		{StatusCompleted, StatusShipping},
	}
	for _, tt := range denied {
		assert.False(t, tt.from.CanTransitionTo(tt.to), "%s -> %s should be denied", tt.from, tt.to)
	}
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusCart.Terminal())
	assert.False(t, StatusWaiting.Terminal())
	assert.False(t, StatusShipping.Terminal())
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{"cart", "waiting", "shipping", "completed", "cancelled"} {
		assert.True(t, ValidStatus(s))
	}
	assert.False(t, ValidStatus("pending"))
	assert.False(t, ValidStatus(""))
	assert.False(t, ValidStatus("Waiting"))
}

func TestValidPaymentMethod(t *testing.T) {
	assert.True(t, ValidPaymentMethod("COD"))
	assert.True(t, ValidPaymentMethod("ONLINE"))
	assert.False(t, ValidPaymentMethod("cod"))
	assert.False(t, ValidPaymentMethod("WIRE"))
}
