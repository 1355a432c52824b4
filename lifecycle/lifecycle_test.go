package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brewandbean/cafe/models"
)

func TestAdvanceOrder(t *testing.T) {
	tests := []struct {
		name    string
		current models.OrderStatus
		next    models.OrderStatus
		by      models.Role
		want    models.OrderStatus
		wantOK  bool
	}{
		{
			name:    "customer confirms pending order",
			current: models.OrderPending,
			next:    models.OrderConfirmed,
			by:      models.RoleCustomer,
			want:    models.OrderConfirmed,
			wantOK:  true,
		},
		{
			name:    "staff starts preparing",
			current: models.OrderConfirmed,
			next:    models.OrderPreparing,
			by:      models.RoleStaff,
			want:    models.OrderPreparing,
			wantOK:  true,
		},
		{
			name:    "staff skips preparing straight to ready",
			current: models.OrderConfirmed,
			next:    models.OrderReady,
			by:      models.RoleStaff,
			want:    models.OrderReady,
			wantOK:  true,
		},
		{
			name:    "ready while still pending is rejected",
			current: models.OrderPending,
			next:    models.OrderReady,
			by:      models.RoleStaff,
			want:    models.OrderPending,
			wantOK:  false,
		},
		{
			name:    "no transition out of delivered",
			current: models.OrderDelivered,
			next:    models.OrderReady,
			by:      models.RoleAdmin,
			want:    models.OrderDelivered,
			wantOK:  false,
		},
		{
			name:    "customer cannot advance beyond confirmation",
			current: models.OrderConfirmed,
			next:    models.OrderPreparing,
			by:      models.RoleCustomer,
			want:    models.OrderConfirmed,
			wantOK:  false,
		},
		{
			name:    "backward move is rejected",
			current: models.OrderReady,
			next:    models.OrderPreparing,
			by:      models.RoleStaff,
			want:    models.OrderReady,
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AdvanceOrder(tt.current, tt.next, tt.by)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

// Repeating a transition into the state already held is treated as a
// rejected no-op: the record stays in its state and ok is false.
func TestAdvanceOrderRepeatIsNoOp(t *testing.T) {
	got, ok := AdvanceOrder(models.OrderReady, models.OrderDelivered, models.RoleStaff)
	assert.True(t, ok)
	assert.Equal(t, models.OrderDelivered, got)

	got, ok = AdvanceOrder(got, models.OrderDelivered, models.RoleStaff)
	assert.False(t, ok)
	assert.Equal(t, models.OrderDelivered, got)
}

func TestAdvanceBooking(t *testing.T) {
	tests := []struct {
		name    string
		current models.BookingStatus
		next    models.BookingStatus
		by      models.Role
		want    models.BookingStatus
		wantOK  bool
	}{
		{"staff confirms pending", models.BookingPending, models.BookingConfirmed, models.RoleStaff, models.BookingConfirmed, true},
		{"customer cancels pending", models.BookingPending, models.BookingCancelled, models.RoleCustomer, models.BookingCancelled, true},
		{"staff completes confirmed", models.BookingConfirmed, models.BookingCompleted, models.RoleStaff, models.BookingCompleted, true},
		{"completing a pending booking is rejected", models.BookingPending, models.BookingCompleted, models.RoleStaff, models.BookingPending, false},
		{"confirming a completed booking is rejected", models.BookingCompleted, models.BookingConfirmed, models.RoleAdmin, models.BookingCompleted, false},
		{"cancelling a confirmed booking is rejected", models.BookingConfirmed, models.BookingCancelled, models.RoleStaff, models.BookingConfirmed, false},
		{"customer cannot complete a confirmed booking", models.BookingConfirmed, models.BookingCompleted, models.RoleCustomer, models.BookingConfirmed, false},
		{"customer cannot confirm a pending booking", models.BookingPending, models.BookingConfirmed, models.RoleCustomer, models.BookingPending, false},
		{"admin confirms pending", models.BookingPending, models.BookingConfirmed, models.RoleAdmin, models.BookingConfirmed, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AdvanceBooking(tt.current, tt.next, tt.by)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestAdvancePayment(t *testing.T) {
	got, ok := AdvancePayment(models.PaymentPending, models.PaymentCompleted)
	assert.True(t, ok)
	assert.Equal(t, models.PaymentCompleted, got)

	got, ok = AdvancePayment(models.PaymentPending, models.PaymentFailed)
	assert.True(t, ok)
	assert.Equal(t, models.PaymentFailed, got)

	// completed and failed are terminal
	got, ok = AdvancePayment(models.PaymentCompleted, models.PaymentPending)
	assert.False(t, ok)
	assert.Equal(t, models.PaymentCompleted, got)

	got, ok = AdvancePayment(models.PaymentFailed, models.PaymentCompleted)
	assert.False(t, ok)
	assert.Equal(t, models.PaymentFailed, got)
}

func TestTerminalStates(t *testing.T) {
	assert.True(t, IsTerminalOrder(models.OrderDelivered))
	assert.False(t, IsTerminalOrder(models.OrderReady))
	assert.True(t, IsTerminalBooking(models.BookingCancelled))
	assert.True(t, IsTerminalBooking(models.BookingCompleted))
	assert.False(t, IsTerminalBooking(models.BookingConfirmed))
}
