// Package lifecycle holds the status transition rules for orders, bookings
// and payments. Every surface (customer checkout, staff queue, admin
// dashboard) advances records through these functions so the allowed
// transitions cannot drift between views.
package lifecycle

import "github.com/brewandbean/cafe/models"

// orderTransitions lists the legal forward moves. Staff may move a
// confirmed order straight to ready without recording the preparing step.
var orderTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderPending:   {models.OrderConfirmed},
	models.OrderConfirmed: {models.OrderPreparing, models.OrderReady},
	models.OrderPreparing: {models.OrderReady},
	models.OrderReady:     {models.OrderDelivered},
	models.OrderDelivered: {},
}

var bookingTransitions = map[models.BookingStatus][]models.BookingStatus{
	models.BookingPending:   {models.BookingConfirmed, models.BookingCancelled},
	models.BookingConfirmed: {models.BookingCompleted},
	models.BookingCancelled: {},
	models.BookingCompleted: {},
}

var paymentTransitions = map[models.PaymentStatus][]models.PaymentStatus{
	models.PaymentPending:   {models.PaymentCompleted, models.PaymentFailed},
	models.PaymentCompleted: {},
	models.PaymentFailed:    {},
}

// AdvanceOrder returns the new status and whether the transition was
// applied. An illegal transition is rejected as a no-op: the current status
// comes back unchanged with ok=false, never an error. Customers may only
// confirm their own pending order at submission; everything after that is
// staff or admin work.
func AdvanceOrder(current, next models.OrderStatus, by models.Role) (models.OrderStatus, bool) {
	if !allowedOrderActor(current, by) {
		return current, false
	}
	for _, s := range orderTransitions[current] {
		if s == next {
			return next, true
		}
	}
	return current, false
}

func allowedOrderActor(current models.OrderStatus, by models.Role) bool {
	if by == models.RoleStaff || by == models.RoleAdmin {
		return true
	}
	return by == models.RoleCustomer && current == models.OrderPending
}

// AdvanceBooking follows the same rejected-no-op contract. The only move a
// customer may make is cancelling their still-pending booking; confirmation
// and completion are staff or admin work.
func AdvanceBooking(current, next models.BookingStatus, by models.Role) (models.BookingStatus, bool) {
	if by == models.RoleCustomer && (current != models.BookingPending || next != models.BookingCancelled) {
		return current, false
	}
	for _, s := range bookingTransitions[current] {
		if s == next {
			return next, true
		}
	}
	return current, false
}

// AdvancePayment is independent of fulfillment status: a pending payment
// never blocks an order from being marked ready or delivered.
func AdvancePayment(current, next models.PaymentStatus) (models.PaymentStatus, bool) {
	for _, s := range paymentTransitions[current] {
		if s == next {
			return next, true
		}
	}
	return current, false
}

func IsTerminalOrder(s models.OrderStatus) bool {
	return len(orderTransitions[s]) == 0
}

func IsTerminalBooking(s models.BookingStatus) bool {
	return len(bookingTransitions[s]) == 0
}
