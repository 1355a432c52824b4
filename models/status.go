package models

// OrderStatus is the fulfillment status of an order. One set of values is
// shared by the customer, staff and admin surfaces.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderDelivered OrderStatus = "delivered"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// PaymentStatus tracks payment independently of fulfillment. An order may
// be marked ready or delivered while payment is still pending
// (cash at pickup / UPI at counter).
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

type OrderType string

const (
	DineIn   OrderType = "dine-in"
	Takeaway OrderType = "takeaway"
	Delivery OrderType = "delivery"
)

type PaymentMethod string

const (
	PayUPI  PaymentMethod = "upi"
	PayCash PaymentMethod = "cash"
	PayCard PaymentMethod = "card"
)

type BookingType string

const (
	BookingTable   BookingType = "table"
	BookingEvent   BookingType = "event"
	BookingMeeting BookingType = "meeting"
)
