package notification

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewandbean/cafe/models"
)

var testShop = ShopInfo{
	Name:    "Brew & Bean Coffee Shop",
	Address: "12 Lake Road, Kolkata",
	Phone:   "+91 93484 80855",
}

func sampleOrder() models.Order {
	note := "extra hot"
	table := 7
	return models.Order{
		Number:        "ORD123456001",
		CustomerName:  "Priya Sharma",
		CustomerPhone: "9876543210",
		Type:          models.DineIn,
		TableNumber:   &table,
		Items: []models.OrderItem{
			{Name: "Signature Espresso", Quantity: 1, UnitPrice: decimal.RequireFromString("3.50"), Note: &note},
			{Name: "Butter Croissant", Quantity: 2, UnitPrice: decimal.RequireFromString("3.25")},
		},
		TotalAmount:   decimal.RequireFromString("10.00"),
		Status:        models.OrderPending,
		PaymentStatus: models.PaymentPending,
	}
}

func TestRenderOrderMessage(t *testing.T) {
	o := sampleOrder()
	msg := RenderOrderMessage(o, testShop)

	assert.Contains(t, msg, "Order ID: ORD123456001")
	assert.Contains(t, msg, "Signature Espresso x1 - $3.50")
	assert.Contains(t, msg, "Note: extra hot")
	assert.Contains(t, msg, "Butter Croissant x2 - $6.50")
	assert.Contains(t, msg, "*Total: $10.00*")
	assert.Contains(t, msg, "Name: Priya Sharma")
	assert.Contains(t, msg, "Order Type: DINE-IN")
	assert.Contains(t, msg, "Table: 7")
	assert.Contains(t, msg, "12 Lake Road, Kolkata")

	// rendering must not mutate the record
	assert.Equal(t, models.OrderPending, o.Status)
	assert.Equal(t, "10.00", o.TotalAmount.StringFixed(2))
}

func TestRenderBookingMessage(t *testing.T) {
	occasion := "Anniversary"
	bk := models.Booking{
		Number:        "BK12345601",
		CustomerName:  "Rahul Das",
		CustomerPhone: "9812345678",
		Type:          models.BookingTable,
		Date:          "2024-01-15",
		Time:          "7:00 PM",
		PartySize:     4,
		Occasion:      &occasion,
	}

	msg := RenderBookingMessage(bk, testShop)
	assert.Contains(t, msg, "Booking ID: BK12345601")
	assert.Contains(t, msg, "Date: 2024-01-15")
	assert.Contains(t, msg, "Time: 7:00 PM")
	assert.Contains(t, msg, "Guests: 4")
	assert.Contains(t, msg, "Special Occasion: Anniversary")
	assert.NotContains(t, msg, "Special Requests")
}

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("+91 93484 80855", "hello there & welcome")
	assert.True(t, strings.HasPrefix(link, "https://wa.me/919348480855?text="))
	assert.NotContains(t, link, " ")
	assert.Contains(t, link, "%26")
}

func TestDispatchBookingEmailFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"error":"smtp down"}`))
	}))
	defer srv.Close()

	email := "rahul@example.com"
	bk := models.Booking{
		Number:        "BK12345602",
		CustomerName:  "Rahul Das",
		CustomerPhone: "9812345678",
		CustomerEmail: &email,
		Type:          models.BookingTable,
		Date:          "2024-01-15",
		Time:          "7:00 PM",
		PartySize:     4,
	}

	d := NewDispatcher(NewEmailClient(srv.URL, time.Second), testShop)
	res := d.DispatchBooking(context.Background(), bk)

	// email failed but the booking still goes out via WhatsApp
	assert.True(t, res.EmailAttempted)
	assert.False(t, res.EmailSent)
	assert.NotEmpty(t, res.WhatsAppURL)
}

// A booking without a customer email never touches the email channel and
// still succeeds over WhatsApp.
func TestDispatchBookingWithoutEmail(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	bk := models.Booking{
		Number:        "BK12345603",
		CustomerName:  "Anita Roy",
		CustomerPhone: "9811112222",
		Type:          models.BookingTable,
		Date:          "2024-01-15",
		Time:          "7:00 PM",
		PartySize:     4,
	}

	d := NewDispatcher(NewEmailClient(srv.URL, time.Second), testShop)
	res := d.DispatchBooking(context.Background(), bk)

	assert.False(t, called)
	assert.False(t, res.EmailAttempted)
	assert.True(t, strings.HasPrefix(res.WhatsAppURL, "https://wa.me/"))
}

func TestEmailClientSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"success":true,"message":"sent"}`))
	}))
	defer srv.Close()

	email := "priya@example.com"
	bk := models.Booking{
		ID:            uuid.New(),
		Number:        "BK12345604",
		CustomerName:  "Priya Sharma",
		CustomerPhone: "9876543210",
		CustomerEmail: &email,
		Type:          models.BookingEvent,
		Date:          "2024-02-01",
		Time:          "6:00 PM",
		PartySize:     12,
	}

	c := NewEmailClient(srv.URL, time.Second)
	assert.NoError(t, c.SendBookingConfirmation(context.Background(), bk))
}
