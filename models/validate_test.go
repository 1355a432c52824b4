package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func validCheckout() CheckoutRequest {
	return CheckoutRequest{
		CustomerName:  "Asha Rao",
		CustomerPhone: "+919876543210",
		OrderType:     Takeaway,
		PaymentMethod: PayUPI,
	}
}

func TestCheckoutRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CheckoutRequest)
		wantErr string
	}{
		{
			name:   "valid takeaway",
			mutate: func(r *CheckoutRequest) {},
		},
		{
			name: "valid dine-in with table",
			mutate: func(r *CheckoutRequest) {
				r.OrderType = DineIn
				r.TableNumber = intPtr(4)
			},
		},
		{
			name: "valid delivery with address",
			mutate: func(r *CheckoutRequest) {
				r.OrderType = Delivery
				r.DeliveryAddress = "12 Lake Road"
			},
		},
		{
			name:    "missing name",
			mutate:  func(r *CheckoutRequest) { r.CustomerName = "" },
			wantErr: "customer_name",
		},
		{
			name:    "bad phone",
			mutate:  func(r *CheckoutRequest) { r.CustomerPhone = "12345" },
			wantErr: "customer_phone",
		},
		{
			name:    "dine-in without table",
			mutate:  func(r *CheckoutRequest) { r.OrderType = DineIn },
			wantErr: "table_number",
		},
		{
			name: "delivery without address",
			mutate: func(r *CheckoutRequest) {
				r.OrderType = Delivery
				r.DeliveryAddress = ""
			},
			wantErr: "delivery_address",
		},
		{
			name:    "unknown order type",
			mutate:  func(r *CheckoutRequest) { r.OrderType = "drive-thru" },
			wantErr: "order_type",
		},
		{
			name:    "unknown payment method",
			mutate:  func(r *CheckoutRequest) { r.PaymentMethod = "cheque" },
			wantErr: "payment_method",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCheckout()
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCheckoutRequestValidateReportsAllProblems(t *testing.T) {
	req := CheckoutRequest{OrderType: Delivery, PaymentMethod: PayCash}

	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "customer_name")
	assert.Contains(t, err.Error(), "customer_phone")
	assert.Contains(t, err.Error(), "delivery_address")
}

func validBooking() BookingRequest {
	return BookingRequest{
		CustomerName:  "Asha Rao",
		CustomerPhone: "9876543210",
		BookingType:   BookingTable,
		Date:          "2026-09-15",
		Time:          "18:30",
		PartySize:     2,
	}
}

func TestBookingRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*BookingRequest)
		wantErr string
	}{
		{
			name:   "valid table booking",
			mutate: func(r *BookingRequest) {},
		},
		{
			name:   "valid event booking",
			mutate: func(r *BookingRequest) { r.BookingType = BookingEvent },
		},
		{
			name:    "unknown booking type",
			mutate:  func(r *BookingRequest) { r.BookingType = "party" },
			wantErr: "booking_type",
		},
		{
			name:    "malformed date",
			mutate:  func(r *BookingRequest) { r.Date = "15/09/2026" },
			wantErr: "date",
		},
		{
			name:    "missing time",
			mutate:  func(r *BookingRequest) { r.Time = "" },
			wantErr: "time",
		},
		{
			name:    "zero party size",
			mutate:  func(r *BookingRequest) { r.PartySize = 0 },
			wantErr: "party_size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validBooking()
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestComputeTotalExactDecimals(t *testing.T) {
	items := []OrderItem{
		{Name: "Espresso", Quantity: 1, UnitPrice: mustDecimal(t, "3.50")},
		{Name: "Croissant", Quantity: 2, UnitPrice: mustDecimal(t, "3.25")},
	}

	assert.Equal(t, "10.00", ComputeTotal(items).StringFixed(2))
}
