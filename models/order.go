package models

import (
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/shopspring/decimal"
)

type Order struct {
	ID                  uuid.UUID       `db:"id" json:"id"`
	Number              string          `db:"number" json:"order_number"`
	UserID              uuid.UUID       `db:"user_id" json:"user_id"`
	CustomerName        string          `db:"customer_name" json:"customer_name"`
	CustomerPhone       string          `db:"customer_phone" json:"customer_phone"`
	CustomerEmail       *string         `db:"customer_email" json:"customer_email,omitempty"`
	Type                OrderType       `db:"type" json:"order_type"`
	TableNumber         *int            `db:"table_number" json:"table_number,omitempty"`
	DeliveryAddress     *string         `db:"delivery_address" json:"delivery_address,omitempty"`
	Items               []OrderItem     `db:"-" json:"items"`
	TotalAmount         decimal.Decimal `db:"total_amount" json:"total_amount"`
	PaymentMethod       PaymentMethod   `db:"payment_method" json:"payment_method"`
	PaymentStatus       PaymentStatus   `db:"payment_status" json:"payment_status"`
	Status              OrderStatus     `db:"status" json:"status"`
	Barcode             string          `db:"barcode" json:"barcode"`
	SpecialInstructions *string         `db:"special_instructions" json:"special_instructions,omitempty"`
	EstimatedMinutes    *int            `db:"estimated_minutes" json:"estimated_minutes,omitempty"`
	CreatedAt           time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time       `db:"updated_at" json:"updated_at"`
}

type OrderItem struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	OrderID    uuid.UUID       `db:"order_id" json:"order_id"`
	MenuItemID uuid.UUID       `db:"menu_item_id" json:"menu_item_id"`
	Name       string          `db:"name" json:"name"`
	Quantity   int             `db:"quantity" json:"quantity"`
	UnitPrice  decimal.Decimal `db:"unit_price" json:"unit_price"`
	Note       *string         `db:"note" json:"note,omitempty"`
}

// LineTotal is unit price times quantity for one item line.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ComputeTotal derives the order total from its lines. The stored total is
// never trusted independently of this sum.
func ComputeTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// CheckoutRequest is what the customer submits to turn their cart into an
// order. The item lines come from the persisted cart, not the request body.
type CheckoutRequest struct {
	CustomerName        string        `json:"customer_name"`
	CustomerPhone       string        `json:"customer_phone"`
	CustomerEmail       string        `json:"customer_email,omitempty"`
	OrderType           OrderType     `json:"order_type"`
	TableNumber         *int          `json:"table_number,omitempty"`
	DeliveryAddress     string        `json:"delivery_address,omitempty"`
	PaymentMethod       PaymentMethod `json:"payment_method"`
	SpecialInstructions string        `json:"special_instructions,omitempty"`
}

var phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

// Validate rejects a checkout before any record exists. All field problems
// are reported together.
func (req *CheckoutRequest) Validate() error {
	var result *multierror.Error

	if req.CustomerName == "" {
		result = multierror.Append(result, fmt.Errorf("customer_name is required"))
	}
	if !phonePattern.MatchString(req.CustomerPhone) {
		result = multierror.Append(result, fmt.Errorf("customer_phone must be 10-15 digits"))
	}

	switch req.OrderType {
	case DineIn:
		if req.TableNumber == nil || *req.TableNumber < 1 {
			result = multierror.Append(result, fmt.Errorf("table_number is required for dine-in orders"))
		}
	case Delivery:
		if req.DeliveryAddress == "" {
			result = multierror.Append(result, fmt.Errorf("delivery_address is required for delivery orders"))
		}
	case Takeaway:
	default:
		result = multierror.Append(result, fmt.Errorf("order_type must be one of: dine-in, takeaway, delivery"))
	}

	switch req.PaymentMethod {
	case PayUPI, PayCash, PayCard:
	default:
		result = multierror.Append(result, fmt.Errorf("payment_method must be one of: upi, cash, card"))
	}

	return result.ErrorOrNil()
}
