package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
)

type Booking struct {
	ID              uuid.UUID     `db:"id" json:"id"`
	Number          string        `db:"number" json:"booking_number"`
	UserID          uuid.UUID     `db:"user_id" json:"user_id"`
	CustomerName    string        `db:"customer_name" json:"customer_name"`
	CustomerPhone   string        `db:"customer_phone" json:"customer_phone"`
	CustomerEmail   *string       `db:"customer_email" json:"customer_email,omitempty"`
	Type            BookingType   `db:"type" json:"booking_type"`
	Date            string        `db:"date" json:"date"`
	Time            string        `db:"time" json:"time"`
	PartySize       int           `db:"party_size" json:"party_size"`
	Duration        string        `db:"duration" json:"duration"`
	Occasion        *string       `db:"occasion" json:"occasion,omitempty"`
	SpecialRequests *string       `db:"special_requests" json:"special_requests,omitempty"`
	Status          BookingStatus `db:"status" json:"status"`
	PaymentStatus   PaymentStatus `db:"payment_status" json:"payment_status"`
	CreatedAt       time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at" json:"updated_at"`
}

type BookingRequest struct {
	CustomerName    string      `json:"customer_name"`
	CustomerPhone   string      `json:"customer_phone"`
	CustomerEmail   string      `json:"customer_email,omitempty"`
	BookingType     BookingType `json:"booking_type"`
	Date            string      `json:"date"`
	Time            string      `json:"time"`
	PartySize       int         `json:"party_size"`
	Duration        string      `json:"duration,omitempty"`
	Occasion        string      `json:"occasion,omitempty"`
	SpecialRequests string      `json:"special_requests,omitempty"`
}

func (req *BookingRequest) Validate() error {
	var result *multierror.Error

	if req.CustomerName == "" {
		result = multierror.Append(result, fmt.Errorf("customer_name is required"))
	}
	if !phonePattern.MatchString(req.CustomerPhone) {
		result = multierror.Append(result, fmt.Errorf("customer_phone must be 10-15 digits"))
	}

	switch req.BookingType {
	case BookingTable, BookingEvent, BookingMeeting:
	default:
		result = multierror.Append(result, fmt.Errorf("booking_type must be one of: table, event, meeting"))
	}

	if req.Date == "" {
		result = multierror.Append(result, fmt.Errorf("date is required"))
	} else if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		result = multierror.Append(result, fmt.Errorf("date must be in YYYY-MM-DD format"))
	}
	if req.Time == "" {
		result = multierror.Append(result, fmt.Errorf("time is required"))
	}
	if req.PartySize < 1 {
		result = multierror.Append(result, fmt.Errorf("party_size must be at least 1"))
	}

	return result.ErrorOrNil()
}
