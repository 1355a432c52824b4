package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/brewandbean/cafe/models"
)

// BookingEmail is the JSON body accepted by the booking email endpoint.
type BookingEmail struct {
	CustomerName    string `json:"customerName"`
	CustomerEmail   string `json:"customerEmail"`
	CustomerPhone   string `json:"customerPhone"`
	BookingType     string `json:"bookingType"`
	BookingDate     string `json:"bookingDate"`
	BookingTime     string `json:"bookingTime"`
	PartySize       int    `json:"partySize"`
	Occasion        string `json:"occasion,omitempty"`
	SpecialRequests string `json:"specialRequests,omitempty"`
	BookingID       string `json:"bookingId"`
}

type emailResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// EmailClient talks to the booking email endpoint. The timeout is a hard
// cap on the delivery attempt: past it the send counts as failed, never
// as still pending.
type EmailClient struct {
	endpoint string
	client   *http.Client
}

func NewEmailClient(endpoint string, timeout time.Duration) *EmailClient {
	return &EmailClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (c *EmailClient) SendBookingConfirmation(ctx context.Context, bk models.Booking) error {
	if bk.CustomerEmail == nil || *bk.CustomerEmail == "" {
		return fmt.Errorf("booking %s has no customer email", bk.Number)
	}

	payload := BookingEmail{
		CustomerName:  bk.CustomerName,
		CustomerEmail: *bk.CustomerEmail,
		CustomerPhone: bk.CustomerPhone,
		BookingType:   string(bk.Type),
		BookingDate:   bk.Date,
		BookingTime:   bk.Time,
		PartySize:     bk.PartySize,
		BookingID:     bk.Number,
	}
	if bk.Occasion != nil {
		payload.Occasion = *bk.Occasion
	}
	if bk.SpecialRequests != nil {
		payload.SpecialRequests = *bk.SpecialRequests
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal booking email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("email endpoint unreachable: %w", err)
	}
	defer resp.Body.Close()

	var result emailResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode email response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || !result.Success {
		return fmt.Errorf("email delivery failed: %s", result.Error)
	}
	return nil
}
