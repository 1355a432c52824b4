package notification

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/brewandbean/cafe/models"
)

// Result reports how a dispatch went. The WhatsApp link is always present;
// a failed email attempt degrades the result, it never fails the dispatch.
type Result struct {
	WhatsAppURL    string `json:"whatsapp_url"`
	EmailAttempted bool   `json:"email_attempted"`
	EmailSent      bool   `json:"email_sent"`
}

type Dispatcher struct {
	email *EmailClient
	shop  ShopInfo
}

func NewDispatcher(email *EmailClient, shop ShopInfo) *Dispatcher {
	return &Dispatcher{email: email, shop: shop}
}

// DispatchOrder renders the order summary and returns the WhatsApp deep
// link. Orders have no email channel.
func (d *Dispatcher) DispatchOrder(o models.Order) Result {
	msg := RenderOrderMessage(o, d.shop)
	return Result{WhatsAppURL: WhatsAppLink(d.shop.Phone, msg)}
}

// DispatchBooking tries the email channel first when the customer gave an
// address, then always produces the WhatsApp link. Email failure falls
// back to WhatsApp-only so the booking is never silently lost.
func (d *Dispatcher) DispatchBooking(ctx context.Context, bk models.Booking) Result {
	result := Result{}

	if bk.CustomerEmail != nil && *bk.CustomerEmail != "" {
		result.EmailAttempted = true
		if err := d.email.SendBookingConfirmation(ctx, bk); err != nil {
			logrus.WithError(err).Warnf("booking %s: email failed, falling back to WhatsApp", bk.Number)
		} else {
			result.EmailSent = true
		}
	}

	msg := RenderBookingMessage(bk, d.shop)
	result.WhatsAppURL = WhatsAppLink(d.shop.Phone, msg)
	return result
}
