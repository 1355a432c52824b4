package notification

import (
	"fmt"
	"strings"

	"github.com/brewandbean/cafe/models"
)

// ShopInfo is the fixed footer attached to every outgoing summary.
type ShopInfo struct {
	Name    string
	Address string
	Phone   string
}

// RenderOrderMessage builds the human-readable order summary that gets
// handed to the WhatsApp channel. Pure: never mutates the order.
func RenderOrderMessage(o models.Order, shop ShopInfo) string {
	var b strings.Builder

	b.WriteString("🛒 *New Order - Complete Your Booking*\n\n")
	b.WriteString("📋 *Order Details:*\n")
	fmt.Fprintf(&b, "• Order ID: %s\n", o.Number)
	for _, item := range o.Items {
		fmt.Fprintf(&b, "• %s x%d - $%s", item.Name, item.Quantity, item.LineTotal().StringFixed(2))
		if item.Note != nil && *item.Note != "" {
			fmt.Fprintf(&b, "\n  Note: %s", *item.Note)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\n💰 *Total: $%s*\n\n", o.TotalAmount.StringFixed(2))

	b.WriteString("👤 *Customer Information:*\n")
	fmt.Fprintf(&b, "Name: %s\n", o.CustomerName)
	fmt.Fprintf(&b, "Phone: %s\n", o.CustomerPhone)
	if o.CustomerEmail != nil && *o.CustomerEmail != "" {
		fmt.Fprintf(&b, "Email: %s\n", *o.CustomerEmail)
	}

	fmt.Fprintf(&b, "\n🚚 *Order Type: %s*\n", strings.ToUpper(string(o.Type)))
	if o.Type == models.Delivery && o.DeliveryAddress != nil {
		fmt.Fprintf(&b, "Address: %s\n", *o.DeliveryAddress)
	}
	if o.Type == models.DineIn && o.TableNumber != nil {
		fmt.Fprintf(&b, "Table: %d\n", *o.TableNumber)
	}

	b.WriteString("\n📝 *Special Instructions:*\n")
	if o.SpecialInstructions != nil && *o.SpecialInstructions != "" {
		b.WriteString(*o.SpecialInstructions)
	} else {
		b.WriteString("None")
	}
	b.WriteString("\n")

	writeFooter(&b, shop)
	b.WriteString("\nPlease confirm this order and provide payment details.")
	return b.String()
}

// RenderBookingMessage builds the booking request summary.
func RenderBookingMessage(bk models.Booking, shop ShopInfo) string {
	var b strings.Builder

	b.WriteString("🍴 *New Booking Request*\n\n")
	b.WriteString("📋 *Booking Details:*\n")
	fmt.Fprintf(&b, "• Booking ID: %s\n", bk.Number)
	fmt.Fprintf(&b, "• Type: %s\n", bk.Type)
	fmt.Fprintf(&b, "• Date: %s\n", bk.Date)
	fmt.Fprintf(&b, "• Time: %s\n", bk.Time)
	fmt.Fprintf(&b, "• Guests: %d\n", bk.PartySize)

	b.WriteString("\n👤 *Customer Information:*\n")
	fmt.Fprintf(&b, "• Name: %s\n", bk.CustomerName)
	fmt.Fprintf(&b, "• Phone: %s\n", bk.CustomerPhone)
	if bk.CustomerEmail != nil && *bk.CustomerEmail != "" {
		fmt.Fprintf(&b, "• Email: %s\n", *bk.CustomerEmail)
	}

	if bk.Occasion != nil && *bk.Occasion != "" {
		fmt.Fprintf(&b, "\n🎉 *Special Occasion:* %s\n", *bk.Occasion)
	}
	if bk.SpecialRequests != nil && *bk.SpecialRequests != "" {
		fmt.Fprintf(&b, "\n📝 *Special Requests:* %s\n", *bk.SpecialRequests)
	}

	writeFooter(&b, shop)
	b.WriteString("\nPlease confirm this booking. Thank you! ☕")
	return b.String()
}

func writeFooter(b *strings.Builder, shop ShopInfo) {
	fmt.Fprintf(b, "\n📍 *Location:* %s\n", shop.Address)
	fmt.Fprintf(b, "📞 *Contact:* %s\n", shop.Phone)
}
