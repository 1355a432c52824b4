package notification

import (
	"fmt"
	"net/url"
	"strings"
)

// WhatsAppLink builds the wa.me deep link that opens the external app with
// the message pre-filled. Fire and forget: once the link is handed over we
// cannot observe whether the message was actually sent.
func WhatsAppLink(phone, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", waDigits(phone), url.QueryEscape(message))
}

func waDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
