package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

const base36 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateOrderNumber builds a human-legible order number: ORD plus the
// last 6 digits of the millisecond clock plus a 3-digit random suffix.
// Collisions inside one millisecond bucket are accepted; nothing in the
// system enforces uniqueness of these numbers.
func GenerateOrderNumber() string {
	ts := millisSuffix(6)
	return fmt.Sprintf("ORD%s%03d", ts, rand.Intn(1000))
}

func GenerateBookingNumber() string {
	ts := millisSuffix(6)
	return fmt.Sprintf("BK%s%02d", ts, rand.Intn(100))
}

func GenerateTransactionID() string {
	ts := millisSuffix(8)
	var b strings.Builder
	for i := 0; i < 6; i++ {
		b.WriteByte(base36[rand.Intn(len(base36))])
	}
	return fmt.Sprintf("TXN%s%s", ts, b.String())
}

// GenerateBarcode ties a pickup code to the customer: timestamp plus the
// last 4 digits of their phone number. A correlation aid, not a secret.
func GenerateBarcode(phone string) string {
	digits := digitsOnly(phone)
	if len(digits) > 4 {
		digits = digits[len(digits)-4:]
	}
	return fmt.Sprintf("BC%s%s", millisSuffix(8), digits)
}

func millisSuffix(n int) string {
	ts := fmt.Sprintf("%d", time.Now().UnixMilli())
	return ts[len(ts)-n:]
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
