// Package upi formats NPCI-style payment requests and tracks the payment
// session that hands the customer off to an external wallet app.
package upi

import (
	"fmt"
	"net/url"
	"regexp"

	"github.com/shopspring/decimal"
)

// restaurant merchant category code
const merchantCategory = "5411"

type PaymentDetails struct {
	MerchantVPA   string
	MerchantName  string
	TransactionID string
	Amount        decimal.Decimal
	Currency      string
	Note          string
}

// BuildURI composes the standard upi://pay link. All wallet variants reuse
// the same query string under their own scheme.
func BuildURI(d PaymentDetails) string {
	currency := d.Currency
	if currency == "" {
		currency = "INR"
	}

	params := url.Values{}
	params.Set("pa", d.MerchantVPA)
	params.Set("pn", d.MerchantName)
	params.Set("tr", d.TransactionID)
	params.Set("am", d.Amount.StringFixed(2))
	params.Set("cu", currency)
	params.Set("tn", d.Note)
	params.Set("mc", merchantCategory)

	return "upi://pay?" + params.Encode()
}

func PhonePeURI(d PaymentDetails) string {
	return "phonepe://pay?" + query(d)
}

func GooglePayURI(d PaymentDetails) string {
	return "tez://upi/pay?" + query(d)
}

func PaytmURI(d PaymentDetails) string {
	return "paytmmp://pay?" + query(d)
}

func query(d PaymentDetails) string {
	uri := BuildURI(d)
	return uri[len("upi://pay?"):]
}

var vpaPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+$`)

func ValidateVPA(vpa string) error {
	if !vpaPattern.MatchString(vpa) {
		return fmt.Errorf("invalid UPI id: %q", vpa)
	}
	return nil
}
