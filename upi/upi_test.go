package upi

import (
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func details() PaymentDetails {
	return PaymentDetails{
		MerchantVPA:   "brewandbean@paytm",
		MerchantName:  "Brew & Bean Coffee Shop",
		TransactionID: "TXN12345678ABCDEF",
		Amount:        decimal.RequireFromString("9.75"),
		Note:          "Order ORD123456001",
	}
}

func TestBuildURI(t *testing.T) {
	uri := BuildURI(details())
	require.True(t, strings.HasPrefix(uri, "upi://pay?"))

	parsed, err := url.Parse(uri)
	require.NoError(t, err)
	q := parsed.Query()

	assert.Equal(t, "brewandbean@paytm", q.Get("pa"))
	assert.Equal(t, "Brew & Bean Coffee Shop", q.Get("pn"))
	assert.Equal(t, "TXN12345678ABCDEF", q.Get("tr"))
	assert.Equal(t, "9.75", q.Get("am"))
	assert.Equal(t, "INR", q.Get("cu"))
	assert.Equal(t, "Order ORD123456001", q.Get("tn"))
	assert.Equal(t, "5411", q.Get("mc"))
}

// All wallet variants carry the identical query string under their own
// scheme prefix.
func TestWalletVariants(t *testing.T) {
	d := details()
	base := BuildURI(d)
	q := base[len("upi://pay?"):]

	assert.Equal(t, "phonepe://pay?"+q, PhonePeURI(d))
	assert.Equal(t, "tez://upi/pay?"+q, GooglePayURI(d))
	assert.Equal(t, "paytmmp://pay?"+q, PaytmURI(d))
}

func TestBuildURIDeterministic(t *testing.T) {
	d := details()
	assert.Equal(t, BuildURI(d), BuildURI(d))

	other := d
	other.Amount = decimal.RequireFromString("12.00")
	assert.NotEqual(t, BuildURI(d), BuildURI(other))
}

func TestValidateVPA(t *testing.T) {
	assert.NoError(t, ValidateVPA("brewandbean@paytm"))
	assert.NoError(t, ValidateVPA("some.one_1-x@ok-bank"))
	assert.Error(t, ValidateVPA("no-at-sign"))
	assert.Error(t, ValidateVPA("bad space@bank"))
	assert.Error(t, ValidateVPA("@bank"))
}

func TestQRCodePNG(t *testing.T) {
	uri := BuildURI(details())

	png1, err := QRCodePNG(uri, 256)
	require.NoError(t, err)
	require.NotEmpty(t, png1)

	// deterministic for identical input
	png2, err := QRCodePNG(uri, 256)
	require.NoError(t, err)
	assert.Equal(t, png1, png2)

	// distinguishable for different input
	other := details()
	other.TransactionID = "TXN87654321FEDCBA"
	png3, err := QRCodePNG(BuildURI(other), 256)
	require.NoError(t, err)
	assert.NotEqual(t, png1, png3)
}
