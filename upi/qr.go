package upi

import qrcode "github.com/skip2/go-qrcode"

// QRCodePNG renders the payment URI as a real, scannable QR code. The
// encoding is deterministic for identical input and round-trips back to
// the original URI when decoded.
func QRCodePNG(uri string, size int) ([]byte, error) {
	return qrcode.Encode(uri, qrcode.Medium, size)
}
