package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^ORD\d{9}$`)
	for i := 0; i < 100; i++ {
		n := GenerateOrderNumber()
		assert.Regexp(t, pattern, n)
	}
}

func TestGenerateBookingNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^BK\d{8}$`)
	for i := 0; i < 100; i++ {
		assert.Regexp(t, pattern, GenerateBookingNumber())
	}
}

func TestGenerateTransactionID(t *testing.T) {
	pattern := regexp.MustCompile(`^TXN\d{8}[0-9A-Z]{6}$`)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateTransactionID()
		assert.Regexp(t, pattern, id)
		seen[id] = true
	}
	// base-36 suffix should make repeats vanishingly unlikely
	assert.Greater(t, len(seen), 95)
}

func TestGenerateBarcode(t *testing.T) {
	assert.Regexp(t, regexp.MustCompile(`^BC\d{8}4855$`), GenerateBarcode("+91 93484 80855"))
	assert.Regexp(t, regexp.MustCompile(`^BC\d{8}123$`), GenerateBarcode("123"))
}
