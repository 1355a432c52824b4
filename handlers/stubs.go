package handlers

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/brewandbean/cafe/upi"
)

// Stand-in endpoints for the external payment gateway and email provider.
// They serve local development and demos; production points
// PAYMENT_VERIFY_URL and EMAIL_ENDPOINT at the real services.

// VerifyPaymentStub plays the gateway's role: mostly still pending, with
// the occasional settled or declined answer so the poll loop gets exercised.
func VerifyPaymentStub(w http.ResponseWriter, r *http.Request) {
	transactionID := r.URL.Query().Get("transactionId")
	if transactionID == "" {
		http.Error(w, "transactionId is required", http.StatusBadRequest)
		return
	}

	status := upi.StatusPending
	switch roll := rand.Float64(); {
	case roll < 0.10:
		status = upi.StatusFailed
	case roll < 0.40:
		status = upi.StatusSuccess
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(upi.VerifyResult{
		TransactionID: transactionID,
		Status:        status,
		Timestamp:     time.Now(),
	})
}

// emailStubDelay imitates a real provider's delivery latency so the
// dispatcher's timeout path stays honest in local runs.
const emailStubDelay = time.Second

// SendBookingEmailStub accepts the booking confirmation payload and
// pretends to deliver it after a fixed delay.
func SendBookingEmailStub(w http.ResponseWriter, r *http.Request) {
	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	time.Sleep(emailStubDelay)
	if payload["customerEmail"] == "" || payload["customerEmail"] == nil {
		http.Error(w, "customerEmail is required", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":   true,
		"messageId": fmt.Sprintf("msg_%d", time.Now().UnixMilli()),
	})
}
