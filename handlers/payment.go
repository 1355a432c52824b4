package handlers

import (
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/brewandbean/cafe/config"
	"github.com/brewandbean/cafe/database/dbhelper"
	"github.com/brewandbean/cafe/lifecycle"
	"github.com/brewandbean/cafe/models"
	"github.com/brewandbean/cafe/upi"
)

const qrSize = 256

// OpenPaymentSession starts a UPI handoff for an unpaid order. Every call
// opens a fresh session with a new transaction ID, so a failed or expired
// attempt is retried from scratch.
func OpenPaymentSession(w http.ResponseWriter, r *http.Request) {
	type request struct {
		OrderNumber string `json:"order_number"`
	}
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	order, err := dbhelper.GetOrderByNumber(req.OrderNumber)
	if err == sql.ErrNoRows {
		http.Error(w, "order not found", http.StatusNotFound)
		return
	} else if err != nil {
		http.Error(w, "failed to query order", http.StatusInternalServerError)
		return
	}
	if order.PaymentStatus == models.PaymentCompleted {
		http.Error(w, "order is already paid", http.StatusConflict)
		return
	}

	session := payments.Open(order.TotalAmount)

	details := upi.PaymentDetails{
		MerchantVPA:   config.MerchantVPA,
		MerchantName:  config.MerchantName,
		TransactionID: session.TransactionID,
		Amount:        order.TotalAmount,
		Note:          fmt.Sprintf("Order %s", order.Number),
	}

	uri := upi.BuildURI(details)
	png, err := upi.QRCodePNG(uri, qrSize)
	if err != nil {
		logrus.WithError(err).Errorf("failed to render QR for %s", session.TransactionID)
		http.Error(w, "failed to render QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"session": session,
		"upi_uri": uri,
		"apps": map[string]string{
			"phonepe":    upi.PhonePeURI(details),
			"google_pay": upi.GooglePayURI(details),
			"paytm":      upi.PaytmURI(details),
		},
		"qr_png_base64": base64.StdEncoding.EncodeToString(png),
	})
}

func GetPaymentSession(w http.ResponseWriter, r *http.Request) {
	transactionID := mux.Vars(r)["transactionId"]

	session, err := payments.Get(transactionID)
	if errors.Is(err, upi.ErrSessionNotFound) {
		http.Error(w, "payment session not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(session)
}

// PollPayment blocks while the session polls the gateway, then records the
// outcome on the order. Expiry leaves the order's payment pending so the
// customer can retry with a new session.
func PollPayment(w http.ResponseWriter, r *http.Request) {
	transactionID := mux.Vars(r)["transactionId"]

	type request struct {
		OrderNumber string `json:"order_number"`
	}
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	status, err := payments.Poll(r.Context(), transactionID)
	if errors.Is(err, upi.ErrSessionNotFound) {
		http.Error(w, "payment session not found", http.StatusNotFound)
		return
	}
	if errors.Is(err, upi.ErrSessionClosed) {
		http.Error(w, "payment session is no longer accepting payment", http.StatusConflict)
		return
	}

	switch status {
	case upi.StatusSuccess:
		recordPaymentOutcome(req.OrderNumber, models.PaymentCompleted)
	case upi.StatusFailed:
		recordPaymentOutcome(req.OrderNumber, models.PaymentFailed)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"transaction_id": transactionID,
		"status":         status,
	})
}

func recordPaymentOutcome(orderNumber string, outcome models.PaymentStatus) {
	if orderNumber == "" {
		return
	}
	order, err := dbhelper.GetOrderByNumber(orderNumber)
	if err != nil {
		logrus.WithError(err).Warnf("payment outcome for unknown order %s", orderNumber)
		return
	}
	next, ok := lifecycle.AdvancePayment(order.PaymentStatus, outcome)
	if !ok {
		return
	}
	if _, err := dbhelper.UpdateOrderPaymentStatus(orderNumber, order.PaymentStatus, next); err != nil {
		logrus.WithError(err).Errorf("failed to record payment outcome for order %s", orderNumber)
	}
}

func CancelPaymentSession(w http.ResponseWriter, r *http.Request) {
	transactionID := mux.Vars(r)["transactionId"]
	payments.Cancel(transactionID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Payment session cancelled",
	})
}
