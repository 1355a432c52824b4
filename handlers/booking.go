package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/brewandbean/cafe/database/dbhelper"
	"github.com/brewandbean/cafe/lifecycle"
	"github.com/brewandbean/cafe/middlewares"
	"github.com/brewandbean/cafe/models"
	"github.com/brewandbean/cafe/utils"
)

func CreateBooking(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	duration := req.Duration
	if duration == "" {
		duration = "1 hour"
	}

	booking := models.Booking{
		Number:        utils.GenerateBookingNumber(),
		UserID:        claims.UserID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Type:          req.BookingType,
		Date:          req.Date,
		Time:          req.Time,
		PartySize:     req.PartySize,
		Duration:      duration,
		Status:        models.BookingPending,
		PaymentStatus: models.PaymentPending,
	}
	if req.CustomerEmail != "" {
		booking.CustomerEmail = &req.CustomerEmail
	}
	if req.Occasion != "" {
		booking.Occasion = &req.Occasion
	}
	if req.SpecialRequests != "" {
		booking.SpecialRequests = &req.SpecialRequests
	}

	if err := dbhelper.InsertBooking(&booking); err != nil {
		http.Error(w, "failed to create booking", http.StatusInternalServerError)
		return
	}

	result := dispatcher.DispatchBooking(r.Context(), booking)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"booking":         booking,
		"whatsapp_url":    result.WhatsAppURL,
		"email_attempted": result.EmailAttempted,
		"email_sent":      result.EmailSent,
	})
}

func ListMyBookings(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	bookings, err := dbhelper.ListBookings("", claims.UserID)
	if err != nil {
		http.Error(w, "failed to query bookings", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(bookings)
}

func GetBooking(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	number := mux.Vars(r)["number"]

	booking, err := dbhelper.GetBookingByNumber(number)
	if err == sql.ErrNoRows {
		http.Error(w, "booking not found", http.StatusNotFound)
		return
	} else if err != nil {
		http.Error(w, "failed to query booking", http.StatusInternalServerError)
		return
	}

	// customers only see their own bookings; a foreign number looks absent
	if middlewares.ActorRole(r) == models.RoleCustomer && booking.UserID != claims.UserID {
		http.Error(w, "booking not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(booking)
}

func ListBookings(w http.ResponseWriter, r *http.Request) {
	status := models.BookingStatus(r.URL.Query().Get("status"))

	bookings, err := dbhelper.ListBookings(status, uuid.Nil)
	if err != nil {
		http.Error(w, "failed to query bookings", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(bookings)
}

// AdvanceBookingStatus handles confirm, cancel and complete through the
// booking state machine. Illegal moves report applied=false and leave the
// record alone.
func AdvanceBookingStatus(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	number := mux.Vars(r)["number"]
	actor := middlewares.ActorRole(r)

	type request struct {
		Status models.BookingStatus `json:"status"`
	}
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	booking, err := dbhelper.GetBookingByNumber(number)
	if err == sql.ErrNoRows {
		http.Error(w, "booking not found", http.StatusNotFound)
		return
	} else if err != nil {
		http.Error(w, "failed to query booking", http.StatusInternalServerError)
		return
	}

	// a customer may only touch their own booking
	if actor == models.RoleCustomer && booking.UserID != claims.UserID {
		http.Error(w, "booking not found", http.StatusNotFound)
		return
	}

	next, ok := lifecycle.AdvanceBooking(booking.Status, req.Status, actor)
	applied := false
	if ok {
		applied, err = dbhelper.UpdateBookingStatus(booking.Number, booking.Status, next)
		if err != nil {
			http.Error(w, "failed to update booking status", http.StatusInternalServerError)
			return
		}
		if applied {
			booking.Status = next
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"applied": applied,
		"status":  booking.Status,
	})
}

func SetBookingPaymentStatus(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]

	type request struct {
		PaymentStatus models.PaymentStatus `json:"payment_status"`
	}
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	booking, err := dbhelper.GetBookingByNumber(number)
	if err == sql.ErrNoRows {
		http.Error(w, "booking not found", http.StatusNotFound)
		return
	} else if err != nil {
		http.Error(w, "failed to query booking", http.StatusInternalServerError)
		return
	}

	next, ok := lifecycle.AdvancePayment(booking.PaymentStatus, req.PaymentStatus)
	applied := false
	if ok {
		applied, err = dbhelper.UpdateBookingPaymentStatus(booking.Number, booking.PaymentStatus, next)
		if err != nil {
			http.Error(w, "failed to update payment status", http.StatusInternalServerError)
			return
		}
		if applied {
			booking.PaymentStatus = next
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"applied":        applied,
		"payment_status": booking.PaymentStatus,
	})
}
