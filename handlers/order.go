package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/brewandbean/cafe/database"
	"github.com/brewandbean/cafe/database/dbhelper"
	"github.com/brewandbean/cafe/lifecycle"
	"github.com/brewandbean/cafe/middlewares"
	"github.com/brewandbean/cafe/models"
	"github.com/brewandbean/cafe/utils"
)

// Checkout turns the customer's persisted cart into an order record. The
// order total is always computed from the lines, never taken from input.
func Checkout(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := cartStore.Load(r.Context(), claims.UserID)
	if err != nil {
		http.Error(w, "failed to load cart", http.StatusInternalServerError)
		return
	}
	if c.IsEmpty() {
		http.Error(w, "cart is empty", http.StatusBadRequest)
		return
	}

	items := c.OrderItems()
	estimate := estimatedMinutes(req.OrderType)

	order := models.Order{
		Number:           utils.GenerateOrderNumber(),
		UserID:           claims.UserID,
		CustomerName:     req.CustomerName,
		CustomerPhone:    req.CustomerPhone,
		Type:             req.OrderType,
		TableNumber:      req.TableNumber,
		Items:            items,
		TotalAmount:      models.ComputeTotal(items),
		PaymentMethod:    req.PaymentMethod,
		PaymentStatus:    models.PaymentPending,
		Status:           models.OrderPending,
		Barcode:          utils.GenerateBarcode(req.CustomerPhone),
		EstimatedMinutes: &estimate,
	}
	if req.CustomerEmail != "" {
		order.CustomerEmail = &req.CustomerEmail
	}
	if req.DeliveryAddress != "" {
		order.DeliveryAddress = &req.DeliveryAddress
	}
	if req.SpecialInstructions != "" {
		order.SpecialInstructions = &req.SpecialInstructions
	}

	txErr := database.Tx(func(tx *sql.Tx) error {
		return dbhelper.InsertOrder(tx, &order)
	})
	if txErr != nil {
		logrus.WithError(txErr).Error("failed to insert order")
		http.Error(w, "failed to create order", http.StatusInternalServerError)
		return
	}

	// submission is the customer's confirmation
	if next, ok := lifecycle.AdvanceOrder(order.Status, models.OrderConfirmed, models.RoleCustomer); ok {
		applied, err := dbhelper.UpdateOrderStatus(order.Number, order.Status, next, order.CustomerName)
		if err != nil {
			logrus.WithError(err).Errorf("failed to confirm order %s", order.Number)
		} else if applied {
			order.Status = next
		}
	}

	if err := cartStore.Delete(r.Context(), claims.UserID); err != nil {
		logrus.WithError(err).Warnf("failed to clear cart after checkout for order %s", order.Number)
	}

	result := dispatcher.DispatchOrder(order)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"order":        order,
		"whatsapp_url": result.WhatsAppURL,
	})
}

func estimatedMinutes(t models.OrderType) int {
	switch t {
	case models.DineIn:
		return 15
	case models.Delivery:
		return 35
	default:
		return 20
	}
}

func ListMyOrders(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	orders, err := dbhelper.ListOrders("", claims.UserID)
	if err != nil {
		http.Error(w, "failed to query orders", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(orders)
}

func TrackOrder(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]

	order, err := dbhelper.GetOrderByNumber(number)
	if err == sql.ErrNoRows {
		http.Error(w, "order not found", http.StatusNotFound)
		return
	} else if err != nil {
		http.Error(w, "failed to query order", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}

// TrackOrderByBarcode resolves a pickup barcode to its order.
func TrackOrderByBarcode(w http.ResponseWriter, r *http.Request) {
	barcode := mux.Vars(r)["barcode"]

	order, err := dbhelper.GetOrderByBarcode(barcode)
	if err == sql.ErrNoRows {
		http.Error(w, "order not found", http.StatusNotFound)
		return
	} else if err != nil {
		http.Error(w, "failed to query order", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}

func ListOrders(w http.ResponseWriter, r *http.Request) {
	status := models.OrderStatus(r.URL.Query().Get("status"))

	orders, err := dbhelper.ListOrders(status, uuid.Nil)
	if err != nil {
		http.Error(w, "failed to query orders", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(orders)
}

// AdvanceOrderStatus moves an order forward through the shared state
// machine. An illegal transition is reported back as not applied with the
// record untouched, matching the machine's rejected-no-op contract.
func AdvanceOrderStatus(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]
	actor := middlewares.ActorRole(r)

	type request struct {
		Status models.OrderStatus `json:"status"`
	}
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	order, err := dbhelper.GetOrderByNumber(number)
	if err == sql.ErrNoRows {
		http.Error(w, "order not found", http.StatusNotFound)
		return
	} else if err != nil {
		http.Error(w, "failed to query order", http.StatusInternalServerError)
		return
	}

	next, ok := lifecycle.AdvanceOrder(order.Status, req.Status, actor)
	applied := false
	if ok {
		applied, err = dbhelper.UpdateOrderStatus(order.Number, order.Status, next, string(actor))
		if err != nil {
			http.Error(w, "failed to update order status", http.StatusInternalServerError)
			return
		}
		if applied {
			order.Status = next
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"applied": applied,
		"status":  order.Status,
	})
}

// SetOrderPaymentStatus marks payment completed or failed. Independent of
// fulfillment: staff may advance an unpaid order regardless.
func SetOrderPaymentStatus(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]

	type request struct {
		PaymentStatus models.PaymentStatus `json:"payment_status"`
	}
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	order, err := dbhelper.GetOrderByNumber(number)
	if err == sql.ErrNoRows {
		http.Error(w, "order not found", http.StatusNotFound)
		return
	} else if err != nil {
		http.Error(w, "failed to query order", http.StatusInternalServerError)
		return
	}

	next, ok := lifecycle.AdvancePayment(order.PaymentStatus, req.PaymentStatus)
	applied := false
	if ok {
		applied, err = dbhelper.UpdateOrderPaymentStatus(order.Number, order.PaymentStatus, next)
		if err != nil {
			http.Error(w, "failed to update payment status", http.StatusInternalServerError)
			return
		}
		if applied {
			order.PaymentStatus = next
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"applied":        applied,
		"payment_status": order.PaymentStatus,
	})
}

func GetOrderStatusHistory(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]

	type entry struct {
		Status    models.OrderStatus `json:"status"`
		ChangedBy string             `json:"changed_by"`
		ChangedAt time.Time          `json:"changed_at"`
	}

	rows, err := dbhelper.GetOrderStatusHistory(number)
	if err != nil {
		http.Error(w, "failed to query status history", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var history []entry
	for rows.Next() {
		var e entry
		if err := rows.Scan(&e.Status, &e.ChangedBy, &e.ChangedAt); err != nil {
			http.Error(w, "failed to read status history", http.StatusInternalServerError)
			return
		}
		history = append(history, e)
	}
	if err := rows.Err(); err != nil {
		http.Error(w, "error reading results", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(history)
}

func GetDailyStats(w http.ResponseWriter, r *http.Request) {
	stats, err := dbhelper.GetDailyOrderStats()
	if err != nil {
		http.Error(w, "failed to query stats", http.StatusInternalServerError)
		return
	}

	limit := 10
	if v := r.URL.Query().Get("popular_limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	popular, err := dbhelper.GetPopularItems(limit)
	if err != nil {
		http.Error(w, "failed to query popular items", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"daily":         stats,
		"popular_items": popular,
	})
}
