package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/brewandbean/cafe/handlers"
	"github.com/brewandbean/cafe/middlewares"
	"github.com/brewandbean/cafe/models"
)

type Server struct {
	Router *mux.Router
	server *http.Server
}

const (
	readTimeout       = 5 * time.Minute
	readHeaderTimeout = 30 * time.Second
	writeTimeout      = 5 * time.Minute
)

func SetupRoutes() *Server {
	router := mux.NewRouter()

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, `{"alive": true}`)
	}).Methods("GET")
	router.HandleFunc("/register", handlers.Register).Methods("POST")
	router.HandleFunc("/login", handlers.Login).Methods("POST")
	router.HandleFunc("/refresh", handlers.RefreshToken).Methods("POST")

	// browsing the menu needs no account
	router.HandleFunc("/menu", handlers.ListMenu).Methods("GET")

	// local stand-ins for the gateway and email provider; registered before
	// the /api subrouter so they stay outside auth
	router.HandleFunc("/api/payments/verify", handlers.VerifyPaymentStub).Methods("GET")
	router.HandleFunc("/api/send-booking-email", handlers.SendBookingEmailStub).Methods("POST")

	authRoutes := router.PathPrefix("/api").Subrouter()
	authRoutes.Use(middlewares.AuthMiddleware)

	authRoutes.HandleFunc("/logout", handlers.Logout).Methods("POST")

	authRoutes.HandleFunc("/cart", handlers.GetCart).Methods("GET")
	authRoutes.HandleFunc("/cart", handlers.ClearCart).Methods("DELETE")
	authRoutes.HandleFunc("/cart/items", handlers.AddCartItem).Methods("POST")
	authRoutes.HandleFunc("/cart/items", handlers.RemoveCartItem).Methods("DELETE")
	authRoutes.HandleFunc("/favorites", handlers.ToggleFavorite).Methods("POST")
	authRoutes.HandleFunc("/favorites", handlers.ListFavorites).Methods("GET")

	authRoutes.HandleFunc("/checkout", handlers.Checkout).Methods("POST")
	authRoutes.HandleFunc("/orders", handlers.ListMyOrders).Methods("GET")
	authRoutes.HandleFunc("/orders/barcode/{barcode}", handlers.TrackOrderByBarcode).Methods("GET")
	authRoutes.HandleFunc("/orders/{number}", handlers.TrackOrder).Methods("GET")
	authRoutes.HandleFunc("/orders/{number}/history", handlers.GetOrderStatusHistory).Methods("GET")

	authRoutes.HandleFunc("/bookings", handlers.CreateBooking).Methods("POST")
	authRoutes.HandleFunc("/bookings", handlers.ListMyBookings).Methods("GET")
	authRoutes.HandleFunc("/bookings/{number}", handlers.GetBooking).Methods("GET")
	// customers may cancel while pending; the state machine enforces that
	authRoutes.HandleFunc("/bookings/{number}/status", handlers.AdvanceBookingStatus).Methods("PATCH")

	authRoutes.HandleFunc("/payments/session", handlers.OpenPaymentSession).Methods("POST")
	authRoutes.HandleFunc("/payments/session/{transactionId}", handlers.GetPaymentSession).Methods("GET")
	authRoutes.HandleFunc("/payments/session/{transactionId}/poll", handlers.PollPayment).Methods("POST")
	authRoutes.HandleFunc("/payments/session/{transactionId}", handlers.CancelPaymentSession).Methods("DELETE")

	// staff n admin
	staff := authRoutes.PathPrefix("/staff").Subrouter()
	staff.Use(middlewares.RoleBasedMiddleware(models.RoleStaff, models.RoleAdmin))

	staff.HandleFunc("/orders", handlers.ListOrders).Methods("GET")
	staff.HandleFunc("/orders/{number}/status", handlers.AdvanceOrderStatus).Methods("PATCH")
	staff.HandleFunc("/orders/{number}/payment", handlers.SetOrderPaymentStatus).Methods("PATCH")
	staff.HandleFunc("/bookings", handlers.ListBookings).Methods("GET")
	staff.HandleFunc("/bookings/{number}/status", handlers.AdvanceBookingStatus).Methods("PATCH")
	staff.HandleFunc("/bookings/{number}/payment", handlers.SetBookingPaymentStatus).Methods("PATCH")

	// admin only
	admin := authRoutes.PathPrefix("/admin").Subrouter()
	admin.Use(middlewares.RoleBasedMiddleware(models.RoleAdmin))

	admin.HandleFunc("/staff", handlers.CreateStaff).Methods("POST")
	admin.HandleFunc("/staff", handlers.ListStaff).Methods("GET")
	admin.HandleFunc("/menu", handlers.CreateMenuItem).Methods("POST")
	admin.HandleFunc("/menu", handlers.ListMenu).Methods("GET")
	admin.HandleFunc("/menu/{id}/availability", handlers.SetMenuItemAvailability).Methods("PATCH")
	admin.HandleFunc("/stats", handlers.GetDailyStats).Methods("GET")

	return &Server{
		Router: router,
	}
}

func (svr *Server) Run(port string) error {
	svr.server = &http.Server{
		Addr:              port,
		Handler:           svr.Router,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}
	return svr.server.ListenAndServe()
}

func (svr *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return svr.server.Shutdown(ctx)
}
