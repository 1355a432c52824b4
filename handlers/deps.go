package handlers

import (
	"github.com/brewandbean/cafe/cart"
	"github.com/brewandbean/cafe/config"
	"github.com/brewandbean/cafe/database/dbhelper"
	"github.com/brewandbean/cafe/notification"
	"github.com/brewandbean/cafe/upi"
)

var (
	cartStore  cart.Store
	dispatcher *notification.Dispatcher
	payments   *upi.Manager
)

// Init wires the handler package's shared collaborators from config.
// Called once at startup after config.Init.
func Init() {
	cartStore = dbhelper.NewCartStore()

	shop := notification.ShopInfo{
		Name:    config.MerchantName,
		Address: config.ShopAddress,
		Phone:   config.WhatsAppPhone,
	}
	email := notification.NewEmailClient(config.EmailEndpoint, config.EmailTimeout)
	dispatcher = notification.NewDispatcher(email, shop)

	verifier := upi.NewHTTPVerifier(config.PaymentVerifyURL)
	payments = upi.NewManager(verifier, config.PaymentPollInterval, config.PaymentPollTimeout, config.PaymentSessionTTL)
}
