package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	SecretKey   []byte
	DatabaseURL string

	// Merchant identity used for UPI handoff and notification footers.
	MerchantVPA  string
	MerchantName string

	// WhatsAppPhone is the shop's number in digits-only form for wa.me links.
	WhatsAppPhone string
	ShopAddress   string
	ShopEmail     string

	EmailEndpoint string
	EmailTimeout  time.Duration

	PaymentVerifyURL    string
	PaymentPollInterval time.Duration
	PaymentPollTimeout  time.Duration
	PaymentSessionTTL   time.Duration
)

func Init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		log.Fatal("JWT secret key not set")
	}
	SecretKey = []byte(secret)

	DatabaseURL = os.Getenv("DATABASE_URL")
	if DatabaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}

	MerchantVPA = getEnv("MERCHANT_VPA", "brewandbean@paytm")
	MerchantName = getEnv("MERCHANT_NAME", "Brew & Bean Coffee Shop")
	WhatsAppPhone = getEnv("WHATSAPP_PHONE", "919348480855")
	ShopAddress = getEnv("SHOP_ADDRESS", "Basani Devi Colony, Sector IV, Nawbhanga, Chingrighata, Kolkata, West Bengal 700107")
	ShopEmail = getEnv("SHOP_EMAIL", "hello@brewandbean.cafe")

	EmailEndpoint = getEnv("EMAIL_ENDPOINT", "http://localhost:8080/api/send-booking-email")
	EmailTimeout = getDuration("EMAIL_TIMEOUT_SECONDS", 5*time.Second)

	PaymentVerifyURL = getEnv("PAYMENT_VERIFY_URL", "http://localhost:8080/api/payments/verify")
	PaymentPollInterval = getDuration("PAYMENT_POLL_INTERVAL_SECONDS", 3*time.Second)
	PaymentPollTimeout = getDuration("PAYMENT_POLL_TIMEOUT_SECONDS", 120*time.Second)
	PaymentSessionTTL = getDuration("PAYMENT_SESSION_TTL_SECONDS", 300*time.Second)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		log.Fatalf("invalid value for %s: %q", key, v)
	}
	return time.Duration(secs) * time.Second
}
