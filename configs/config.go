package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	DBSource  string
	Port      string
	JWTSecret string
	JWTTTL    time.Duration

	// Fee schedule applied at checkout.
	Currency    string
	ServiceFee  decimal.Decimal
	DeliveryFee decimal.Decimal

	// Decision windows. Cancellation runs from the pending status log,
	// rating from the order's placedAt.
	CancelWindow time.Duration
	RatingWindow time.Duration

	GatewayBaseURL string
	GatewayAPIKey  string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	return &Config{
		DBSource:       getEnv("DB_SOURCE", "food.db"),
		Port:           getEnv("PORT", "8000"),
		JWTSecret:      getEnv("JWT_SECRET", "changeme"),
		JWTTTL:         24 * time.Hour,
		Currency:       getEnv("CURRENCY", "USD"),
		ServiceFee:     getDecimalEnv("SERVICE_FEE", "10"),
		DeliveryFee:    getDecimalEnv("DELIVERY_FEE", "30"),
		CancelWindow:   time.Duration(getIntEnv("CANCEL_WINDOW_MINUTES", 5)) * time.Minute,
		RatingWindow:   time.Duration(getIntEnv("RATING_WINDOW_MINUTES", 30)) * time.Minute,
		GatewayBaseURL: getEnv("GATEWAY_BASE_URL", "https://gateway.example.com"),
		GatewayAPIKey:  os.Getenv("GATEWAY_API_KEY"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("invalid %s=%q, using %d", key, v, fallback)
	}
	return fallback
}

func getDecimalEnv(key, fallback string) decimal.Decimal {
	raw := getEnv(key, fallback)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		log.Printf("invalid %s=%q, using %s", key, raw, fallback)
		d, _ = decimal.NewFromString(fallback)
	}
	return d
}
