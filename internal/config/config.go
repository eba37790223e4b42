// Package config provides runtime configuration values for the services.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds configuration knobs shared by every service process.
type Config struct {
	Service         string
	HTTPAddr        string
	ShutdownTimeout time.Duration

	DBDSN string

	JWTSecret string
	TokenTTL  time.Duration

	AuthServiceURL    string
	ProductServiceURL string
	OrderServiceURL   string
	PaymentServiceURL string
	UserServiceURL    string

	ClientTimeout time.Duration
}

// serviceDefaults maps a service name to its default port and database name.
var serviceDefaults = map[string]struct {
	port int
	db   string
}{
	"api-gateway":     {3000, ""},
	"auth-service":    {3001, "user_db"},
	"product-service": {3002, "product_db"},
	"order-service":   {3003, "order_db"},
	"payment-service": {3004, "payment_db"},
	"user-service":    {3005, "user_db"},
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func durenvs(key string, defSec int) time.Duration {
	sec := atoienv(key, defSec)
	return time.Duration(sec) * time.Second
}

// dsn assembles a MySQL DSN from the DB_* variables unless DB_DSN overrides it.
func dsn(defaultDB string) string {
	if v := getenv("DB_DSN", ""); v != "" {
		return v
	}
	host := getenv("DB_HOST", "localhost")
	port := atoienv("DB_PORT", 3307)
	name := getenv("DB_NAME", defaultDB)
	user := getenv("DB_USER", "root")
	pass := getenv("DB_PASSWORD", "")
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC", user, pass, host, port, name)
}

// Load collects configuration from environment with defaults for the named
// service. A .env file in the working directory is honored when present.
func Load(service string) Config {
	_ = godotenv.Load()

	def, ok := serviceDefaults[service]
	if !ok {
		def.port = 8080
	}
	cfg := Config{
		Service:           service,
		HTTPAddr:          getenv("HTTP_ADDR", fmt.Sprintf(":%d", def.port)),
		ShutdownTimeout:   durenvs("SHUTDOWN_TIMEOUT", 15),
		JWTSecret:         getenv("JWT_SECRET", "your-secret-key"),
		TokenTTL:          durenvs("TOKEN_TTL", 7*24*3600),
		AuthServiceURL:    getenv("AUTH_SERVICE_URL", "http://localhost:3001"),
		ProductServiceURL: getenv("PRODUCT_SERVICE_URL", "http://localhost:3002"),
		OrderServiceURL:   getenv("ORDER_SERVICE_URL", "http://localhost:3003"),
		PaymentServiceURL: getenv("PAYMENT_SERVICE_URL", "http://localhost:3004"),
		UserServiceURL:    getenv("USER_SERVICE_URL", "http://localhost:3005"),
		ClientTimeout:     durenvs("CLIENT_TIMEOUT", 5),
	}
	if def.db != "" {
		cfg.DBDSN = dsn(def.db)
	}
	return cfg
}
