package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Store backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

type Config struct {
	Addr         string
	DataDir      string
	StoreBackend string
	RedisAddr    string
	CouponFile   string

	FreeShippingThreshold decimal.Decimal
	ShippingFee           decimal.Decimal
	TaxRate               decimal.Decimal
}

// Load reads configuration from the environment, with a .env file honored
// when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Addr:         getEnv("ADDR", ":8080"),
		DataDir:      getEnv("DATA_DIR", "./data"),
		StoreBackend: getEnv("STORE_BACKEND", BackendFile),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		CouponFile:   os.Getenv("COUPON_FILE"),
	}

	if cfg.StoreBackend != BackendFile && cfg.StoreBackend != BackendRedis {
		return Config{}, fmt.Errorf("config: unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	var err error
	if cfg.FreeShippingThreshold, err = getDecimal("FREE_SHIPPING_THRESHOLD", "50"); err != nil {
		return Config{}, err
	}
	if cfg.ShippingFee, err = getDecimal("SHIPPING_FEE", "5"); err != nil {
		return Config{}, err
	}
	if cfg.TaxRate, err = getDecimal("TAX_RATE", "0.05"); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDecimal(key, fallback string) (decimal.Decimal, error) {
	raw := getEnv(key, fallback)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("config: invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}
