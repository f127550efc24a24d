package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr       string
	GinMode       string
	DBDSN         string
	JWTSecret     string
	HoldTTL       time.Duration
	ChallengeTTL  time.Duration
	SweepInterval time.Duration
	RefundPercent int
	SeatRows      int
}

// LoadEnv reads configuration from the environment, loading a .env file
// first when one exists.
func LoadEnv() Env {
	_ = godotenv.Load()

	env := Env{
		AppAddr:       getString("APP_ADDR", ":8080"),
		GinMode:       getString("GIN_MODE", ""),
		DBDSN:         getString("DB_DSN", ""),
		JWTSecret:     getString("JWT_SECRET", "super-secret-key-change-me"),
		HoldTTL:       getMinutes("HOLD_TTL_MINUTES", 15),
		ChallengeTTL:  getMinutes("CHALLENGE_TTL_MINUTES", 5),
		SweepInterval: getMinutes("SWEEP_INTERVAL_MINUTES", 1),
		RefundPercent: getInt("REFUND_PERCENT", 50),
		SeatRows:      getInt("SEAT_ROWS", 5),
	}
	return env
}

func getString(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func getInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getMinutes(key string, fallback int) time.Duration {
	return time.Duration(getInt(key, fallback)) * time.Minute
}
