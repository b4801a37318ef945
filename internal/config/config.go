package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	WAAccessToken   string `envconfig:"WHATSAPP_TOKEN"`
	WAPhoneNumberID string `envconfig:"PHONE_NUMBER_ID"`
	WAVerifyToken   string `envconfig:"VERIFY_TOKEN"`

	BrandName          string `envconfig:"BRAND_NAME" default:"DabbaXpress"`
	UPIID              string `envconfig:"UPI_ID"`
	DeliveryETAMinutes int    `envconfig:"DELIVERY_ETA_MINUTES" default:"40"`

	// interactive | text
	RenderMode string `envconfig:"RENDER_MODE" default:"interactive"`

	// memory | bolt
	SessionBackend string `envconfig:"SESSION_BACKEND" default:"memory"`
	DataDir        string `envconfig:"DATA_DIR" default:"."`

	Port      string `envconfig:"PORT" default:"8080"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"console"`
}

func Load() (*Config, error) {
	// .env is optional — env vars may already be set (e.g. in production)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if cfg.WAVerifyToken == "" {
		token, err := randomHex(16)
		if err != nil {
			return nil, fmt.Errorf("generating verify token: %w", err)
		}
		cfg.WAVerifyToken = token
	}

	for _, req := range []struct {
		name, val string
	}{
		{"WHATSAPP_TOKEN", cfg.WAAccessToken},
		{"PHONE_NUMBER_ID", cfg.WAPhoneNumberID},
		{"UPI_ID", cfg.UPIID},
	} {
		if req.val == "" {
			return nil, fmt.Errorf("required env var %s is not set", req.name)
		}
	}

	switch cfg.RenderMode {
	case "interactive", "text":
	default:
		return nil, fmt.Errorf("RENDER_MODE must be interactive or text, got %q", cfg.RenderMode)
	}

	switch cfg.SessionBackend {
	case "memory", "bolt":
	default:
		return nil, fmt.Errorf("SESSION_BACKEND must be memory or bolt, got %q", cfg.SessionBackend)
	}

	return cfg, nil
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
