package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the contact gateway
type Config struct {
	// Server Configuration
	Environment    string   `env:"ENV" envDefault:"development"`
	Port           string   `env:"PORT" envDefault:"8080"`
	LogLevel       string   `env:"LOG_LEVEL" envDefault:"info"`
	LogFile        string   `env:"LOG_FILE" envDefault:"./logs/contact-gateway.log"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	// Global rate limiting (server-wide backstop, token bucket)
	GlobalRPS   int `env:"GLOBAL_RATE_RPS" envDefault:"10"`
	GlobalBurst int `env:"GLOBAL_RATE_BURST" envDefault:"20"`

	// Per-client throttle on the contact endpoint (fixed window)
	ContactRateWindowMS int `env:"CONTACT_RATE_WINDOW_MS" envDefault:"60000"`
	ContactRateMax      int `env:"CONTACT_RATE_MAX" envDefault:"10"`

	// Spam heuristics
	MinSubmitMS int `env:"CONTACT_MIN_SUBMIT_MS" envDefault:"2000"`

	// Captcha verification. Setting RECAPTCHA_SECRET selects the checkbox
	// (siteverify) backend; setting RECAPTCHA_PROJECT_ID + RECAPTCHA_API_KEY
	// selects the risk-score (Enterprise assessment) backend. Neither set
	// means verification is disabled and submissions pass through.
	// The *URL overrides point the outbound calls at sandbox endpoints;
	// empty means the provider's production endpoint.
	RecaptchaSecret    string  `env:"RECAPTCHA_SECRET"`
	RecaptchaVerifyURL string  `env:"RECAPTCHA_VERIFY_URL"`
	RecaptchaProjectID string  `env:"RECAPTCHA_PROJECT_ID"`
	RecaptchaAPIKey    string  `env:"RECAPTCHA_API_KEY"`
	RecaptchaSiteKey   string  `env:"RECAPTCHA_SITE_KEY"`
	CaptchaMinScore    float64 `env:"CAPTCHA_MIN_SCORE" envDefault:"0.5"`

	// Email delivery
	SendgridAPIKey   string `env:"SENDGRID_API_KEY"`
	SendgridAPIURL   string `env:"SENDGRID_API_URL"`
	ContactToEmail   string `env:"CONTACT_TO_EMAIL" envDefault:"hello@360ace.tech"`
	ContactFromEmail string `env:"CONTACT_FROM_EMAIL" envDefault:"no-reply@360ace.tech"`
	SubjectPrefix    string `env:"CONTACT_SUBJECT_PREFIX" envDefault:"New contact"`
}

// Load loads the configuration from environment variables and .env files
func Load() (*Config, error) {
	// Load .env file if present. A specific .env.<ENV> takes precedence;
	// godotenv never overwrites variables already set in the environment.
	envLocations := []string{".env"}
	if envName := os.Getenv("ENV"); envName != "" {
		envLocations = append([]string{fmt.Sprintf(".env.%s", envName)}, envLocations...)
	}
	for _, loc := range envLocations {
		if err := godotenv.Load(loc); err == nil {
			break
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that numeric settings are usable
func (c *Config) Validate() error {
	if c.ContactRateWindowMS <= 0 {
		return fmt.Errorf("CONTACT_RATE_WINDOW_MS must be positive, got %d", c.ContactRateWindowMS)
	}
	if c.ContactRateMax <= 0 {
		return fmt.Errorf("CONTACT_RATE_MAX must be positive, got %d", c.ContactRateMax)
	}
	if c.MinSubmitMS < 0 {
		return fmt.Errorf("CONTACT_MIN_SUBMIT_MS must be non-negative, got %d", c.MinSubmitMS)
	}
	if c.CaptchaMinScore < 0 || c.CaptchaMinScore > 1 {
		return fmt.Errorf("CAPTCHA_MIN_SCORE must be in [0,1], got %f", c.CaptchaMinScore)
	}
	return nil
}

// ContactRateWindow returns the fixed-window length for the contact throttle
func (c *Config) ContactRateWindow() time.Duration {
	return time.Duration(c.ContactRateWindowMS) * time.Millisecond
}

// MinSubmitDelay returns the minimum plausible human form-filling time
func (c *Config) MinSubmitDelay() time.Duration {
	return time.Duration(c.MinSubmitMS) * time.Millisecond
}

// IsProduction reports whether the gateway runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
