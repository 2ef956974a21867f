package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds everything the server needs from the environment.
type Config struct {
	HTTPAddr    string
	Environment string

	DatabaseDSN string

	RazorpayKeyID         string
	RazorpayKeySecret     string
	RazorpayWebhookSecret string

	// RegistrationFee, when > 0, pins the order amount server-side
	// (major currency unit). 0 means the client-supplied amount is used.
	RegistrationFee float64

	SMTPHost      string
	SMTPPort      int
	EmailSender   string
	EmailPassword string

	AllowedOrigins  []string
	RateLimitMax    int
	RateLimitWindow time.Duration

	AdminEmail        string
	AdminPasswordHash string
	JWTSecret         string

	StaticDir string

	EventName  string
	EventDate  string
	EventVenue string
}

// Development reports whether internal error detail may be exposed to clients.
func (c Config) Development() bool {
	return c.Environment != "production"
}

func FromEnv() (Config, error) {
	var c Config

	c.HTTPAddr = getEnv("HTTP_ADDR", ":8000")
	c.Environment = getEnv("APP_ENV", "development")

	c.DatabaseDSN = strings.TrimSpace(os.Getenv("DATABASE_DSN"))

	c.RazorpayKeyID = strings.TrimSpace(os.Getenv("RAZORPAY_KEY_ID"))
	c.RazorpayKeySecret = strings.TrimSpace(os.Getenv("RAZORPAY_KEY_SECRET"))
	c.RazorpayWebhookSecret = strings.TrimSpace(os.Getenv("RAZORPAY_WEBHOOK_SECRET"))

	if raw := strings.TrimSpace(os.Getenv("REGISTRATION_FEE")); raw != "" {
		fee, err := strconv.ParseFloat(raw, 64)
		if err != nil || fee < 0 {
			return c, fmt.Errorf("REGISTRATION_FEE must be a non-negative number, got %q", raw)
		}
		c.RegistrationFee = fee
	}

	c.SMTPHost = getEnv("SMTP_HOST", "smtp.gmail.com")
	port, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil || port <= 0 {
		return c, fmt.Errorf("SMTP_PORT must be a positive integer")
	}
	c.SMTPPort = port
	c.EmailSender = strings.TrimSpace(os.Getenv("EMAIL_USER"))
	c.EmailPassword = os.Getenv("EMAIL_PASS")

	c.AllowedOrigins = splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"))

	c.RateLimitMax, err = strconv.Atoi(getEnv("RATE_LIMIT_MAX", "100"))
	if err != nil || c.RateLimitMax < 1 {
		return c, fmt.Errorf("RATE_LIMIT_MAX must be a positive integer")
	}
	c.RateLimitWindow, err = time.ParseDuration(getEnv("RATE_LIMIT_WINDOW", "15m"))
	if err != nil || c.RateLimitWindow <= 0 {
		return c, fmt.Errorf("RATE_LIMIT_WINDOW must be a positive duration")
	}

	c.AdminEmail = strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))
	c.AdminPasswordHash = strings.TrimSpace(os.Getenv("ADMIN_PASSWORD_HASH"))
	c.JWTSecret = strings.TrimSpace(os.Getenv("JWT_SECRET"))

	c.StaticDir = getEnv("STATIC_DIR", "./web/static")

	c.EventName = getEnv("EVENT_NAME", "Polo Marathon")
	c.EventDate = getEnv("EVENT_DATE", "16-03-2025")
	c.EventVenue = getEnv("EVENT_VENUE", "MOLAPALAYAM, Coimbatore")

	if c.DatabaseDSN == "" {
		return c, fmt.Errorf("DATABASE_DSN is empty")
	}
	if c.RazorpayKeyID == "" {
		return c, fmt.Errorf("RAZORPAY_KEY_ID is empty")
	}
	if c.RazorpayKeySecret == "" {
		return c, fmt.Errorf("RAZORPAY_KEY_SECRET is empty")
	}

	return c, nil
}

func getEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
