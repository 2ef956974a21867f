package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_DSN", "user=postgres dbname=marathon sslmode=disable")
	t.Setenv("RAZORPAY_KEY_ID", "rzp_test_key")
	t.Setenv("RAZORPAY_KEY_SECRET", "rzp_test_secret")
}

func TestFromEnvDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.HTTPAddr)
	assert.Equal(t, "development", cfg.Environment)
	assert.True(t, cfg.Development())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, 100, cfg.RateLimitMax)
	assert.Equal(t, 15*time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, "Polo Marathon", cfg.EventName)
	assert.Zero(t, cfg.RegistrationFee)
}

func TestFromEnvMissingGatewayKey(t *testing.T) {
	t.Setenv("DATABASE_DSN", "user=postgres dbname=marathon sslmode=disable")
	t.Setenv("RAZORPAY_KEY_ID", "")
	t.Setenv("RAZORPAY_KEY_SECRET", "rzp_test_secret")

	_, err := FromEnv()
	assert.ErrorContains(t, err, "RAZORPAY_KEY_ID")
}

func TestFromEnvMissingDSN(t *testing.T) {
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("RAZORPAY_KEY_ID", "rzp_test_key")
	t.Setenv("RAZORPAY_KEY_SECRET", "rzp_test_secret")

	_, err := FromEnv()
	assert.ErrorContains(t, err, "DATABASE_DSN")
}

func TestFromEnvOriginListAndFee(t *testing.T) {
	setRequired(t)
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000, https://bhogan.vercel.app ,")
	t.Setenv("REGISTRATION_FEE", "399")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, []string{"http://localhost:3000", "https://bhogan.vercel.app"}, cfg.AllowedOrigins)
	assert.Equal(t, 399.0, cfg.RegistrationFee)
}

func TestFromEnvBadFee(t *testing.T) {
	setRequired(t)
	t.Setenv("REGISTRATION_FEE", "free")

	_, err := FromEnv()
	assert.ErrorContains(t, err, "REGISTRATION_FEE")
}

func TestProductionHidesDetail(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "production")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.False(t, cfg.Development())
}
