package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// PaymentSignature returns the hex HMAC-SHA256 of "orderID|paymentID" keyed
// with the gateway secret. This is the code the checkout widget hands back on
// a successful payment.
func PaymentSignature(secret, orderID, paymentID string) string {
	return hmacSHA256Hex(secret, orderID+"|"+paymentID)
}

// VerifyPaymentSignature reports whether the client-supplied signature proves
// the orderID/paymentID pair came from the gateway. Comparison is constant
// time.
func VerifyPaymentSignature(secret, orderID, paymentID, signature string) bool {
	expected := PaymentSignature(secret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// WebhookSignature returns the hex HMAC-SHA256 of a raw webhook body keyed
// with the webhook secret.
func WebhookSignature(secret string, body []byte) string {
	return hmacSHA256Hex(secret, string(body))
}

// VerifyWebhookSignature checks the X-Razorpay-Signature header against the
// raw webhook body.
func VerifyWebhookSignature(secret string, body []byte, signature string) bool {
	return hmac.Equal([]byte(WebhookSignature(secret, body)), []byte(signature))
}

func hmacSHA256Hex(secret, payload string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
