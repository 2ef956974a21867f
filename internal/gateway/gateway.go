// Package gateway wraps the Razorpay SDK behind a small interface so the
// handlers can be exercised against fakes.
package gateway

import "context"

// StatusCaptured is the gateway status meaning funds were charged.
const StatusCaptured = "captured"

// Order is the gateway-side record of an intended payment. It is never
// persisted locally; it only drives the checkout widget.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"` // smallest currency unit
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// Payment is the slice of a gateway payment the registration flow needs.
type Payment struct {
	ID     string
	Status string
}

// Client creates orders and looks up payments on the gateway.
type Client interface {
	CreateOrder(ctx context.Context, amount int64, receipt string) (Order, error)
	FetchPayment(ctx context.Context, paymentID string) (Payment, error)
}
