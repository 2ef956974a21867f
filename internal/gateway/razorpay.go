package gateway

import (
	"context"
	"fmt"

	"github.com/razorpay/razorpay-go"
)

// Razorpay implements Client with the official SDK.
type Razorpay struct {
	client *razorpay.Client
}

func New(keyID, keySecret string) *Razorpay {
	return &Razorpay{client: razorpay.NewClient(keyID, keySecret)}
}

// CreateOrder opens a pending order on the gateway. amount is in paise.
func (g *Razorpay) CreateOrder(ctx context.Context, amount int64, receipt string) (Order, error) {
	data := map[string]interface{}{
		"amount":   amount,
		"currency": "INR",
		"receipt":  receipt,
	}
	body, err := await(ctx, func() (map[string]interface{}, error) {
		return g.client.Order.Create(data, nil)
	})
	if err != nil {
		return Order{}, fmt.Errorf("create order: %w", err)
	}
	return Order{
		ID:       str(body["id"]),
		Amount:   num(body["amount"]),
		Currency: str(body["currency"]),
		Receipt:  str(body["receipt"]),
	}, nil
}

func (g *Razorpay) FetchPayment(ctx context.Context, paymentID string) (Payment, error) {
	body, err := await(ctx, func() (map[string]interface{}, error) {
		return g.client.Payment.Fetch(paymentID, nil, nil)
	})
	if err != nil {
		return Payment{}, fmt.Errorf("fetch payment %s: %w", paymentID, err)
	}
	return Payment{ID: str(body["id"]), Status: str(body["status"])}, nil
}

// await runs an SDK call (which takes no context) in a goroutine and bounds
// it by ctx. A timed-out call is reported as an error, never a success.
func await(ctx context.Context, fn func() (map[string]interface{}, error)) (map[string]interface{}, error) {
	type result struct {
		body map[string]interface{}
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		body, err := fn()
		ch <- result{body, err}
	}()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		return r.body, r.err
	}
}

func str(v interface{}) string {
	s, _ := v.(string)
	return s
}

// num handles the SDK's decoded JSON numbers.
func num(v interface{}) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	}
	return 0
}
