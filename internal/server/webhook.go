package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"marathon-registration/internal/gateway"
)

// webhookHandler verifies the gateway's out-of-band payment notifications.
// It is a secondary confirmation path; registration itself does not depend
// on it.
func (s *Server) webhookHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	signature := r.Header.Get("X-Razorpay-Signature")
	if signature == "" || !gateway.VerifyWebhookSignature(s.cfg.RazorpayWebhookSecret, body, signature) {
		s.logger.WithFields(logrus.Fields{"ip": r.RemoteAddr}).Warn("Webhook signature mismatch")
		respondMessage(w, http.StatusBadRequest, "Invalid webhook signature")
		return
	}

	var event struct {
		Event   string `json:"event"`
		Payload struct {
			Payment struct {
				Entity struct {
					ID string `json:"id"`
				} `json:"entity"`
			} `json:"payment"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(body, &event); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid webhook payload")
		return
	}

	fields := logrus.Fields{
		"event":      event.Event,
		"payment_id": event.Payload.Payment.Entity.ID,
	}
	switch event.Event {
	case "payment.captured":
		s.logger.WithFields(fields).Info("Webhook: payment captured")
	case "payment.failed":
		s.logger.WithFields(fields).Warn("Webhook: payment failed")
	default:
		s.logger.WithFields(fields).Info("Webhook: unhandled event")
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
