package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"regexp"
	"time"

	"github.com/sirupsen/logrus"

	"marathon-registration/internal/gateway"
	"marathon-registration/internal/model"
	"marathon-registration/internal/store"
)

// gatewayTimeout bounds each outbound gateway call.
const gatewayTimeout = 10 * time.Second

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
)

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) getKeyHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"key": s.cfg.RazorpayKeyID})
}

func (s *Server) createOrderHandler(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Amount float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	amount := request.Amount
	if s.cfg.RegistrationFee > 0 {
		amount = s.cfg.RegistrationFee
	}
	if amount < 1 {
		respondMessage(w, http.StatusBadRequest, "Valid amount required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), gatewayTimeout)
	defer cancel()

	receipt := fmt.Sprintf("order_%d", time.Now().UnixMilli())
	order, err := s.gateway.CreateOrder(ctx, int64(math.Round(amount*100)), receipt)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"error":   err.Error(),
			"receipt": receipt,
		}).Error("Failed to create gateway order")

		body := map[string]interface{}{"msg": "Error creating order"}
		if s.cfg.Development() {
			body["error"] = err.Error()
		}
		respondJSON(w, http.StatusInternalServerError, body)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"id":       order.ID,
		"amount":   order.Amount,
		"currency": order.Currency,
	})
}

type registrationRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
	Category  string `json:"category"`
	PaymentID string `json:"paymentId"`
	OrderID   string `json:"orderId"`
	Signature string `json:"signature"`
}

type fieldError struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

func validateRegistration(req registrationRequest) []fieldError {
	var errs []fieldError
	if req.Name == "" {
		errs = append(errs, fieldError{"name", "Name is required"})
	}
	if !emailPattern.MatchString(req.Email) {
		errs = append(errs, fieldError{"email", "Valid email is required"})
	}
	if !phonePattern.MatchString(req.Phone) {
		errs = append(errs, fieldError{"phone", "Valid phone number is required"})
	}
	if req.PaymentID == "" || req.PaymentID == "N/A" {
		errs = append(errs, fieldError{"paymentId", "Payment ID is required"})
	}
	if req.OrderID == "" {
		errs = append(errs, fieldError{"orderId", "Order ID is required"})
	}
	if req.Signature == "" {
		errs = append(errs, fieldError{"signature", "Signature is required"})
	}
	return errs
}

// registerHandler runs the registration transaction: validate, verify the
// payment signature, confirm capture with the gateway, persist with a chest
// number, then send the confirmation. The signature check must come before
// any gateway lookup so unauthenticated callers cannot probe payment ids.
func (s *Server) registerHandler(w http.ResponseWriter, r *http.Request) {
	var request registrationRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if errs := validateRegistration(request); len(errs) > 0 {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": errs})
		return
	}

	if !gateway.VerifyPaymentSignature(s.cfg.RazorpayKeySecret, request.OrderID, request.PaymentID, request.Signature) {
		s.logger.WithFields(logrus.Fields{
			"order_id":   request.OrderID,
			"payment_id": request.PaymentID,
		}).Warn("Payment signature mismatch")
		respondMessage(w, http.StatusBadRequest, "Payment verification failed: invalid signature.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), gatewayTimeout)
	defer cancel()

	payment, err := s.gateway.FetchPayment(ctx, request.PaymentID)
	if err != nil || payment.Status != gateway.StatusCaptured {
		fields := logrus.Fields{"payment_id": request.PaymentID, "status": payment.Status}
		if err != nil {
			fields["error"] = err.Error()
		}
		s.logger.WithFields(fields).Warn("Payment not captured")
		respondMessage(w, http.StatusBadRequest, "Payment verification failed: payment not captured.")
		return
	}

	participant := model.Participant{
		Name:      request.Name,
		Email:     request.Email,
		Phone:     request.Phone,
		Age:       request.Age,
		Gender:    request.Gender,
		Category:  request.Category,
		PaymentID: request.PaymentID,
	}

	if err := s.store.Register(r.Context(), &participant); err != nil {
		if errors.Is(err, store.ErrDuplicatePayment) {
			respondMessage(w, http.StatusBadRequest, "This payment is already linked to a registration.")
			return
		}
		// The payment is captured at the gateway but the runner is not
		// registered; keep the payment id in the log for reconciliation.
		s.logger.WithFields(logrus.Fields{
			"error":      err.Error(),
			"payment_id": request.PaymentID,
			"email":      request.Email,
		}).Error("Failed to persist participant after captured payment")
		respondMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"chest_number": participant.ChestNumber,
		"payment_id":   participant.PaymentID,
		"category":     participant.Category,
	}).Info("Participant registered")

	s.hub.broadcast(registrationEvent{
		ChestNumber: participant.ChestNumber,
		Category:    participant.Category,
	})

	// Best effort: the runner is registered whether or not the mail lands.
	if err := s.mailer.SendConfirmation(participant); err != nil {
		s.logger.WithFields(logrus.Fields{
			"error":        err.Error(),
			"email":        participant.Email,
			"chest_number": participant.ChestNumber,
		}).Error("Failed to send confirmation email")
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"msg":         "User registered successfully after payment.",
		"chestNumber": participant.ChestNumber,
	})
}

func (s *Server) listParticipantsHandler(w http.ResponseWriter, r *http.Request) {
	var (
		participants []model.Participant
		err          error
	)
	if email := r.URL.Query().Get("email"); email != "" {
		participants, err = s.store.FindByEmail(r.Context(), email)
	} else {
		participants, err = s.store.All(r.Context())
	}
	if err != nil {
		s.logger.WithFields(logrus.Fields{"error": err.Error()}).Error("Failed to fetch participants")
		respondMessage(w, http.StatusInternalServerError, "Error fetching participants")
		return
	}
	respondJSON(w, http.StatusOK, participants)
}
