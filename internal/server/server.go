// Package server wires the HTTP surface of the registration service.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"marathon-registration/internal/config"
	"marathon-registration/internal/gateway"
	"marathon-registration/internal/mailer"
	"marathon-registration/internal/store"
)

// Server holds the service's collaborators. Everything is injected so
// handlers can be tested with fakes.
type Server struct {
	cfg     config.Config
	logger  *logrus.Logger
	gateway gateway.Client
	store   *store.Participants
	mailer  mailer.Sender
	hub     *Hub
}

func New(cfg config.Config, logger *logrus.Logger, gw gateway.Client, st *store.Participants, mail mailer.Sender) *Server {
	s := &Server{
		cfg:     cfg,
		logger:  logger,
		gateway: gw,
		store:   st,
		mailer:  mail,
		hub:     newHub(logger),
	}
	go s.hub.run()
	return s
}

// Router builds the full handler chain: routes, rate limiting and CORS.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	rl := newRateLimiter(s.cfg.RateLimitMax, s.cfg.RateLimitWindow)

	r.HandleFunc("/health", s.logRequest(s.healthHandler, "health")).Methods("GET")
	r.HandleFunc("/get-razorpay-key", s.logRequest(s.getKeyHandler, "get-key")).Methods("GET")
	r.Handle("/createOrder", rl.limitMiddleware(http.HandlerFunc(s.logRequest(s.createOrderHandler, "create-order")))).Methods("POST")
	r.Handle("/api/auth/register", rl.limitMiddleware(http.HandlerFunc(s.logRequest(s.registerHandler, "register")))).Methods("POST")

	// The webhook is a secondary confirmation path; without a secret there
	// is nothing to verify against, so the route is not mounted.
	if s.cfg.RazorpayWebhookSecret != "" {
		r.HandleFunc("/razorpay-webhook", s.logRequest(s.webhookHandler, "webhook")).Methods("POST")
	}

	r.HandleFunc("/api/admin/login", s.logRequest(s.adminLoginHandler, "admin-login")).Methods("POST")
	r.HandleFunc("/api/user/participants", s.requireAdmin(s.listParticipantsHandler)).Methods("GET")

	r.HandleFunc("/ws/registrations", s.wsHandler)

	r.PathPrefix("/").Handler(http.FileServer(http.Dir(s.cfg.StaticDir)))

	return cors.New(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(r)
}

func (s *Server) logRequest(next http.HandlerFunc, route string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.logger.WithFields(logrus.Fields{
			"method": r.Method,
			"url":    r.URL.Path,
			"route":  route,
			"ip":     r.RemoteAddr,
		}).Info("HTTP request received")
		next(w, r)
	}
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondMessage(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"msg": msg})
}
