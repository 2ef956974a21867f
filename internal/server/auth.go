package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// Claims carries the admin session in the JWT.
type Claims struct {
	Role string `json:"role"`
	jwt.StandardClaims
}

func (s *Server) adminLoginHandler(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if s.cfg.AdminEmail == "" || s.cfg.AdminPasswordHash == "" {
		respondMessage(w, http.StatusUnauthorized, "Admin access is not configured")
		return
	}
	if request.Email != s.cfg.AdminEmail {
		respondMessage(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(request.Password)); err != nil {
		respondMessage(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	claims := &Claims{
		Role: "admin",
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(24 * time.Hour).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Error generating token")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"token": signed})
}

func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
		if tokenString == "" {
			respondMessage(w, http.StatusUnauthorized, "Unauthorized: no token provided")
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(s.cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid || claims.Role != "admin" {
			respondMessage(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		next(w, r)
	}
}
