package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marathon-registration/internal/model"
)

func loginToken(t *testing.T, router http.Handler, email, password string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	rec := doJSON(t, router, "POST", "/api/admin/login", map[string]string{
		"email":    email,
		"password": password,
	})
	var body struct {
		Token string `json:"token"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body.Token
}

func TestAdminLoginWrongPassword(t *testing.T) {
	s, _ := newTestServer(t, testConfig(t), &fakeGateway{}, &fakeMailer{})

	rec, _ := loginToken(t, s.Router(), adminEmail, "wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = loginToken(t, s.Router(), "stranger@example.com", adminPassword)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminLoginNotConfigured(t *testing.T) {
	cfg := testConfig(t)
	cfg.AdminEmail = ""
	cfg.AdminPasswordHash = ""
	s, _ := newTestServer(t, cfg, &fakeGateway{}, &fakeMailer{})

	rec, _ := loginToken(t, s.Router(), adminEmail, adminPassword)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestParticipantListRequiresToken(t *testing.T) {
	s, _ := newTestServer(t, testConfig(t), &fakeGateway{}, &fakeMailer{})
	router := s.Router()

	rec := doJSON(t, router, "GET", "/api/user/participants", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest("GET", "/api/user/participants", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestParticipantListWithToken(t *testing.T) {
	s, participants := newTestServer(t, testConfig(t), &fakeGateway{}, &fakeMailer{})
	router := s.Router()

	for _, p := range []model.Participant{
		{Name: "Asha", Email: "asha@example.com", Phone: "9876543210", PaymentID: "pay_001"},
		{Name: "Ravi", Email: "ravi@example.com", Phone: "9876543211", PaymentID: "pay_002"},
	} {
		p := p
		require.NoError(t, participants.Register(context.Background(), &p))
	}

	rec, token := loginToken(t, router, adminEmail, adminPassword)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, token)

	req := httptest.NewRequest("GET", "/api/user/participants", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req)

	require.Equal(t, http.StatusOK, rec2.Code)
	var listed []model.Participant
	require.NoError(t, json.Unmarshal(rec2.Body.Bytes(), &listed))
	assert.Len(t, listed, 2)

	req = httptest.NewRequest("GET", "/api/user/participants?email=asha@example.com", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec3 := httptest.NewRecorder()
	router.ServeHTTP(rec3, req)

	require.Equal(t, http.StatusOK, rec3.Code)
	require.NoError(t, json.Unmarshal(rec3.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "Asha", listed[0].Name)
}
