package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marathon-registration/internal/gateway"
	"marathon-registration/internal/store"
)

func TestRegistrationFeedBroadcastsOnSuccess(t *testing.T) {
	gw := &fakeGateway{payment: gateway.Payment{Status: gateway.StatusCaptured}}
	s, _ := newTestServer(t, testConfig(t), gw, &fakeMailer{})

	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/registrations"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Give the hub a beat to register the client before the broadcast.
	time.Sleep(50 * time.Millisecond)

	rec := doJSON(t, s.Router(), "POST", "/api/auth/register", validRegistration())
	require.Equal(t, http.StatusCreated, rec.Code)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev registrationEvent
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, store.FirstChestNumber, ev.ChestNumber)
	assert.Equal(t, "10km", ev.Category)
}

func TestHubDropsEventsWhenFull(t *testing.T) {
	h := newHub(discardLogger())

	// No run loop consuming; the buffered channel fills and broadcast must
	// not block the caller.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			h.broadcast(registrationEvent{ChestNumber: 1000 + i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a full event channel")
	}
}
