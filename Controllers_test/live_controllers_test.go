package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingsFeedReceivesEvents(t *testing.T) {
	r, hub := setupBookingRouter(t)
	srv := httptest.NewServer(r)
	defer srv.Close()

	header := http.Header{}
	header.Set("Origin", frontendOrigin)
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/bookings", header)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	body, _ := json.Marshal(bookingPayload())
	resp, err := http.Post(srv.URL+"/api/bookings", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var msg struct {
		Event string                 `json:"event"`
		Data  map[string]interface{} `json:"data"`
	}
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "booking.created", msg.Event)
	assert.Equal(t, "Ivan Petrov", msg.Data["full_name"])
	assert.Equal(t, "pending", msg.Data["status"])
}

func TestBookingsFeedRejectsForeignOrigin(t *testing.T) {
	r, hub := setupBookingRouter(t)
	srv := httptest.NewServer(r)
	defer srv.Close()

	header := http.Header{}
	header.Set("Origin", "http://evil.example")
	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/bookings", header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, 0, hub.ClientCount())
}
