package session

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/neekaru/whatsapp-group-gateway/internal/app"
	"github.com/neekaru/whatsapp-group-gateway/internal/app/apptest"
	"github.com/neekaru/whatsapp-group-gateway/internal/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(handler gin.HandlerFunc, method string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(method, "/", nil)
	handler(c)
	return rec
}

func TestStatusHandler(t *testing.T) {
	a := apptest.NewApp(&apptest.WhatsApp{}, &apptest.Media{})
	h := NewHandlers(a)

	tests := []struct {
		name      string
		event     client.Event
		status    string
		connected bool
	}{
		{"initial", nil, "DISCONNECTED", false},
		{"qr", client.NewQRCodeReadyEvent("data:abc", 0), "AWAITING_SCAN", false},
		{"ready", client.NewSessionReadyEvent(), "CONNECTED", true},
		{"lost", client.NewDisconnectedEvent("connection lost"), "DISCONNECTED", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.event != nil {
				a.Session.OnEvent(tt.event)
			}

			rec := serve(h.StatusHandler, http.MethodGet)
			require.Equal(t, http.StatusOK, rec.Code)

			var resp StatusResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.status, resp.Status)
			assert.Equal(t, tt.connected, resp.IsConnected)

			ts, err := time.Parse(time.RFC3339, resp.Timestamp)
			require.NoError(t, err)
			assert.WithinDuration(t, time.Now(), ts, 5*time.Second)
		})
	}
}

func TestStatusHandler_ExposesDisconnectReason(t *testing.T) {
	a := apptest.NewApp(&apptest.WhatsApp{}, &apptest.Media{})
	a.Session.OnEvent(client.NewDisconnectedEvent("stream replaced"))

	rec := serve(NewHandlers(a).StatusHandler, http.MethodGet)

	var resp StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "stream replaced", resp.LastDisconnectReason)
}

func TestDisconnectHandler_NotConnected(t *testing.T) {
	wa := &apptest.WhatsApp{}
	a := apptest.NewApp(wa, &apptest.Media{})

	rec := serve(NewHandlers(a).DisconnectHandler, http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"WhatsApp client is not connected"}`, rec.Body.String())
	assert.Zero(t, wa.LogoutCalls)
}

func TestDisconnectHandler_Success(t *testing.T) {
	wa := &apptest.WhatsApp{}
	a := apptest.NewApp(wa, &apptest.Media{})
	apptest.Connect(a)

	rec := serve(NewHandlers(a).DisconnectHandler, http.MethodPost)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Disconnected successfully"}`, rec.Body.String())

	state := a.Session.Snapshot()
	assert.Equal(t, app.StatusDisconnected, state.Status)
	assert.Empty(t, state.QRImage)
	assert.Equal(t, 1, wa.LogoutCalls)
	assert.Equal(t, 1, wa.PairingStarts)
}

func TestDisconnectHandler_LogoutFailureKeepsConnected(t *testing.T) {
	wa := &apptest.WhatsApp{LogoutErr: errors.New("websocket closed")}
	a := apptest.NewApp(wa, &apptest.Media{})
	apptest.Connect(a)

	rec := serve(NewHandlers(a).DisconnectHandler, http.MethodPost)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Error while disconnecting"}`, rec.Body.String())
	assert.Equal(t, app.StatusConnected, a.Session.Snapshot().Status)
	assert.Zero(t, wa.PairingStarts)
}

func TestDisconnectHandler_LogoutFailureShowsStackInDevelopment(t *testing.T) {
	wa := &apptest.WhatsApp{LogoutErr: errors.New("websocket closed")}
	a := apptest.NewApp(wa, &apptest.Media{})
	a.Config.Environment = "development"
	apptest.Connect(a)

	rec := serve(NewHandlers(a).DisconnectHandler, http.MethodPost)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "logout: websocket closed", body["error"])
	assert.NotEmpty(t, body["stack"])
}
