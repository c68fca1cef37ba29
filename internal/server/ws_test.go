package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wk2k/irmp-go/internal/irmp"
)

func TestHubBroadcastsToConnectedClient(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(hub.ServeHTTP))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Give ServeHTTP's registration goroutine a moment to land before
	// broadcasting, since the dial succeeding only guarantees the
	// handshake completed, not that the client map has been updated.
	deadline := time.Now().Add(time.Second)
	for hub.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	require.Equal(t, 1, hub.ClientCount())

	hub.Broadcast(irmp.Frame{Protocol: irmp.ProtocolNEC, Address: 0x1234, Command: 0x56})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg FrameMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "NEC", msg.Protocol)
	assert.EqualValues(t, 0x1234, msg.Address)
	assert.EqualValues(t, 0x56, msg.Command)
}

func TestMarshalFrame(t *testing.T) {
	data, err := MarshalFrame(irmp.Frame{Protocol: irmp.ProtocolRC5, Flags: irmp.FlagRepetition})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"repetition":true`)
}
