package ws_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"fooddelivery/internal/adapters/in/ws"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokenTable map[string]user.User

func (t tokenTable) Authenticate(_ context.Context, token string) (user.User, error) {
	if u, ok := t[token]; ok {
		return u, nil
	}
	return user.User{}, errs.ErrCredentialIsInvalid
}

type fixture struct {
	hub      *ws.Hub
	server   *httptest.Server
	customer user.User
	admin    user.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		hub:      ws.NewHub(nil),
		customer: user.User{ID: kernel.NewUUID(), Username: "alice", Role: user.RoleCustomer, IsActive: true},
		admin:    user.User{ID: kernel.NewUUID(), Username: "root", Role: user.RoleAdmin, IsActive: true},
	}
	tokens := tokenTable{"customer-token": f.customer, "admin-token": f.admin}

	handler := ws.NewHandler(f.hub, tokens, nil, nil).WithKeepAlive(50*time.Millisecond, time.Second)
	f.server = httptest.NewServer(handler)
	t.Cleanup(func() {
		f.hub.Close()
		f.server.Close()
	})
	return f
}

func (f *fixture) url(query string) string {
	return "ws" + strings.TrimPrefix(f.server.URL, "http") + "/ws/orders" + query
}

func (f *fixture) dial(t *testing.T, query string, header http.Header) *websocket.Conn {
	t.Helper()
	conn, resp, err := websocket.DefaultDialer.Dial(f.url(query), header)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readJSON(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg map[string]any
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestHandler_RejectsMissingOrInvalidCredential(t *testing.T) {
	f := newFixture(t)

	for _, query := range []string{"", "?token=wrong"} {
		conn, resp, err := websocket.DefaultDialer.Dial(f.url(query), nil)
		require.ErrorIs(t, err, websocket.ErrBadHandshake)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		_ = resp.Body.Close()
		assert.Nil(t, conn)
	}
	assert.Equal(t, 0, f.hub.RoomSize(ws.AdminRoom))
}

func TestHandler_CustomerReceivesOwnUpdates(t *testing.T) {
	f := newFixture(t)
	conn := f.dial(t, "?token=customer-token", nil)

	welcome := readJSON(t, conn)
	assert.Equal(t, ws.TypeConnectionEstablished, welcome["type"])
	assert.Equal(t, ws.UserRoom(f.customer.ID), welcome["room"])
	assert.Equal(t, 1, f.hub.RoomSize(ws.UserRoom(f.customer.ID)))
	assert.Equal(t, 0, f.hub.RoomSize(ws.AdminRoom))

	ownerID := f.customer.ID
	require.NoError(t, f.hub.Publish(context.Background(), order.Event{
		Kind:       order.EventStatusChanged,
		OrderID:    kernel.NewUUID(),
		CustomerID: &ownerID,
		OldStatus:  order.Paid,
		NewStatus:  order.Preparing,
		OccurredAt: time.Now(),
	}))

	update := readJSON(t, conn)
	assert.Equal(t, ws.TypeOrderStatusUpdate, update["type"])
	assert.Equal(t, "paid", update["old_status"])
	assert.Equal(t, "preparing", update["new_status"])
}

func TestHandler_AdminJoinsBothRoomsWithHeaderToken(t *testing.T) {
	f := newFixture(t)
	conn := f.dial(t, "", http.Header{"Authorization": []string{"Bearer admin-token"}})

	welcome := readJSON(t, conn)
	assert.Equal(t, ws.TypeConnectionEstablished, welcome["type"])
	assert.ElementsMatch(t, []any{ws.UserRoom(f.admin.ID), ws.AdminRoom}, welcome["rooms"])
	assert.Equal(t, 1, f.hub.RoomSize(ws.AdminRoom))
}

func TestHandler_PingPongAndInvalidJSON(t *testing.T) {
	f := newFixture(t)
	conn := f.dial(t, "?token=customer-token", nil)
	readJSON(t, conn)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"ping","timestamp":1700000000}`)))
	pong := readJSON(t, conn)
	assert.Equal(t, ws.TypePong, pong["type"])
	assert.EqualValues(t, 1700000000, pong["timestamp"])

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{not json`)))
	errMsg := readJSON(t, conn)
	assert.Equal(t, ws.TypeError, errMsg["type"])
}

func TestHandler_ServerSendsKeepAlivePings(t *testing.T) {
	f := newFixture(t)
	conn := f.dial(t, "?token=customer-token", nil)

	var pings atomic.Int32
	conn.SetPingHandler(func(data string) error {
		pings.Add(1)
		return conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(time.Second))
	})
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	assert.Eventually(t, func() bool { return pings.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestHandler_CloseLeavesRooms(t *testing.T) {
	f := newFixture(t)
	conn := f.dial(t, "?token=admin-token", nil)
	readJSON(t, conn)
	require.Equal(t, 1, f.hub.RoomSize(ws.AdminRoom))

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	_ = conn.Close()

	assert.Eventually(t, func() bool {
		return f.hub.RoomSize(ws.AdminRoom) == 0 && f.hub.RoomSize(ws.UserRoom(f.admin.ID)) == 0
	}, 2*time.Second, 10*time.Millisecond)
}
