package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"fooddelivery/internal/adapters/in/auth"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"

	"github.com/gorilla/websocket"
)

const (
	defaultPingInterval = 54 * time.Second
	defaultPongWait     = 60 * time.Second
	writeWait           = 10 * time.Second
	maxMessageSize      = 4096
	sendBufferSize      = 256
)

// Authenticator resolves a bearer token to an active user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (user.User, error)
}

// Handler accepts observer connections. The credential is checked before the
// upgrade, so a rejected client gets a plain 401 and never a websocket.
type Handler struct {
	hub          *Hub
	authn        Authenticator
	upgrader     websocket.Upgrader
	logger       *slog.Logger
	pingInterval time.Duration
	pongWait     time.Duration
}

// NewHandler builds the handler. An empty allowedOrigins list accepts any origin.
func NewHandler(hub *Hub, authn Authenticator, allowedOrigins []string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		hub:   hub,
		authn: authn,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if len(allowedOrigins) == 0 || origin == "" {
					return true
				}
				return slices.Contains(allowedOrigins, "*") || slices.Contains(allowedOrigins, origin)
			},
		},
		logger:       logger.With("component", "ws-handler"),
		pingInterval: defaultPingInterval,
		pongWait:     defaultPongWait,
	}
}

// WithKeepAlive overrides the ping interval and the read deadline. The
// interval must be shorter than the wait.
func (h *Handler) WithKeepAlive(pingInterval, pongWait time.Duration) *Handler {
	h.pingInterval = pingInterval
	h.pongWait = pongWait
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	u, err := h.authn.Authenticate(ctx, auth.BearerToken(r))
	if err != nil {
		if errors.Is(err, errs.ErrCredentialIsInvalid) {
			h.logger.InfoContext(ctx, "websocket connection rejected", "error", err)
			http.Error(w, "invalid or missing credential", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "websocket authentication failed", "error", err)
		http.Error(w, "authentication unavailable", http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		h.logger.WarnContext(ctx, "websocket upgrade failed", "error", err)
		return
	}

	rooms := []string{UserRoom(u.ID)}
	if u.IsAdmin() {
		rooms = append(rooms, AdminRoom)
	}

	c := newClient(u, rooms, sendBufferSize)
	h.hub.Join(c)
	if welcome, marshalErr := json.Marshal(newConnectionEstablished(u, rooms)); marshalErr == nil {
		c.enqueue(welcome)
	}

	h.logger.InfoContext(ctx, "websocket connected", "user_id", u.ID.String(), "rooms", rooms)

	go h.writePump(conn, c)
	go h.readPump(conn, c)
}

func (h *Handler) writePump(conn *websocket.Conn, c *Client) {
	ticker := time.NewTicker(h.pingInterval)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				h.hub.Leave(c)
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.hub.Leave(c)
				return
			}
		}
	}
}

func (h *Handler) readPump(conn *websocket.Conn, c *Client) {
	defer func() {
		h.hub.Leave(c)
		h.logger.Info("websocket disconnected", "user_id", c.user.ID.String())
	}()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(h.pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket closed unexpectedly", "user_id", c.user.ID.String(), "error", err)
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(h.pongWait))

		var msg inbound
		if err = json.Unmarshal(data, &msg); err != nil {
			h.reply(c, Error{Type: TypeError, Message: "Invalid JSON format"})
			continue
		}

		switch msg.Type {
		case TypePing:
			h.reply(c, Pong{Type: TypePong, Timestamp: msg.Timestamp})
		default:
			h.logger.Warn("unknown websocket message type", "type", msg.Type)
		}
	}
}

func (h *Handler) reply(c *Client, msg any) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	c.enqueue(payload)
}
