package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/workloop/workloop-backend-go/internal/domain/auth"
	"github.com/workloop/workloop-backend-go/internal/domain/chat"
	"github.com/workloop/workloop-backend-go/internal/handler/http/middleware"
	"github.com/workloop/workloop-backend-go/internal/handler/http/response"
	"github.com/workloop/workloop-backend-go/internal/pkg/jwt"
	"github.com/workloop/workloop-backend-go/internal/pkg/ws"
	chatService "github.com/workloop/workloop-backend-go/internal/service/chat"
)

// Inbound frame types. Outbound types live in the ws package.
const (
	inboundSendMessage = "send-message"
	inboundTyping      = "typing"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 32
)

type WSHandler interface {
	Token(w http.ResponseWriter, r *http.Request)
	Connect(w http.ResponseWriter, r *http.Request)
}

type WSHandlerImpl struct {
	hub         *ws.Hub
	jwtService  jwt.Service
	chatService chatService.Service
	upgrader    websocket.Upgrader
}

func NewWSHandler(hub *ws.Hub, jwtService jwt.Service, chatSvc chatService.Service) WSHandler {
	return &WSHandlerImpl{
		hub:         hub,
		jwtService:  jwtService,
		chatService: chatSvc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser origin checks are handled by the CORS layer for
			// REST; the socket relies on the short-lived ticket instead.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Token issues a short-lived ticket for the socket upgrade. Browsers
// cannot send an Authorization header on a WebSocket handshake, so the
// client fetches a ticket here and passes it as a query parameter.
func (h *WSHandlerImpl) Token(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.Principal(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	token, expiresIn, err := h.jwtService.GenerateWSToken(principal)
	if err != nil {
		slog.Error("WS token generation error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, auth.WSTokenResponse{Token: token, ExpiresIn: expiresIn})
}

// Connect upgrades the request to a WebSocket and joins the connection
// to the channel derived from the ticket's principal. The client never
// names its own channel.
func (h *WSHandlerImpl) Connect(w http.ResponseWriter, r *http.Request) {
	tokenString := r.URL.Query().Get("token")
	if tokenString == "" {
		response.Unauthorized(w, "Missing ticket")
		return
	}

	principal, err := h.jwtService.ValidateWSToken(tokenString)
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	channel, ok := ws.ChannelFor(principal.Role, principal.UserID)
	if !ok {
		response.Forbidden(w, "Role has no live channel")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("WebSocket upgrade error", "error", err)
		return
	}

	client := &wsClient{
		conn:      conn,
		ctx:       r.Context(),
		send:      make(chan ws.Event, sendBufferSize),
		principal: principal,
	}
	h.hub.Join(channel, client)
	slog.Info("WebSocket connected", "user_id", principal.UserID, "channel", channel)

	go client.writePump()
	h.readPump(client)
}

// wsClient adapts one gorilla connection to the hub's Session. Writes
// go through the buffered send channel; the write pump owns the
// connection's write side.
type wsClient struct {
	conn      *websocket.Conn
	ctx       context.Context
	send      chan ws.Event
	principal auth.Principal
}

// Send implements ws.Session. It never blocks: a client too slow to
// drain its buffer is reported dead so the hub can drop it.
func (c *wsClient) Send(event ws.Event) bool {
	select {
	case c.send <- event:
		return true
	default:
		return false
	}
}

func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// inboundFrame is what clients send over the socket. Frame payload
// keys are camelCase, matching the browser client; the REST DTOs keep
// their own snake_case convention.
type inboundFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type sendMessageFrame struct {
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
}

type typingFrame struct {
	ReceiverID string `json:"receiverId"`
}

func (h *WSHandlerImpl) readPump(c *wsClient) {
	defer func() {
		h.hub.Leave(c)
		close(c.send)
		c.conn.Close()
		slog.Info("WebSocket disconnected", "user_id", c.principal.UserID)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Error("WebSocket read error", "error", err, "user_id", c.principal.UserID)
			}
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			// Malformed frames are dropped, not fatal.
			continue
		}
		h.dispatch(c, frame)
	}
}

// dispatch routes one inbound frame. Socket sends are fire-and-forget:
// a failed persist is logged but no error frame goes back, matching
// the REST fallback as the reliable path.
func (h *WSHandlerImpl) dispatch(c *wsClient, frame inboundFrame) {
	switch frame.Event {
	case inboundSendMessage:
		var f sendMessageFrame
		if err := json.Unmarshal(frame.Data, &f); err != nil {
			return
		}
		req := chat.SendMessageRequest{ReceiverID: f.ReceiverID, Content: f.Content}
		if _, err := h.chatService.SendMessage(c.ctx, c.principal, req); err != nil {
			slog.Error("Socket send-message error", "error", err, "sender_id", c.principal.UserID)
		}
	case inboundTyping:
		var f typingFrame
		if err := json.Unmarshal(frame.Data, &f); err != nil {
			return
		}
		h.chatService.RelayTyping(c.ctx, c.principal, f.ReceiverID)
	}
}
