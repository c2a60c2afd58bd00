package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/zhouzirui/campaign-concierge/backend/internal/service/agent"
	chatService "github.com/zhouzirui/campaign-concierge/backend/internal/service/chat"
	"github.com/zhouzirui/campaign-concierge/backend/internal/service/delivery"
)

const (
	readTimeout  = 60 * time.Second
	pingInterval = 54 * time.Second
	writeTimeout = 10 * time.Second
)

// Handler WebSocket聊天处理器
type Handler struct {
	chatSvc   *chatService.Service
	scheduler *delivery.Scheduler
	upgrader  websocket.Upgrader
	maxBytes  int64
}

// New 创建WebSocket处理器
func New(chatSvc *chatService.Service, scheduler *delivery.Scheduler, maxBytes int64) *Handler {
	return &Handler{
		chatSvc:   chatSvc,
		scheduler: scheduler,
		maxBytes:  maxBytes,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册WebSocket路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws/{sessionID}", h.handleWebSocket)
}

type inboundMessage struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId"`
	Data      json.RawMessage `json:"data"`
}

// TextMessage 文本消息
type TextMessage struct {
	Text string `json:"text"`
}

type outgoingMessage struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// connection serialises writes; gorilla allows a single concurrent writer.
type connection struct {
	conn      *websocket.Conn
	sessionID string
	writeMu   sync.Mutex
}

func (c *connection) send(msgType string, data interface{}) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	msg := outgoingMessage{
		Type:      msgType,
		SessionID: c.sessionID,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	}
	if err := c.conn.WriteJSON(msg); err != nil {
		slog.Debug("websocket write failed", "session", c.sessionID, "type", msgType, "error", err)
	}
}

func (c *connection) ping() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout))
}

// handleWebSocket 处理WebSocket连接
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if _, err := h.chatSvc.GetSession(r.Context(), sessionID); err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	raw, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "session", sessionID, "error", err)
		return
	}
	defer raw.Close()

	conn := &connection{conn: raw, sessionID: sessionID}
	slog.Info("websocket connected", "session", sessionID)

	// Pending replies die with the connection.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	raw.SetReadLimit(h.maxBytes)
	_ = raw.SetReadDeadline(time.Now().Add(readTimeout))
	raw.SetPongHandler(func(string) error {
		return raw.SetReadDeadline(time.Now().Add(readTimeout))
	})

	go h.pingLoop(ctx, conn)

	conn.send("connected", map[string]any{"momentum": h.momentum(ctx, sessionID)})

	for {
		var msg inboundMessage
		if err := raw.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("websocket read error", "session", sessionID, "error", err)
			}
			return
		}
		_ = raw.SetReadDeadline(time.Now().Add(readTimeout))

		if msg.SessionID != "" && msg.SessionID != sessionID {
			conn.send("error", map[string]string{"message": "session mismatch"})
			continue
		}

		h.handleMessage(ctx, conn, &msg)
	}
}

func (h *Handler) handleMessage(ctx context.Context, conn *connection, msg *inboundMessage) {
	switch msg.Type {
	case "text":
		h.handleTextMessage(ctx, conn, msg.Data)
	case "ping":
		conn.send("pong", nil)
	default:
		conn.send("error", map[string]string{"message": "unsupported message type"})
	}
}

func (h *Handler) handleTextMessage(ctx context.Context, conn *connection, raw json.RawMessage) {
	var text TextMessage
	if err := json.Unmarshal(raw, &text); err != nil {
		conn.send("error", map[string]string{"message": "invalid text payload"})
		return
	}

	exchange, err := h.chatSvc.Submit(ctx, conn.sessionID, text.Text)
	if err != nil {
		conn.send("error", map[string]string{"message": err.Error()})
		return
	}

	conn.send("accepted", exchange.UserMessage)
	conn.send("typing", map[string]int64{"delayMs": h.scheduler.Delay(exchange.Reply.Reply).Milliseconds()})

	h.scheduler.Schedule(ctx, conn.sessionID, exchange.Reply.Reply, func(ctx context.Context) {
		agentMsg, err := h.chatSvc.Deliver(ctx, conn.sessionID, exchange.Reply)
		if err != nil {
			conn.send("error", map[string]string{"message": err.Error()})
			return
		}
		conn.send("reply", map[string]any{
			"message":  agentMsg,
			"context":  exchange.Reply.Context,
			"momentum": agent.Summarize(exchange.Reply.Context),
		})
	})
}

func (h *Handler) momentum(ctx context.Context, sessionID string) []string {
	momentum, err := h.chatSvc.Momentum(ctx, sessionID)
	if err != nil {
		return []string{}
	}
	return momentum
}

// pingLoop 定期发送ping消息
func (h *Handler) pingLoop(ctx context.Context, conn *connection) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.ping(); err != nil {
				return
			}
		}
	}
}
