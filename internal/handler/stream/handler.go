package stream

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/zhouzirui/campaign-concierge/backend/internal/model/chat"
	"github.com/zhouzirui/campaign-concierge/backend/internal/service/agent"
	chatService "github.com/zhouzirui/campaign-concierge/backend/internal/service/chat"
	"github.com/zhouzirui/campaign-concierge/backend/internal/service/delivery"
	"github.com/zhouzirui/campaign-concierge/backend/pkg/utils"
)

// Handler streams a delayed agent reply via Server-Sent Events.
type Handler struct {
	chatSvc   *chatService.Service
	scheduler *delivery.Scheduler
}

// New creates a new stream handler
func New(chatSvc *chatService.Service, scheduler *delivery.Scheduler) *Handler {
	return &Handler{
		chatSvc:   chatSvc,
		scheduler: scheduler,
	}
}

// StreamResponse represents a streaming response chunk
type StreamResponse struct {
	Event     string        `json:"event"`
	SessionID string        `json:"sessionId,omitempty"`
	Message   *chat.Message `json:"message,omitempty"`
	DelayMS   int64         `json:"delayMs,omitempty"`
	Momentum  []string      `json:"momentum,omitempty"`
	Finished  bool          `json:"finished,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// HandleStreamRequest submits userMessage and streams the reply once the
// typing delay has passed. A client that disconnects first never gets the
// reply, and it is not added to the transcript.
func (h *Handler) HandleStreamRequest(ctx context.Context, w http.ResponseWriter, sessionID string, userMessage string) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("streaming unsupported")
	}

	exchange, err := h.chatSvc.Submit(ctx, sessionID, userMessage)
	if err != nil {
		return err
	}

	utils.SetupSSEHeaders(w)
	w.WriteHeader(http.StatusOK)

	userMsg := exchange.UserMessage
	h.send(w, flusher, StreamResponse{Event: "accepted", SessionID: sessionID, Message: &userMsg})
	h.send(w, flusher, StreamResponse{
		Event:     "typing",
		SessionID: sessionID,
		DelayMS:   h.scheduler.Delay(exchange.Reply.Reply).Milliseconds(),
	})

	var (
		agentMsg   chat.Message
		deliverErr error
	)
	delivered := <-h.scheduler.Schedule(ctx, sessionID, exchange.Reply.Reply, func(ctx context.Context) {
		agentMsg, deliverErr = h.chatSvc.Deliver(ctx, sessionID, exchange.Reply)
	})

	if !delivered {
		slog.Info("stream reply discarded", "session", sessionID)
		return nil
	}
	if deliverErr != nil {
		h.send(w, flusher, StreamResponse{Event: "error", SessionID: sessionID, Error: deliverErr.Error()})
		return nil
	}

	h.send(w, flusher, StreamResponse{Event: "message", SessionID: sessionID, Message: &agentMsg})
	h.send(w, flusher, StreamResponse{
		Event:     "snapshot",
		SessionID: sessionID,
		Momentum:  agent.Summarize(exchange.Reply.Context),
	})
	h.send(w, flusher, StreamResponse{Event: "end", SessionID: sessionID, Finished: true})

	slog.Info("stream completed", "session", sessionID, "intent", exchange.Reply.Intent)
	return nil
}

func (h *Handler) send(w http.ResponseWriter, flusher http.Flusher, response StreamResponse) {
	utils.SendSSEEvent(w, flusher, response.Event, response)
}
