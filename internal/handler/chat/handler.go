package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/campaign-concierge/backend/internal/model/chat"
	"github.com/zhouzirui/campaign-concierge/backend/internal/service/agent"
	chatService "github.com/zhouzirui/campaign-concierge/backend/internal/service/chat"
	"github.com/zhouzirui/campaign-concierge/backend/internal/service/delivery"
	"github.com/zhouzirui/campaign-concierge/backend/pkg/utils"
)

// Handler 聊天服务的HTTP处理器
type Handler struct {
	chatSvc   *chatService.Service
	scheduler *delivery.Scheduler
	maxBytes  int64
}

// New 创建聊天处理器
func New(chatSvc *chatService.Service, scheduler *delivery.Scheduler, maxBytes int64) *Handler {
	return &Handler{
		chatSvc:   chatSvc,
		scheduler: scheduler,
		maxBytes:  maxBytes,
	}
}

// RegisterRoutes 注册聊天相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/session", h.handleCreateSession)
	r.Get("/session/{sessionID}", h.handleGetSession)
	r.Delete("/session/{sessionID}", h.handleEndSession)
	r.Get("/session/{sessionID}/messages", h.handleTranscript)
	r.Get("/session/{sessionID}/momentum", h.handleMomentum)
	r.Post("/messages", h.handleSubmitMessage)
}

type sessionResponse struct {
	chat.Session
	Context  chat.AgentContext `json:"context"`
	Momentum []string          `json:"momentum"`
}

type exchangeResponse struct {
	UserMessage  chat.Message      `json:"userMessage"`
	AgentMessage chat.Message      `json:"agentMessage"`
	Context      chat.AgentContext `json:"updatedContext"`
	Tags         []string          `json:"tags"`
	Intent       string            `json:"intent"`
	Momentum     []string          `json:"momentum"`
}

// handleCreateSession 创建会话
func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.chatSvc.CreateSession(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusCreated, session)
}

// handleGetSession 查询会话及其上下文
func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	session, err := h.chatSvc.GetSession(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	agentCtx, err := h.chatSvc.Context(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	momentum, err := h.chatSvc.Momentum(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, sessionResponse{Session: session, Context: agentCtx, Momentum: momentum})
}

// handleEndSession 结束会话并丢弃尚未送达的回复
func (h *Handler) handleEndSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if err := h.chatSvc.EndSession(r.Context(), sessionID); err != nil {
		respondServiceError(w, err)
		return
	}

	dropped := 0
	if h.scheduler != nil {
		dropped = h.scheduler.Cancel(sessionID)
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"status": "ended", "discardedReplies": dropped})
}

func (h *Handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	messages, err := h.chatSvc.LoadTranscript(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, messages)
}

func (h *Handler) handleMomentum(w http.ResponseWriter, r *http.Request) {
	momentum, err := h.chatSvc.Momentum(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string][]string{"momentum": momentum})
}

// handleSubmitMessage 提交访客消息并立即返回回复
func (h *Handler) handleSubmitMessage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"sessionId"`
		Text      string `json:"text"`
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	exchange, err := h.chatSvc.Submit(r.Context(), payload.SessionID, payload.Text)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	agentMsg, err := h.chatSvc.Deliver(r.Context(), payload.SessionID, exchange.Reply)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, exchangeResponse{
		UserMessage:  exchange.UserMessage,
		AgentMessage: agentMsg,
		Context:      exchange.Reply.Context,
		Tags:         exchange.Reply.Tags,
		Intent:       string(exchange.Reply.Intent),
		Momentum:     agent.Summarize(exchange.Reply.Context),
	})
}

func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, chatService.ErrSessionNotFound):
		utils.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, chatService.ErrEmptyMessage):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
	}
}
