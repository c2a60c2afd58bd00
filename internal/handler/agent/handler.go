package agent

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/campaign-concierge/backend/internal/model/chat"
	agentService "github.com/zhouzirui/campaign-concierge/backend/internal/service/agent"
	"github.com/zhouzirui/campaign-concierge/backend/pkg/utils"
)

// Handler exposes the stateless responder: the caller threads history and
// context through every request.
type Handler struct {
	responder *agentService.Responder
	maxBytes  int64
}

// New creates the respond handler.
func New(responder *agentService.Responder, maxBytes int64) *Handler {
	return &Handler{responder: responder, maxBytes: maxBytes}
}

// RegisterRoutes 注册无状态应答路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/respond", h.handleRespond)
}

type respondRequest struct {
	LatestMessage string             `json:"latestMessage"`
	History       []chat.Message     `json:"history"`
	Context       *chat.AgentContext `json:"context"`
}

type respondResponse struct {
	Reply          string            `json:"reply"`
	UpdatedContext chat.AgentContext `json:"updatedContext"`
	Tags           []string          `json:"tags"`
	Intent         string            `json:"intent"`
}

func (h *Handler) handleRespond(w http.ResponseWriter, r *http.Request) {
	var payload respondRequest

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	latest := strings.TrimSpace(payload.LatestMessage)
	if latest == "" {
		utils.RespondError(w, http.StatusBadRequest, "latestMessage is required")
		return
	}

	agentCtx := chat.NewContext()
	if payload.Context != nil {
		agentCtx = *payload.Context
	}

	result := h.responder.Respond(latest, payload.History, agentCtx)
	utils.RespondJSON(w, http.StatusOK, respondResponse{
		Reply:          result.Reply,
		UpdatedContext: result.Context,
		Tags:           result.Tags,
		Intent:         string(result.Intent),
	})
}
