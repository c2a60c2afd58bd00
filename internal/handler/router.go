package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	agentHandler "github.com/zhouzirui/campaign-concierge/backend/internal/handler/agent"
	"github.com/zhouzirui/campaign-concierge/backend/internal/handler/chat"
	rulesHandler "github.com/zhouzirui/campaign-concierge/backend/internal/handler/rules"
	"github.com/zhouzirui/campaign-concierge/backend/internal/handler/stream"
	"github.com/zhouzirui/campaign-concierge/backend/internal/handler/ws"
	middlewarePkg "github.com/zhouzirui/campaign-concierge/backend/internal/middleware"
	"github.com/zhouzirui/campaign-concierge/backend/internal/model/rules"
	agentService "github.com/zhouzirui/campaign-concierge/backend/internal/service/agent"
	chatService "github.com/zhouzirui/campaign-concierge/backend/internal/service/chat"
	"github.com/zhouzirui/campaign-concierge/backend/internal/service/delivery"
	"github.com/zhouzirui/campaign-concierge/backend/pkg/utils"
)

// Options carries the services the router wires into handlers.
type Options struct {
	Rules           rules.Store
	Responder       *agentService.Responder
	Chat            *chatService.Service
	Scheduler       *delivery.Scheduler
	AllowedOrigins  []string
	MaxMessageBytes int64
}

// NewRouter wires HTTP routes to core services.
func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(opts.AllowedOrigins))

	rulesH := rulesHandler.New(opts.Rules)
	agentH := agentHandler.New(opts.Responder, opts.MaxMessageBytes)
	chatH := chat.New(opts.Chat, opts.Scheduler, opts.MaxMessageBytes)
	streamH := stream.New(opts.Chat, opts.Scheduler)
	wsH := ws.New(opts.Chat, opts.Scheduler, opts.MaxMessageBytes)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(api chi.Router) {
		rulesH.RegisterRoutes(api)
		agentH.RegisterRoutes(api)
		chatH.RegisterRoutes(api)
		wsH.RegisterRoutes(api)

		api.Get("/stream/{sessionID}", func(w http.ResponseWriter, r *http.Request) {
			sessionID := chi.URLParam(r, "sessionID")
			userMessage := r.URL.Query().Get("message")

			err := streamH.HandleStreamRequest(r.Context(), w, sessionID, userMessage)
			switch {
			case err == nil:
			case errors.Is(err, chatService.ErrSessionNotFound):
				utils.RespondError(w, http.StatusNotFound, err.Error())
			case errors.Is(err, chatService.ErrEmptyMessage):
				utils.RespondError(w, http.StatusBadRequest, "message query parameter is required")
			default:
				slog.Error("stream request failed", "session", sessionID, "error", err)
				utils.RespondError(w, http.StatusInternalServerError, "streaming failed")
			}
		})
	})

	return r
}
