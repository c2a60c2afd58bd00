package rules

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/campaign-concierge/backend/internal/model/rules"
	"github.com/zhouzirui/campaign-concierge/backend/pkg/utils"
)

// Handler 匹配规则的HTTP处理器
type Handler struct {
	store rules.Store
}

// New 创建规则处理器
func New(store rules.Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes 注册规则相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/rules", h.handleCatalog)
	r.Get("/rules/{dimension}", h.handleTable)
}

func (h *Handler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.Catalog())
}

func (h *Handler) handleTable(w http.ResponseWriter, r *http.Request) {
	table, ok := h.store.Table(rules.Dimension(chi.URLParam(r, "dimension")))
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "unknown dimension")
		return
	}
	utils.RespondJSON(w, http.StatusOK, table)
}
