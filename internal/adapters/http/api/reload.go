package api

import (
	"context"
	"net/http"
)

// ReloadDependencies refetches the site documents.
type ReloadDependencies interface {
	Reload(ctx context.Context) error
	GetStats() map[string]interface{}
}

// ReloadHandler handles reload requests.
type ReloadHandler struct {
	deps ReloadDependencies
}

// NewReloadHandler creates a new reload handler.
func NewReloadHandler(deps ReloadDependencies) *ReloadHandler {
	return &ReloadHandler{deps: deps}
}

// HandleReload handles POST /api/reload requests.
func (h *ReloadHandler) HandleReload(w http.ResponseWriter, r *http.Request) {
	const op = "api.reload"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if err := h.deps.Reload(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "reload_failed", WrapKind(op, ErrReload, err))
		return
	}
	writeJSON(w, http.StatusOK, h.deps.GetStats())
}
