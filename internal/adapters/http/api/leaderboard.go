package api

import (
	"net/http"

	"github.com/okian/blindern/internal/domain/model"
	"github.com/okian/blindern/internal/domain/view"
)

// LeaderboardDependencies exposes the loaded standings.
type LeaderboardDependencies interface {
	Leaderboard() *model.Snapshot
	Renderer() *view.Renderer
}

// LeaderboardHandler handles leaderboard requests
type LeaderboardHandler struct {
	deps LeaderboardDependencies
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(deps LeaderboardDependencies) *LeaderboardHandler {
	return &LeaderboardHandler{deps: deps}
}

// HandleGetLeaderboard handles GET /api/leaderboard requests. A missing
// snapshot is reported as a null snapshot with the empty board.
func (h *LeaderboardHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	snap := h.deps.Leaderboard()
	writeJSON(w, http.StatusOK, leaderboardResponse{
		Snapshot: snap,
		Board:    h.deps.Renderer().Board(snap),
	})
}
