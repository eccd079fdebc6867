package api

import (
	"net/http"
	"strings"

	"github.com/okian/blindern/internal/domain/filter"
	"github.com/okian/blindern/internal/domain/model"
	"github.com/okian/blindern/internal/domain/view"
)

// EventDependencies exposes the loaded catalog.
type EventDependencies interface {
	Events() ([]model.Event, bool)
	Event(id string) (model.Event, bool)
	Renderer() *view.Renderer
}

// EventsHandler handles event requests
type EventsHandler struct {
	deps EventDependencies
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(deps EventDependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

// HandleListEvents handles GET /api/events?filter=all|upcoming|past requests.
func (h *EventsHandler) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_events"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	k, err := filter.ParseKind(r.URL.Query().Get("filter"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	events, loaded := h.deps.Events()
	writeJSON(w, http.StatusOK, h.deps.Renderer().Listing(events, loaded, k))
}

// HandleGetEvent handles GET /api/events/{id} requests.
func (h *EventsHandler) HandleGetEvent(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_event"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/events/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	e, ok := h.deps.Event(id)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", NewKind(op, ErrNotFound))
		return
	}
	rd := h.deps.Renderer()
	writeJSON(w, http.StatusOK, eventResponse{Event: e, Card: rd.Card(e), Detail: rd.Detail(e)})
}
