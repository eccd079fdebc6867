// Package site serves the server-rendered club pages.
package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/okian/blindern/internal/adapters/http/api"
	service "github.com/okian/blindern/internal/app"
	"github.com/okian/blindern/internal/domain/filter"
	"github.com/okian/blindern/internal/domain/view"
	"github.com/okian/blindern/pkg/logger"
	"github.com/okian/blindern/pkg/metrics"
)

// Error constants
var (
	ErrTemplate = errors.New("site template parse failed")
	ErrRender   = errors.New("site page render failed")
)

// Page names.
const (
	pageHome        = "home"
	pageEvents      = "events"
	pageLeaderboard = "leaderboard"
)

// Dependencies required by the page handlers.
type Dependencies interface {
	NewSession() *service.Session
	Preview() view.Preview
	Board() view.Board
}

// layout is the data every page template receives.
type layout struct {
	Title string
	Nav   string
	Body  any
}

type eventsPage struct {
	Tabs     []filter.Tab
	Listing  view.Listing
	Detail   *view.Detail
	CloseURL string
}

type cardGroup struct {
	Cards  []view.Card
	Filter filter.Kind
}

type linkedCard struct {
	Card view.Card
	Href string
}

// Handler renders the site pages.
type Handler struct {
	deps   Dependencies
	pages  map[string]*template.Template
	logger logger.Logger
}

// Option applies a configuration option to the Handler.
type Option func(*Handler)

// WithLogger sets the logger render failures are reported to.
func WithLogger(l logger.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

var funcs = template.FuncMap{
	"filterURL": filterURL,
	"cardList": func(cards []view.Card, k filter.Kind) cardGroup {
		return cardGroup{Cards: cards, Filter: k}
	},
	"cardLink": func(c view.Card, k filter.Kind) linkedCard {
		return linkedCard{Card: c, Href: eventURL(k, c.ID)}
	},
}

// NewHandler parses the embedded templates.
func NewHandler(deps Dependencies, opts ...Option) (*Handler, error) {
	h := &Handler{
		deps:   deps,
		pages:  make(map[string]*template.Template, 3),
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}

	for _, page := range []string{pageHome, pageEvents, pageLeaderboard} {
		t, err := template.New(page).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/partials.html",
			"templates/"+page+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrTemplate, page, err)
		}
		h.pages[page] = t
	}
	return h, nil
}

// Register attaches the page and static asset routes to mux.
func Register(_ context.Context, mux *http.ServeMux, deps Dependencies, opts ...Option) error {
	if mux == nil {
		panic("mux is nil")
	}
	h, err := NewHandler(deps, opts...)
	if err != nil {
		return err
	}

	mux.HandleFunc("/", api.MetricsMiddleware(h.HandleHome, "page_home"))
	mux.HandleFunc("/events", api.MetricsMiddleware(h.HandleEvents, "page_events"))
	mux.HandleFunc("/leaderboard", api.MetricsMiddleware(h.HandleLeaderboard, "page_leaderboard"))
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(FS())))
	return nil
}

// HandleHome handles GET / with the upcoming events preview.
func (h *Handler) HandleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" || !readMethod(r) {
		http.NotFound(w, r)
		return
	}
	h.render(w, r, pageHome, layout{Title: "Home", Nav: pageHome, Body: h.deps.Preview()})
}

// HandleEvents handles GET /events. The filter and event query parameters
// are replayed as intents on a fresh session.
func (h *Handler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	if !readMethod(r) {
		http.NotFound(w, r)
		return
	}
	ctx := r.Context()
	q := r.URL.Query()
	session := h.deps.NewSession()

	if raw := strings.TrimSpace(q.Get("filter")); raw != "" {
		in := service.SelectFilter{Kind: filter.Kind(strings.ToLower(raw))}
		if err := session.Dispatch(ctx, in); err != nil {
			h.logger.Debug(ctx, "ignoring filter", logger.String("filter", raw), logger.Error(err))
		}
	}
	if id := q.Get("event"); id != "" {
		_ = session.Dispatch(ctx, service.OpenEvent{ID: id})
	}

	body := eventsPage{
		Tabs:     session.Tabs(),
		Listing:  session.Listing(),
		CloseURL: filterURL(session.Filter()),
	}
	if d, ok := session.Detail(); ok {
		body.Detail = &d
	}
	h.render(w, r, pageEvents, layout{Title: "Events", Nav: pageEvents, Body: body})
}

// HandleLeaderboard handles GET /leaderboard.
func (h *Handler) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if !readMethod(r) {
		http.NotFound(w, r)
		return
	}
	h.render(w, r, pageLeaderboard, layout{Title: "Leaderboard", Nav: pageLeaderboard, Body: h.deps.Board()})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, page string, data layout) {
	var buf bytes.Buffer
	if err := h.pages[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		metrics.RecordRenderError(page)
		h.logger.Error(r.Context(), "failed to render page",
			logger.String("page", page),
			logger.String("requestId", api.RequestIDFrom(r.Context())),
			logger.Error(fmt.Errorf("%w: %v", ErrRender, err)),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func readMethod(r *http.Request) bool {
	return r.Method == http.MethodGet || r.Method == http.MethodHead
}

// filterURL links to the listing under k.
func filterURL(k filter.Kind) string {
	if k == "" || k == filter.All {
		return "/events"
	}
	return "/events?" + url.Values{"filter": {string(k)}}.Encode()
}

// eventURL links to the listing under k with the overlay open on id.
func eventURL(k filter.Kind, id string) string {
	v := url.Values{"event": {id}}
	if k != "" && k != filter.All {
		v.Set("filter", string(k))
	}
	return "/events?" + v.Encode()
}
