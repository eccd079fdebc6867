// Package service owns the loaded site data and implements the
// dependencies required by the HTTP API and page handlers.
package service

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/blindern/internal/adapters/source"
	"github.com/okian/blindern/internal/domain/calendar"
	"github.com/okian/blindern/internal/domain/catalog"
	"github.com/okian/blindern/internal/domain/model"
	"github.com/okian/blindern/internal/domain/standings"
	"github.com/okian/blindern/internal/domain/view"
	"github.com/okian/blindern/pkg/logger"
	"github.com/okian/blindern/pkg/metrics"
)

const (
	defaultEventsPath      = "data/events.json"
	defaultLeaderboardPath = "data/leaderboard.json"
)

// Service holds the event catalog and the leaderboard snapshot.
type Service struct {
	mu sync.RWMutex

	// Core components
	source   *source.Source
	cal      *calendar.Calendar
	renderer *view.Renderer
	catalog  *catalog.Catalog

	// Configuration
	eventsPath      string
	leaderboardPath string
	reloadInterval  time.Duration

	// State
	board    *model.Snapshot
	loadedAt time.Time
	reloads  int
	started  bool
	stopCh   chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSource sets where documents are loaded from.
func WithSource(src *source.Source) Option {
	return func(s *Service) {
		s.source = src
	}
}

// WithCalendar sets the calendar used to classify event dates.
func WithCalendar(cal *calendar.Calendar) Option {
	return func(s *Service) {
		if cal != nil {
			s.cal = cal
		}
	}
}

// WithRenderer sets the display model builder.
func WithRenderer(r *view.Renderer) Option {
	return func(s *Service) {
		if r != nil {
			s.renderer = r
		}
	}
}

// WithPaths sets the document paths relative to the source.
func WithPaths(events, leaderboard string) Option {
	return func(s *Service) {
		if events != "" {
			s.eventsPath = events
		}
		if leaderboard != "" {
			s.leaderboardPath = leaderboard
		}
	}
}

// WithReloadInterval reloads both documents periodically. Zero disables it.
func WithReloadInterval(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.reloadInterval = d
		}
	}
}

// New constructs a Service. Nothing is loaded until Start or Reload.
func New(opts ...Option) *Service {
	s := &Service{
		catalog:         catalog.New(),
		eventsPath:      defaultEventsPath,
		leaderboardPath: defaultLeaderboardPath,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cal == nil {
		s.cal = calendar.New()
	}
	if s.renderer == nil {
		s.renderer = view.New(s.cal)
	}
	if s.logger == nil {
		s.logger = logger.Nop()
	}
	return s
}

// Start loads the documents once and starts the reload loop if configured.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = true
	s.stopCh = make(chan struct{})
	s.done = make(chan struct{})
	s.mu.Unlock()

	s.logger.Info(ctx, "starting site service",
		logger.String("events", s.eventsPath),
		logger.String("leaderboard", s.leaderboardPath),
		logger.Duration("reloadInterval", s.reloadInterval),
	)

	if err := s.Reload(ctx); err != nil {
		s.Stop()
		return err
	}

	if s.reloadInterval > 0 {
		go s.reloadLoop(s.stopCh, s.done)
	} else {
		close(s.done)
	}
	return nil
}

func (s *Service) reloadLoop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(s.reloadInterval)
	defer ticker.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-stop
		cancel()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Reload(ctx); err != nil {
				s.logger.Warn(ctx, "periodic reload aborted", logger.Error(err))
			}
		}
	}
}

// Stop ends the reload loop. Loaded data stays readable.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	stop, done := s.stopCh, s.done
	s.mu.Unlock()

	close(stop)
	if s.reloadInterval > 0 {
		select {
		case <-done:
		case <-time.After(5 * time.Second):
		}
	}
	s.logger.Info(context.Background(), "site service stopped")
}

// Reload fetches both documents concurrently and swaps them in. A document
// that fails to load is replaced by "no data"; only cancellation of ctx is
// reported as an error.
func (s *Service) Reload(ctx context.Context) error {
	var (
		events *[]model.Event
		board  *model.Snapshot
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if s.source != nil {
			events = source.Fetch[[]model.Event](gctx, s.source, s.eventsPath)
		}
		return ctx.Err()
	})
	g.Go(func() error {
		if s.source != nil {
			board = source.Fetch[model.Snapshot](gctx, s.source, s.leaderboardPath)
		}
		return ctx.Err()
	})
	if err := g.Wait(); err != nil {
		return err
	}

	now := s.cal.Now()

	if events != nil {
		s.catalog.Replace(*events)
		metrics.MarkLoaded("events", now)
	} else {
		s.catalog.Reset()
	}
	metrics.UpdateCatalogEvents(s.catalog.Len())

	s.mu.Lock()
	s.board = board
	s.loadedAt = now
	s.reloads++
	s.mu.Unlock()

	players := 0
	if board != nil {
		players = len(board.Players)
		metrics.MarkLoaded("leaderboard", now)
	}
	metrics.UpdateLeaderboardPlayers(players)
	metrics.RecordReload()

	s.logger.Info(ctx, "site data reloaded",
		logger.Bool("eventsLoaded", events != nil),
		logger.Int("events", s.catalog.Len()),
		logger.Bool("leaderboardLoaded", board != nil),
		logger.Int("players", players),
	)
	return nil
}

// SetEvents replaces the catalog directly, bypassing the source.
func (s *Service) SetEvents(events []model.Event) {
	s.catalog.Replace(events)
	metrics.UpdateCatalogEvents(s.catalog.Len())
}

// SetLeaderboard replaces the snapshot directly, bypassing the source.
// A nil snapshot means no data.
func (s *Service) SetLeaderboard(snap *model.Snapshot) {
	var cp *model.Snapshot
	if snap != nil {
		c := *snap
		if snap.Players != nil {
			c.Players = append([]model.Player(nil), snap.Players...)
		}
		cp = &c
	}
	s.mu.Lock()
	s.board = cp
	s.mu.Unlock()
}

// Calendar returns the calendar used for status decisions.
func (s *Service) Calendar() *calendar.Calendar { return s.cal }

// Renderer returns the display model builder.
func (s *Service) Renderer() *view.Renderer { return s.renderer }

// Events returns the catalog in source order and whether it is loaded.
func (s *Service) Events() ([]model.Event, bool) {
	return s.catalog.Events()
}

// Event looks up one event by id.
func (s *Service) Event(id string) (model.Event, bool) {
	return s.catalog.Find(id)
}

// Leaderboard returns the current snapshot, or nil when none is loaded.
func (s *Service) Leaderboard() *model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.board == nil {
		return nil
	}
	c := *s.board
	if s.board.Players != nil {
		c.Players = append([]model.Player(nil), s.board.Players...)
	}
	return &c
}

// Board renders the leaderboard page model.
func (s *Service) Board() view.Board {
	return s.renderer.Board(s.Leaderboard())
}

// Preview renders the home page events teaser.
func (s *Service) Preview() view.Preview {
	events, loaded := s.catalog.Events()
	return s.renderer.Preview(events, loaded)
}

// BiggestClimber returns the player with the largest positive rank gain.
func (s *Service) BiggestClimber() (model.Player, bool) {
	snap := s.Leaderboard()
	if snap == nil {
		return model.Player{}, false
	}
	return standings.BiggestClimber(*snap)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":           s.started,
		"eventsLoaded":      s.catalog.Loaded(),
		"events":            s.catalog.Len(),
		"leaderboardLoaded": s.board != nil,
		"reloads":           s.reloads,
	}
	if s.board != nil {
		stats["players"] = len(s.board.Players)
		stats["season"] = s.board.Season
	}
	if !s.loadedAt.IsZero() {
		stats["loadedAt"] = s.loadedAt.Format(time.RFC3339)
	}
	return stats
}
