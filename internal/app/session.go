package service

import (
	"context"
	"fmt"

	"github.com/okian/blindern/internal/domain/catalog"
	"github.com/okian/blindern/internal/domain/filter"
	"github.com/okian/blindern/internal/domain/modal"
	"github.com/okian/blindern/internal/domain/view"
	"github.com/okian/blindern/pkg/logger"
	"github.com/okian/blindern/pkg/metrics"
)

// Intent is a user interaction on the events page.
type Intent interface {
	intentKind() string
}

// SelectFilter switches the active listing tab.
type SelectFilter struct {
	Kind filter.Kind
}

// OpenEvent opens the detail overlay on one event.
type OpenEvent struct {
	ID string
}

// CloseModal closes the detail overlay.
type CloseModal struct{}

func (SelectFilter) intentKind() string { return "select_filter" }
func (OpenEvent) intentKind() string    { return "open_event" }
func (CloseModal) intentKind() string   { return "close_modal" }

// Session is one view of the events page: a fixed catalog snapshot plus
// the filter and overlay state driven by intents. A Session is not safe
// for concurrent use.
type Session struct {
	catalog  *catalog.Catalog
	renderer *view.Renderer
	filter   *filter.Controller
	modal    *modal.Controller
	logger   logger.Logger
}

// NewSession snapshots the current catalog. Intents never trigger a fetch.
func (s *Service) NewSession() *Session {
	snap := catalog.New()
	if events, loaded := s.catalog.Events(); loaded {
		snap.Replace(events)
	}
	return &Session{
		catalog:  snap,
		renderer: s.renderer,
		filter:   filter.NewController(),
		modal:    modal.NewController(snap),
		logger:   s.logger,
	}
}

// Dispatch applies one intent. Unknown filters are rejected and leave the
// state unchanged; unknown event ids are ignored.
func (ss *Session) Dispatch(ctx context.Context, in Intent) error {
	var (
		applied bool
		err     error
	)

	switch in := in.(type) {
	case SelectFilter:
		err = ss.filter.Select(in.Kind)
		applied = err == nil
	case OpenEvent:
		applied = ss.modal.OpenEvent(in.ID)
		if !applied {
			ss.logger.Debug(ctx, "ignoring unknown event", logger.String("id", in.ID))
		}
	case CloseModal:
		ss.modal.Close()
		applied = true
	case nil:
		return fmt.Errorf("%w: nil", ErrUnknownIntent)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownIntent, in)
	}

	metrics.RecordIntent(in.intentKind(), applied)
	return err
}

// Filter returns the active listing filter.
func (ss *Session) Filter() filter.Kind { return ss.filter.Active() }

// Tabs returns the filter tabs with the active one flagged.
func (ss *Session) Tabs() []filter.Tab { return ss.filter.Tabs() }

// Modal returns the overlay state.
func (ss *Session) Modal() modal.State { return ss.modal.State() }

// Listing renders the events listing under the active filter.
func (ss *Session) Listing() view.Listing {
	events, loaded := ss.catalog.Events()
	return ss.renderer.Listing(events, loaded, ss.filter.Active())
}

// Detail renders the event the overlay is open on.
func (ss *Session) Detail() (view.Detail, bool) {
	e, ok := ss.modal.Current()
	if !ok {
		return view.Detail{}, false
	}
	return ss.renderer.Detail(e), true
}
