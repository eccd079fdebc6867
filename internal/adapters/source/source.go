// Package source reads the site's JSON documents from a directory or an
// HTTP base URL.
//
// Fetch never fails loudly: every problem is logged, counted, and turned
// into a nil result that callers render as "no data".
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/okian/blindern/pkg/logger"
	"github.com/okian/blindern/pkg/metrics"
)

const defaultTimeout = 10 * time.Second

// maxDocumentBytes caps how much of a response is decoded.
const maxDocumentBytes = 8 << 20

// Source reads documents relative to a base location.
type Source struct {
	base    *url.URL // set for http(s) sources
	fsys    fs.FS    // set for directory sources
	client  *http.Client
	timeout time.Duration
	logger  logger.Logger
}

// Option applies a configuration option to the Source.
type Option func(*Source)

// WithHTTPClient sets the client used for http(s) sources.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Source) {
		if c != nil {
			s.client = c
		}
	}
}

// WithTimeout bounds each read. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(s *Source) {
		if d >= 0 {
			s.timeout = d
		}
	}
}

// WithLogger sets the logger fetch failures are reported to.
func WithLogger(l logger.Logger) Option {
	return func(s *Source) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithFS reads documents from fsys instead of the base location.
func WithFS(fsys fs.FS) Option {
	return func(s *Source) {
		if fsys != nil {
			s.fsys = fsys
			s.base = nil
		}
	}
}

// New creates a Source rooted at base, which is either an http(s) URL or a
// directory path.
func New(base string, opts ...Option) (*Source, error) {
	s := &Source{
		client:  &http.Client{},
		timeout: defaultTimeout,
	}

	switch {
	case strings.HasPrefix(base, "http://"), strings.HasPrefix(base, "https://"):
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBase, err)
		}
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		s.base = u
	case base != "":
		s.fsys = os.DirFS(base)
	}

	for _, opt := range opts {
		opt(s)
	}
	if s.base == nil && s.fsys == nil {
		return nil, fmt.Errorf("%w: empty base", ErrInvalidBase)
	}
	if s.logger == nil {
		s.logger = logger.Nop()
	}
	return s, nil
}

// Read returns the raw document at p.
func (s *Source) Read(ctx context.Context, p string) ([]byte, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	if s.base != nil {
		return s.readHTTP(ctx, p)
	}
	return s.readFS(ctx, p)
}

func (s *Source) readHTTP(ctx context.Context, p string) ([]byte, error) {
	ref, err := url.Parse(strings.TrimPrefix(p, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	target := s.base.ResolveReference(ref)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDocumentBytes))
		return nil, fmt.Errorf("%w: HTTP %d", ErrStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	return body, nil
}

func (s *Source) readFS(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	name := path.Clean(strings.TrimPrefix(p, "/"))
	body, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s not found", ErrStatus, name)
		}
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	return body, nil
}

// Fetch reads and decodes the JSON document at p. On any failure it logs
// and returns nil; it never returns an error to the caller.
func Fetch[T any](ctx context.Context, s *Source, p string) *T {
	start := time.Now()
	resource := resourceName(p)

	body, err := s.Read(ctx, p)
	if err != nil {
		outcome := metrics.OutcomeTransport
		if errors.Is(err, ErrStatus) {
			outcome = metrics.OutcomeStatus
		}
		metrics.RecordFetch(resource, outcome, time.Since(start))
		s.logger.Error(ctx, "failed to load document", logger.String("path", p), logger.Error(err))
		return nil
	}

	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		metrics.RecordFetch(resource, metrics.OutcomeDecode, time.Since(start))
		s.logger.Error(ctx, "failed to decode document",
			logger.String("path", p),
			logger.Error(fmt.Errorf("%w: %v", ErrDecode, err)),
		)
		return nil
	}

	metrics.RecordFetch(resource, metrics.OutcomeOK, time.Since(start))
	s.logger.Debug(ctx, "document loaded", logger.String("path", p), logger.Int("bytes", len(body)))
	return &v
}

// resourceName turns "data/events.json" into "events" for metric labels.
func resourceName(p string) string {
	base := path.Base(p)
	return strings.TrimSuffix(base, path.Ext(base))
}
