package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/blindern/internal/adapters/http/api"
	"github.com/okian/blindern/internal/config"
	"github.com/okian/blindern/pkg/logger"
)

func writeSiteData(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "data"), 0o755); err != nil {
		t.Fatal(err)
	}
	events := `[{"id":"far","title":"Far Future","date":"2099-01-01","time":"19:00","location":"Blindern","description":"Later."}]`
	board := `{"season":"Spring 2099","rounds":1,"lastUpdated":"2099-01-01","players":[{"rank":1,"previousRank":1,"pseudonym":"Ace High","points":1200}]}`
	if err := os.WriteFile(filepath.Join(dir, "data", "events.json"), []byte(events), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "data", "leaderboard.json"), []byte(board), 0o600); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestNewService(t *testing.T) {
	convey.Convey("Given a configuration over a data directory", t, func() {
		cfg := config.New()
		cfg.DataSource = writeSiteData(t)
		cfg.Location = "UTC"

		convey.Convey("When the service is built and started", func() {
			svc, err := newService(cfg, logger.Nop())
			convey.So(err, convey.ShouldBeNil)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			defer svc.Stop()

			convey.Convey("Then both documents should be loaded", func() {
				events, loaded := svc.Events()
				convey.So(loaded, convey.ShouldBeTrue)
				convey.So(events, convey.ShouldHaveLength, 1)
				convey.So(svc.Leaderboard().Season, convey.ShouldEqual, "Spring 2099")
			})
		})

		convey.Convey("When the location is unknown", func() {
			cfg.Location = "Mars/Olympus"
			_, err := newService(cfg, logger.Nop())

			convey.Convey("Then building should fail", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

func TestNewHandler(t *testing.T) {
	convey.Convey("Given a started service behind the full handler", t, func() {
		cfg := config.New()
		cfg.DataSource = writeSiteData(t)
		cfg.Location = "UTC"
		ctx := context.Background()

		svc, err := newService(cfg, logger.Nop())
		convey.So(err, convey.ShouldBeNil)
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		handler, err := newHandler(ctx, svc, logger.Nop())
		convey.So(err, convey.ShouldBeNil)

		do := func(method, target string) *httptest.ResponseRecorder {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(method, target, nil))
			return w
		}

		convey.Convey("Then pages should render", func() {
			for _, target := range []string{"/", "/events", "/events?event=far", "/leaderboard", "/static/style.css"} {
				convey.So(do(http.MethodGet, target).Code, convey.ShouldEqual, http.StatusOK)
			}
		})

		convey.Convey("Then the API should answer", func() {
			convey.So(do(http.MethodGet, "/api/events/far").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(do(http.MethodGet, "/api/events/near").Code, convey.ShouldEqual, http.StatusNotFound)
			convey.So(do(http.MethodGet, "/api/leaderboard").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(do(http.MethodPost, "/api/reload").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(do(http.MethodGet, "/healthz").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(do(http.MethodGet, "/openapi.yaml").Code, convey.ShouldEqual, http.StatusOK)
		})

		convey.Convey("Then every response should carry a request id", func() {
			convey.So(do(http.MethodGet, "/").Header().Get(api.RequestIDHeader), convey.ShouldNotBeEmpty)
		})
	})
}

func TestSystemMetrics(t *testing.T) {
	convey.Convey("Given the system metrics updater", t, func() {
		convey.Convey("Then it should stop with its context", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()

			convey.So(func() {
				startSystemMetricsUpdater(ctx)
			}, convey.ShouldNotPanic)
		})

		convey.Convey("Then a single update should not panic", func() {
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)
		})
	})
}
