package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/blindern/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
			convey.So(cfg.DataSource, convey.ShouldEqual, ".")
			convey.So(cfg.EventsPath, convey.ShouldEqual, "data/events.json")
			convey.So(cfg.LeaderboardPath, convey.ShouldEqual, "data/leaderboard.json")
			convey.So(cfg.PreviewLimit, convey.ShouldEqual, 3)
			convey.So(cfg.FetchTimeout(), convey.ShouldEqual, 10*time.Second)
			convey.So(cfg.ReloadInterval(), convey.ShouldEqual, time.Duration(0))
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with bad fields", t, func() {
		cases := map[string]func(*config.Config){
			"empty data source": func(c *config.Config) { c.DataSource = " " },
			"ftp data source":   func(c *config.Config) { c.DataSource = "ftp://example.com/data" },
			"negative timeout":  func(c *config.Config) { c.FetchTimeoutMS = -1 },
			"negative reload":   func(c *config.Config) { c.ReloadIntervalS = -5 },
			"zero preview":      func(c *config.Config) { c.PreviewLimit = 0 },
			"unknown location":  func(c *config.Config) { c.Location = "Mars/Olympus_Mons" },
			"missing path":      func(c *config.Config) { c.EventsPath = "" },
		}

		for name, mutate := range cases {
			cfg := config.New()
			mutate(cfg)

			convey.Convey("Then "+name+" should be rejected", func() {
				err := cfg.Validate()
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		}

		convey.Convey("Then an https data source should be accepted", func() {
			cfg := config.New()
			cfg.DataSource = "https://club.example.com/"
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
