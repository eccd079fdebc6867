package standings_test

import (
	"testing"

	"github.com/okian/blindern/internal/domain/model"
	"github.com/okian/blindern/internal/domain/standings"
	. "github.com/smartystreets/goconvey/convey"
)

func intPtr(v int) *int { return &v }

func TestAveragePoints(t *testing.T) {
	Convey("Given players with 100, 200 and 300 points", t, func() {
		players := []model.Player{{Points: 100}, {Points: 200}, {Points: 300}}

		Convey("Then the average should be 200", func() {
			So(standings.AveragePoints(players), ShouldEqual, 200)
		})
	})

	Convey("Given an average that lands on .5", t, func() {
		players := []model.Player{{Points: 1}, {Points: 2}}

		Convey("Then it should round half up", func() {
			So(standings.AveragePoints(players), ShouldEqual, 2)
		})
	})

	Convey("Given no players", t, func() {
		Convey("Then the average should be 0", func() {
			So(standings.AveragePoints(nil), ShouldEqual, 0)
			So(standings.ComputeStats(model.Snapshot{Season: "Spring 2026"}).AvgPoints, ShouldEqual, 0)
		})
	})
}

func TestInitials(t *testing.T) {
	Convey("Given pseudonyms", t, func() {
		Convey("Then two words should give two letters", func() {
			So(standings.Initials("Jane Doe"), ShouldEqual, "JD")
		})
		Convey("Then one word should give one letter", func() {
			So(standings.Initials("midas"), ShouldEqual, "M")
		})
		Convey("Then long names should be truncated to two", func() {
			So(standings.Initials("the river king"), ShouldEqual, "TR")
		})
		Convey("Then extra whitespace should be ignored", func() {
			So(standings.Initials("  øyvind   ås "), ShouldEqual, "ØÅ")
		})
		Convey("Then an empty name should give nothing", func() {
			So(standings.Initials(""), ShouldEqual, "")
		})
	})
}

func TestRankChange(t *testing.T) {
	Convey("Given rank movements", t, func() {
		Convey("Then 5 -> 2 should be up by 3", func() {
			So(standings.RankChange(model.Player{PreviousRank: 5, Rank: 2}), ShouldResemble,
				standings.Change{Direction: standings.Up, Places: 3})
		})
		Convey("Then 2 -> 5 should be down by 3", func() {
			So(standings.RankChange(model.Player{PreviousRank: 2, Rank: 5}), ShouldResemble,
				standings.Change{Direction: standings.Down, Places: 3})
		})
		Convey("Then 4 -> 4 should be the same", func() {
			So(standings.RankChange(model.Player{PreviousRank: 4, Rank: 4}).Direction, ShouldEqual, standings.Same)
		})
	})
}

func TestBiggestClimber(t *testing.T) {
	Convey("Given two players tied on the largest climb", t, func() {
		snap := model.Snapshot{Players: []model.Player{
			{Pseudonym: "A", Rank: 1, PreviousRank: 1},
			{Pseudonym: "B", Rank: 2, PreviousRank: 5},
			{Pseudonym: "C", Rank: 3, PreviousRank: 6},
			{Pseudonym: "D", Rank: 4, PreviousRank: 2},
		}}

		Convey("Then the better-ranked one should win", func() {
			p, ok := standings.BiggestClimber(snap)
			So(ok, ShouldBeTrue)
			So(p.Pseudonym, ShouldEqual, "B")
		})
	})

	Convey("Given nobody climbed", t, func() {
		snap := model.Snapshot{Players: []model.Player{
			{Pseudonym: "A", Rank: 1, PreviousRank: 1},
			{Pseudonym: "B", Rank: 2, PreviousRank: 1},
		}}

		Convey("Then there should be no climber", func() {
			_, ok := standings.BiggestClimber(snap)
			So(ok, ShouldBeFalse)
		})
	})
}

func TestSpotlight(t *testing.T) {
	Convey("Given a leader ahead of the runner-up", t, func() {
		snap := model.Snapshot{Players: []model.Player{
			{Pseudonym: "Snork Frøken", Rank: 1, Points: 83950, HighestPoints: intPtr(90000)},
			{Pseudonym: "Midas", Rank: 2, Points: 61000},
		}}
		sp, ok := standings.ComputeSpotlight(snap)

		Convey("Then the spotlight should carry gap and peak", func() {
			So(ok, ShouldBeTrue)
			So(sp.Initials, ShouldEqual, "SF")
			So(*sp.GapOverSecond, ShouldEqual, 22950)
			So(*sp.PeakPoints, ShouldEqual, 90000)
		})
	})

	Convey("Given a lone leader without a peak", t, func() {
		snap := model.Snapshot{Players: []model.Player{{Pseudonym: "Solo", Rank: 1, Points: 10}}}
		sp, ok := standings.ComputeSpotlight(snap)

		Convey("Then gap and peak should be omitted", func() {
			So(ok, ShouldBeTrue)
			So(sp.GapOverSecond, ShouldBeNil)
			So(sp.PeakPoints, ShouldBeNil)
		})
	})

	Convey("Given a tie at the top", t, func() {
		snap := model.Snapshot{Players: []model.Player{
			{Pseudonym: "A", Rank: 1, Points: 50},
			{Pseudonym: "B", Rank: 2, Points: 50},
		}}
		sp, _ := standings.ComputeSpotlight(snap)

		Convey("Then no gap should be reported", func() {
			So(sp.GapOverSecond, ShouldBeNil)
		})
	})

	Convey("Given no players", t, func() {
		_, ok := standings.ComputeSpotlight(model.Snapshot{})

		Convey("Then there should be no spotlight", func() {
			So(ok, ShouldBeFalse)
		})
	})
}

func TestMedalFor(t *testing.T) {
	Convey("Given podium and non-podium ranks", t, func() {
		Convey("Then 1..3 should map to gold, silver, bronze", func() {
			for rank, class := range map[int]string{1: "gold", 2: "silver", 3: "bronze"} {
				m, ok := standings.MedalFor(rank)
				So(ok, ShouldBeTrue)
				So(m.Class, ShouldEqual, class)
			}
		})
		Convey("Then rank 4 should have no medal", func() {
			_, ok := standings.MedalFor(4)
			So(ok, ShouldBeFalse)
		})
	})
}
