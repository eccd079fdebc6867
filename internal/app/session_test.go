package service_test

import (
	"context"
	"errors"
	"testing"

	service "github.com/okian/blindern/internal/app"
	"github.com/okian/blindern/internal/domain/filter"
	"github.com/okian/blindern/internal/domain/model"
	"github.com/okian/blindern/internal/domain/modal"
	"github.com/okian/blindern/internal/domain/view"
	. "github.com/smartystreets/goconvey/convey"
)

type unsupportedIntent struct{ service.CloseModal }

func sessionOver(events []model.Event) *service.Session {
	svc := service.New(service.WithCalendar(testCalendar()))
	if events != nil {
		svc.SetEvents(events)
	}
	return svc.NewSession()
}

func threeEvents() []model.Event {
	return []model.Event{
		{ID: "a", Title: "A", Date: "2026-11-02", Time: "19:00", Location: "Blindern"},
		{ID: "b", Title: "B", Date: "2026-10-18", Time: "19:00", Location: "Blindern"},
		{ID: "c", Title: "C", Date: "2026-01-02", Time: "19:00", Location: "Blindern"},
	}
}

func TestSession_Filter(t *testing.T) {
	Convey("Given five events, two of them past", t, func() {
		ss := sessionOver([]model.Event{
			{ID: "e1", Date: "2026-11-02"},
			{ID: "e2", Date: "2026-01-10"},
			{ID: "e3", Date: "2026-10-18"},
			{ID: "e4", Date: "2026-12-01"},
			{ID: "e5", Date: "2025-12-31"},
		})
		ctx := context.Background()

		Convey("Then the default listing should be split in two sections", func() {
			l := ss.Listing()
			So(ss.Filter(), ShouldEqual, filter.All)
			So(l.Sections, ShouldHaveLength, 2)
			So(l.Sections[0].Title, ShouldEqual, "Upcoming")
			So(l.Sections[1].Title, ShouldEqual, "Past Events")
		})

		Convey("When the past filter is selected", func() {
			So(ss.Dispatch(ctx, service.SelectFilter{Kind: filter.Past}), ShouldBeNil)

			Convey("Then exactly the two past events should be listed in source order", func() {
				l := ss.Listing()
				So(l.Sections, ShouldHaveLength, 1)
				cards := l.Sections[0].Cards
				So(cards, ShouldHaveLength, 2)
				So(cards[0].ID, ShouldEqual, "e2")
				So(cards[1].ID, ShouldEqual, "e5")
			})

			Convey("And only the past tab should be active", func() {
				active := 0
				for _, tab := range ss.Tabs() {
					if tab.Active {
						active++
						So(tab.Kind, ShouldEqual, filter.Past)
					}
				}
				So(active, ShouldEqual, 1)
			})
		})

		Convey("When an unknown filter is selected", func() {
			So(ss.Dispatch(ctx, service.SelectFilter{Kind: filter.Upcoming}), ShouldBeNil)
			err := ss.Dispatch(ctx, service.SelectFilter{Kind: "someday"})

			Convey("Then it should be rejected and the state kept", func() {
				So(errors.Is(err, filter.ErrUnknownFilter), ShouldBeTrue)
				So(ss.Filter(), ShouldEqual, filter.Upcoming)
			})
		})
	})

	Convey("Given only past events", t, func() {
		ss := sessionOver([]model.Event{{ID: "old", Date: "2025-01-01"}})

		Convey("Then the upcoming filter should show the category message", func() {
			So(ss.Dispatch(context.Background(), service.SelectFilter{Kind: filter.Upcoming}), ShouldBeNil)
			l := ss.Listing()
			So(l.Sections, ShouldBeEmpty)
			So(l.Empty, ShouldNotBeNil)
			So(l.Empty.Text, ShouldEqual, view.NoEventsInCategory)
		})
	})

	Convey("Given an empty catalog", t, func() {
		ss := sessionOver([]model.Event{})

		Convey("Then the listing should show the no-data message", func() {
			l := ss.Listing()
			So(l.Empty, ShouldNotBeNil)
			So(l.Empty.Text, ShouldEqual, view.NoEvents)
		})
	})

	Convey("Given a catalog that never loaded", t, func() {
		ss := sessionOver(nil)

		Convey("Then every filter should show the no-data message", func() {
			for _, k := range []filter.Kind{filter.All, filter.Upcoming, filter.Past} {
				So(ss.Dispatch(context.Background(), service.SelectFilter{Kind: k}), ShouldBeNil)
				So(ss.Listing().Empty.Text, ShouldEqual, view.NoEvents)
			}
		})
	})
}

func TestSession_Modal(t *testing.T) {
	Convey("Given three events", t, func() {
		ss := sessionOver(threeEvents())
		ctx := context.Background()

		Convey("When an unknown event is opened", func() {
			So(ss.Dispatch(ctx, service.OpenEvent{ID: "missing"}), ShouldBeNil)

			Convey("Then the overlay should stay closed", func() {
				So(ss.Modal(), ShouldResemble, modal.Closed)
				_, ok := ss.Detail()
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When a known event is opened", func() {
			So(ss.Dispatch(ctx, service.OpenEvent{ID: "b"}), ShouldBeNil)

			Convey("Then the overlay should show it", func() {
				So(ss.Modal(), ShouldResemble, modal.State{Open: true, EventID: "b"})
				d, ok := ss.Detail()
				So(ok, ShouldBeTrue)
				So(d.Title, ShouldEqual, "B")
				So(d.Date, ShouldEqual, "Sunday 18 October 2026")
			})

			Convey("And a later unknown id should not replace it", func() {
				So(ss.Dispatch(ctx, service.OpenEvent{ID: "zzz"}), ShouldBeNil)
				So(ss.Modal().EventID, ShouldEqual, "b")
			})

			Convey("And closing twice should leave it closed", func() {
				So(ss.Dispatch(ctx, service.CloseModal{}), ShouldBeNil)
				So(ss.Dispatch(ctx, service.CloseModal{}), ShouldBeNil)
				So(ss.Modal(), ShouldResemble, modal.Closed)
			})
		})

		Convey("When the service catalog changes after the session began", func() {
			svc := service.New(service.WithCalendar(testCalendar()))
			svc.SetEvents(threeEvents())
			s2 := svc.NewSession()
			svc.SetEvents(nil)

			Convey("Then the session should keep its snapshot", func() {
				So(s2.Dispatch(ctx, service.OpenEvent{ID: "a"}), ShouldBeNil)
				So(s2.Modal().Open, ShouldBeTrue)
			})
		})
	})

	Convey("Given an unsupported intent", t, func() {
		ss := sessionOver(threeEvents())

		Convey("Then Dispatch should reject it", func() {
			err := ss.Dispatch(context.Background(), unsupportedIntent{})
			So(errors.Is(err, service.ErrUnknownIntent), ShouldBeTrue)
			So(errors.Is(ss.Dispatch(context.Background(), nil), service.ErrUnknownIntent), ShouldBeTrue)
		})
	})
}
