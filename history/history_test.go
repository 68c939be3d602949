package history

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/tvscout-cli/tvscout/crawl"
	"github.com/tvscout-cli/tvscout/filesystem"
)

func init() {
	filesystem.SetMemMapFs()
}

func report(valid int) *crawl.Report {
	return &crawl.Report{
		StartedAt:  time.Now(),
		Channels:   []string{"CCTV1"},
		Discovered: valid + 2,
		Valid:      valid,
		OutputFile: "output/channels.m3u",
	}
}

func TestHistory(t *testing.T) {
	Convey("Given an empty history", t, func() {
		So(cacher.Set(nil), ShouldBeNil)

		Convey("When saving a run", func() {
			So(Save(report(5)), ShouldBeNil)

			Convey("Then the run is retrievable", func() {
				runs, err := Get()
				So(err, ShouldBeNil)
				So(runs, ShouldHaveLength, 1)
				So(runs[0].Valid, ShouldEqual, 5)
				So(runs[0].Channels, ShouldResemble, []string{"CCTV1"})
			})
		})

		Convey("When saving several runs", func() {
			for i := 0; i < 3; i++ {
				So(Save(report(i)), ShouldBeNil)
			}

			Convey("Then the newest run comes first", func() {
				runs, err := Get()
				So(err, ShouldBeNil)
				So(runs, ShouldHaveLength, 3)
				So(runs[0].Valid, ShouldEqual, 2)
				So(runs[2].Valid, ShouldEqual, 0)
			})
		})

		Convey("When exceeding the retention bound", func() {
			for i := 0; i < maxSavedRuns+5; i++ {
				So(Save(report(i)), ShouldBeNil)
			}

			Convey("Then the oldest records are dropped", func() {
				runs, err := Get()
				So(err, ShouldBeNil)
				So(runs, ShouldHaveLength, maxSavedRuns)
				So(runs[0].Valid, ShouldEqual, maxSavedRuns+4)
			})
		})
	})
}
