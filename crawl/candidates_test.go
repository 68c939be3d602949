package crawl

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/tvscout-cli/tvscout/extract"
)

func TestCandidateSet(t *testing.T) {
	Convey("Given an empty candidate set", t, func() {
		set := newCandidateSet()

		Convey("The first insertion of a url is kept", func() {
			kept := set.add(extract.Candidate{URL: "https://cdn.test/a.m3u8", Channel: "CCTV1"})
			So(kept, ShouldBeTrue)
			So(set.snapshot(), ShouldHaveLength, 1)
		})

		Convey("A colliding url keeps its first channel attribution", func() {
			set.add(extract.Candidate{URL: "https://cdn.test/a.m3u8", Channel: "CCTV1"})
			kept := set.add(extract.Candidate{URL: "https://cdn.test/a.m3u8", Channel: "CCTV2"})

			So(kept, ShouldBeFalse)

			snapshot := set.snapshot()
			So(snapshot, ShouldHaveLength, 1)
			So(snapshot[0].Channel, ShouldEqual, "CCTV1")
		})

		Convey("Distinct urls accumulate in insertion order", func() {
			set.addAll([]extract.Candidate{
				{URL: "https://cdn.test/a.m3u8", Channel: "CCTV1"},
				{URL: "https://cdn.test/b.m3u8", Channel: "CCTV2"},
			})

			snapshot := set.snapshot()
			So(snapshot, ShouldHaveLength, 2)
			So(snapshot[0].URL, ShouldEqual, "https://cdn.test/a.m3u8")
			So(snapshot[1].URL, ShouldEqual, "https://cdn.test/b.m3u8")
		})
	})
}
