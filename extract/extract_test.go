package extract

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestExtract(t *testing.T) {
	Convey("Given a search result page", t, func() {
		Convey("It finds bare and onclick locators", func() {
			page := `<div>https://cdn.test/ch1.m3u8?x=1</div>
<a onclick="glshle('https://cdn.test/ch2.m3u8')">play</a>`

			candidates := Extract(page, "X")
			So(candidates, ShouldHaveLength, 2)
			So(candidates[0], ShouldResemble, Candidate{URL: "https://cdn.test/ch1.m3u8?x=1", Channel: "X"})
			So(candidates[1], ShouldResemble, Candidate{URL: "https://cdn.test/ch2.m3u8", Channel: "X"})
		})

		Convey("It finds locators inside classed result elements", func() {
			page := `<tba class="ergl">//cdn.test/live/stream.m3u8</tba>`

			candidates := Extract(page, "CCTV1")
			So(candidates, ShouldHaveLength, 1)
			So(candidates[0].URL, ShouldEqual, "https://cdn.test/live/stream.m3u8")
		})

		Convey("Matching is case-insensitive", func() {
			page := `HTTPS://CDN.TEST/UPPER.M3U8`

			candidates := Extract(page, "X")
			So(candidates, ShouldHaveLength, 1)
		})

		Convey("Exact duplicates within one page collapse", func() {
			page := `https://cdn.test/a.m3u8 and again https://cdn.test/a.m3u8`

			So(Extract(page, "X"), ShouldHaveLength, 1)
		})

		Convey("It is idempotent", func() {
			page := `https://cdn.test/a.m3u8 <tba class="ergl">//cdn.test/b.m3u8</tba>`

			first := Extract(page, "X")
			second := Extract(page, "X")
			So(second, ShouldResemble, first)
		})

		Convey("A page without locators yields an empty result", func() {
			So(Extract("<html><body>nothing here</body></html>", "X"), ShouldBeEmpty)
			So(Extract("", "X"), ShouldBeEmpty)
		})
	})
}

func TestNormalize(t *testing.T) {
	Convey("Locator normalization", t, func() {
		Convey("Scheme'd locators pass through unchanged", func() {
			url, ok := Normalize("http://host/a.m3u8")
			So(ok, ShouldBeTrue)
			So(url, ShouldEqual, "http://host/a.m3u8")
		})

		Convey("Scheme-relative locators are pinned to https", func() {
			url, ok := Normalize("//host/a.m3u8")
			So(ok, ShouldBeTrue)
			So(url, ShouldEqual, "https://host/a.m3u8")
		})

		Convey("Bare relative paths are discarded", func() {
			_, ok := Normalize("live/a.m3u8")
			So(ok, ShouldBeFalse)

			_, ok = Normalize("/live/a.m3u8")
			So(ok, ShouldBeFalse)
		})
	})
}
