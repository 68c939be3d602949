package crawl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/tvscout-cli/tvscout/filesystem"
	"github.com/tvscout-cli/tvscout/playlist"
	"github.com/tvscout-cli/tvscout/probe"
)

// streamServer serves a playlist body under /live/ paths and 404 elsewhere.
func streamServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/live/") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.apple.mpegurl")
		_, _ = w.Write([]byte(probe.MagicHeader + "\n"))
	}))
}

func newCrawler(fetch FetchFunc, outputPath string) *Crawler {
	return &Crawler{
		Scheduler: &Scheduler{
			Fetch:          fetch,
			Pages:          1,
			ChannelWorkers: 2,
			PageWorkers:    1,
		},
		Prober:       probe.NewWith(http.DefaultClient, 5*time.Second, 512),
		ProbeWorkers: 4,
		Writer:       playlist.Writer{Group: "CCTV"},
		OutputPath:   outputPath,
	}
}

func TestCrawlerRun(t *testing.T) {
	Convey("Given a search backend and a mix of live and dead locators", t, func() {
		filesystem.SetMemMapFs()
		defer filesystem.SetOsFs()

		server := streamServer()
		defer server.Close()

		pages := map[string]string{
			"CCTV2": server.URL + "/live/two.m3u8",
			"CCTV1": server.URL + "/live/one.m3u8 " + server.URL + "/dead/one.m3u8",
		}
		fetch := func(_ context.Context, channel string, _ int) (string, error) {
			return pages[channel], nil
		}

		crawler := newCrawler(fetch, "out/channels.m3u")

		Convey("When the pipeline runs", func() {
			report, err := crawler.Run(context.Background(), []string{"CCTV2", "CCTV1"})

			Convey("It succeeds and reports both stages", func() {
				So(err, ShouldBeNil)
				So(report.Discovered, ShouldEqual, 3)
				So(report.Valid, ShouldEqual, 2)
				So(report.PerChannel["CCTV1"], ShouldEqual, 1)
				So(report.PerChannel["CCTV2"], ShouldEqual, 1)
				So(report.OutputFile, ShouldEqual, "out/channels.m3u")
			})

			Convey("The playlist is channel-sorted regardless of discovery order", func() {
				So(err, ShouldBeNil)

				raw, readErr := filesystem.API().ReadFile("out/channels.m3u")
				So(readErr, ShouldBeNil)

				lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
				So(lines[0], ShouldEqual, playlist.Header)
				So(lines, ShouldHaveLength, 5)
				So(lines[1], ShouldContainSubstring, `tvg-name="CCTV1"`)
				So(lines[1], ShouldContainSubstring, `group-title="CCTV"`)
				So(lines[2], ShouldEqual, server.URL+"/live/one.m3u8")
				So(lines[3], ShouldContainSubstring, `tvg-name="CCTV2"`)
				So(lines[4], ShouldEqual, server.URL+"/live/two.m3u8")
			})
		})
	})

	Convey("Given a search backend with no locators at all", t, func() {
		filesystem.SetMemMapFs()
		defer filesystem.SetOsFs()

		fetch := func(_ context.Context, _ string, _ int) (string, error) {
			return "<html><body>no results</body></html>", nil
		}
		crawler := newCrawler(fetch, "out/channels.m3u")

		Convey("The run fails without touching the output file", func() {
			report, err := crawler.Run(context.Background(), []string{"CCTV1"})

			So(err, ShouldEqual, ErrNoValidStreams)
			So(report, ShouldNotBeNil)
			So(report.Discovered, ShouldEqual, 0)

			exists, _ := filesystem.API().Exists("out/channels.m3u")
			So(exists, ShouldBeFalse)
		})
	})

	Convey("Given locators that are all dead", t, func() {
		filesystem.SetMemMapFs()
		defer filesystem.SetOsFs()

		server := streamServer()
		defer server.Close()

		fetch := func(_ context.Context, _ string, _ int) (string, error) {
			return server.URL + "/dead/a.m3u8", nil
		}
		crawler := newCrawler(fetch, "out/channels.m3u")

		Convey("Discovery counts survive in the report but the run still fails", func() {
			report, err := crawler.Run(context.Background(), []string{"CCTV1"})

			So(err, ShouldEqual, ErrNoValidStreams)
			So(report.Discovered, ShouldEqual, 1)
			So(report.Valid, ShouldEqual, 0)

			exists, _ := filesystem.API().Exists("out/channels.m3u")
			So(exists, ShouldBeFalse)
		})
	})
}
