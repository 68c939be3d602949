package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func newProber(server *httptest.Server) *Prober {
	return NewWith(server.Client(), 5*time.Second, 512)
}

func TestProbe(t *testing.T) {
	Convey("Given a locator declaring a playlist content type", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/vnd.apple.mpegurl")
		}))
		defer server.Close()

		Convey("The head probe accepts it", func() {
			valid, err := newProber(server).Probe(context.Background(), server.URL)
			So(err, ShouldBeNil)
			So(valid, ShouldBeTrue)
		})
	})

	Convey("Given a locator with an inconclusive content type but a playlist body", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("#EXTM3U\n#EXTINF:10,\nsegment0.ts\n"))
		}))
		defer server.Close()

		Convey("The ranged probe accepts it", func() {
			valid, err := newProber(server).Probe(context.Background(), server.URL)
			So(err, ShouldBeNil)
			So(valid, ShouldBeTrue)
		})
	})

	Convey("Given a missing locator", t, func() {
		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		Convey("The probe fails closed", func() {
			valid, err := newProber(server).Probe(context.Background(), server.URL)
			So(valid, ShouldBeFalse)
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given a reachable page that is not a playlist", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html>definitely not a stream</html>"))
		}))
		defer server.Close()

		Convey("The probe rejects it without error", func() {
			valid, err := newProber(server).Probe(context.Background(), server.URL)
			So(valid, ShouldBeFalse)
			So(err, ShouldBeNil)
		})
	})

	Convey("Given an unreachable endpoint", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		Convey("The probe fails closed", func() {
			valid, err := newProber(server).Probe(context.Background(), server.URL)
			So(valid, ShouldBeFalse)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestProbeMemoization(t *testing.T) {
	Convey("Given a prober that already probed a url", t, func() {
		var hits atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			w.Header().Set("Content-Type", "audio/mpegurl")
		}))
		defer server.Close()

		prober := newProber(server)
		first, err := prober.Probe(context.Background(), server.URL)
		So(err, ShouldBeNil)
		probesAfterFirst := hits.Load()

		Convey("Re-probing the url issues no further requests", func() {
			again, err := prober.Probe(context.Background(), server.URL)
			So(err, ShouldBeNil)
			So(again, ShouldEqual, first)
			So(hits.Load(), ShouldEqual, probesAfterFirst)
		})
	})
}
