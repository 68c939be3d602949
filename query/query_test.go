package query

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/tvscout-cli/tvscout/filesystem"
	"github.com/tvscout-cli/tvscout/key"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.SearchSuggestions, true)
}

func TestQuery(t *testing.T) {
	Convey("Given a keyword history", t, func() {
		So(Remember("cctv1", 1), ShouldBeNil)
		So(Remember("cctv5", 10), ShouldBeNil)
		So(Remember("hunan tv", 3), ShouldBeNil)

		// Drop the in-memory layer so suggestions come from the store.
		suggestionCache = make(map[string][]*queryRecord)

		Convey("Suggestions are ranked by popularity", func() {
			s := SuggestMany("cctv")
			So(len(s), ShouldBeGreaterThanOrEqualTo, 2)
			So(s[0], ShouldEqual, "CCTV5")
		})

		Convey("An unknown prefix yields nothing", func() {
			So(SuggestMany("zzz"), ShouldBeEmpty)
		})

		Convey("Suggestions can be disabled", func() {
			viper.Set(key.SearchSuggestions, false)
			defer viper.Set(key.SearchSuggestions, true)

			So(SuggestMany("cctv"), ShouldBeEmpty)
		})

		Convey("Input is normalized before storage", func() {
			So(sanitize("  cctv1  "), ShouldEqual, "CCTV1")
		})
	})
}
