package token

import (
	"encoding/hex"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerator(t *testing.T) {
	Convey("Given a fresh generator", t, func() {
		gen := New()

		Convey("It yields tokens of the expected shape", func() {
			tok := gen()
			So(tok, ShouldHaveLength, Length)

			_, err := hex.DecodeString(tok)
			So(err, ShouldBeNil)
		})

		Convey("Successive tokens differ", func() {
			So(gen(), ShouldNotEqual, gen())
		})
	})

	Convey("Given a memoized generator", t, func() {
		gen := Memoized(New())

		Convey("It yields the same token on every call", func() {
			first := gen()
			So(gen(), ShouldEqual, first)
			So(gen(), ShouldEqual, first)
		})
	})
}
