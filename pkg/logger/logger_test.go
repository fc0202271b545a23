package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given an initialized logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		So(Init(WithWriter(&buf)), ShouldBeNil)
		defer func() { So(Sync(), ShouldBeNil) }()

		ctx := context.Background()

		Convey("When logging at info", func() {
			Get().Info(ctx, "round selected", Int("stream", 1), String("payload", "f"))

			Convey("Then fields and the caller location are written", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, "round selected")
				So(out, ShouldContainSubstring, "stream=1")
				So(out, ShouldContainSubstring, "payload=f")
				So(out, ShouldContainSubstring, "logger_test.go:")
			})
		})

		Convey("When logging at debug with the default level", func() {
			Get().Debug(ctx, "hidden")

			Convey("Then nothing is written", func() {
				So(buf.Len(), ShouldEqual, 0)
			})
		})

		Convey("When the level is lowered to debug", func() {
			So(SetLevelString("DEBUG"), ShouldBeNil)
			Get().Debug(ctx, "visible")

			Convey("Then debug lines are written", func() {
				So(buf.String(), ShouldContainSubstring, "visible")
			})
		})

		Convey("When using a named logger", func() {
			Named("selector").Info(ctx, "grouped", Int("k", 3))

			Convey("Then fields are grouped under the name", func() {
				So(buf.String(), ShouldContainSubstring, "selector.k=3")
			})
		})
	})
}

func TestLoggerJSON(t *testing.T) {
	Convey("Given a JSON logger", t, func() {
		var buf bytes.Buffer
		So(Init(WithWriter(&buf), WithJSON()), ShouldBeNil)

		Get().Warn(context.Background(), "short output", Int64("remaining", 0), Bool("exhausted", true))

		Convey("Then the line is a JSON object", func() {
			line := strings.TrimSpace(buf.String())
			So(line, ShouldStartWith, "{")
			So(line, ShouldContainSubstring, `"exhausted":true`)
			So(line, ShouldContainSubstring, `"level":"WARN"`)
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level strings", t, func() {
		So(Init(WithWriter(&bytes.Buffer{})), ShouldBeNil)

		for _, lvl := range []string{"debug", "info", "", "warn", "warning", "error", " Info "} {
			So(SetLevelString(lvl), ShouldBeNil)
		}
		So(SetLevelString("verbose"), ShouldNotBeNil)
	})
}

func TestNop(t *testing.T) {
	Convey("Given a nop logger", t, func() {
		l := Nop()

		Convey("Then logging does not panic", func() {
			So(func() {
				l.Info(context.Background(), "dropped")
				l.Named("x").Error(context.Background(), "dropped")
			}, ShouldNotPanic)
		})
	})
}
