package source_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/okian/recency/internal/adapters/source"
	"github.com/okian/recency/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "streams.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	ctx := context.Background()

	Convey("Given a valid stream file", t, func() {
		path := writeFile(t, `
streams:
  - index: 2
    events:
      - {ts: 3, payload: "f"}
      - {ts: 6, payload: "g"}
  - index: 0
    events:
      - ts: 1
        payload: a
  - index: 5
    events: []
`)

		Convey("When loading it", func() {
			streams, err := source.LoadFile(ctx, path)

			Convey("Then every stream keeps its index and order", func() {
				So(err, ShouldBeNil)
				So(streams.Indices(), ShouldResemble, []int{0, 2, 5})
				So(streams[2], ShouldResemble, []model.Event{{Timestamp: 3, Payload: "f"}, {Timestamp: 6, Payload: "g"}})
				So(streams[0], ShouldResemble, []model.Event{{Timestamp: 1, Payload: "a"}})
				So(streams[5], ShouldBeEmpty)
			})
		})
	})

	Convey("Given invalid stream files", t, func() {
		cases := map[string]string{
			"duplicate index": "streams:\n  - index: 1\n    events: []\n  - index: 1\n    events: []\n",
			"negative index":  "streams:\n  - index: -1\n    events: []\n",
			"missing streams": "other: 1\n",
			"bad timestamp":   "streams:\n  - index: 0\n    events:\n      - {ts: soon, payload: x}\n",
		}
		for name, content := range cases {
			Convey("When the file has a "+name, func() {
				_, err := source.LoadFile(ctx, writeFile(t, content))
				So(errors.Is(err, source.ErrInvalidInput), ShouldBeTrue)
			})
		}
	})

	Convey("Given unreadable input", t, func() {
		_, err := source.LoadFile(ctx, "/non/existent/streams.yaml")
		So(errors.Is(err, source.ErrReadInput), ShouldBeTrue)

		_, err = source.LoadFile(ctx, writeFile(t, "streams: [\n"))
		So(errors.Is(err, source.ErrReadInput), ShouldBeTrue)
	})
}

func TestWriteFile(t *testing.T) {
	ctx := context.Background()

	Convey("Given the sample streams written to disk", t, func() {
		path := filepath.Join(t.TempDir(), "sample.yaml")
		So(source.WriteFile(ctx, path, source.Sample()), ShouldBeNil)

		Convey("When loading them back", func() {
			streams, err := source.LoadFile(ctx, path)

			Convey("Then they match the original", func() {
				So(err, ShouldBeNil)
				So(streams, ShouldResemble, source.Sample())
			})
		})
	})

	Convey("Given an unwritable path", t, func() {
		err := source.WriteFile(ctx, filepath.Join(t.TempDir(), "missing", "x.yaml"), source.Sample())
		So(errors.Is(err, source.ErrWriteInput), ShouldBeTrue)
	})
}

func TestSample(t *testing.T) {
	Convey("Given the sample streams", t, func() {
		s := source.Sample()

		So(s.Indices(), ShouldResemble, []int{0, 1})
		So(s.Total(), ShouldEqual, 10)
		So(s[1][0], ShouldResemble, model.Event{Timestamp: 3, Payload: "Event2-1"})
	})
}

func TestGenerate(t *testing.T) {
	Convey("Given a generator config", t, func() {
		cfg := source.GenerateConfig{Streams: 4, EventsPerStream: 25, MaxGap: 3, Seed: 42}

		Convey("When generating", func() {
			streams, err := source.Generate(cfg)

			Convey("Then timestamps strictly increase within each stream", func() {
				So(err, ShouldBeNil)
				So(streams.Indices(), ShouldResemble, []int{0, 1, 2, 3})
				So(streams.Total(), ShouldEqual, 100)
				for _, events := range streams {
					for i := 1; i < len(events); i++ {
						gap := events[i].Timestamp - events[i-1].Timestamp
						So(gap >= 1 && gap <= 3, ShouldBeTrue)
					}
				}
			})

			Convey("Then payloads are uuids", func() {
				_, parseErr := uuid.Parse(streams[0][0].Payload)
				So(parseErr, ShouldBeNil)
			})

			Convey("Then the same seed yields the same streams", func() {
				again, err := source.Generate(cfg)
				So(err, ShouldBeNil)
				So(again, ShouldResemble, streams)
			})
		})

		Convey("When a payload prefix is set", func() {
			cfg.PayloadPrefix = "Event"
			streams, err := source.Generate(cfg)

			So(err, ShouldBeNil)
			So(streams[0][0].Payload, ShouldEqual, "Event1-1")
			So(streams[3][24].Payload, ShouldEqual, "Event4-25")
		})

		Convey("When counts are negative", func() {
			_, err := source.Generate(source.GenerateConfig{Streams: -1})
			So(errors.Is(err, source.ErrInvalidInput), ShouldBeTrue)
		})

		Convey("When the gap is unset", func() {
			streams, err := source.Generate(source.GenerateConfig{Streams: 1, EventsPerStream: 3})
			So(err, ShouldBeNil)
			So(len(streams[0]), ShouldEqual, 3)
		})
	})
}
