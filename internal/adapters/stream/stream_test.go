package stream_test

import (
	"errors"
	"testing"

	"github.com/okian/recency/internal/adapters/stream"
	"github.com/okian/recency/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInput(t *testing.T) {
	Convey("Given an input stream with two events", t, func() {
		src := []model.Event{{Timestamp: 1, Payload: "a"}, {Timestamp: 2, Payload: "b"}}
		in := stream.NewInput(3, src)

		So(in.Index(), ShouldEqual, 3)
		So(in.Len(), ShouldEqual, 2)

		Convey("When peeking", func() {
			e, h, ok := in.Peek()

			Convey("Then the earliest event is returned and nothing is consumed", func() {
				So(ok, ShouldBeTrue)
				So(e, ShouldResemble, model.Event{Timestamp: 1, Payload: "a"})
				So(h, ShouldResemble, model.Handle{Stream: 3, Slot: 0})
				So(in.Len(), ShouldEqual, 2)

				e2, h2, _ := in.Peek()
				So(e2, ShouldResemble, e)
				So(h2, ShouldResemble, h)
			})
		})

		Convey("When popping", func() {
			e, h, err := in.Pop()

			Convey("Then the head advances to the next slot", func() {
				So(err, ShouldBeNil)
				So(e.Payload, ShouldEqual, "a")
				So(h.Slot, ShouldEqual, 0)
				So(in.Len(), ShouldEqual, 1)

				next, nh, ok := in.Peek()
				So(ok, ShouldBeTrue)
				So(next.Payload, ShouldEqual, "b")
				So(nh.Slot, ShouldEqual, 1)
			})
		})

		Convey("When every event is popped", func() {
			_, _, _ = in.Pop()
			_, _, _ = in.Pop()

			Convey("Then peek reports empty and pop fails with ErrEmpty", func() {
				_, _, ok := in.Peek()
				So(ok, ShouldBeFalse)
				So(in.Len(), ShouldEqual, 0)

				_, _, err := in.Pop()
				So(errors.Is(err, stream.ErrEmpty), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "stream 3")
			})
		})

		Convey("When the caller mutates its slice afterwards", func() {
			src[0].Payload = "mutated"

			Convey("Then the stream is unaffected", func() {
				e, _, _ := in.Peek()
				So(e.Payload, ShouldEqual, "a")
			})
		})
	})

	Convey("Given an input stream built from nil", t, func() {
		in := stream.NewInput(0, nil)

		So(in.Len(), ShouldEqual, 0)
		_, _, ok := in.Peek()
		So(ok, ShouldBeFalse)
	})
}

func TestOutput(t *testing.T) {
	Convey("Given an output stream", t, func() {
		out := stream.NewOutput(stream.WithCapacity(4))
		So(out.Len(), ShouldEqual, 0)

		out.Append(model.Event{Timestamp: 3, Payload: "f"}, model.Handle{Stream: 1, Slot: 0})
		out.Append(model.Event{Timestamp: 6, Payload: "g"}, model.Handle{Stream: 1, Slot: 1})

		Convey("When reading without draining", func() {
			events := out.Events()
			events[0].Payload = "changed"

			Convey("Then a copy in append order is returned", func() {
				So(out.Len(), ShouldEqual, 2)
				So(out.Events()[0].Payload, ShouldEqual, "f")
				So(out.Handles(), ShouldResemble, []model.Handle{{Stream: 1, Slot: 0}, {Stream: 1, Slot: 1}})
			})
		})

		Convey("When draining", func() {
			drained := out.Drain()

			Convey("Then events are handed over once", func() {
				So(drained, ShouldResemble, []model.Event{{Timestamp: 3, Payload: "f"}, {Timestamp: 6, Payload: "g"}})
				So(out.Len(), ShouldEqual, 0)
				So(out.Drain(), ShouldBeEmpty)
				So(out.Handles(), ShouldBeEmpty)
			})
		})
	})
}
