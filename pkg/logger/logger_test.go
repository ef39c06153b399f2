package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given an initialized global logger", t, func() {
		So(Init(), ShouldBeNil)
		defer func() { _ = Sync() }()

		Convey("Then Get and Named return usable loggers", func() {
			So(Get(), ShouldNotBeNil)
			So(Named("test"), ShouldNotBeNil)
			So(func() { Get().Info(context.Background(), "test message", String("k", "v")) }, ShouldNotPanic)
		})

		Convey("When switching formats", func() {
			So(SetFormat("json"), ShouldBeNil)
			So(SetFormat("text"), ShouldBeNil)
			So(SetFormat("xml"), ShouldNotBeNil)
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level strings", t, func() {
		defer SetLevel(slog.LevelInfo)

		So(SetLevelString("debug"), ShouldBeNil)
		So(levelVar.Level(), ShouldEqual, slog.LevelDebug)
		So(SetLevelString("WARNING"), ShouldBeNil)
		So(levelVar.Level(), ShouldEqual, slog.LevelWarn)
		So(SetLevelString(""), ShouldBeNil)
		So(levelVar.Level(), ShouldEqual, slog.LevelInfo)
		So(SetLevelString("verbose"), ShouldNotBeNil)
	})
}

func TestLoggerFields(t *testing.T) {
	Convey("Given a logger writing JSON to a buffer", t, func() {
		var buf bytes.Buffer
		l := NewWithWriter(&buf).Named("worldbank")
		ctx := WithRequestID(context.Background(), "req-1")

		Convey("When logging with fields and an error", func() {
			l.Warn(ctx, "fetch failed", String("indicator", "SP.POP.TOTL"), Int("status", 500), Error(errors.New("boom")))

			var line map[string]any
			So(json.Unmarshal(buf.Bytes(), &line), ShouldBeNil)

			Convey("Then the line carries component, request id and fields", func() {
				So(line["msg"], ShouldEqual, "fetch failed")
				So(line["component"], ShouldEqual, "worldbank")
				So(line["request_id"], ShouldEqual, "req-1")
				So(line["indicator"], ShouldEqual, "SP.POP.TOTL")
				So(line["status"], ShouldEqual, 500.0)
				So(line["error"], ShouldEqual, "boom")
				So(line["source"], ShouldContainSubstring, "logger_test.go")
			})
		})
	})
}
