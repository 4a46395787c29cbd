package main

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLogLevel(in).Level(); got != want {
			t.Fatalf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestPrettyHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newPrettyHandler(&buf, slog.LevelInfo)).With("request_id", "r1")
	headers := http.Header{"X-B": {"2"}, "X-A": {"1", "1b"}}
	logger.WithGroup("req").Info("request", "status", 200, "headers", headers)
	logger.Debug("hidden")

	out := buf.String()
	for _, want := range []string{
		"INFO request\n",
		"  request_id: r1\n",
		"  req.status: 200\n",
		"  req.headers:\n    X-A: 1, 1b\n    X-B: 2\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got %q", want, out)
		}
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected debug record filtered, got %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no colour for non-terminal writer, got %q", out)
	}
}

func TestTeeHandlerFansOut(t *testing.T) {
	var info, debug bytes.Buffer
	tee := &teeHandler{handlers: []slog.Handler{
		slog.NewTextHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewTextHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug}),
	}}
	logger := slog.New(tee)
	logger.Debug("only debug")
	logger.Info("both")

	if strings.Contains(info.String(), "only debug") {
		t.Fatalf("info handler got debug record: %q", info.String())
	}
	if !strings.Contains(info.String(), "both") || !strings.Contains(debug.String(), "both") {
		t.Fatalf("expected info record in both handlers")
	}
	if !strings.Contains(debug.String(), "only debug") {
		t.Fatalf("expected debug record in debug handler")
	}
	if !tee.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatalf("expected tee enabled at debug")
	}
}

func TestColorizeLevel(t *testing.T) {
	if got := colorizeLevel(slog.LevelWarn, false); got != "WARN" {
		t.Fatalf("expected plain label, got %q", got)
	}
	if got := colorizeLevel(slog.LevelError, true); got != colorError+"ERROR"+colorReset {
		t.Fatalf("expected coloured label, got %q", got)
	}
}
