package logging

import (
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestForTagsComponent(t *testing.T) {
	c := CaptureForTest()
	defer c.Restore()

	For("store").Info("migrated", "tables", 3)

	if !c.Has(slog.LevelInfo, "migrated") {
		t.Fatal("expected captured record")
	}
	v, ok := c.Attr("migrated", "component")
	if !ok || v.String() != "store" {
		t.Fatalf("component attr: got %v (found=%v), want store", v, ok)
	}
	v, ok = c.Attr("migrated", "tables")
	if !ok || v.Int64() != 3 {
		t.Fatalf("tables attr: got %v (found=%v), want 3", v, ok)
	}
}

func TestForFollowsDefaultChanges(t *testing.T) {
	logger := For("late")

	c := CaptureForTest()
	defer c.Restore()

	logger.Warn("after capture")
	if c.Count(slog.LevelWarn) != 1 {
		t.Fatalf("logger created before capture should still be captured, got %d", c.Count(slog.LevelWarn))
	}
}

func TestWithAttrs(t *testing.T) {
	c := CaptureForTest()
	defer c.Restore()

	For("server").With("request_id", "r-1").Error("boom")

	v, ok := c.Attr("boom", "request_id")
	if !ok || v.String() != "r-1" {
		t.Fatalf("request_id attr: got %v (found=%v)", v, ok)
	}
}

func TestRestore(t *testing.T) {
	before := slog.Default()
	c := CaptureForTest()
	c.Restore()
	if slog.Default() != before {
		t.Fatal("Restore should reinstate the previous default logger")
	}
}
