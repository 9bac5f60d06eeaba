package badge

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSinkSetAndClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "badge")
	sink := &FileSink{Path: path, DisableNotify: true}

	if err := sink.Set("25m"); err != nil {
		t.Fatalf("set: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read badge: %v", err)
	}
	if string(data) != "25m\n" {
		t.Fatalf("unexpected badge contents %q", data)
	}

	if err := sink.Set("5m"); err != nil {
		t.Fatalf("replace: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "5m\n" {
		t.Fatalf("expected whole-label replace, got %q", data)
	}

	if err := sink.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "\n" {
		t.Fatalf("expected cleared badge, got %q", data)
	}
}

func TestFileSinkClearBeforeSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "badge")
	sink := &FileSink{Path: path, DisableNotify: true}
	if err := sink.Clear(); err != nil {
		t.Fatalf("clear on fresh sink: %v", err)
	}
}
