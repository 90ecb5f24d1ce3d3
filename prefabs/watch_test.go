package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchableFile(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"scenes/demo.yaml", true},
		{"scenes/demo.yml", true},
		{"scenes/DEMO.YAML", true},
		{"scenes/skipper.tengo", true},
		{"scenes/notes.txt", false},
		{"scenes/demo.yaml.bak", false},
		{"scenes", false},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			if got := watchableFile(tc.path); got != tc.want {
				t.Fatalf("watchableFile(%q) = %v, want %v", tc.path, got, tc.want)
			}
		})
	}
}

func TestWatcherCollapsesWriteBursts(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	scene := filepath.Join(dir, "demo.yaml")
	ignored := filepath.Join(dir, "notes.txt")
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(scene, []byte("name: demo\n"), 0o644); err != nil {
			t.Fatalf("write scene: %v", err)
		}
	}
	if err := os.WriteFile(ignored, []byte("scratch\n"), 0o644); err != nil {
		t.Fatalf("write ignored: %v", err)
	}

	got := map[string]int{}
	deadline := time.After(500 * time.Millisecond)
drain:
	for {
		select {
		case path := <-w.Events:
			got[path]++
		case err := <-w.Errors:
			t.Fatalf("watcher error: %v", err)
		case <-deadline:
			break drain
		}
	}

	if got[scene] != 1 {
		t.Fatalf("expected the write burst to collapse into one event, got %d", got[scene])
	}
	if got[ignored] != 0 {
		t.Fatalf("non-scene files must be filtered, got %d events", got[ignored])
	}
}
