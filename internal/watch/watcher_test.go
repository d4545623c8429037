package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewRequiresCallbackAndRoots(t *testing.T) {
	if _, err := New(nil, t.TempDir()); err == nil {
		t.Fatal("expected error for nil callback")
	}
	if _, err := New(func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected error for empty root list")
	}
}

func TestScheduleCoalescesBursts(t *testing.T) {
	w := &Watcher{
		debounce: 10 * time.Millisecond,
		pending:  make(chan struct{}, 1),
	}

	for range 5 {
		w.schedule()
	}
	time.Sleep(100 * time.Millisecond)

	select {
	case <-w.pending:
	default:
		t.Fatal("expected one pending rebuild request")
	}
	select {
	case <-w.pending:
		t.Fatal("burst produced more than one rebuild request")
	default:
	}
}

func TestRunRebuildsOnFileChange(t *testing.T) {
	root := t.TempDir()
	rebuilt := make(chan struct{}, 8)
	var calls atomic.Int64

	w, err := New(func(context.Context) error {
		calls.Add(1)
		rebuilt <- struct{}{}
		return nil
	}, root)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	w.WithDebounce(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher a moment to register the root before writing.
	time.Sleep(200 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(root, "index.md"), []byte("# Manual\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	select {
	case <-rebuilt:
	case <-time.After(5 * time.Second):
		t.Fatal("rebuild was not triggered by file change")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	if calls.Load() == 0 {
		t.Fatal("rebuild callback never ran")
	}
}

func TestIgnorePath(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"docs/source/index.md", false},
		{"docs/source/.index.md.swp", true},
		{"docs/source/index.md~", true},
		{"docs/source/#index.md#", true},
		{"docs/source/.#index.md", true},
		{"docs/source/Thumbs.db", true},
		{"docs/source/guide.rst", false},
	}
	for _, tc := range cases {
		if got := ignorePath(tc.path); got != tc.want {
			t.Errorf("ignorePath(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}
