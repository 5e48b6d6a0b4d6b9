package watch

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatcherTriggersRebuild(t *testing.T) {
	dir := t.TempDir()

	var rebuilds atomic.Int32
	w, err := New(dir, func(context.Context) error {
		rebuilds.Add(1)
		return nil
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	w.debounce = 50 * time.Millisecond
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	// A burst of writes should coalesce into a single rebuild.
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(filepath.Join(dir, "index.md"), []byte("# hi\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	deadline := time.After(3 * time.Second)
	for rebuilds.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("rebuild never triggered")
		case <-time.After(20 * time.Millisecond):
		}
	}
}

func TestWatcherRebuildsNeverOverlap(t *testing.T) {
	dir := t.TempDir()

	var active atomic.Int32
	var overlapped atomic.Bool
	var rebuilds atomic.Int32
	w, err := New(dir, func(context.Context) error {
		if active.Add(1) != 1 {
			overlapped.Store(true)
		}
		time.Sleep(60 * time.Millisecond)
		active.Add(-1)
		rebuilds.Add(1)
		return nil
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	w.debounce = 10 * time.Millisecond
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	// Keep writing while rebuilds are in flight so triggers land mid-build.
	stop := time.Now().Add(400 * time.Millisecond)
	for time.Now().Before(stop) {
		if err := os.WriteFile(filepath.Join(dir, "index.md"), []byte("# hi\n"), 0644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(15 * time.Millisecond)
	}

	deadline := time.After(3 * time.Second)
	for rebuilds.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("expected at least 2 rebuilds, got %d", rebuilds.Load())
		case <-time.After(20 * time.Millisecond):
		}
	}
	if overlapped.Load() {
		t.Fatal("rebuild callbacks ran concurrently")
	}
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	w, err := New(t.TempDir(), func(context.Context) error { return nil })
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	w.Stop()
	w.Stop()
}

func TestPreviewServerServesSite(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html><body>ok</body></html>"), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := NewPreviewServer("127.0.0.1:0", dir)
	if err != nil {
		t.Fatalf("NewPreviewServer: %v", err)
	}
	go func() { _ = p.Serve() }()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = p.Shutdown(ctx)
	}()

	resp, err := http.Get("http://" + p.Addr() + "/index.html")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) == "" {
		t.Fatalf("status=%d body=%q", resp.StatusCode, body)
	}
}
