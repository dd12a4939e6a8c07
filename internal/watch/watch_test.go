// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelevant(t *testing.T) {
	tests := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"create markdown", fsnotify.Event{Name: "/in/a.md", Op: fsnotify.Create}, true},
		{"write markdown", fsnotify.Event{Name: "/in/a.md", Op: fsnotify.Write}, true},
		{"remove markdown", fsnotify.Event{Name: "/in/a.md", Op: fsnotify.Remove}, false},
		{"chmod markdown", fsnotify.Event{Name: "/in/a.md", Op: fsnotify.Chmod}, false},
		{"other extension", fsnotify.Event{Name: "/in/a.txt", Op: fsnotify.Create}, false},
		{"hidden file", fsnotify.Event{Name: "/in/.a.md", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Relevant(tt.ev))
		})
	}
}

func TestRunHandlesNewClippings(t *testing.T) {
	dir := t.TempDir()
	got := make(chan string, 10)

	w := New(dir, func(_ context.Context, path string) { got <- path }, nil)
	w.SetSettle(50 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	select {
	case <-w.Ready():
	case <-time.After(5 * time.Second):
		t.Fatal("watcher never became ready")
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644))
	clip := filepath.Join(dir, "clip.md")
	require.NoError(t, os.WriteFile(clip, []byte("# A\n"), 0o644))

	select {
	case path := <-got:
		assert.Equal(t, clip, path)
	case <-time.After(5 * time.Second):
		t.Fatal("clipping was not handled")
	}

	// Bursts for one path collapse into a single call.
	select {
	case path := <-got:
		t.Fatalf("unexpected second call for %s", path)
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestRunMissingDirectory(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing"), func(context.Context, string) {}, nil)
	assert.Error(t, w.Run(context.Background()))
}

// runUntilHandled starts w, writes one clipping into dir and waits for the
// handler, then stops the watcher.
func runUntilHandled(t *testing.T, w *Watcher, dir, name string, got <-chan string) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	select {
	case <-w.Ready():
	case <-time.After(5 * time.Second):
		t.Fatal("watcher never became ready")
	}
	// Ready stays closed after the first run; give a rerun time to register.
	time.Sleep(50 * time.Millisecond)
	for len(got) > 0 {
		<-got
	}

	clip := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(clip, []byte("# A\n"), 0o644))

	select {
	case path := <-got:
		assert.Equal(t, clip, path)
	case <-time.After(5 * time.Second):
		t.Fatal("clipping was not handled")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestRunTinySettle(t *testing.T) {
	dir := t.TempDir()
	got := make(chan string, 10)

	w := New(dir, func(_ context.Context, path string) { got <- path }, nil)
	w.SetSettle(time.Nanosecond)

	runUntilHandled(t, w, dir, "tiny.md", got)
}

func TestRunTwice(t *testing.T) {
	dir := t.TempDir()
	got := make(chan string, 10)

	w := New(dir, func(_ context.Context, path string) { got <- path }, nil)
	w.SetSettle(20 * time.Millisecond)

	runUntilHandled(t, w, dir, "first.md", got)
	runUntilHandled(t, w, dir, "second.md", got)
}
