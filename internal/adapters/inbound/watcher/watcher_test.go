package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkraft/lowgen/internal/adapters/inbound/watcher"
)

func TestWatcher_CallsOnChange(t *testing.T) {
	dir := t.TempDir()
	schema := filepath.Join(dir, "schema.yaml")
	other := filepath.Join(dir, "other.yaml")
	require.NoError(t, os.WriteFile(schema, []byte("entities: []\n"), 0644))

	w, err := watcher.New([]string{schema}, 20*time.Millisecond, nil)
	require.NoError(t, err)

	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(context.Context) error {
			calls.Add(1)
			return nil
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(other, []byte("x"), 0644))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load(), "unrelated files are ignored")

	require.NoError(t, os.WriteFile(schema, []byte("entities: [a]\n"), 0644))
	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_MissingDir(t *testing.T) {
	w, err := watcher.New([]string{filepath.Join(t.TempDir(), "gone", "schema.yaml")}, 0, nil)
	require.NoError(t, err)

	err = w.Run(context.Background(), func(context.Context) error { return nil })
	assert.ErrorContains(t, err, "watching")
}
