package filelog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stabilefrisur/aa-data-handler/pkg/adapters/filelog"
	"github.com/stabilefrisur/aa-data-handler/pkg/core"
)

func TestAppendEntries(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "logs", "file_log.log")
	log := filelog.New(path, nil)

	entries := []core.Entry{
		{ID: "a", Timestamp: "20240101_000000", Path: "data/20240101_000000_x.csv"},
		{ID: "b", Timestamp: "20240101_000001", Path: "data/with,comma.p"},
	}
	for _, e := range entries {
		require.NoError(t, log.Append(ctx, e))
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a,20240101_000000,data/20240101_000000_x.csv\nb,20240101_000001,data/with,comma.p\n", string(data))

	got, err := log.Entries(ctx)
	require.NoError(t, err)
	assert.Equal(t, entries, got)

	state := log.State().(filelog.LogState)
	assert.Equal(t, int64(2), state.Appended)
	assert.Equal(t, path, state.Path)
}

func TestEntries(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing Log", func(t *testing.T) {
		log := filelog.New(filepath.Join(t.TempDir(), "none.log"), nil)
		_, err := log.Entries(ctx)
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("Malformed Line", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file_log.log")
		require.NoError(t, os.WriteFile(path, []byte("a,t,p.csv\nbroken line\n"), 0644))

		_, err := filelog.New(path, nil).Entries(ctx)
		assert.ErrorIs(t, err, core.ErrMalformedEntry)
		assert.Contains(t, err.Error(), ":2:")
	})

	t.Run("Trailing Whitespace", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file_log.log")
		require.NoError(t, os.WriteFile(path, []byte("a,t,p.csv \r\n"), 0644))

		got, err := filelog.New(path, nil).Entries(ctx)
		require.NoError(t, err)
		assert.Equal(t, []core.Entry{{ID: "a", Timestamp: "t", Path: "p.csv"}}, got)
	})
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, filelog.DefaultPath, filelog.New("", nil).Path())
}

func TestFollow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file_log.log")
	log := filelog.New(path, nil)

	// An entry written before Follow is not replayed.
	require.NoError(t, log.Append(context.Background(), core.Entry{ID: "old", Timestamp: "t0", Path: "old.csv"}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := log.Follow(ctx)
	require.NoError(t, err)

	require.NoError(t, log.Append(ctx, core.Entry{ID: "new", Timestamp: "t1", Path: "new.csv"}))

	select {
	case e := <-ch:
		assert.Equal(t, "new", e.ID)
		assert.Equal(t, "new.csv", e.Path)
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for appended entry")
	}

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, 5*time.Second, 10*time.Millisecond, "channel should close after cancel")
}
