package filelog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/stabilefrisur/aa-data-handler/pkg/core"
)

// Follow streams entries appended after the call. The parent directory of
// the log is watched so a log created later is picked up too. Malformed lines
// are logged and skipped. The channel is closed once ctx is done.
func (l *Log) Follow(ctx context.Context) (<-chan core.Entry, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(l.path)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(l.path), err)
	}

	t := &tail{path: l.path}
	if info, err := os.Stat(l.path); err == nil {
		t.offset = info.Size()
	}

	out := make(chan core.Entry, 16)
	l.following.Add(1)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer l.following.Add(-1)
		defer close(out)
		defer watcher.Close()
		return l.followLoop(ctx, watcher, t, out)
	})

	return out, nil
}

func (l *Log) followLoop(ctx context.Context, watcher *fsnotify.Watcher, t *tail, out chan<- core.Entry) error {
	base := filepath.Base(l.path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			lines, err := t.read()
			if err != nil {
				l.logger.Error("file log follow read failed", "path", l.path, "error", err)
				continue
			}
			for _, line := range lines {
				e, err := ParseLine(line)
				if err != nil {
					l.logger.Warn("skipping file log line", "error", err)
					continue
				}
				select {
				case out <- e:
				case <-ctx.Done():
					return nil
				}
			}

		case wErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			l.logger.Error("fsnotify error", "error", wErr)
		}
	}
}

// tail reads complete lines appended to a file since the last read.
type tail struct {
	path    string
	offset  int64
	pending []byte
}

func (t *tail) read() ([]string, error) {
	f, err := os.Open(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() < t.offset {
		// Truncated or replaced: start over.
		t.offset = 0
		t.pending = nil
	}

	if _, err := f.Seek(t.offset, io.SeekStart); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	t.offset += int64(len(data))

	buf := append(t.pending, data...)
	var lines []string
	for {
		i := bytes.IndexByte(buf, '\n')
		if i < 0 {
			break
		}
		if line := bytes.TrimSpace(buf[:i]); len(line) > 0 {
			lines = append(lines, string(line))
		}
		buf = buf[i+1:]
	}
	t.pending = append([]byte(nil), buf...)
	return lines, nil
}
