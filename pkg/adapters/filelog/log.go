// Package filelog implements core.FileLog as a plain text file holding one
// "identifier,timestamp,full_path" line per save.
//
// The log is append-only and keeps no lock: concurrent writers from several
// processes may interleave lines.
package filelog

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/stabilefrisur/aa-data-handler/pkg/core"
)

// DefaultPath is the log file used when none is configured.
const DefaultPath = "file_log.log"

// Log is a file log stored at a fixed path.
type Log struct {
	path      string
	logger    *slog.Logger
	appended  atomic.Int64
	following atomic.Int32
}

// New creates a log backed by the file at path. The file is created on the
// first Append.
func New(path string, logger *slog.Logger) *Log {
	if path == "" {
		path = DefaultPath
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Log{path: path, logger: logger}
}

// Path returns the location of the log file.
func (l *Log) Path() string {
	return l.path
}

// Append writes e as one line at the end of the log.
func (l *Log) Append(ctx context.Context, e core.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create file log directory: %w", err)
		}
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file log: %w", err)
	}
	if _, err := f.WriteString(FormatLine(e)); err != nil {
		f.Close()
		return fmt.Errorf("failed to append to file log: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close file log: %w", err)
	}

	l.appended.Add(1)
	l.logger.Debug("file log entry appended", "id", e.ID, "path", e.Path)
	return nil
}

// Entries reads the whole log in write order.
// A line with fewer than three fields fails the read with ErrMalformedEntry.
func (l *Log) Entries(ctx context.Context) ([]core.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("%w: file log %s: %w", core.ErrNotFound, l.path, err)
	}
	defer f.Close()

	var entries []core.Entry
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		e, err := ParseLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", l.path, line, err)
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: file log %s: %w", core.ErrNotFound, l.path, err)
	}
	return entries, nil
}

// FormatLine renders e as a newline-terminated log line. Commas are not
// escaped.
func FormatLine(e core.Entry) string {
	return e.String() + "\n"
}

// ParseLine splits a log line into its fields. Everything after the second
// comma is the path, so paths holding commas survive.
func ParseLine(line string) (core.Entry, error) {
	line = strings.TrimSpace(line)
	fields := strings.SplitN(line, ",", 3)
	if len(fields) != 3 {
		return core.Entry{}, fmt.Errorf("%w: want 3 fields, got %d in %q", core.ErrMalformedEntry, len(fields), line)
	}
	return core.Entry{ID: fields[0], Timestamp: fields[1], Path: fields[2]}, nil
}

var _ core.FileLog = (*Log)(nil)
