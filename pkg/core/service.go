package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTimestampLayout prefixes saved file names, e.g. 20240131_154502.
const DefaultTimestampLayout = "20060102_150405"

// ServiceConfig holds the collaborators of a Service.
type ServiceConfig struct {
	Repository Repository
	FileLog    FileLog
	// Logger receives the action log. Nil discards it.
	Logger *slog.Logger
	// NewID generates log identifiers. Defaults to random UUIDs.
	NewID func() string
	// Now is the clock used for timestamps. Defaults to time.Now.
	Now func() time.Time
	// TimestampLayout is a time.Format layout. Defaults to DefaultTimestampLayout.
	TimestampLayout string
	// Metrics is optional.
	Metrics *Metrics
}

// Service handles saving and loading payloads and keeps the file log.
type Service struct {
	repo    Repository
	log     FileLog
	logger  *slog.Logger
	newID   func() string
	now     func() time.Time
	layout  string
	metrics *Metrics

	mu    sync.RWMutex
	saves int
	loads int
	last  *Entry
}

// NewService creates a new Service.
func NewService(cfg ServiceConfig) *Service {
	s := &Service{
		repo:    cfg.Repository,
		log:     cfg.FileLog,
		logger:  cfg.Logger,
		newID:   cfg.NewID,
		now:     cfg.Now,
		layout:  cfg.TimestampLayout,
		metrics: cfg.Metrics,
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.layout == "" {
		s.layout = DefaultTimestampLayout
	}
	return s
}

type saveOptions struct {
	timestamp bool
}

// SaveOption tunes a single Save call.
type SaveOption func(*saveOptions)

// WithTimestamp controls whether the file name is prefixed with the current
// time. Enabled by default.
func WithTimestamp(enabled bool) SaveOption {
	return func(o *saveOptions) {
		o.timestamp = enabled
	}
}

// Save writes p to dir/name.ext and appends an entry to the file log.
//
// Workflow:
//  1. Check that the payload shape supports the format.
//  2. Build the file name, prefixed with a timestamp unless disabled.
//  3. Write the payload (the repository creates dir as needed).
//  4. Append identifier, timestamp and path to the file log.
func (s *Service) Save(ctx context.Context, p Payload, name string, f Format, dir string, opts ...SaveOption) (Entry, error) {
	if name == "" {
		return Entry{}, errors.New("file name cannot be empty")
	}
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}

	o := saveOptions{timestamp: true}
	for _, opt := range opts {
		opt(&o)
	}

	if err := Supports(p, f); err != nil {
		s.metrics.failed("save")
		return Entry{}, err
	}

	timestamp := s.now().Format(s.layout)
	fileName := name
	if o.timestamp {
		fileName = timestamp + "_" + name
	}
	fullPath := filepath.Join(dir, fileName+"."+f.Extension())

	s.logger.Info("saving payload", "kind", p.Kind(), "format", f, "path", fullPath)

	if err := s.repo.Write(ctx, p, fullPath, f); err != nil {
		s.metrics.failed("save")
		s.logger.Error("save failed", "path", fullPath, "error", err)
		return Entry{}, fmt.Errorf("failed to save %s: %w", fullPath, err)
	}

	entry := Entry{ID: s.newID(), Timestamp: timestamp, Path: fullPath}
	if err := s.log.Append(ctx, entry); err != nil {
		s.metrics.failed("save")
		s.logger.Error("file log append failed", "path", fullPath, "error", err)
		return Entry{}, fmt.Errorf("failed to record %s in file log: %w", fullPath, err)
	}

	s.metrics.saved(p.Kind(), f)
	s.logger.Info("payload saved", "kind", p.Kind(), "path", fullPath, "id", entry.ID)

	s.mu.Lock()
	s.saves++
	s.last = &entry
	s.mu.Unlock()

	return entry, nil
}

// Query selects the file(s) to load. Fields are tried in priority order:
// Path, then Name/Format (with optional Dir), then ID.
type Query struct {
	// Path is a full file path including the extension.
	Path string
	// Name is a file name without extension. It may contain '*' wildcards.
	Name string
	// Format narrows the search. With Dir it addresses Dir/Name.ext directly.
	Format Format
	// Dir is the directory holding the file.
	Dir string
	// ID is an identifier from the file log.
	ID string
}

// Loaded pairs a payload with the file it came from.
type Loaded struct {
	Path    string
	Payload Payload
}

// Load resolves q to one or more files and reads them.
// Wildcard queries return every match; all other queries return one element.
func (s *Service) Load(ctx context.Context, q Query) ([]Loaded, error) {
	paths, err := s.resolve(ctx, q)
	if err != nil {
		s.metrics.failed("load")
		return nil, err
	}

	out := make([]Loaded, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f := FormatForExtension(filepath.Ext(path))
		s.logger.Info("loading payload", "format", f, "path", path)

		p, err := s.repo.Read(ctx, path)
		if err != nil {
			s.metrics.failed("load")
			return nil, err
		}
		s.metrics.loaded(f)
		out = append(out, Loaded{Path: path, Payload: p})
	}

	s.mu.Lock()
	s.loads += len(out)
	s.mu.Unlock()

	return out, nil
}

// LoadOne is Load for queries expected to match exactly one file.
func (s *Service) LoadOne(ctx context.Context, q Query) (Payload, error) {
	res, err := s.Load(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(res) != 1 {
		return nil, fmt.Errorf("%w: %d files", ErrAmbiguous, len(res))
	}
	return res[0].Payload, nil
}

// Entries exposes the file log.
func (s *Service) Entries(ctx context.Context) ([]Entry, error) {
	return s.log.Entries(ctx)
}

// Repository returns the storage adapter.
func (s *Service) Repository() Repository {
	return s.repo
}

// FileLog returns the file log adapter.
func (s *Service) FileLog() FileLog {
	return s.log
}

func (s *Service) resolve(ctx context.Context, q Query) ([]string, error) {
	switch {
	case q.Path != "":
		return []string{q.Path}, nil

	case q.Name != "" || q.Format != "":
		f := FormatForExtension(string(q.Format))
		if q.Dir != "" && f != "" {
			name := q.Name
			if name == "" {
				name = "*"
			}
			if strings.Contains(name, "*") {
				matches, err := s.repo.Glob(ctx, q.Dir, name, f)
				if err != nil {
					return nil, err
				}
				s.logger.Info("found files matching pattern", "count", len(matches), "pattern", name, "dir", q.Dir)
				return matches, nil
			}
			return []string{filepath.Join(q.Dir, name+"."+f.Extension())}, nil
		}

		entries, err := s.log.Entries(ctx)
		if err != nil {
			return nil, err
		}
		e, ok := LatestMatch(entries, q.Name, f, q.Dir)
		if !ok {
			return nil, fmt.Errorf("%w: no file log entry matches name %q format %q", ErrNotFound, q.Name, q.Format)
		}
		return []string{e.Path}, nil

	case q.ID != "":
		entries, err := s.log.Entries(ctx)
		if err != nil {
			return nil, err
		}
		e, ok := FindByID(entries, q.ID)
		if !ok {
			return nil, fmt.Errorf("%w: no file log entry with id %s", ErrNotFound, q.ID)
		}
		return []string{e.Path}, nil
	}

	return nil, ErrInvalidQuery
}
