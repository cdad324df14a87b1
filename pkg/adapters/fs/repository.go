package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/facette/natsort"

	"github.com/stabilefrisur/aa-data-handler/pkg/core"
)

// Repository implements core.Repository on the local filesystem.
type Repository struct {
	codecs map[string]Codec
	logger *slog.Logger

	mu      sync.RWMutex
	written int
	read    int
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Logger *slog.Logger
	// Codecs overrides or extends DefaultCodecs, keyed by extension (".csv").
	Codecs map[string]Codec
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) *Repository {
	codecs := DefaultCodecs()
	for ext, c := range config.Codecs {
		codecs[ext] = c
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Repository{codecs: codecs, logger: logger}
}

// Write persists a payload.
//
// Workflow:
//  1. Check the payload shape against the format before touching the disk.
//  2. Create the parent directories.
//  3. Books bound for xlsx write nested books to sibling <key>.xlsx files.
//  4. Encode into the target file; a failed encode removes the partial file.
func (r *Repository) Write(ctx context.Context, p core.Payload, path string, f core.Format) error {
	if err := core.Supports(p, f); err != nil {
		return err
	}
	codec, ok := r.codecs["."+f.Extension()]
	if !ok {
		return fmt.Errorf("%w: no codec for %s", core.ErrUnsupportedFormat, f)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	if book, ok := p.(core.Book); ok && f == core.FormatXLSX {
		return r.writeBook(ctx, codec, book, path)
	}
	return r.writeFile(ctx, codec, p, path)
}

func (r *Repository) writeBook(ctx context.Context, codec Codec, b core.Book, path string) error {
	flat := core.Book{}
	for _, s := range b.Sheets {
		nested, ok := s.Value.(core.Book)
		if !ok {
			flat.Sheets = append(flat.Sheets, s)
			continue
		}
		nestedPath := filepath.Join(filepath.Dir(path), s.Name+".xlsx")
		if err := r.writeBook(ctx, codec, nested, nestedPath); err != nil {
			return err
		}
	}
	return r.writeFile(ctx, codec, flat, path)
}

func (r *Repository) writeFile(ctx context.Context, codec Codec, p core.Payload, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := codec.Encode(file, p); err != nil {
		file.Close()
		os.Remove(path)
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	r.mu.Lock()
	r.written++
	r.mu.Unlock()

	r.logger.Info("file written", "kind", p.Kind(), "path", path)
	return nil
}

// Read loads the payload at path. The codec is chosen by the file extension.
func (r *Repository) Read(ctx context.Context, path string) (core.Payload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: file %s does not exist", core.ErrNotFound, path)
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", core.ErrNotFound, path)
	}

	ext := filepath.Ext(path)
	codec, ok := r.codecs[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrUnsupportedFormat, ext)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	p, err := codec.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	r.mu.Lock()
	r.read++
	r.mu.Unlock()

	r.logger.Debug("file read", "kind", p.Kind(), "path", path)
	return p, nil
}

// Glob matches pattern.ext inside dir using doublestar syntax.
// Matches are returned in natural order (data_2 before data_10).
func (r *Repository) Glob(ctx context.Context, dir, pattern string, f core.Format) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: directory %s does not exist", core.ErrNotFound, dir)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", core.ErrNotFound, dir)
	}

	matches, err := doublestar.Glob(os.DirFS(dir), pattern+"."+f.Extension(), doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no files matching %s.%s in %s", core.ErrNotFound, pattern, f.Extension(), dir)
	}

	natsort.Sort(matches)
	paths := make([]string, len(matches))
	for i, m := range matches {
		paths[i] = filepath.Join(dir, filepath.FromSlash(m))
	}
	return paths, nil
}

// Extensions lists the registered codec extensions, sorted.
func (r *Repository) Extensions() []string {
	exts := make([]string, 0, len(r.codecs))
	for ext := range r.codecs {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

var _ core.Repository = (*Repository)(nil)
