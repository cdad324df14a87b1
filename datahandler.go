package datahandler

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/stabilefrisur/aa-data-handler/internal/platform"
	"github.com/stabilefrisur/aa-data-handler/pkg/adapters/fs"
	"github.com/stabilefrisur/aa-data-handler/pkg/core"
	"github.com/stabilefrisur/aa-data-handler/pkg/idgen"
)

// --- Types ---

// Payload is a public alias for the payload sum type.
type Payload = core.Payload

// Table is a public alias for core.Table.
type Table = core.Table

// Series is a public alias for core.Series.
type Series = core.Series

// Book is a public alias for core.Book.
type Book = core.Book

// Sheet is a public alias for core.Sheet.
type Sheet = core.Sheet

// Chart is a public alias for core.Chart.
type Chart = core.Chart

// Format is a public alias for core.Format.
type Format = core.Format

// Entry is a public alias for a file log entry.
type Entry = core.Entry

// Query is a public alias for core.Query.
type Query = core.Query

// Handler is the service performing saves and loads.
type Handler = core.Service

const (
	CSV    = core.FormatCSV
	XLSX   = core.FormatXLSX
	Pickle = core.FormatPickle
	PNG    = core.FormatPNG
	SVG    = core.FormatSVG
)

// Errors returned by Save and Load; match them with errors.Is.
var (
	ErrNotFound          = core.ErrNotFound
	ErrUnsupportedFormat = core.ErrUnsupportedFormat
	ErrUnsupportedType   = core.ErrUnsupportedType
	ErrMalformedEntry    = core.ErrMalformedEntry
	ErrInvalidQuery      = core.ErrInvalidQuery
	ErrAmbiguous         = core.ErrAmbiguous
)

// --- Constructors ---

// NewTable builds a table from column names and rows.
func NewTable(columns []string, rows ...[]any) Table {
	return core.NewTable(columns, rows...)
}

// NewSeries builds a named series.
func NewSeries(name string, values ...any) Series {
	return core.NewSeries(name, values...)
}

// NewBook builds an ordered collection of sheets.
func NewBook(sheets ...Sheet) Book {
	return core.NewBook(sheets...)
}

// NewChart wraps a rendered figure (e.g. a gonum *plot.Plot).
func NewChart(fig core.Figure) Chart {
	return core.NewChart(fig)
}

// ParseFormat validates a format name such as "csv" or "pickle".
func ParseFormat(s string) (Format, error) {
	return core.ParseFormat(s)
}

// --- Configuration ---

// Option defines a functional option for configuring the handler.
type Option = platform.Option

// WithLogger sets the action logger.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithFileLog sets the path of the file log.
func WithFileLog(path string) Option {
	return platform.WithFileLog(path)
}

// WithTimestampLayout sets the layout of file name timestamps.
func WithTimestampLayout(layout string) Option {
	return platform.WithTimestampLayout(layout)
}

// WithIDGenerator sets the generator of file log identifiers.
func WithIDGenerator(gen idgen.Generator) Option {
	return platform.WithIDGenerator(gen)
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return platform.WithClock(now)
}

// WithMetrics registers Prometheus counters with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return platform.WithMetrics(reg)
}

// WithRepository allows injecting a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithLog allows injecting a custom file log.
func WithLog(log core.FileLog) Option {
	return platform.WithLog(log)
}

// WithCodec registers a codec for a file extension.
func WithCodec(ext string, c fs.Codec) Option {
	return platform.WithCodec(ext, c)
}

// WithTimestamp controls the timestamp prefix of a single Save call.
func WithTimestamp(enabled bool) core.SaveOption {
	return core.WithTimestamp(enabled)
}

// --- Factory ---

// New creates a new Handler.
func New(opts ...Option) (*Handler, error) {
	return platform.New(opts...)
}
