package platform

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/stabilefrisur/aa-data-handler/pkg/adapters/fs"
	"github.com/stabilefrisur/aa-data-handler/pkg/core"
	"github.com/stabilefrisur/aa-data-handler/pkg/idgen"
)

// options holds the internal configuration for the data handler.
type options struct {
	logger          *slog.Logger
	logPath         string
	timestampLayout string
	idgen           idgen.Generator
	clock           func() time.Time
	registerer      prometheus.Registerer
	repository      core.Repository
	fileLog         core.FileLog
	codecs          map[string]fs.Codec
}

// Option defines a functional option for configuring the data handler.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		logger:          nil,
		logPath:         "",
		timestampLayout: core.DefaultTimestampLayout,
		idgen:           idgen.Default,
		clock:           time.Now,
		codecs:          make(map[string]fs.Codec),
	}
}

// WithLogger sets the action logger. Without it actions are not logged.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithFileLog sets the path of the file log. Defaults to "file_log.log"
// in the working directory.
func WithFileLog(path string) Option {
	return func(o *options) {
		o.logPath = path
	}
}

// WithTimestampLayout sets the time.Format layout used for file name
// prefixes and log timestamps.
func WithTimestampLayout(layout string) Option {
	return func(o *options) {
		o.timestampLayout = layout
	}
}

// WithIDGenerator sets the generator of file log identifiers.
func WithIDGenerator(gen idgen.Generator) Option {
	return func(o *options) {
		o.idgen = gen
	}
}

// WithClock overrides the time source (useful for testing).
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.clock = now
	}
}

// WithMetrics registers save/load counters with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// WithRepository allows injecting a custom storage adapter (e.g. mock, s3).
// If provided, the default filesystem adapter will be skipped.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithLog allows injecting a custom file log implementation.
// If provided, WithFileLog is ignored.
func WithLog(log core.FileLog) Option {
	return func(o *options) {
		o.fileLog = log
	}
}

// WithCodec registers a codec for an extension (e.g. ".tsv") on the default
// filesystem adapter.
func WithCodec(ext string, c fs.Codec) Option {
	return func(o *options) {
		o.codecs[ext] = c
	}
}
