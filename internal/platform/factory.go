package platform

import (
	"fmt"
	"log/slog"

	"github.com/stabilefrisur/aa-data-handler/pkg/adapters/filelog"
	"github.com/stabilefrisur/aa-data-handler/pkg/adapters/fs"
	"github.com/stabilefrisur/aa-data-handler/pkg/core"
)

// svc, err := datahandler.New(datahandler.WithFileLog("file_log.log"))
func New(opts ...Option) (*core.Service, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	repo := o.repository
	if repo == nil {
		repo = fs.NewRepository(fs.Config{
			Logger: logger,
			Codecs: o.codecs,
		})
	}

	log := o.fileLog
	if log == nil {
		log = filelog.New(o.logPath, logger)
	}

	var metrics *core.Metrics
	if o.registerer != nil {
		m, err := core.NewMetrics(o.registerer)
		if err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		metrics = m
	}

	return core.NewService(core.ServiceConfig{
		Repository:      repo,
		FileLog:         log,
		Logger:          logger,
		NewID:           o.idgen,
		Now:             o.clock,
		TimestampLayout: o.timestampLayout,
		Metrics:         metrics,
	}), nil
}

