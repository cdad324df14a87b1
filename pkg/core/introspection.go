package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	TimestampLayout string `json:"timestamp_layout"`
	RepositoryType  string `json:"repository_type"`
	FileLogType     string `json:"file_log_type"`
	Saves           int    `json:"saves"`
	Loads           int    `json:"loads"`
	LastEntry       *Entry `json:"last_entry,omitempty"`
	MetricsEnabled  bool   `json:"metrics_enabled"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var last *Entry
	if s.last != nil {
		e := *s.last
		last = &e
	}

	return ServiceState{
		TimestampLayout: s.layout,
		RepositoryType:  componentType(s.repo, "repository"),
		FileLogType:     componentType(s.log, "file_log"),
		Saves:           s.saves,
		Loads:           s.loads,
		LastEntry:       last,
		MetricsEnabled:  s.metrics != nil,
	}
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

func componentType(v any, fallback string) string {
	if v == nil {
		return "unknown"
	}
	if comp, ok := v.(introspection.Component); ok {
		return comp.ComponentType()
	}
	return fallback
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
