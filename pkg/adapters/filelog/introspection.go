package filelog

import (
	"github.com/aretw0/introspection"
)

// LogState exposes internal state for observability.
type LogState struct {
	Path      string `json:"path"`
	Appended  int64  `json:"appended"`
	Followers int32  `json:"followers"`
}

// State implements introspection.Introspectable.
func (l *Log) State() any {
	return LogState{
		Path:      l.path,
		Appended:  l.appended.Load(),
		Followers: l.following.Load(),
	}
}

// ComponentType implements introspection.Component.
func (l *Log) ComponentType() string {
	return "file_log"
}

var _ introspection.Introspectable = (*Log)(nil)
var _ introspection.Component = (*Log)(nil)
