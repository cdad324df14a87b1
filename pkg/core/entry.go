package core

import (
	"path/filepath"
	"strings"
)

// Entry records one successful save in the file log.
type Entry struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Path      string `json:"path"`
}

// Format is derived from the path suffix.
func (e Entry) Format() Format {
	return FormatForExtension(filepath.Ext(e.Path))
}

// Name is the path stem.
func (e Entry) Name() string {
	base := filepath.Base(e.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Dir is the directory holding the file.
func (e Entry) Dir() string {
	return filepath.Dir(e.Path)
}

// String renders the entry as its log line, without the newline.
func (e Entry) String() string {
	return e.ID + "," + e.Timestamp + "," + e.Path
}
