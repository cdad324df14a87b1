package core

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FindByID returns the entry with the given identifier.
func FindByID(entries []Entry, id string) (Entry, bool) {
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].ID == id {
			return entries[i], true
		}
	}
	return Entry{}, false
}

// LatestMatch scans entries from the most recent to the oldest and returns
// the first one whose stem contains name (or matches it, when name holds a
// '*' wildcard), whose format is f and whose directory is dir.
// Empty filters match everything.
func LatestMatch(entries []Entry, name string, f Format, dir string) (Entry, bool) {
	if dir != "" {
		dir = filepath.Clean(dir)
	}
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if f != "" && e.Format() != f {
			continue
		}
		if dir != "" && filepath.Clean(e.Dir()) != dir {
			continue
		}
		if !matchName(e.Name(), name) {
			continue
		}
		return e, true
	}
	return Entry{}, false
}

func matchName(stem, name string) bool {
	if name == "" {
		return true
	}
	if strings.Contains(name, "*") {
		ok, err := doublestar.Match(name, stem)
		return err == nil && ok
	}
	return strings.Contains(stem, name)
}
