// Package idgen provides pluggable identifier generation for file log entries.
package idgen

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// Generator produces unique string identifiers.
type Generator func() string

// UUIDv4 returns a Generator that produces random RFC 9562 UUIDs.
func UUIDv4() Generator {
	return uuid.NewString
}

// UUIDv7 returns a Generator that produces time-sortable RFC 9562 UUID v7 strings.
func UUIDv7() Generator {
	return func() string {
		return uuid.Must(uuid.NewV7()).String()
	}
}

// ULID returns a Generator that produces monotonic ULIDs.
// ulid.Make is safe for concurrent use.
func ULID() Generator {
	return func() string {
		return ulid.Make().String()
	}
}

// Default is random UUIDs, the format the log has always carried.
var Default Generator = UUIDv4()

// New produces an ID using the Default generator.
func New() string {
	return Default()
}

// ByName resolves a configured strategy: "uuid4", "uuid7" or "ulid".
// An empty name selects Default.
func ByName(name string) (Generator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return Default, nil
	case "uuid", "uuid4":
		return UUIDv4(), nil
	case "uuid7":
		return UUIDv7(), nil
	case "ulid":
		return ULID(), nil
	}
	return nil, fmt.Errorf("unknown id strategy: %q", name)
}
