package core

import "context"

// Repository defines the contract for writing and reading payload files.
// Adhering to this interface keeps the service independent of the codecs
// and of the filesystem layout.
type Repository interface {
	// Write persists p at path in format f, creating parent directories.
	Write(ctx context.Context, p Payload, path string, f Format) error

	// Read loads the payload stored at path, choosing the codec by extension.
	// A missing path yields an error wrapping ErrNotFound.
	Read(ctx context.Context, path string) (Payload, error)

	// Glob returns the files in dir whose name matches pattern with the
	// extension of f, in a deterministic order. The directory must exist.
	Glob(ctx context.Context, dir, pattern string, f Format) ([]string, error)
}

// FileLog is the append-only record of past saves.
type FileLog interface {
	// Append writes one entry at the end of the log.
	Append(ctx context.Context, e Entry) error

	// Entries returns every entry in write order.
	// A missing or unreadable log yields an error wrapping ErrNotFound.
	Entries(ctx context.Context) ([]Entry, error)
}
