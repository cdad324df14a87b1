package core

import "errors"

// Common errors.
var (
	ErrNotFound          = errors.New("not found")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrUnsupportedType   = errors.New("unsupported payload type")
	ErrMalformedEntry    = errors.New("malformed file log entry")
	ErrInvalidQuery      = errors.New("insufficient parameters to locate a file")
	ErrAmbiguous         = errors.New("query matched more than one file")
)
