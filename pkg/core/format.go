package core

import (
	"fmt"
	"strings"
)

// Format names an on-disk payload format.
type Format string

const (
	FormatCSV    Format = "csv"
	FormatXLSX   Format = "xlsx"
	FormatPickle Format = "pickle"
	FormatPNG    Format = "png"
	FormatSVG    Format = "svg"
)

// pickleExt is the on-disk extension of the binary-serialized format.
const pickleExt = "p"

// Extension returns the file extension (without dot) used for f.
func (f Format) Extension() string {
	if f == FormatPickle {
		return pickleExt
	}
	return string(f)
}

func (f Format) String() string { return string(f) }

// FormatForExtension maps a file extension, with or without its leading dot,
// back to a Format. Both "p" and "pickle" map to FormatPickle.
func FormatForExtension(ext string) Format {
	ext = strings.TrimPrefix(ext, ".")
	if ext == pickleExt {
		return FormatPickle
	}
	return Format(ext)
}

// ParseFormat validates a format name given by a caller.
func ParseFormat(s string) (Format, error) {
	f := FormatForExtension(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatCSV, FormatXLSX, FormatPickle, FormatPNG, FormatSVG:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Supports reports whether payload p can be written in format f.
// The error wraps ErrUnsupportedType or ErrUnsupportedFormat.
func Supports(p Payload, f Format) error {
	switch v := p.(type) {
	case Table:
		return tabular("table", f)
	case Series:
		return tabular("series", f)
	case Book:
		if err := validateBook(v); err != nil {
			return err
		}
		if f != FormatXLSX && f != FormatPickle {
			return fmt.Errorf("%w for book: %s", ErrUnsupportedFormat, f)
		}
		if f == FormatXLSX {
			return checkWorkbooks(v, "")
		}
		return nil
	case Chart:
		if v.Figure == nil {
			return fmt.Errorf("%w: chart has no figure", ErrUnsupportedType)
		}
		if f != FormatPNG && f != FormatSVG {
			return fmt.Errorf("%w for chart: %s", ErrUnsupportedFormat, f)
		}
		return nil
	case nil:
		return fmt.Errorf("%w: nil payload", ErrUnsupportedType)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, p)
	}
}

func tabular(kind string, f Format) error {
	switch f {
	case FormatCSV, FormatXLSX, FormatPickle:
		return nil
	}
	return fmt.Errorf("%w for %s: %s", ErrUnsupportedFormat, kind, f)
}

func validateBook(b Book) error {
	// Spreadsheet sheet names are case-insensitive.
	seen := make(map[string]string, len(b.Sheets))
	for _, s := range b.Sheets {
		if s.Name == "" {
			return fmt.Errorf("%w: book sheet without a name", ErrUnsupportedType)
		}
		key := strings.ToLower(s.Name)
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("%w: duplicate book sheet %q (clashes with %q)", ErrUnsupportedType, s.Name, prev)
		}
		seen[key] = s.Name

		switch v := s.Value.(type) {
		case Table, Series:
		case Book:
			if err := validateBook(v); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: book sheet %q holds %T, want table, series or book", ErrUnsupportedType, s.Name, s.Value)
		}
	}
	return nil
}

// checkWorkbooks reports an error when b, or a book nested in it, holds no
// table or series. Each such book becomes its own workbook and would be
// written as a single empty sheet.
func checkWorkbooks(b Book, name string) error {
	flat := false
	for _, s := range b.Sheets {
		switch v := s.Value.(type) {
		case Table, Series:
			flat = true
		case Book:
			if err := checkWorkbooks(v, s.Name); err != nil {
				return err
			}
		}
	}
	if flat {
		return nil
	}
	if name == "" {
		return fmt.Errorf("%w: book holds no table or series to write as a sheet", ErrUnsupportedType)
	}
	return fmt.Errorf("%w: nested book %q holds no table or series to write as a sheet", ErrUnsupportedType, name)
}
