package fs

import (
	"encoding/csv"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/stabilefrisur/aa-data-handler/pkg/core"
)

// Codec defines how to read and write a specific file format.
type Codec interface {
	// Encode writes p to w.
	Encode(w io.Writer, p core.Payload) error
	// Decode reads a payload from r.
	Decode(r io.Reader) (core.Payload, error)
}

// DefaultCodecs returns the standard set of codecs keyed by extension.
func DefaultCodecs() map[string]Codec {
	return map[string]Codec{
		".csv":  NewCSVCodec(),
		".xlsx": NewExcelCodec(),
		".p":    NewGobCodec(),
		".png":  NewChartCodec(core.FormatPNG),
		".svg":  NewChartCodec(core.FormatSVG),
	}
}

// --- CSV Codec ---

// CSVCodec handles delimited text. The row index is not written.
type CSVCodec struct{}

// NewCSVCodec creates a new CSV codec.
func NewCSVCodec() *CSVCodec {
	return &CSVCodec{}
}

func (c *CSVCodec) Encode(w io.Writer, p core.Payload) error {
	var t core.Table
	switch v := p.(type) {
	case core.Table:
		t = v
	case core.Series:
		t = v.Frame()
	default:
		return fmt.Errorf("%w for %s: csv", core.ErrUnsupportedFormat, kindOf(p))
	}

	cw := csv.NewWriter(w)
	if err := writeRecord(cw, w, t.Columns); err != nil {
		return err
	}
	record := make([]string, len(t.Columns))
	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return fmt.Errorf("row %d has %d cells, want %d", i, len(row), len(t.Columns))
		}
		for j, v := range row {
			record[j] = MarshalCell(v)
		}
		if err := writeRecord(cw, w, record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeRecord writes one csv record. A record holding a single empty field
// is written as a quoted empty string; csv.Writer would emit a blank line,
// which csv.Reader skips.
func writeRecord(cw *csv.Writer, w io.Writer, record []string) error {
	if len(record) != 1 || record[0] != "" {
		return cw.Write(record)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\"\"\n")
	return err
}

func (c *CSVCodec) Decode(r io.Reader) (core.Payload, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid csv: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("invalid csv: no header row")
	}
	return tableFromRecords(records)
}

// --- Gob Codec ---

// GobCodec persists the payload value itself, index and cell types included.
// It backs the "pickle" format.
type GobCodec struct{}

// NewGobCodec creates a new binary codec.
func NewGobCodec() *GobCodec {
	return &GobCodec{}
}

type envelope struct {
	Payload core.Payload
}

func init() {
	gob.Register(core.Table{})
	gob.Register(core.Series{})
	gob.Register(core.Book{})
}

func (c *GobCodec) Encode(w io.Writer, p core.Payload) error {
	if _, ok := p.(core.Chart); ok {
		return fmt.Errorf("%w for chart: pickle", core.ErrUnsupportedFormat)
	}
	if err := gob.NewEncoder(w).Encode(&envelope{Payload: p}); err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}
	return nil
}

func (c *GobCodec) Decode(r io.Reader) (core.Payload, error) {
	var env envelope
	if err := gob.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("invalid binary payload: %w", err)
	}
	if env.Payload == nil {
		return nil, errors.New("invalid binary payload: empty")
	}
	return env.Payload, nil
}

// --- Helpers ---

// tableFromRecords turns a header row plus data rows into a table.
// Short rows are padded with empty cells.
func tableFromRecords(records [][]string) (core.Table, error) {
	t := core.Table{}
	if len(records) == 0 {
		return t, nil
	}
	t.Columns = append([]string(nil), records[0]...)
	for i, rec := range records[1:] {
		if len(rec) > len(t.Columns) {
			return core.Table{}, fmt.Errorf("row %d has %d cells, header has %d", i+1, len(rec), len(t.Columns))
		}
		row := make([]any, len(t.Columns))
		for j, s := range rec {
			row[j] = UnmarshalCell(s)
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// MarshalCell renders a cell as text. Integral floats keep a trailing ".0"
// so they read back as floats. NaN and nil become empty cells.
func MarshalCell(v any) string {
	switch x := core.NormalizeCell(v).(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		if math.IsNaN(x) {
			return ""
		}
		s := strconv.FormatFloat(x, 'f', -1, 64)
		if !math.IsInf(x, 0) && !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// UnmarshalCell infers the cell type of a text value: empty is nil, then
// int64, float64 and bool (true/false in any case) are tried before string.
//
// CAVEAT: a string column holding only digits round-trips as integers.
func UnmarshalCell(s string) any {
	if s == "" {
		return nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// ParseFloat accepts "inf" and "nan"; only numerals are floats here.
	if strings.ContainsAny(s, "0123456789") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	return s
}

func kindOf(p core.Payload) string {
	if p == nil {
		return "nil payload"
	}
	return p.Kind()
}
