package core

import (
	"io"

	"gonum.org/v1/plot/vg"
)

// Payload is one of the shapes the handler knows how to persist:
// Table, Series, Book or Chart. The set is closed.
type Payload interface {
	// Kind names the variant ("table", "series", "book", "chart").
	Kind() string
	isPayload()
}

// Table is a two-dimensional labeled data structure.
// Rows are stored row major and every row has len(Columns) cells.
type Table struct {
	Columns []string
	// Index labels the rows. Nil means the default positional index.
	Index []any
	Rows  [][]any
}

// NewTable builds a table, normalizing every cell with NormalizeCell.
func NewTable(columns []string, rows ...[]any) Table {
	t := Table{Columns: columns}
	for _, row := range rows {
		t.Rows = append(t.Rows, normalizeRow(row))
	}
	return t
}

func (Table) Kind() string { return "table" }
func (Table) isPayload()   {}

// NumRows returns the number of rows.
func (t Table) NumRows() int { return len(t.Rows) }

// Column returns the cells of the named column.
func (t Table) Column(name string) ([]any, bool) {
	idx := -1
	for i, c := range t.Columns {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	col := make([]any, len(t.Rows))
	for i, row := range t.Rows {
		if idx < len(row) {
			col[i] = row[idx]
		}
	}
	return col, true
}

// WithIndex returns a copy of t labeled with the given index.
func (t Table) WithIndex(index ...any) Table {
	t.Index = normalizeRow(index)
	return t
}

// Series is a one-dimensional labeled data structure.
type Series struct {
	Name   string
	Index  []any
	Values []any
}

// NewSeries builds a series, normalizing every value with NormalizeCell.
func NewSeries(name string, values ...any) Series {
	return Series{Name: name, Values: normalizeRow(values)}
}

func (Series) Kind() string { return "series" }
func (Series) isPayload()   {}

// ColumnName is the header used when the series becomes a table column.
// Unnamed series use "0".
func (s Series) ColumnName() string {
	if s.Name == "" {
		return "0"
	}
	return s.Name
}

// Frame converts the series into a single-column table, keeping its index.
func (s Series) Frame() Table {
	t := Table{Columns: []string{s.ColumnName()}, Index: s.Index}
	for _, v := range s.Values {
		t.Rows = append(t.Rows, []any{v})
	}
	return t
}

// Sheet is one named entry of a Book.
type Sheet struct {
	Name  string
	Value Payload
}

// Book is an ordered mapping of names to payloads.
// Values are Tables, Series or nested Books.
type Book struct {
	Sheets []Sheet
}

// NewBook builds a book from the given sheets.
func NewBook(sheets ...Sheet) Book {
	return Book{Sheets: sheets}
}

func (Book) Kind() string { return "book" }
func (Book) isPayload()   {}

// Sheet returns the value stored under name.
func (b Book) Sheet(name string) (Payload, bool) {
	for _, s := range b.Sheets {
		if s.Name == name {
			return s.Value, true
		}
	}
	return nil, false
}

// Names returns the sheet names in order.
func (b Book) Names() []string {
	names := make([]string, len(b.Sheets))
	for i, s := range b.Sheets {
		names[i] = s.Name
	}
	return names
}

// Figure renders a chart into the requested image format.
// *plot.Plot from gonum.org/v1/plot satisfies it.
type Figure interface {
	WriterTo(w, h vg.Length, format string) (io.WriterTo, error)
}

// Default chart size, 6.4in x 4.8in.
const (
	DefaultChartWidth  = 6.4 * vg.Inch
	DefaultChartHeight = 4.8 * vg.Inch
)

// Chart is a rendered figure. A zero Width or Height uses the default size.
type Chart struct {
	Figure Figure
	Width  vg.Length
	Height vg.Length
}

// NewChart wraps a figure with the default size.
func NewChart(fig Figure) Chart {
	return Chart{Figure: fig, Width: DefaultChartWidth, Height: DefaultChartHeight}
}

func (Chart) Kind() string { return "chart" }
func (Chart) isPayload()   {}

// Size returns the chart dimensions, substituting defaults for zero values.
func (c Chart) Size() (vg.Length, vg.Length) {
	w, h := c.Width, c.Height
	if w <= 0 {
		w = DefaultChartWidth
	}
	if h <= 0 {
		h = DefaultChartHeight
	}
	return w, h
}

// NormalizeCell maps Go scalar values onto the cell types persisted by the
// codecs: nil, int64, float64, bool and string. Other values pass through.
func NormalizeCell(v any) any {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case uint:
		return int64(x)
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		return int64(x)
	case float32:
		return float64(x)
	default:
		return v
	}
}

func normalizeRow(row []any) []any {
	if row == nil {
		return nil
	}
	out := make([]any, len(row))
	for i, v := range row {
		out[i] = NormalizeCell(v)
	}
	return out
}
