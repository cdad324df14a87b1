package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stabilefrisur/aa-data-handler/pkg/core"
)

func TestNewTableNormalizesCells(t *testing.T) {
	table := core.NewTable([]string{"A", "B"}, []any{1, float32(0.5)}, []any{uint8(2), "x"})

	assert.Equal(t, 2, table.NumRows())
	assert.Equal(t, []any{int64(1), float64(0.5)}, table.Rows[0])
	assert.Equal(t, []any{int64(2), "x"}, table.Rows[1])

	col, ok := table.Column("A")
	assert.True(t, ok)
	assert.Equal(t, []any{int64(1), int64(2)}, col)

	_, ok = table.Column("missing")
	assert.False(t, ok)
}

func TestSeriesFrame(t *testing.T) {
	s := core.NewSeries("", 1, 2)
	s.Index = []any{"a", "b"}

	frame := s.Frame()
	assert.Equal(t, []string{"0"}, frame.Columns)
	assert.Equal(t, []any{"a", "b"}, frame.Index)
	assert.Equal(t, [][]any{{int64(1)}, {int64(2)}}, frame.Rows)

	assert.Equal(t, "prices", core.NewSeries("prices").ColumnName())
}

func TestBookLookup(t *testing.T) {
	b := core.NewBook(
		core.Sheet{Name: "first", Value: core.NewSeries("x", 1)},
		core.Sheet{Name: "second", Value: core.NewTable([]string{"A"})},
	)

	assert.Equal(t, []string{"first", "second"}, b.Names())
	v, ok := b.Sheet("second")
	assert.True(t, ok)
	assert.Equal(t, "table", v.Kind())

	_, ok = b.Sheet("third")
	assert.False(t, ok)
}

func TestChartSize(t *testing.T) {
	w, h := core.Chart{}.Size()
	assert.Equal(t, core.DefaultChartWidth, w)
	assert.Equal(t, core.DefaultChartHeight, h)
}

func TestEntryAccessors(t *testing.T) {
	e := core.Entry{ID: "id-1", Timestamp: "20240101_120000", Path: "data/20240101_120000_prices.p"}

	assert.Equal(t, core.FormatPickle, e.Format())
	assert.Equal(t, "20240101_120000_prices", e.Name())
	assert.Equal(t, "data", e.Dir())
	assert.Equal(t, "id-1,20240101_120000,data/20240101_120000_prices.p", e.String())
}
