package fs_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stabilefrisur/aa-data-handler/pkg/adapters/fs"
	"github.com/stabilefrisur/aa-data-handler/pkg/core"
)

func TestMarshalCell(t *testing.T) {
	assert.Equal(t, "", fs.MarshalCell(nil))
	assert.Equal(t, "42", fs.MarshalCell(42))
	assert.Equal(t, "1.0", fs.MarshalCell(1.0))
	assert.Equal(t, "2.5", fs.MarshalCell(2.5))
	assert.Equal(t, "", fs.MarshalCell(math.NaN()))
	assert.Equal(t, "true", fs.MarshalCell(true))
	assert.Equal(t, "text", fs.MarshalCell("text"))
}

func TestUnmarshalCell(t *testing.T) {
	assert.Nil(t, fs.UnmarshalCell(""))
	assert.Equal(t, int64(-7), fs.UnmarshalCell("-7"))
	assert.Equal(t, 1.0, fs.UnmarshalCell("1.0"))
	assert.Equal(t, 0.25, fs.UnmarshalCell("0.25"))
	assert.Equal(t, true, fs.UnmarshalCell("TRUE"))
	assert.Equal(t, false, fs.UnmarshalCell("false"))
	assert.Equal(t, "inf", fs.UnmarshalCell("inf"))
	assert.Equal(t, "abc", fs.UnmarshalCell("abc"))
}

func TestCSVCodec(t *testing.T) {
	codec := fs.NewCSVCodec()

	t.Run("Table", func(t *testing.T) {
		table := core.NewTable([]string{"name", "value", "ok"},
			[]any{"a,b", 1.0, true},
			[]any{"c", nil, false},
		)

		var buf bytes.Buffer
		require.NoError(t, codec.Encode(&buf, table))
		assert.Equal(t, "name,value,ok\n\"a,b\",1.0,true\nc,,false\n", buf.String())

		got, err := codec.Decode(&buf)
		require.NoError(t, err)
		assert.Equal(t, table, got)
	})

	t.Run("Series Without Name", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, codec.Encode(&buf, core.NewSeries("", 1, 2)))
		assert.Equal(t, "0\n1\n2\n", buf.String())
	})

	t.Run("Single Column Empty Cells", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, codec.Encode(&buf, core.NewSeries("v", 1, nil, math.NaN(), 3)))
		assert.Equal(t, "v\n1\n\"\"\n\"\"\n3\n", buf.String())

		got, err := codec.Decode(&buf)
		require.NoError(t, err)
		assert.Equal(t, core.NewTable([]string{"v"}, []any{1}, []any{nil}, []any{nil}, []any{3}), got)
	})

	t.Run("Single Column Leading Nil", func(t *testing.T) {
		table := core.NewTable([]string{"x"}, []any{nil}, []any{1})

		var buf bytes.Buffer
		require.NoError(t, codec.Encode(&buf, table))

		got, err := codec.Decode(&buf)
		require.NoError(t, err)
		require.Len(t, got.(core.Table).Rows, 2)
		assert.Equal(t, table, got)
	})

	t.Run("Empty Column Name", func(t *testing.T) {
		table := core.NewTable([]string{""}, []any{"a"})

		var buf bytes.Buffer
		require.NoError(t, codec.Encode(&buf, table))
		assert.Equal(t, "\"\"\na\n", buf.String())

		got, err := codec.Decode(&buf)
		require.NoError(t, err)
		assert.Equal(t, table, got)
	})

	t.Run("Index Is Dropped", func(t *testing.T) {
		table := core.NewTable([]string{"A"}, []any{1}).WithIndex("r1")

		var buf bytes.Buffer
		require.NoError(t, codec.Encode(&buf, table))

		got, err := codec.Decode(&buf)
		require.NoError(t, err)
		assert.Nil(t, got.(core.Table).Index)
	})

	t.Run("Ragged Row", func(t *testing.T) {
		table := core.Table{Columns: []string{"A", "B"}, Rows: [][]any{{int64(1)}}}
		assert.Error(t, codec.Encode(&bytes.Buffer{}, table))
	})

	t.Run("Book Rejected", func(t *testing.T) {
		err := codec.Encode(&bytes.Buffer{}, core.NewBook())
		assert.ErrorIs(t, err, core.ErrUnsupportedFormat)
	})

	t.Run("Empty Input", func(t *testing.T) {
		_, err := codec.Decode(&bytes.Buffer{})
		assert.Error(t, err)
	})
}

func TestGobCodec(t *testing.T) {
	codec := fs.NewGobCodec()

	t.Run("Table Keeps Index And Types", func(t *testing.T) {
		table := core.NewTable([]string{"A", "B"},
			[]any{1, "x"},
			[]any{2.5, true},
		).WithIndex("first", "second")

		var buf bytes.Buffer
		require.NoError(t, codec.Encode(&buf, table))

		got, err := codec.Decode(&buf)
		require.NoError(t, err)
		assert.Equal(t, table, got)
	})

	t.Run("Nested Book", func(t *testing.T) {
		book := core.NewBook(
			core.Sheet{Name: "prices", Value: core.NewSeries("p", 1.0, 2.0)},
			core.Sheet{Name: "inner", Value: core.NewBook(
				core.Sheet{Name: "t", Value: core.NewTable([]string{"A"}, []any{3})},
			)},
		)

		var buf bytes.Buffer
		require.NoError(t, codec.Encode(&buf, book))

		got, err := codec.Decode(&buf)
		require.NoError(t, err)
		assert.Equal(t, book, got)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := codec.Decode(bytes.NewBufferString("not gob"))
		assert.Error(t, err)
	})
}
