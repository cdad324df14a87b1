package fs_test

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stabilefrisur/aa-data-handler/pkg/core"
)

// asTable is what the text and spreadsheet formats give back: series become
// one-column tables.
func asTable(p core.Payload) core.Payload {
	if s, ok := p.(core.Series); ok {
		return s.Frame()
	}
	return p
}

func TestRoundTripCells(t *testing.T) {
	ctx := context.Background()
	all := []core.Format{core.FormatCSV, core.FormatXLSX, core.FormatPickle}

	tests := []struct {
		name    string
		payload core.Payload
		formats []core.Format
		// want overrides the expected payload for csv and xlsx.
		want core.Payload
	}{
		{
			name:    "Nil Cells",
			payload: core.NewTable([]string{"A", "B"}, []any{1, nil}, []any{nil, "x"}, []any{3, "y"}),
			formats: all,
		},
		{
			name:    "Integral Floats",
			payload: core.NewTable([]string{"x", "n"}, []any{2.0, 1}, []any{2.5, 2}, []any{nil, 3}),
			formats: all,
		},
		{
			name:    "Single Column Leading Nil Row",
			payload: core.NewTable([]string{"x"}, []any{nil}, []any{1}),
			formats: all,
		},
		{
			name:    "Single Column Trailing Nil Rows",
			payload: core.NewTable([]string{"x"}, []any{1}, []any{nil}, []any{nil}),
			formats: all,
		},
		{
			name:    "Trailing Empty Column",
			payload: core.NewTable([]string{"A", "B"}, []any{"a", nil}, []any{"b", nil}),
			formats: all,
		},
		{
			name:    "Series With Nil",
			payload: core.NewSeries("v", 1, nil, 3),
			formats: all,
		},
		{
			name:    "Unnamed Float Series",
			payload: core.NewSeries("", 1.0, 2.5),
			formats: all,
		},
		{
			name:    "NaN Becomes Empty",
			payload: core.NewTable([]string{"x"}, []any{1.5}, []any{math.NaN()}),
			formats: []core.Format{core.FormatCSV, core.FormatXLSX},
			want:    core.NewTable([]string{"x"}, []any{1.5}, []any{nil}),
		},
	}

	for _, tt := range tests {
		for _, f := range tt.formats {
			t.Run(tt.name+"/"+string(f), func(t *testing.T) {
				repo, dir := setupRepo(t)
				path := filepath.Join(dir, "data."+f.Extension())

				require.NoError(t, repo.Write(ctx, tt.payload, path, f))
				got, err := repo.Read(ctx, path)
				require.NoError(t, err)

				want := tt.payload
				if f != core.FormatPickle {
					want = asTable(tt.payload)
					if tt.want != nil {
						want = tt.want
					}
				}
				assert.Equal(t, want, got)
			})
		}
	}
}

func TestXLSXBookKeepsTrailingRows(t *testing.T) {
	ctx := context.Background()
	repo, dir := setupRepo(t)
	path := filepath.Join(dir, "book.xlsx")

	book := core.NewBook(
		core.Sheet{Name: "my data's", Value: core.NewTable([]string{"x"}, []any{1}, []any{nil})},
		core.Sheet{Name: "Prices", Value: core.NewSeries("p", 1.0, 2.5)},
	)
	require.NoError(t, repo.Write(ctx, book, path, core.FormatXLSX))

	got, err := repo.Read(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, core.NewBook(
		core.Sheet{Name: "my data's", Value: core.NewTable([]string{"x"}, []any{1}, []any{nil})},
		core.Sheet{Name: "Prices", Value: core.NewTable([]string{"p"}, []any{1.0}, []any{2.5})},
	), got)
}

func TestXLSXBookRejections(t *testing.T) {
	ctx := context.Background()
	table := core.NewTable([]string{"A"}, []any{1})

	tests := []struct {
		name string
		book core.Book
	}{
		{"Case Insensitive Duplicate Sheets", core.NewBook(
			core.Sheet{Name: "Data", Value: table},
			core.Sheet{Name: "data", Value: table},
		)},
		{"Empty Book", core.NewBook()},
		{"Only Nested Books", core.NewBook(
			core.Sheet{Name: "inner", Value: core.NewBook(core.Sheet{Name: "t", Value: table})},
		)},
		{"Nested Book Without Sheets", core.NewBook(
			core.Sheet{Name: "top", Value: table},
			core.Sheet{Name: "inner", Value: core.NewBook()},
		)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, dir := setupRepo(t)
			out := filepath.Join(dir, "out")

			err := repo.Write(ctx, tt.book, filepath.Join(out, "book.xlsx"), core.FormatXLSX)
			assert.ErrorIs(t, err, core.ErrUnsupportedType)
			assert.NoDirExists(t, out, "nothing should be written")
		})
	}
}
