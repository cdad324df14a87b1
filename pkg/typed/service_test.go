package typed_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stabilefrisur/aa-data-handler/pkg/adapters/filelog"
	"github.com/stabilefrisur/aa-data-handler/pkg/adapters/fs"
	"github.com/stabilefrisur/aa-data-handler/pkg/core"
	"github.com/stabilefrisur/aa-data-handler/pkg/typed"
)

func newService(t *testing.T) (*core.Service, string) {
	t.Helper()
	dir := t.TempDir()
	return core.NewService(core.ServiceConfig{
		Repository: fs.NewRepository(fs.Config{}),
		FileLog:    filelog.New(filepath.Join(dir, "file_log.log"), nil),
	}), dir
}

func TestTypedLoad(t *testing.T) {
	svc, dir := newService(t)
	ctx := context.Background()

	tables := typed.NewService[core.Table](svc)
	table := core.NewTable([]string{"A"}, []any{1}, []any{2})

	_, err := tables.Save(ctx, table, "t", core.FormatCSV, dir)
	require.NoError(t, err)

	got, err := tables.Load(ctx, core.Query{Name: "t", Format: core.FormatCSV})
	require.NoError(t, err)
	assert.Equal(t, table, got)

	books := typed.NewService[core.Book](svc)
	_, err = books.Load(ctx, core.Query{Name: "t", Format: core.FormatCSV})
	assert.ErrorIs(t, err, core.ErrUnsupportedType)
}

func TestTypedLoadAll(t *testing.T) {
	svc, dir := newService(t)
	ctx := context.Background()
	series := typed.NewService[core.Series](svc)

	for _, name := range []string{"s1", "s2"} {
		_, err := series.Save(ctx, core.NewSeries(name, 1), name, core.FormatPickle, dir, core.WithTimestamp(false))
		require.NoError(t, err)
	}

	got, err := series.LoadAll(ctx, core.Query{Name: "s*", Format: core.FormatPickle, Dir: dir})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "s1", got[0].Name)
	assert.Equal(t, "s2", got[1].Name)
}

func TestAs(t *testing.T) {
	s := core.NewSeries("x", 1)

	table, err := typed.As[core.Table](s)
	require.NoError(t, err)
	assert.Equal(t, s.Frame(), table)

	_, err = typed.As[core.Chart](s)
	assert.ErrorIs(t, err, core.ErrUnsupportedType)
}
