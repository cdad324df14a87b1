package filelog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTailRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file_log.log")
	tl := &tail{path: path}

	lines, err := tl.read()
	require.NoError(t, err)
	assert.Empty(t, lines, "missing file yields nothing")

	require.NoError(t, os.WriteFile(path, []byte("a,t,x.csv\nb,t,"), 0644))
	lines, err = tl.read()
	require.NoError(t, err)
	assert.Equal(t, []string{"a,t,x.csv"}, lines)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString("y.csv\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	lines, err = tl.read()
	require.NoError(t, err)
	assert.Equal(t, []string{"b,t,y.csv"}, lines, "partial line is completed")

	require.NoError(t, os.WriteFile(path, []byte("c,t,z.csv\n"), 0644))
	lines, err = tl.read()
	require.NoError(t, err)
	assert.Equal(t, []string{"c,t,z.csv"}, lines, "truncation restarts from the top")
}
