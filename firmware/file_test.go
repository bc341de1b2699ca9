package firmware

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fw.bin")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3, 4, 5}, 0o600))

	fw, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "fw.bin", fw.Name())
	assert.Equal(t, path, fw.Path())
	assert.Equal(t, int64(5), fw.Length())

	// Every Open starts from the beginning.
	for i := 0; i < 2; i++ {
		r, err := fw.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(r)
		require.NoError(t, err)
		require.NoError(t, r.Close())
		assert.Equal(t, []byte{1, 2, 3, 4, 5}, data)
	}
}

func TestOpenErrors(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.bin"))
	assert.Error(t, err)

	_, err = Open(t.TempDir())
	assert.Error(t, err)
}

func TestFromBytes(t *testing.T) {
	fw := FromBytes("image.bin", []byte("abc"))
	assert.Equal(t, "image.bin", fw.Name())
	assert.Equal(t, int64(3), fw.Length())

	r, err := fw.Open()
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(data))
}
