package pad_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joyterm/joyterm/pad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAmiibo(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, size int) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
		return path
	}

	data, err := pad.LoadAmiibo(write("tag.bin", 540))
	require.NoError(t, err)
	assert.Len(t, data, 540)

	data, err = pad.LoadAmiibo(write("tag_signed.bin", 572))
	require.NoError(t, err)
	assert.Len(t, data, 572)

	_, err = pad.LoadAmiibo(write("truncated.bin", 100))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "100 bytes")

	_, err = pad.LoadAmiibo(filepath.Join(dir, "missing.bin"))
	assert.Error(t, err)
}
