package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/threadweaver/internal/store"
)

func lookupMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestFromLookup_Defaults(t *testing.T) {
	s, err := FromLookup(lookupMap(nil))
	require.NoError(t, err)
	assert.Equal(t, store.DefaultPath(), s.DataPath)
	assert.False(t, s.HasSeed)
	assert.Equal(t, 1280, s.WindowW)
	assert.Equal(t, 720, s.WindowH)
}

func TestFromLookup_Overrides(t *testing.T) {
	s, err := FromLookup(lookupMap(map[string]string{
		EnvDataPath: " /tmp/tw.msgpack ",
		EnvSeed:     "-42",
		EnvWindow:   "800X600",
	}))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/tw.msgpack", s.DataPath)
	assert.True(t, s.HasSeed)
	assert.Equal(t, int64(-42), s.Seed)
	assert.Equal(t, 800, s.WindowW)
	assert.Equal(t, 600, s.WindowH)
}

func TestFromLookup_BadValues(t *testing.T) {
	_, err := FromLookup(lookupMap(map[string]string{EnvSeed: "soon"}))
	assert.ErrorContains(t, err, EnvSeed)

	_, err = FromLookup(lookupMap(map[string]string{EnvWindow: "wide"}))
	assert.ErrorContains(t, err, EnvWindow)
}

func TestParseWindow(t *testing.T) {
	w, h, err := ParseWindow("1920x1080")
	require.NoError(t, err)
	assert.Equal(t, 1920, w)
	assert.Equal(t, 1080, h)

	for _, bad := range []string{"", "10", "0x5", "ax5", "5x-1", "1x2x3"} {
		_, _, err := ParseWindow(bad)
		assert.Error(t, err, bad)
	}
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("THREADWEAVER_WINDOW=640x480\n"), 0o644))
	t.Setenv(EnvWindow, "")
	os.Unsetenv(EnvWindow)
	t.Setenv(EnvSeed, "7")

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 640, s.WindowW)
	assert.Equal(t, 480, s.WindowH)
	assert.Equal(t, int64(7), s.Seed)
}

func TestLoad_MissingFileIsFine(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.env"))
	assert.NoError(t, err)
}
