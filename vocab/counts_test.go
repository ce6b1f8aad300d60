package vocab

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCounts_JSONRoundTrip(t *testing.T) {
	c := Counts{"the": 120, "cat": 7, "sat": 3.5}

	path := filepath.Join(t.TempDir(), "word_counts.json")
	require.NoError(t, SaveCounts(path, c))

	loaded, err := LoadCounts(path)
	require.NoError(t, err)
	require.Equal(t, c, loaded)
	require.InDelta(t, 130.5, loaded.Total(), 1e-12)
}

func TestCounts_CBORRoundTrip(t *testing.T) {
	c := Counts{"the": 120, "cat": 7}

	path := filepath.Join(t.TempDir(), "word_counts.cbor")
	require.NoError(t, SaveCounts(path, c))

	loaded, err := LoadCounts(path)
	require.NoError(t, err)
	require.Equal(t, c, loaded)
}

func TestCounts_HandCraftedJSON(t *testing.T) {
	// Counts files are plain token -> number objects; make sure that
	// exact shape decodes without any wrapper struct.
	path := filepath.Join(t.TempDir(), "counts.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"the": 120, "cat": 7}`), 0o644))

	loaded, err := LoadCounts(path)
	require.NoError(t, err)
	require.Equal(t, 120.0, loaded["the"])
	require.Equal(t, 7.0, loaded["cat"])
}

func TestCounts_UnsupportedFormat(t *testing.T) {
	require.Error(t, SaveCounts(filepath.Join(t.TempDir(), "counts.xml"), Counts{}))

	path := filepath.Join(t.TempDir(), "counts.txt")
	require.NoError(t, os.WriteFile(path, []byte("the 120"), 0o644))
	_, err := LoadCounts(path)
	require.Error(t, err)
}

func TestCounts_MissingFile(t *testing.T) {
	_, err := LoadCounts(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestCounts_CorruptJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counts.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"the": `), 0o644))
	_, err := LoadCounts(path)
	require.Error(t, err)
}
