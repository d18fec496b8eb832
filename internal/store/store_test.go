package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tagsPath(t *testing.T) string {
	return filepath.Join(t.TempDir(), "allowed_tags.json")
}

func TestOpenMissingFileSeedsDefaults(t *testing.T) {
	path := tagsPath(t)

	s, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultTags, s.Tags())

	// The file was created with the default set.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var onDisk []string
	require.NoError(t, json.Unmarshal(data, &onDisk))
	assert.Equal(t, DefaultTags, onDisk)
}

func TestOpenNonArrayJSONReplacedWithDefaults(t *testing.T) {
	path := tagsPath(t)
	require.NoError(t, os.WriteFile(path, []byte(`{"tags": true}`), 0644))

	s, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultTags, s.Tags())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var onDisk []string
	require.NoError(t, json.Unmarshal(data, &onDisk))
	assert.Equal(t, DefaultTags, onDisk)
}

func TestOpenNullJSONReplacedWithDefaults(t *testing.T) {
	path := tagsPath(t)
	require.NoError(t, os.WriteFile(path, []byte(`null`), 0644))

	s, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultTags, s.Tags())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var onDisk []string
	require.NoError(t, json.Unmarshal(data, &onDisk))
	assert.Equal(t, DefaultTags, onDisk)
}

func TestOpenEmptyArrayKeptAsEmptyList(t *testing.T) {
	path := tagsPath(t)
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0644))

	s, err := Open(path)
	require.NoError(t, err)
	assert.Zero(t, s.Len())
}

func TestOpenCorruptJSONReplacedWithDefaults(t *testing.T) {
	path := tagsPath(t)
	require.NoError(t, os.WriteFile(path, []byte(`["12345",`), 0644))

	s, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultTags, s.Tags())
}

func TestOpenKeepsExistingOrder(t *testing.T) {
	path := tagsPath(t)
	require.NoError(t, os.WriteFile(path, []byte(`["9", "1", "5"]`), 0644))

	s, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"9", "1", "5"}, s.Tags())
}

func TestOpenDropsDuplicatesAndEmpties(t *testing.T) {
	path := tagsPath(t)
	require.NoError(t, os.WriteFile(path, []byte(`["1", "", "2", "1"]`), 0644))

	s, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, s.Tags())
}

func TestAddIsIdempotent(t *testing.T) {
	s, err := Open(tagsPath(t))
	require.NoError(t, err)

	added, err := s.Add("424242")
	require.NoError(t, err)
	assert.True(t, added)
	assert.True(t, s.Contains("424242"))
	before := s.Tags()

	added, err = s.Add("424242")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, before, s.Tags())
}

func TestAddRejectsEmptyTag(t *testing.T) {
	s, err := Open(tagsPath(t))
	require.NoError(t, err)

	added, err := s.Add("")
	require.NoError(t, err)
	assert.False(t, added)
}

func TestRemoveAbsentTagIsNoop(t *testing.T) {
	s, err := Open(tagsPath(t))
	require.NoError(t, err)
	before := s.Tags()

	removed, err := s.Remove("not-there")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, before, s.Tags())
}

func TestRemoveDeletesAndPersists(t *testing.T) {
	path := tagsPath(t)
	s, err := Open(path)
	require.NoError(t, err)

	removed, err := s.Remove("12345")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.False(t, s.Contains("12345"))

	reloaded, err := Open(path)
	require.NoError(t, err)
	assert.False(t, reloaded.Contains("12345"))
}

func TestRoundTripPreservesInsertionOrder(t *testing.T) {
	path := tagsPath(t)
	s, err := Open(path)
	require.NoError(t, err)

	for _, tag := range []string{"777", "111", "555"} {
		added, err := s.Add(tag)
		require.NoError(t, err)
		require.True(t, added)
	}
	want := s.Tags()

	reloaded, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, want, reloaded.Tags())
}

func TestAddKeepsMemoryWhenWriteFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "allowed_tags.json")
	s, err := Open(path)
	require.NoError(t, err)

	// Make the directory read-only so the rewrite fails.
	require.NoError(t, os.Chmod(dir, 0500))
	t.Cleanup(func() { os.Chmod(dir, 0755) })

	added, err := s.Add("31337")
	assert.True(t, added)
	assert.Error(t, err)
	assert.True(t, s.Contains("31337"))
}
