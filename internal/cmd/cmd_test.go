package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edwardstark/taglock/internal/store"
)

func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func seedTagsFile(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "allowed_tags.json")
	_, err := store.Open(path)
	require.NoError(t, err)
	return path
}

func TestTagsListPrintsInOrder(t *testing.T) {
	path := seedTagsFile(t)

	out, err := runCommand(t, TagsCmd(), "list", "--tags-file", path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, store.DefaultTags, lines)
}

func TestTagsAddThenList(t *testing.T) {
	path := seedTagsFile(t)

	out, err := runCommand(t, TagsCmd(), "add", "31337", "--tags-file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "added 31337")

	out, err = runCommand(t, TagsCmd(), "list", "--tags-file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "31337")
}

func TestTagsAddDuplicateFails(t *testing.T) {
	path := seedTagsFile(t)

	_, err := runCommand(t, TagsCmd(), "add", "12345", "--tags-file", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already in the list")
}

func TestTagsRemoveAbsentFails(t *testing.T) {
	path := seedTagsFile(t)

	_, err := runCommand(t, TagsCmd(), "remove", "nope", "--tags-file", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not in the list")
}

func TestTagsRemovePersists(t *testing.T) {
	path := seedTagsFile(t)

	out, err := runCommand(t, TagsCmd(), "remove", "12345", "--tags-file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "removed 12345")

	s, err := store.Open(path)
	require.NoError(t, err)
	assert.False(t, s.Contains("12345"))
}

func TestCheckGrantsStoredTag(t *testing.T) {
	path := seedTagsFile(t)

	out, err := runCommand(t, CheckCmd(), "12345", "--tags-file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "access granted: 12345")
}

func TestCheckDeniesUnknownTag(t *testing.T) {
	path := seedTagsFile(t)

	_, err := runCommand(t, CheckCmd(), "999999", "--tags-file", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied: 999999")
}

func TestCheckRejectsBlankTag(t *testing.T) {
	path := seedTagsFile(t)

	_, err := runCommand(t, CheckCmd(), "  ", "--tags-file", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty tag")
}
