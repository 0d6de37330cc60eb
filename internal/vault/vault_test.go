package vault

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVaultReadModify(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "note.md"), []byte("hello"), 0644))

	v, err := New(dir)
	require.NoError(t, err)

	text, err := v.Read("note.md")
	require.NoError(t, err)
	require.Equal(t, "hello", text)

	require.NoError(t, v.Modify("note.md", "changed"))
	text, err = v.Read("note.md")
	require.NoError(t, err)
	require.Equal(t, "changed", text)
}

func TestVaultActiveFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "note.md"), []byte("x"), 0644))

	v, err := New(dir)
	require.NoError(t, err)

	_, ok := v.ActiveFile()
	require.False(t, ok)

	require.Error(t, v.SetActive("missing.md"))
	_, ok = v.ActiveFile()
	require.False(t, ok)

	require.NoError(t, v.SetActive("note.md"))
	name, ok := v.ActiveFile()
	require.True(t, ok)
	require.Equal(t, "note.md", name)
}

func TestVaultCreate(t *testing.T) {
	v, err := New(t.TempDir())
	require.NoError(t, err)

	require.False(t, v.Exists("sub/new.md"))
	require.NoError(t, v.Create("sub/new.md", "body"))
	require.True(t, v.Exists("sub/new.md"))

	err = v.Create("sub/new.md", "other")
	require.Error(t, err)
	require.Contains(t, err.Error(), "already exists")
}

func TestVaultModifyRequiresExistingNote(t *testing.T) {
	v, err := New(t.TempDir())
	require.NoError(t, err)

	require.Error(t, v.Modify("missing.md", "x"))
}

func TestVaultRejectsEscapingPaths(t *testing.T) {
	v, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = v.Read("../outside.md")
	require.Error(t, err)
	require.Error(t, v.Modify("../outside.md", "x"))
	require.Error(t, v.Create("../outside.md", "x"))
	require.False(t, v.Exists("../outside.md"))
}

func TestEnsureSampleNote(t *testing.T) {
	v, err := New(t.TempDir())
	require.NoError(t, err)

	created, err := v.EnsureSampleNote()
	require.NoError(t, err)
	require.True(t, created)

	text, err := v.Read(SampleNoteName)
	require.NoError(t, err)
	require.Contains(t, text, "#EP-11")

	created, err = v.EnsureSampleNote()
	require.NoError(t, err)
	require.False(t, created)
}

func TestNewRejectsMissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestNewRejectsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plainfile")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	_, err := New(path)
	require.Error(t, err)
}
