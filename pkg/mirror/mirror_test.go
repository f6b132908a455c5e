package mirror

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"

	"github.com/sidkik/editsync/pkg/errors"
)

func TestReset(t *testing.T) {
	fs := afero.NewMemMapFs()
	assert.NoError(t, fs.MkdirAll("/project/nested", 0755))
	assert.NoError(t, afero.WriteFile(fs, "/project/stale.lua", []byte("old"), 0644))
	assert.NoError(t, afero.WriteFile(fs, "/project/nested/deep.lua", []byte("old"), 0644))

	store := New(fs, "/project")
	assert.NoError(t, store.Reset())

	isDir, err := afero.IsDir(fs, "/project")
	assert.NoError(t, err)
	assert.True(t, isDir)

	isEmpty, err := afero.IsEmpty(fs, "/project")
	assert.NoError(t, err)
	assert.True(t, isEmpty)
}

func TestResetMissingDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := New(fs, "/project")
	assert.NoError(t, store.Reset())

	exists, err := afero.DirExists(fs, "/project")
	assert.NoError(t, err)
	assert.True(t, exists)
}

func TestWriteRead(t *testing.T) {
	store := New(afero.NewMemMapFs(), "/project")
	assert.NoError(t, store.Reset())

	assert.NoError(t, store.Write("main.lua", "print('a long first version')"))
	assert.NoError(t, store.Write("main.lua", "print(1)"))

	contents, err := store.Read("main.lua")
	assert.NoError(t, err)
	assert.Equal(t, "print(1)", contents)
}

func TestReadMissing(t *testing.T) {
	store := New(afero.NewMemMapFs(), "/project")
	assert.NoError(t, store.Reset())

	_, err := store.Read("missing.lua")
	assert.Equal(t, errors.FileNotFound{Path: "/project/missing.lua"}, errors.RootCause(err))
}

func TestTouch(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := New(fs, "/project")
	assert.NoError(t, store.Reset())
	assert.NoError(t, store.Touch("restart"))

	contents, err := store.Read("restart")
	assert.NoError(t, err)
	assert.Empty(t, contents)

	// Touching an existing file leaves its contents alone.
	assert.NoError(t, store.Write("restart", "keep"))
	assert.NoError(t, store.Touch("restart"))
	contents, err = store.Read("restart")
	assert.NoError(t, err)
	assert.Equal(t, "keep", contents)
}
