package fswatch

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"

	"github.com/sidkik/editsync/pkg/errors"
	"github.com/sidkik/editsync/pkg/sync"
)

func TestGetPathsToWatch(t *testing.T) {
	fs = afero.NewMemMapFs()
	defer func() { fs = afero.NewOsFs() }()

	dirs := []string{"/project", "/project/lib", "/project/lib/vendor", "/elsewhere"}
	files := []string{"/project/Main.lua", "/project/lib/util.lua", "/elsewhere/x.lua"}
	for _, dir := range dirs {
		assert.NoError(t, fs.MkdirAll(dir, 0755))
	}
	for _, file := range files {
		assert.NoError(t, afero.WriteFile(fs, file, []byte("testfile"), 0644))
	}

	paths, err := getPathsToWatch("/project")
	assert.NoError(t, err)
	sort.Strings(paths)
	assert.Equal(t, []string{"/project", "/project/lib", "/project/lib/vendor"}, paths)

	_, err = getPathsToWatch("/missing")
	assert.Equal(t, errors.FileNotFound{Path: "/missing"}, err)

	_, err = getPathsToWatch("/project/Main.lua")
	assert.Error(t, err)
}

func TestToRawEvent(t *testing.T) {
	tests := []struct {
		name    string
		op      fsnotify.Op
		expKind sync.Kind
		expOK   bool
	}{
		{"Write", fsnotify.Write, sync.KindWrite, true},
		{"Create", fsnotify.Create, sync.KindCreate, true},
		{"Create and write", fsnotify.Create | fsnotify.Write, sync.KindCreate, true},
		{"Remove", fsnotify.Remove, sync.KindNoticeRemove, true},
		{"Rename", fsnotify.Rename, sync.KindNoticeRemove, true},
		{"Chmod", fsnotify.Chmod, sync.KindChmod, true},
		{"Write and chmod", fsnotify.Write | fsnotify.Chmod, sync.KindWrite, true},
		{"No op", 0, 0, false},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			raw, ok := toRawEvent(fsnotify.Event{Name: "/project/Main.lua", Op: test.op})
			assert.Equal(t, test.expOK, ok)
			if ok {
				assert.Equal(t, sync.RawEvent{Kind: test.expKind, Path: "/project/Main.lua"}, raw)
			}
		})
	}
}

func TestWatchRealDirectory(t *testing.T) {
	dir, err := ioutil.TempDir("", "editsync-watch")
	assert.NoError(t, err)
	defer os.RemoveAll(dir)

	w, err := Watch(dir)
	assert.NoError(t, err)
	defer w.Close()

	path := filepath.Join(dir, "Main.lua")
	assert.NoError(t, ioutil.WriteFile(path, []byte("print(1)"), 0644))

	timeout := time.After(5 * time.Second)
	for {
		select {
		case raw := <-w.Events():
			if raw.Path == path {
				return
			}
		case <-timeout:
			t.Fatal("timed out waiting for notification")
		}
	}
}
