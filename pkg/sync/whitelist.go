package sync

import (
	"sort"
	"strings"
)

// Extension is appended to every remote basename when it's written to the
// mirror directory.
const Extension = ".lua"

// LocalName returns the name of the mirrored file for a remote basename.
func LocalName(basename string) string {
	return basename + Extension
}

// Basename recovers the remote basename from a mirrored file name. Only one
// trailing extension is removed, so LocalName and Basename round trip even
// for basenames that contain the extension themselves.
func Basename(localName string) string {
	return strings.TrimSuffix(localName, Extension)
}

// Whitelist is the set of mirrored file names that belong to the open
// project. It's built once during bootstrap and never modified afterwards, so
// it's safe to read from multiple goroutines.
type Whitelist struct {
	names map[string]struct{}
}

// NewWhitelist returns a Whitelist containing `names`.
func NewWhitelist(names ...string) Whitelist {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return Whitelist{names: set}
}

// Contains returns whether `name` is part of the open project.
func (w Whitelist) Contains(name string) bool {
	_, ok := w.names[name]
	return ok
}

// Len returns the number of files in the whitelist.
func (w Whitelist) Len() int {
	return len(w.names)
}

// Names returns the whitelisted file names in sorted order.
func (w Whitelist) Names() []string {
	names := make([]string, 0, len(w.names))
	for name := range w.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
