package layout

import (
	"embed"
	"io/fs"
	"sync"
)

//go:embed defaults/*.json defaults/*.yaml
var defaultFiles embed.FS

// DefaultFS exposes the built-in layouts rooted at their directory.
func DefaultFS() fs.FS {
	sub, err := fs.Sub(defaultFiles, "defaults")
	if err != nil {
		return defaultFiles
	}
	return sub
}

var (
	defaultsOnce  sync.Once
	defaultsStore *Store
	defaultsErr   error
)

// Defaults returns the store of built-in layouts. The store is parsed once.
func Defaults() (*Store, error) {
	defaultsOnce.Do(func() {
		defaultsStore, defaultsErr = LoadFS(DefaultFS())
	})
	return defaultsStore, defaultsErr
}
