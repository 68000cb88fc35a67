package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

var layoutExtensions = []string{".json", ".yaml", ".yml"}

// loadFromFS reads name from files and returns the path it was read from.
func loadFromFS(ctx context.Context, files fs.FS, name string) (string, []byte, error) {
	name = strings.TrimPrefix(name, "./")
	if name == "" {
		return "", nil, errors.New("layout loader: fs path is required")
	}
	if files == nil {
		return "", nil, errors.New("layout loader: fs is nil")
	}
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}
	if path.Ext(name) != "" {
		data, err := fs.ReadFile(files, name)
		return name, data, err
	}

	for _, ext := range layoutExtensions {
		candidate := name + ext
		data, err := fs.ReadFile(files, candidate)
		if err == nil {
			return candidate, data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", nil, err
		}
	}
	return "", nil, fmt.Errorf("layout loader: no layout for %q (tried %s): %w", name, strings.Join(layoutExtensions, ", "), fs.ErrNotExist)
}
