package layout

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-paymentform/pkg/spec"
)

// Store indexes layout definitions by payment method code.
type Store struct {
	definitions map[string]Definition
}

// NewStore builds a store from definitions, rejecting duplicate codes.
func NewStore(defs ...Definition) (*Store, error) {
	store := &Store{definitions: make(map[string]Definition, len(defs))}
	for _, def := range defs {
		if err := store.add(def); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// LoadFS walks fsys and decodes every JSON/YAML layout it finds. When fsys is
// nil or holds no layouts, the returned store is empty.
func LoadFS(fsys fs.FS, opts ...spec.ParseOption) (*Store, error) {
	store := &Store{definitions: make(map[string]Definition)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isLayoutFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("layout: read %s: %w", path, err)
		}
		doc, err := NewDocument(SourceFromFS(path), data)
		if err != nil {
			return fmt.Errorf("layout: %s: %w", path, err)
		}
		def, err := Decode(doc, opts...)
		if err != nil {
			return err
		}
		return store.add(def)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) add(def Definition) error {
	code := strings.TrimSpace(def.PaymentMethod)
	if code == "" {
		return fmt.Errorf("layout: definition from %s has an empty payment method", def.Source)
	}
	if existing, ok := s.definitions[code]; ok {
		return fmt.Errorf("layout: duplicate payment method %q (files %s and %s)", code, existing.Source, def.Source)
	}
	def.PaymentMethod = code
	s.definitions[code] = def
	return nil
}

// Definition returns the layout for a payment method code.
func (s *Store) Definition(code string) (Definition, bool) {
	if s == nil {
		return Definition{}, false
	}
	def, ok := s.definitions[strings.TrimSpace(code)]
	return def, ok
}

// PaymentMethods lists the stored codes in sorted order.
func (s *Store) PaymentMethods() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.definitions))
	for code := range s.definitions {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// Empty reports whether the store holds any definitions.
func (s *Store) Empty() bool {
	return s == nil || len(s.definitions) == 0
}

func isLayoutFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
