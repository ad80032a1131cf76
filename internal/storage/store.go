package storage

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
)

// Reader is the read side shared by every store.
type Reader[T any] interface {
	Get(string) T
	GetAll() map[string]T
}

// Storer is a keyed repository the engine reads and mutates records through.
type Storer[T any] interface {
	Reader[T]
	Save(string, T) error
	Delete(string) error
}

// CatalogStore holds read-only reference data (items, spells, monsters) loaded from
// asset files. Records are loaded once and never written back.
type CatalogStore[T ValidatingSpec] struct {
	records map[string]T
}

// NewCatalogStore loads every .json asset found under fsys. Later layers override
// records with the same id, which lets a data directory patch the embedded defaults.
func NewCatalogStore[T ValidatingSpec](layers ...fs.FS) (*CatalogStore[T], error) {
	s := &CatalogStore[T]{records: map[string]T{}}

	for _, fsys := range layers {
		err := s.Overlay(fsys)
		if err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Overlay loads the assets found in fsys on top of the current records.
func (s *CatalogStore[T]) Overlay(fsys fs.FS) error {
	loaded, err := loadAssets[T](fsys)
	if err != nil {
		return err
	}
	for id, v := range loaded {
		s.records[id] = v
	}
	return nil
}

func loadAssets[T ValidatingSpec](fsys fs.FS) (map[string]T, error) {
	records := map[string]T{}

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || path.Ext(p) != ".json" {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("reading %s: %w", p, err)
		}

		asset := &Asset[T]{}
		err = json.Unmarshal(data, asset)
		if err != nil {
			return fmt.Errorf("unmarshalling %s: %w", p, err)
		}

		err = asset.Validate()
		if err != nil {
			return fmt.Errorf("validating %s: %w", path.Base(p), err)
		}

		// Within one layer ids must be unique
		if _, ok := records[asset.Id()]; ok {
			return fmt.Errorf("duplicate key detected: %s", asset.Id())
		}

		records[asset.Id()] = asset.Spec
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// NewCatalogStoreFromMap builds a catalog from records already in memory.
func NewCatalogStoreFromMap[T ValidatingSpec](records map[string]T) *CatalogStore[T] {
	s := &CatalogStore[T]{records: make(map[string]T, len(records))}
	for id, v := range records {
		s.records[id] = v
	}
	return s
}

func (s *CatalogStore[T]) Get(id string) T {
	return s.records[id]
}

func (s *CatalogStore[T]) GetAll() map[string]T {
	vals := make(map[string]T, len(s.records))
	for id, v := range s.records {
		vals[id] = v
	}
	return vals
}
