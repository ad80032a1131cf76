package game

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pixil98/go-arcana/internal/storage"
)

//go:embed assets
var assetFS embed.FS

// Catalog is the read-only reference data the rules resolve against.
type Catalog struct {
	Items    storage.Reader[*Item]
	Spells   storage.Reader[*Spell]
	Monsters storage.Reader[*Monster]
}

// LoadCatalog loads the built-in catalog, then overlays any assets found in the
// items, spells and monsters subdirectories of dir. An empty dir skips the overlay.
func LoadCatalog(dir string) (*Catalog, error) {
	itemLayers, err := layers("items", dir)
	if err != nil {
		return nil, err
	}
	items, err := storage.NewCatalogStore[*Item](itemLayers...)
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}

	monsterLayers, err := layers("monsters", dir)
	if err != nil {
		return nil, err
	}
	monsters, err := storage.NewCatalogStore[*Monster](monsterLayers...)
	if err != nil {
		return nil, fmt.Errorf("loading monsters: %w", err)
	}

	spells := storage.NewCatalogStoreFromMap(DefaultSpells())
	if sub := overrideDir("spells", dir); sub != nil {
		err = spells.Overlay(sub)
		if err != nil {
			return nil, fmt.Errorf("loading spells: %w", err)
		}
	}
	for _, sp := range spells.GetAll() {
		sp.Normalize()
	}

	return &Catalog{Items: items, Spells: spells, Monsters: monsters}, nil
}

func layers(kind, dir string) ([]fs.FS, error) {
	embedded, err := fs.Sub(assetFS, "assets/"+kind)
	if err != nil {
		return nil, fmt.Errorf("opening embedded %s: %w", kind, err)
	}

	out := []fs.FS{embedded}
	if sub := overrideDir(kind, dir); sub != nil {
		out = append(out, sub)
	}
	return out, nil
}

func overrideDir(kind, dir string) fs.FS {
	if dir == "" {
		return nil
	}
	p := filepath.Join(dir, kind)
	if info, err := os.Stat(p); err != nil || !info.IsDir() {
		return nil
	}
	return os.DirFS(p)
}

// Spell resolves a spell id, falling back to BasicStrike when the id is empty or unknown.
func (c *Catalog) Spell(id string) *Spell {
	if id == "" {
		return BasicStrike
	}
	if sp := c.Spells.Get(id); sp != nil {
		return sp
	}
	return BasicStrike
}

// Item looks up an item id.
func (c *Catalog) Item(id string) (*Item, error) {
	it := c.Items.Get(id)
	if it == nil {
		return nil, fmt.Errorf("%w: item %q", ErrNotFound, id)
	}
	return it, nil
}
