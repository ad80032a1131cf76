package commands

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

const narrationFile = "assets/narration.yaml"

// LoadCommands loads the built-in command definitions, then any found in dir.
// An empty dir skips the overlay.
func LoadCommands(dir string) (*storage.CatalogStore[*Command], error) {
	embedded, err := fs.Sub(assetFS, "assets/commands")
	if err != nil {
		return nil, err
	}

	layers := []fs.FS{embedded}
	if dir != "" {
		if info, err := os.Stat(filepath.Clean(dir)); err == nil && info.IsDir() {
			layers = append(layers, os.DirFS(dir))
		}
	}

	cmds, err := storage.NewCatalogStore[*Command](layers...)
	if err != nil {
		return nil, fmt.Errorf("loading commands: %w", err)
	}
	return cmds, nil
}

// DefaultNarrator parses the built-in narration templates. They ship with the
// binary, so a parse failure is a build defect and panics.
func DefaultNarrator() *Narrator {
	n, err := LoadNarrator(assetFS, narrationFile)
	if err != nil {
		panic(err)
	}
	return n
}
