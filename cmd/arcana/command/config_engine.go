package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-arcana/internal/commands"
	"github.com/pixil98/go-arcana/internal/game"
	"github.com/pixil98/go-errors"
)

const ownerEnv = "ARCANA_OWNER_ID"

type EngineConfig struct {
	// OwnerID may bestow and pick Divine. ARCANA_OWNER_ID overrides it.
	OwnerID string `json:"owner_id"`
	// CatalogPath overlays items, spells and monsters subdirectories on the
	// built-in catalog.
	CatalogPath string `json:"catalog_path,omitempty"`
	// CommandsPath overlays command definitions on the built-in ones.
	CommandsPath string `json:"commands_path,omitempty"`
}

func (c *EngineConfig) validate() error {
	el := errors.NewErrorList()

	for name, path := range map[string]string{"catalog_path": c.CatalogPath, "commands_path": c.CommandsPath} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			el.Add(fmt.Errorf("%s: invalid path %q: %w", name, path, err))
		}
	}

	return el.Err()
}

func (c *EngineConfig) ownerID() string {
	if id := os.Getenv(ownerEnv); id != "" {
		return id
	}
	return c.OwnerID
}

func (c *EngineConfig) buildCatalog() (*game.Catalog, error) {
	return game.LoadCatalog(c.CatalogPath)
}

// buildHandler loads the command definitions and compiles them against engine.
func (c *EngineConfig) buildHandler(engine *commands.Engine, opts ...commands.HandlerOpt) (*commands.Handler, error) {
	cmds, err := commands.LoadCommands(c.CommandsPath)
	if err != nil {
		return nil, err
	}

	h := commands.NewHandler(cmds, engine, opts...)
	if err := h.CompileAll(); err != nil {
		return nil, err
	}
	return h, nil
}
