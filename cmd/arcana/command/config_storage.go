package command

import (
	"context"
	"fmt"
	"os"

	"github.com/pixil98/go-arcana/internal/commands"
	"github.com/pixil98/go-arcana/internal/db"
	"github.com/pixil98/go-arcana/internal/game"
	"github.com/pixil98/go-arcana/internal/storage"
	"github.com/pixil98/go-errors"
)

const databaseEnv = "ARCANA_DATABASE_URL"

type StorageBackend string

const (
	StorageBackendFile     StorageBackend = "file"
	StorageBackendPostgres StorageBackend = "postgres"
)

type StorageConfig struct {
	Backend StorageBackend `json:"backend"`
	// Path is the data directory for the file backend.
	Path string `json:"path,omitempty"`
	// DSN is the connection string for the postgres backend. ARCANA_DATABASE_URL
	// overrides it.
	DSN string `json:"dsn,omitempty"`
	// Migrate applies pending schema migrations at startup.
	Migrate bool `json:"migrate,omitempty"`
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()

	switch c.Backend {
	case "", StorageBackendFile:
		if c.Path == "" {
			el.Add(fmt.Errorf("storage: path is required for the file backend"))
		}
	case StorageBackendPostgres:
		if c.dsn() == "" {
			el.Add(fmt.Errorf("storage: dsn or %s is required for the postgres backend", databaseEnv))
		}
	default:
		el.Add(fmt.Errorf("storage: unknown backend %q", c.Backend))
	}

	return el.Err()
}

func (c *StorageConfig) dsn() string {
	if dsn := os.Getenv(databaseEnv); dsn != "" {
		return dsn
	}
	return c.DSN
}

func (c *StorageConfig) buildSink(ctx context.Context) (storage.Sink, error) {
	if c.Backend != StorageBackendPostgres {
		return storage.NewFileSink(c.Path)
	}

	if c.Migrate {
		if err := db.RunMigrations(ctx, c.dsn()); err != nil {
			return nil, err
		}
	}
	return db.New(ctx, c.dsn())
}

// documents are the persisted record sets and the engine stores over them.
type documents struct {
	players *storage.DocumentStore[*game.Player]
	guilds  *storage.DocumentStore[*game.Guild]
	quests  *storage.DocumentStore[*game.Quest]
}

func newDocuments(sink storage.Sink) *documents {
	return &documents{
		players: storage.NewDocumentStore[*game.Player]("players", sink, storage.WithMigrator[*game.Player](game.MigratePlayer)),
		guilds:  storage.NewDocumentStore[*game.Guild]("guilds", sink),
		quests:  storage.NewDocumentStore[*game.Quest]("quests", sink),
	}
}

func (d *documents) stores() commands.Stores {
	return commands.Stores{
		Players: d.players,
		Guilds:  d.guilds,
		Quests:  d.quests,
	}
}

func (d *documents) list() []commands.Document {
	return []commands.Document{d.players, d.guilds, d.quests}
}
