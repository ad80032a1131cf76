package commands

import (
	"log/slog"
	"strings"
	"time"

	"github.com/pixil98/go-arcana/internal/combat"
	"github.com/pixil98/go-arcana/internal/game"
	"github.com/pixil98/go-arcana/internal/storage"
)

// Stores are the repositories the engine reads and mutates.
type Stores struct {
	Players    storage.Storer[*game.Player]
	Guilds     storage.Storer[*game.Guild]
	Quests     storage.Storer[*game.Quest]
	Duels      storage.Storer[*combat.Duel]
	Encounters storage.Storer[*combat.Encounter]
}

// Engine bundles the rules managers behind the command handlers. It holds no
// locks of its own; the Handler serializes every call into it.
type Engine struct {
	Catalog  *game.Catalog
	Players  storage.Storer[*game.Player]
	Guilds   *game.Guilds
	Quests   *game.QuestBook
	Duels    *combat.DuelManager
	Dungeon  *combat.DungeonManager
	Bestower *game.Bestower

	now func() time.Time
}

type EngineOpt func(*engineOpts)

type engineOpts struct {
	roller  combat.Roller
	now     func() time.Time
	questRn func(int) int
}

func WithRoller(r combat.Roller) EngineOpt {
	return func(o *engineOpts) { o.roller = r }
}

func WithClock(now func() time.Time) EngineOpt {
	return func(o *engineOpts) { o.now = now }
}

func WithQuestRoll(intN func(int) int) EngineOpt {
	return func(o *engineOpts) { o.questRn = intN }
}

// NewEngine wires the managers over the given stores. ownerID is the identity
// allowed to bestow; empty disables bestow entirely.
func NewEngine(catalog *game.Catalog, st Stores, ownerID string, opts ...EngineOpt) *Engine {
	o := &engineOpts{roller: combat.DefaultRoller, now: time.Now}
	for _, opt := range opts {
		opt(o)
	}

	if st.Duels == nil {
		st.Duels = storage.NewMemoryStore[*combat.Duel]()
	}
	if st.Encounters == nil {
		st.Encounters = storage.NewMemoryStore[*combat.Encounter]()
	}

	questOpts := []game.QuestBookOpt{game.WithClock(o.now)}
	if o.questRn != nil {
		questOpts = append(questOpts, game.WithQuestRoll(o.questRn))
	}

	return &Engine{
		Catalog:  catalog,
		Players:  st.Players,
		Guilds:   game.NewGuilds(st.Guilds, st.Players),
		Quests:   game.NewQuestBook(st.Quests, questOpts...),
		Duels:    combat.NewDuelManager(st.Duels, st.Players, catalog, combat.WithDuelRoller(o.roller), combat.WithDuelClock(o.now)),
		Dungeon:  combat.NewDungeonManager(st.Encounters, st.Players, catalog, combat.WithDungeonRoller(o.roller), combat.WithDungeonClock(o.now)),
		Bestower: &game.Bestower{OwnerID: ownerID, Catalog: catalog},
		now:      o.now,
	}
}

// Busy reports whether the player is locked into a fight.
func (e *Engine) Busy(playerID string) bool {
	return e.Dungeon.InEncounter(playerID) || e.Duels.InDuel(playerID)
}

// FindPlayer resolves a player by id, then by case-insensitive name.
func (e *Engine) FindPlayer(key string) *game.Player {
	if p := e.Players.Get(key); p != nil {
		return p
	}
	// Names are unique for new characters, but documents written before that
	// rule may hold duplicates; the lowest id wins so the pick is stable.
	var found *game.Player
	for id, p := range e.Players.GetAll() {
		if p == nil || !strings.EqualFold(p.Name, key) {
			continue
		}
		if found == nil || id < found.ID {
			found = p
		}
	}
	return found
}

// NameTaken reports whether name would be ambiguous with an existing
// character: another player already uses it as a name or an id, ignoring case.
func (e *Engine) NameTaken(name string) bool {
	for id, p := range e.Players.GetAll() {
		if strings.EqualFold(id, name) || (p != nil && strings.EqualFold(p.Name, name)) {
			return true
		}
	}
	return false
}

// Restore brings every loaded player up to the current schema.
// Records that decoded to nil are dropped.
func (e *Engine) Restore() {
	for id, p := range e.Players.GetAll() {
		if p == nil {
			slog.Warn("dropping empty player record", "id", id)
			if err := e.Players.Delete(id); err != nil {
				slog.Warn("deleting empty player record", "id", id, "error", err)
			}
			continue
		}
		p.Restore(e.Catalog.Items)
	}
}
