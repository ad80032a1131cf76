package game

import (
	"slices"
	"time"

	"github.com/pixil98/go-arcana/internal/storage"
)

// KindPlayer tags canonical player records.
const KindPlayer = "player"

// Slot names an equipment slot.
type Slot string

const (
	SlotWeapon    Slot = "weapon"
	SlotArmor     Slot = "armor"
	SlotAccessory Slot = "accessory"
)

var Slots = []Slot{SlotWeapon, SlotArmor, SlotAccessory}

// SlotFor maps an equippable category to its slot.
func SlotFor(c Category) (Slot, bool) {
	switch c {
	case CategoryWeapon:
		return SlotWeapon, true
	case CategoryArmor:
		return SlotArmor, true
	case CategoryAccessory:
		return SlotAccessory, true
	}
	return "", false
}

// Equipment holds the item id worn in each slot, or "" for an empty slot.
type Equipment struct {
	Weapon    string `json:"weapon"`
	Armor     string `json:"armor"`
	Accessory string `json:"accessory"`
}

func (e *Equipment) Get(s Slot) string {
	switch s {
	case SlotWeapon:
		return e.Weapon
	case SlotArmor:
		return e.Armor
	case SlotAccessory:
		return e.Accessory
	}
	return ""
}

func (e *Equipment) Set(s Slot, id string) {
	switch s {
	case SlotWeapon:
		e.Weapon = id
	case SlotArmor:
		e.Armor = id
	case SlotAccessory:
		e.Accessory = id
	}
}

// IDs returns the ids of the occupied slots.
func (e *Equipment) IDs() []string {
	var ids []string
	for _, s := range Slots {
		if id := e.Get(s); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// Player is the canonical character record. Every field has a documented zero or
// default; NewPlayer applies the defaults and Recalculate fills the derived maxima.
type Player struct {
	Kind    string  `json:"kind"`
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Element Element `json:"element"`

	Level      int `json:"level"`      // default 1
	Experience int `json:"experience"` // EXP toward the next level
	Gold       int `json:"gold"`
	Prestige   int `json:"prestige"`

	HP      int `json:"hp"`
	MaxHP   int `json:"max_hp"`
	Mana    int `json:"mana"`
	MaxMana int `json:"max_mana"`
	Attack  int `json:"attack"`
	Defense int `json:"defense"`

	Spells    []string       `json:"spells"`
	Passive   string         `json:"passive"`
	Equipment Equipment      `json:"equipment"`
	Inventory map[string]int `json:"inventory"`
	Effects   Effects        `json:"effects,omitempty"`

	Achievements []Achievement `json:"achievements"`
	GuildID      string        `json:"guild_id,omitempty"`

	DungeonFloor  int `json:"dungeon_floor"` // next floor to enter, default 1
	DeepestFloor  int `json:"deepest_floor"`
	MonstersSlain int `json:"monsters_slain"`
	BossesSlain   int `json:"bosses_slain"`
	PvPPoints     int `json:"pvp_points"`
	PvPWins       int `json:"pvp_wins"`
	PvPLosses     int `json:"pvp_losses"`
	PvPDraws      int `json:"pvp_draws"`

	CreatedAt time.Time `json:"created_at"`

	// Legacy keeps fields from pre-versioned records that have no home in this schema.
	Legacy storage.ExtensionState `json:"legacy,omitempty"`
}

// NewPlayer creates a level 1 character with full HP and Mana.
func NewPlayer(id, name string, e Element, items storage.Reader[*Item], now time.Time) *Player {
	p := &Player{
		Kind:      KindPlayer,
		ID:        id,
		Name:      name,
		Element:   e,
		CreatedAt: now,
	}
	p.applyDefaults()
	p.Spells = nil
	p.learnSpells()
	Recalculate(p, items)
	p.Refill()
	return p
}

func (p *Player) applyDefaults() {
	if p.Kind == "" {
		p.Kind = KindPlayer
	}
	if p.Level < 1 {
		p.Level = 1
	}
	if p.Experience < 0 {
		p.Experience = 0
	}
	if p.DungeonFloor < 1 {
		p.DungeonFloor = 1
	}
	if p.Inventory == nil {
		p.Inventory = map[string]int{}
	}
	if p.Effects == nil {
		p.Effects = Effects{}
	}
	if p.Passive == "" {
		p.Passive = p.Element.Passive()
	}
}

// Restore brings a loaded record up to the current schema: missing fields get
// their defaults, element spells are topped up to the level's slots and the
// derived stats are recalculated.
func (p *Player) Restore(items storage.Reader[*Item]) {
	p.applyDefaults()
	p.learnSpells()
	Recalculate(p, items)
}

// Refill restores HP and Mana to their maxima.
func (p *Player) Refill() {
	p.HP = p.MaxHP
	p.Mana = p.MaxMana
}

// Knows reports whether the spell id is in the player's spell list.
func (p *Player) Knows(spellID string) bool {
	return slices.Contains(p.Spells, spellID)
}

// learnSpells appends element spells until the level's slot count is filled.
// Returns the ids learned.
func (p *Player) learnSpells() []string {
	var learned []string
	for _, id := range p.Element.SpellIDs() {
		if p.learnedCount() >= SpellSlots(p.Level) {
			break
		}
		if !p.Knows(id) {
			p.Spells = append(p.Spells, id)
			learned = append(learned, id)
		}
	}
	return learned
}

// relearnSpells drops the element's spells and learns them again for the current
// level. Spells from outside the element list are kept.
func (p *Player) relearnSpells() {
	own := p.Element.SpellIDs()
	p.Spells = slices.DeleteFunc(p.Spells, func(id string) bool { return slices.Contains(own, id) })
	p.learnSpells()
}

func (p *Player) learnedCount() int {
	n := 0
	for _, id := range p.Element.SpellIDs() {
		if p.Knows(id) {
			n++
		}
	}
	return n
}

// HasAchievement reports whether a has been unlocked.
func (p *Player) HasAchievement(a Achievement) bool {
	return slices.Contains(p.Achievements, a)
}

// Snapshot is the outward view of a player after an action.
type Snapshot struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Element Element `json:"element"`
	Level   int     `json:"level"`
	Exp     int     `json:"exp"`
	ExpNext int     `json:"exp_next"`
	Gold    int     `json:"gold"`
	HP      int     `json:"hp"`
	MaxHP   int     `json:"max_hp"`
	Mana    int     `json:"mana"`
	MaxMana int     `json:"max_mana"`
	Attack  int     `json:"attack"`
	Defense int     `json:"defense"`
	Floor   int     `json:"floor"`
}

func (p *Player) Snapshot() *Snapshot {
	return &Snapshot{
		ID:      p.ID,
		Name:    p.Name,
		Element: p.Element,
		Level:   p.Level,
		Exp:     p.Experience,
		ExpNext: ExpToLevel(p.Level),
		Gold:    p.Gold,
		HP:      p.HP,
		MaxHP:   p.MaxHP,
		Mana:    p.Mana,
		MaxMana: p.MaxMana,
		Attack:  p.Attack,
		Defense: p.Defense,
		Floor:   p.DungeonFloor,
	}
}
