package combat

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pixil98/go-arcana/internal/game"
	"github.com/pixil98/go-arcana/internal/storage"
)

const (
	// ManaRegen is restored to the hero at the end of every dungeon turn.
	ManaRegen = 10
	// WaterManaBonus is extra regeneration for Water heroes.
	WaterManaBonus = 5
	// DefeatRecoveryDivisor sets the HP a defeated hero wakes up with.
	DefeatRecoveryDivisor = 2
)

// Encounter is one PvE fight, keyed by the player fighting it.
type Encounter struct {
	ID        string     `json:"id"`
	PlayerID  string     `json:"player_id"`
	Floor     int        `json:"floor"`
	MonsterID string     `json:"monster_id"`
	Monster   *Combatant `json:"monster"`
	Hero      *Combatant `json:"hero"`
	Exp       int        `json:"exp"`
	Gold      int        `json:"gold"`
	Turn      int        `json:"turn"`
	StartedAt time.Time  `json:"started_at"`
}

// EncounterReport describes what one dungeon action did.
type EncounterReport struct {
	Encounter *Encounter
	Lines     []string
	Cast      *CastResult
	Skipped   bool
	Outcome   Outcome
	Exp       int
	Gold      int
	LevelUp   game.LevelUp
}

type DungeonManagerOpt func(*DungeonManager)

func WithDungeonRoller(r Roller) DungeonManagerOpt {
	return func(m *DungeonManager) { m.roll = r }
}

func WithDungeonClock(now func() time.Time) DungeonManagerOpt {
	return func(m *DungeonManager) { m.now = now }
}

// DungeonManager runs PvE encounters. Like DuelManager it holds no locks.
type DungeonManager struct {
	encounters storage.Storer[*Encounter]
	players    storage.Storer[*game.Player]
	catalog    *game.Catalog
	roll       Roller
	now        func() time.Time
}

func NewDungeonManager(encounters storage.Storer[*Encounter], players storage.Storer[*game.Player], catalog *game.Catalog, opts ...DungeonManagerOpt) *DungeonManager {
	m := &DungeonManager{
		encounters: encounters,
		players:    players,
		catalog:    catalog,
		roll:       DefaultRoller,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns the player's encounter, or nil.
func (m *DungeonManager) Get(playerID string) *Encounter {
	return m.encounters.Get(playerID)
}

func (m *DungeonManager) InEncounter(playerID string) bool {
	return m.encounters.Get(playerID) != nil
}

// Enter spawns a monster on the player's current floor.
func (m *DungeonManager) Enter(playerID string) (*EncounterReport, error) {
	p := m.players.Get(playerID)
	if p == nil {
		return nil, fmt.Errorf("%w: use start first", game.ErrNotStarted)
	}
	if m.InEncounter(playerID) {
		return nil, fmt.Errorf("%w: you are already fighting", game.ErrAlreadyStarted)
	}

	floor := max(p.DungeonFloor, 1)
	sp, err := Spawn(m.catalog.Monsters, floor, m.roll)
	if err != nil {
		return nil, err
	}

	e := &Encounter{
		ID:        uuid.NewString(),
		PlayerID:  playerID,
		Floor:     floor,
		MonsterID: sp.MonsterID,
		Monster:   sp.Combatant,
		Hero:      PlayerCombatant(p),
		Exp:       sp.Exp,
		Gold:      sp.Gold,
		StartedAt: m.now(),
	}
	if err := m.encounters.Save(playerID, e); err != nil {
		return nil, err
	}

	line := fmt.Sprintf("Floor %d: a %s appears! (HP %d)", floor, e.Monster.Name, e.Monster.HP)
	if e.Monster.Boss {
		line = fmt.Sprintf("Floor %d: the boss %s blocks the way! (HP %d)", floor, e.Monster.Name, e.Monster.HP)
	}
	return &EncounterReport{Encounter: e, Lines: []string{line}}, nil
}

func (m *DungeonManager) current(playerID, handle string) (*Encounter, *game.Player, error) {
	p := m.players.Get(playerID)
	if p == nil {
		return nil, nil, fmt.Errorf("%w: use start first", game.ErrNotStarted)
	}
	e := m.encounters.Get(playerID)
	if e == nil {
		return nil, nil, fmt.Errorf("%w: you are not in the dungeon", game.ErrNotFound)
	}
	if handle != "" && handle != e.ID {
		return nil, nil, fmt.Errorf("%w: that fight is over", game.ErrStateExpired)
	}
	return e, p, nil
}

// Cast runs one dungeon turn: the hero acts, statuses tick, then the monster
// counter-attacks if it still stands. An empty spell id casts the basic strike.
func (m *DungeonManager) Cast(playerID, handle, spellID string) (*EncounterReport, error) {
	e, p, err := m.current(playerID, handle)
	if err != nil {
		return nil, err
	}
	if spellID != "" && !p.Knows(spellID) {
		return nil, fmt.Errorf("%w: you do not know %q", game.ErrInvalidChoice, spellID)
	}

	hero, mon := e.Hero, e.Monster
	r := &EncounterReport{Encounter: e}
	e.Turn++

	if SkipsTurn(hero) {
		r.Skipped = true
		r.Lines = append(r.Lines, fmt.Sprintf("%s cannot act this turn.", hero.Name))
	} else {
		spell := m.catalog.Spell(spellID)
		res := Resolve(hero, spell, m.roll)
		res.Magnitude = PayMana(hero, spell.Cost, res.Magnitude)
		r.Cast = &res

		if res.Healing() {
			healed := hero.Heal(-res.Magnitude)
			r.Lines = append(r.Lines, fmt.Sprintf("You cast %s and recover %d HP.", spell.Name, healed))
		} else {
			dealt := mon.TakeDamage(Mitigate(res.Magnitude, mon.Defense))
			r.Lines = append(r.Lines, fmt.Sprintf("Your %s %s the %s for %d damage.", spell.Name, DamageVerb(dealt), mon.Name, dealt))
			if res.Crit {
				r.Lines = append(r.Lines, "Critical hit!")
			}
			if res.Status != "" {
				mon.Afflict(res.Status, res.StatusTurns)
				r.Lines = append(r.Lines, fmt.Sprintf("The %s is afflicted with %s.", mon.Name, res.Status))
			}
			if healed := hero.Heal(LifeSteal(hero.Element, dealt)); healed > 0 {
				r.Lines = append(r.Lines, fmt.Sprintf("You drain %d HP.", healed))
			}
		}
	}

	r.Lines = append(r.Lines, TickEffects(hero)...)
	r.Lines = append(r.Lines, TickEffects(mon)...)

	if !mon.Alive() {
		return r, m.victory(r, p)
	}
	if !hero.Alive() {
		return r, m.defeat(r, p)
	}

	if SkipsTurn(mon) {
		r.Lines = append(r.Lines, fmt.Sprintf("The %s cannot act.", mon.Name))
	} else {
		dealt := hero.TakeDamage(Mitigate(mon.Attack, hero.Defense))
		r.Lines = append(r.Lines, fmt.Sprintf("The %s %s you for %d damage.", mon.Name, DamageVerb(dealt), dealt))
		if !hero.Alive() {
			return r, m.defeat(r, p)
		}
	}

	regen := ManaRegen
	if hero.Element == game.Water {
		regen += WaterManaBonus
	}
	hero.RegenMana(regen)

	return r, nil
}

// Flee abandons the encounter. The hero keeps its current HP and Mana and
// forfeits the rewards.
func (m *DungeonManager) Flee(playerID, handle string) (*EncounterReport, error) {
	e, p, err := m.current(playerID, handle)
	if err != nil {
		return nil, err
	}

	p.HP = e.Hero.HP
	p.Mana = e.Hero.Mana
	p.Effects = game.Effects{}

	r := &EncounterReport{
		Encounter: e,
		Lines:     []string{fmt.Sprintf("You flee from the %s.", e.Monster.Name)},
		Outcome:   OutcomeFled,
	}
	return r, m.encounters.Delete(playerID)
}

func (m *DungeonManager) victory(r *EncounterReport, p *game.Player) error {
	e := r.Encounter
	p.HP = e.Hero.HP
	p.Mana = e.Hero.Mana
	p.Effects = game.Effects{}

	p.MonstersSlain++
	if e.Monster.Boss {
		p.BossesSlain++
	}
	p.Gold += e.Gold
	p.DeepestFloor = max(p.DeepestFloor, e.Floor)
	p.DungeonFloor = e.Floor + 1

	r.Outcome = OutcomeVictory
	r.Exp = e.Exp
	r.Gold = e.Gold
	r.LevelUp = p.GainExperience(e.Exp, m.catalog.Items)
	r.Lines = append(r.Lines, fmt.Sprintf("The %s is defeated! You gain %d EXP and %d gold.", e.Monster.Name, e.Exp, e.Gold))
	if r.LevelUp.Levels > 0 {
		r.Lines = append(r.Lines, fmt.Sprintf("You reached level %d!", p.Level))
	}

	slog.Info("encounter won", "player", p.ID, "floor", e.Floor, "monster", e.MonsterID)
	return m.encounters.Delete(p.ID)
}

// defeat discards the encounter without rewards. The hero recovers to half HP
// and stays on the same floor.
func (m *DungeonManager) defeat(r *EncounterReport, p *game.Player) error {
	e := r.Encounter
	p.HP = max(p.MaxHP/DefeatRecoveryDivisor, 1)
	p.Mana = e.Hero.Mana
	p.Effects = game.Effects{}

	r.Outcome = OutcomeDefeat
	r.Lines = append(r.Lines, fmt.Sprintf("You were defeated by the %s.", e.Monster.Name))

	slog.Info("encounter lost", "player", p.ID, "floor", e.Floor, "monster", e.MonsterID)
	return m.encounters.Delete(p.ID)
}
