package combat

import "github.com/pixil98/go-arcana/internal/game"

// Combatant is the live state of one side of a fight. Fights work on combatants
// rather than player records so an in-progress battle never touches persistent
// state until it resolves.
type Combatant struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Element game.Element `json:"element,omitempty"`
	Boss    bool         `json:"boss,omitempty"`

	HP      int `json:"hp"`
	MaxHP   int `json:"max_hp"`
	Mana    int `json:"mana"`
	MaxMana int `json:"max_mana"`
	Attack  int `json:"attack"`
	Defense int `json:"defense"`

	Effects game.Effects `json:"effects,omitempty"`
}

// PlayerCombatant copies the player's current stats.
func PlayerCombatant(p *game.Player) *Combatant {
	return &Combatant{
		ID:      p.ID,
		Name:    p.Name,
		Element: p.Element,
		HP:      p.HP,
		MaxHP:   p.MaxHP,
		Mana:    p.Mana,
		MaxMana: p.MaxMana,
		Attack:  p.Attack,
		Defense: p.Defense,
		Effects: p.Effects.Clone(),
	}
}

// DuelCombatant copies the player's stats with HP and Mana at their maxima.
func DuelCombatant(p *game.Player) *Combatant {
	c := PlayerCombatant(p)
	c.HP = c.MaxHP
	c.Mana = c.MaxMana
	c.Effects = game.Effects{}
	return c
}

func (c *Combatant) Alive() bool {
	return c.HP > 0
}

// TakeDamage lowers HP, never below zero, and returns the HP actually lost.
func (c *Combatant) TakeDamage(n int) int {
	if n <= 0 {
		return 0
	}
	lost := min(n, c.HP)
	c.HP -= lost
	return lost
}

// Heal raises HP up to MaxHP and returns the HP actually restored.
func (c *Combatant) Heal(n int) int {
	if n <= 0 {
		return 0
	}
	gained := min(n, c.MaxHP-c.HP)
	if gained < 0 {
		return 0
	}
	c.HP += gained
	return gained
}

// RegenMana raises Mana up to MaxMana.
func (c *Combatant) RegenMana(n int) {
	c.Mana = min(c.Mana+n, c.MaxMana)
}

// Afflict applies a status for turns, keeping any longer duration already running.
func (c *Combatant) Afflict(s game.Status, turns int) {
	if c.Effects == nil {
		c.Effects = game.Effects{}
	}
	c.Effects.Apply(s, turns)
}
