package game

import (
	"fmt"

	"github.com/pixil98/go-arcana/internal/storage"
)

// PrestigeLevel is the level at which a character may prestige.
const PrestigeLevel = 50

// ExpToLevel is the EXP consumed to advance from level to level+1.
func ExpToLevel(level int) int {
	return 100 * level
}

// SpellSlots is the number of element spells known at a level.
//
//	level 1-4:  2
//	level 5-9:  3
//	level 10+:  4
func SpellSlots(level int) int {
	switch {
	case level >= 10:
		return 4
	case level >= 5:
		return 3
	default:
		return 2
	}
}

// LevelUp describes the outcome of an EXP grant.
type LevelUp struct {
	Levels  int
	Learned []string
}

// GainExperience adds exp and applies every level the total pays for. Each level
// consumes ExpToLevel of the level being left, so Experience never goes negative.
// Levelling recalculates stats, learns new spells and refills HP and Mana.
func (p *Player) GainExperience(exp int, items storage.Reader[*Item]) LevelUp {
	var up LevelUp
	if exp > 0 {
		p.Experience += exp
	}

	for p.Experience >= ExpToLevel(p.Level) {
		p.Experience -= ExpToLevel(p.Level)
		p.Level++
		up.Levels++
	}

	if up.Levels > 0 {
		up.Learned = p.learnSpells()
		Recalculate(p, items)
		p.Refill()
	}
	return up
}

// PrestigeReset trades level and EXP for a permanent stat bonus. Element spells
// are relearned from level 1; spells granted outside the element list are kept.
func (p *Player) PrestigeReset(items storage.Reader[*Item]) error {
	if p.Level < PrestigeLevel {
		return fmt.Errorf("%w: prestige requires level %d", ErrInvalidChoice, PrestigeLevel)
	}

	p.Prestige++
	p.Level = 1
	p.Experience = 0

	p.relearnSpells()

	Recalculate(p, items)
	p.Refill()
	return nil
}
