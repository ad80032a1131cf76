package combat

import (
	"fmt"
	"slices"

	"github.com/pixil98/go-arcana/internal/game"
	"github.com/pixil98/go-arcana/internal/storage"
)

const (
	// BossInterval makes every Nth floor a boss floor.
	BossInterval = 5
	// FloorScalePercent is added to the monster scale for each floor past the first.
	FloorScalePercent = 15
)

// ScalePercent is the stat and reward multiplier for a floor, in percent.
func ScalePercent(floor int) int {
	return 100 + FloorScalePercent*(max(floor, 1)-1)
}

func IsBossFloor(floor int) bool {
	return floor > 0 && floor%BossInterval == 0
}

// Spawned is a monster instance scaled for a floor.
type Spawned struct {
	MonsterID string
	Combatant *Combatant
	Exp       int
	Gold      int
}

// Spawn picks and scales a monster for floor. Boss floors draw from the bosses
// tagged for that exact floor; failing that, from the deepest tier of bosses
// already unlocked; failing that, from the regular monsters.
func Spawn(monsters storage.Reader[*game.Monster], floor int, roll Roller) (*Spawned, error) {
	all := monsters.GetAll()
	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	var regular, exact, unlocked []string
	deepest := 0
	for _, id := range ids {
		m := all[id]
		switch {
		case !m.Boss:
			regular = append(regular, id)
		case m.MinFloor == floor:
			exact = append(exact, id)
		case m.MinFloor < floor:
			if m.MinFloor > deepest {
				deepest = m.MinFloor
				unlocked = unlocked[:0]
			}
			if m.MinFloor == deepest {
				unlocked = append(unlocked, id)
			}
		}
	}

	pool := regular
	if IsBossFloor(floor) {
		switch {
		case len(exact) > 0:
			pool = exact
		case len(unlocked) > 0:
			pool = unlocked
		}
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("%w: no monster for floor %d", game.ErrNotFound, floor)
	}

	id := pool[roll.IntN(len(pool))]
	return Scale(id, all[id], floor), nil
}

// Scale copies a monster template with stats and rewards multiplied for floor.
func Scale(id string, m *game.Monster, floor int) *Spawned {
	pct := ScalePercent(floor)
	scale := func(v int) int { return v * pct / 100 }

	hp := max(scale(m.HP), 1)
	return &Spawned{
		MonsterID: id,
		Combatant: &Combatant{
			ID:      id,
			Name:    m.Name,
			Boss:    m.Boss,
			HP:      hp,
			MaxHP:   hp,
			Attack:  scale(m.Attack),
			Defense: scale(m.Defense),
			Effects: game.Effects{},
		},
		Exp:  scale(m.Exp),
		Gold: scale(m.Gold),
	}
}
