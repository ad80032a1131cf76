package combat

import (
	"fmt"

	"github.com/pixil98/go-arcana/internal/game"
)

const (
	BurnDamage   = 5
	PoisonDamage = 4
	NatureRegen  = 5
)

var tickOrder = []game.Status{game.StatusBurn, game.StatusPoison, game.StatusFreeze, game.StatusStun}

// TickEffects applies one turn of every active status on c and counts each one
// down, removing those that run out. It must run exactly once per combatant per
// turn. Messages come back in processing order; none are returned when nothing
// is active and no regeneration happened.
func TickEffects(c *Combatant) []string {
	var msgs []string

	for _, s := range tickOrder {
		turns, ok := c.Effects[s]
		if !ok {
			continue
		}

		switch s {
		case game.StatusBurn:
			msgs = append(msgs, fmt.Sprintf("%s burns for %d damage.", c.Name, c.TakeDamage(BurnDamage)))
		case game.StatusPoison:
			msgs = append(msgs, fmt.Sprintf("%s takes %d poison damage.", c.Name, c.TakeDamage(PoisonDamage)))
		case game.StatusFreeze:
			msgs = append(msgs, fmt.Sprintf("%s is frozen solid.", c.Name))
		case game.StatusStun:
			msgs = append(msgs, fmt.Sprintf("%s is stunned.", c.Name))
		}

		if turns-1 <= 0 {
			delete(c.Effects, s)
		} else {
			c.Effects[s] = turns - 1
		}
	}

	if c.Element == game.Nature && c.Alive() {
		if healed := c.Heal(NatureRegen); healed > 0 {
			msgs = append(msgs, fmt.Sprintf("%s regenerates %d HP.", c.Name, healed))
		}
	}

	return msgs
}

// SkipsTurn reports whether freeze or stun costs c its next action.
func SkipsTurn(c *Combatant) bool {
	return c.Effects[game.StatusFreeze] > 0 || c.Effects[game.StatusStun] > 0
}
