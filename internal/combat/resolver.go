package combat

import (
	"log/slog"

	"github.com/pixil98/go-arcana/internal/game"
)

const (
	// ManaBonusDivisor converts caster mana into bonus damage.
	ManaBonusDivisor = 5
	// LightCritChance is the crit probability for Light casters.
	LightCritChance = 0.25
	// MinHeal is the smallest heal a healing spell resolves to at full cost.
	MinHeal = 10
	// LifeStealPercent of damage dealt returns to Dark casters.
	LifeStealPercent = 20
)

// CastResult is the outcome of resolving one spell. Magnitude is negative for
// healing. The resolver never applies Status itself; the caller does.
type CastResult struct {
	Spell       *game.Spell
	Magnitude   int
	Crit        bool
	Status      game.Status
	StatusTurns int
}

func (r CastResult) Healing() bool {
	return r.Magnitude < 0
}

// Secondary effects, tried in order. A rule is eligible when the caster's element
// or the spell's school matches; the first eligible rule whose roll lands wins.
// Durations count the tick in the turn the effect lands, so a 2 turn freeze
// costs the target one action.
var statusRules = []struct {
	status  game.Status
	element game.Element
	school  game.School
	chance  float64
	turns   int
}{
	{game.StatusBurn, game.Fire, game.SchoolFire, 0.20, 3},
	{game.StatusFreeze, game.Ice, game.SchoolIce, 0.12, 2},
	{game.StatusPoison, game.Poison, game.SchoolPoison, 0.25, 3},
	{game.StatusStun, game.Lightning, game.SchoolLightning, 0.10, 2},
}

// Resolve computes the signed magnitude of a cast before mana payment and
// before the target's defense. A nil spell resolves as game.BasicStrike. The
// caster is read, never modified.
func Resolve(caster *Combatant, spell *game.Spell, roll Roller) CastResult {
	if spell == nil {
		spell = game.BasicStrike
	}
	res := CastResult{Spell: spell}

	if spell.IsHealing() {
		res.Magnitude = -max(MinHeal, caster.MaxHP/4)
		return res
	}

	mag := spell.Base + caster.Mana/ManaBonusDivisor

	// Multipliers apply in a fixed order, each floored.
	if caster.Element == game.Fire && caster.HP <= caster.MaxHP/2 {
		mag = mag * 13 / 10
	}
	if caster.Element == game.Wind && caster.HP <= caster.MaxHP/5 {
		mag = mag * 3 / 2
	}
	if caster.Element == game.Light && roll.Float64() < LightCritChance {
		mag = mag * 3 / 2
		res.Crit = true
	}
	res.Magnitude = max(mag, 0)

	for _, rule := range statusRules {
		if caster.Element != rule.element && spell.School != rule.school {
			continue
		}
		if roll.Float64() < rule.chance {
			res.Status = rule.status
			res.StatusTurns = rule.turns
			break
		}
	}

	slog.Debug("spell resolved", "caster", caster.ID, "spell", spell.Name, "magnitude", res.Magnitude, "crit", res.Crit, "status", res.Status)
	return res
}

// PayMana charges cost to the caster and returns the magnitude scaled for what
// was paid:
//
//	mana >= cost:     full cost deducted, magnitude unchanged
//	0 < mana < cost:  magnitude scaled by mana/cost, mana drained to 0
//	mana == 0:        magnitude halved, nothing deducted
//
// Scaling never flips the sign; a heal stays at least 1.
func PayMana(caster *Combatant, cost, magnitude int) int {
	var scaled int
	switch {
	case cost <= 0 || caster.Mana >= cost:
		caster.Mana -= max(cost, 0)
		return magnitude
	case caster.Mana > 0:
		scaled = magnitude * caster.Mana / cost
		caster.Mana = 0
	default:
		scaled = magnitude / 2
	}

	if magnitude < 0 && scaled == 0 {
		return -1
	}
	return scaled
}

// LifeSteal is the HP a caster of element e recovers after dealing damage.
func LifeSteal(e game.Element, dealt int) int {
	if e != game.Dark {
		return 0
	}
	return dealt * LifeStealPercent / 100
}
