package game

import "github.com/pixil98/go-arcana/internal/storage"

const (
	// HardCap bounds max HP and max Mana.
	HardCap = 1000

	BaseHP      = 100
	BaseMana    = 100
	BaseAttack  = 10
	BaseDefense = 5

	hpPerLevel         = 10
	manaPerLevel       = 10
	attackPerLevel     = 2
	defensePerLevel    = 1
	hpPerPrestige      = 20
	manaPerPrestige    = 15
	divineBonusPercent = 110
	earthBonusHP       = 50
	fireBonusAttack    = 10
	metalBonusDefense  = 5
)

// Recalculate derives the player's maxima, attack and defense from level,
// prestige, equipment and element, then caps current HP and Mana. Element
// bonuses are applied last, on top of the equipment totals. Equipped ids missing
// from the catalog contribute nothing. The result depends only on those inputs,
// so repeated calls are no-ops.
func Recalculate(p *Player, items storage.Reader[*Item]) {
	var bonus Item
	for _, id := range p.Equipment.IDs() {
		it := items.Get(id)
		if it == nil {
			continue
		}
		bonus.HP += it.HP
		bonus.Mana += it.Mana
		bonus.Attack += it.Attack
		bonus.Defense += it.Defense
	}

	p.MaxHP = min(BaseHP+p.Level*hpPerLevel+p.Prestige*hpPerPrestige+bonus.HP, HardCap)
	p.MaxMana = min(BaseMana+p.Level*manaPerLevel+p.Prestige*manaPerPrestige+bonus.Mana, HardCap)
	p.Attack = BaseAttack + p.Level*attackPerLevel + bonus.Attack
	p.Defense = BaseDefense + p.Level*defensePerLevel + bonus.Defense

	switch p.Element {
	case Divine:
		p.MaxHP = p.MaxHP * divineBonusPercent / 100
		p.MaxMana = p.MaxMana * divineBonusPercent / 100
		p.Attack = p.Attack * divineBonusPercent / 100
		p.Defense = p.Defense * divineBonusPercent / 100
	case Earth:
		p.MaxHP += earthBonusHP
	case Fire:
		p.Attack += fireBonusAttack
	case Metal:
		p.Defense += metalBonusDefense
	}
	p.MaxHP = min(p.MaxHP, HardCap)
	p.MaxMana = min(p.MaxMana, HardCap)

	p.HP = max(min(p.HP, p.MaxHP), 0)
	p.Mana = max(min(p.Mana, p.MaxMana), 0)
}
