package game

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestRecalculate(t *testing.T) {
	tests := map[string]struct {
		element   Element
		level     int
		prestige  int
		equipment Equipment
		expMaxHP  int
		expMaxMP  int
		expAttack int
		expDef    int
	}{
		"water level 1": {
			element: Water, level: 1,
			expMaxHP: 110, expMaxMP: 110, expAttack: 12, expDef: 6,
		},
		"fire adds attack": {
			element: Fire, level: 1,
			expMaxHP: 110, expMaxMP: 110, expAttack: 22, expDef: 6,
		},
		"earth adds hp": {
			element: Earth, level: 3,
			expMaxHP: 180, expMaxMP: 130, expAttack: 16, expDef: 8,
		},
		"metal adds defense": {
			element: Metal, level: 2,
			expMaxHP: 120, expMaxMP: 120, expAttack: 14, expDef: 12,
		},
		"divine multiplies everything": {
			element: Divine, level: 1,
			expMaxHP: 121, expMaxMP: 121, expAttack: 13, expDef: 6,
		},
		"prestige bonus": {
			element: Water, level: 1, prestige: 2,
			expMaxHP: 150, expMaxMP: 140, expAttack: 12, expDef: 6,
		},
		"equipment bonuses": {
			element:   Water,
			level:     1,
			equipment: Equipment{Weapon: "eq_sword", Armor: "eq_armor", Accessory: "eq_ring"},
			expMaxHP:  130, expMaxMP: 125, expAttack: 27, expDef: 16,
		},
		"unknown equipment ignored": {
			element:   Water,
			level:     1,
			equipment: Equipment{Weapon: "eq_missing"},
			expMaxHP:  110, expMaxMP: 110, expAttack: 12, expDef: 6,
		},
		"hard cap": {
			element: Water, level: 200,
			expMaxHP: 1000, expMaxMP: 1000, expAttack: 410, expDef: 205,
		},
		"divine recapped": {
			element: Divine, level: 200,
			expMaxHP: 1000, expMaxMP: 1000, expAttack: 451, expDef: 225,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p := &Player{Element: tt.element, Level: tt.level, Prestige: tt.prestige, Equipment: tt.equipment, HP: 5000, Mana: 5000}
			Recalculate(p, testCatalog().Items)

			testutil.AssertEqual(t, "max hp", p.MaxHP, tt.expMaxHP)
			testutil.AssertEqual(t, "max mana", p.MaxMana, tt.expMaxMP)
			testutil.AssertEqual(t, "attack", p.Attack, tt.expAttack)
			testutil.AssertEqual(t, "defense", p.Defense, tt.expDef)
			testutil.AssertEqual(t, "hp clamped", p.HP, tt.expMaxHP)
			testutil.AssertEqual(t, "mana clamped", p.Mana, tt.expMaxMP)
		})
	}
}

func TestRecalculate_NeverRaisesCurrent(t *testing.T) {
	p := &Player{Element: Water, Level: 5, HP: 40, Mana: 0}
	Recalculate(p, testCatalog().Items)

	testutil.AssertEqual(t, "hp", p.HP, 40)
	testutil.AssertEqual(t, "mana", p.Mana, 0)
}

func TestRecalculate_Idempotent(t *testing.T) {
	for _, e := range Elements {
		t.Run(string(e), func(t *testing.T) {
			p := &Player{Element: e, Level: 7, Prestige: 1, HP: 999, Mana: 3, Equipment: Equipment{Armor: "eq_armor"}}
			items := testCatalog().Items

			Recalculate(p, items)
			first := *p
			Recalculate(p, items)

			testutil.AssertEqual(t, "max hp", p.MaxHP, first.MaxHP)
			testutil.AssertEqual(t, "max mana", p.MaxMana, first.MaxMana)
			testutil.AssertEqual(t, "attack", p.Attack, first.Attack)
			testutil.AssertEqual(t, "defense", p.Defense, first.Defense)
			testutil.AssertEqual(t, "hp", p.HP, first.HP)
			testutil.AssertEqual(t, "mana", p.Mana, first.Mana)
			if p.HP > p.MaxHP || p.Mana > p.MaxMana {
				t.Errorf("current exceeds max: hp %d/%d mana %d/%d", p.HP, p.MaxHP, p.Mana, p.MaxMana)
			}
		})
	}
}
