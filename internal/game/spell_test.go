package game

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestClassifySpell(t *testing.T) {
	tests := map[string]struct {
		name    string
		element Element
		exp     School
	}{
		"fire keyword":           {name: "Fireball", element: Fire, exp: SchoolFire},
		"healing wins":           {name: "Healing Rain", element: Water, exp: SchoolHealing},
		"thunder":                {name: "Thunder Strike", element: Lightning, exp: SchoolLightning},
		"radiant under light":    {name: "Radiant Beam", element: Light, exp: SchoolDivine},
		"element fallback":       {name: "Corrupt", element: Poison, exp: SchoolPoison},
		"no keyword no element":  {name: "Holy Light", element: Light, exp: SchoolBasic},
		"keyword across element": {name: "Ice Shard", element: Water, exp: SchoolIce},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "school", ClassifySpell(tt.name, tt.element), tt.exp)
		})
	}
}

func TestDefaultSpells(t *testing.T) {
	spells := DefaultSpells()
	testutil.AssertEqual(t, "count", len(spells), 52)

	fireball := spells["fireball"]
	testutil.AssertEqual(t, "fireball base", fireball.Base, 25)
	testutil.AssertEqual(t, "fireball cost", fireball.Cost, 15)

	heal := spells["heal"]
	testutil.AssertEqual(t, "heal school", heal.School, SchoolHealing)
	testutil.AssertEqual(t, "heal base", heal.Base, 0)
	testutil.AssertEqual(t, "heal default cost", heal.Cost, DefaultSpellCost)

	for id, sp := range spells {
		if err := sp.Validate(); err != nil {
			t.Errorf("spell %s invalid: %v", id, err)
		}
	}
}

func TestSpellID(t *testing.T) {
	testutil.AssertEqual(t, "spaces", SpellID("Aegis of Dawn"), "aegis-of-dawn")
	testutil.AssertEqual(t, "case and padding", SpellID("  FIREBALL "), "fireball")
}

func TestParseElement(t *testing.T) {
	e, err := ParseElement("lightning")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "element", e, Lightning)
	testutil.AssertEqual(t, "owner only", Divine.OwnerOnly(), true)

	_, err = ParseElement("plasma")
	testutil.AssertErrorContains(t, err, "unknown element")
}
