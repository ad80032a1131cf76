package game

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Element is a character's affinity. It gates the spell list and the passive bonus.
type Element string

const (
	Fire      Element = "Fire"
	Water     Element = "Water"
	Wind      Element = "Wind"
	Lightning Element = "Lightning"
	Earth     Element = "Earth"
	Light     Element = "Light"
	Dark      Element = "Dark"
	Ice       Element = "Ice"
	Poison    Element = "Poison"
	Arcane    Element = "Arcane"
	Nature    Element = "Nature"
	Metal     Element = "Metal"
	Divine    Element = "Divine"
)

// Elements lists every element in display order.
var Elements = []Element{Fire, Water, Wind, Lightning, Earth, Light, Dark, Ice, Poison, Arcane, Nature, Metal, Divine}

// ParseElement accepts any casing of an element name.
func ParseElement(s string) (Element, error) {
	e := Element(cases.Title(language.English).String(strings.TrimSpace(s)))
	if !e.Valid() {
		return "", fmt.Errorf("%w: unknown element %q", ErrInvalidChoice, s)
	}
	return e, nil
}

func (e Element) Valid() bool {
	return slices.Contains(Elements, e)
}

// OwnerOnly reports whether only the bot owner may pick this element.
func (e Element) OwnerOnly() bool {
	return e == Divine
}

func (e Element) String() string {
	return string(e)
}

var passives = map[Element]string{
	Fire:      "Bonus Attack +10",
	Water:     "Bonus Mana Regen +5",
	Wind:      "Desperation Strike",
	Lightning: "Chance to Stun",
	Earth:     "Bonus HP +50",
	Light:     "First Strike & Critical",
	Dark:      "Life Steal 20%",
	Ice:       "Freeze Chance",
	Poison:    "Damage over Time",
	Arcane:    "Mana Efficiency",
	Nature:    "Bonus Healing +5 HP/Turn",
	Metal:     "Bonus Defense +5",
	Divine:    "All stats +10%",
}

// Passive returns the passive descriptor shown on the profile.
func (e Element) Passive() string {
	return passives[e]
}

var elementSpells = map[Element][]string{
	Fire:      {"Fireball", "Flame Wave", "Inferno", "Heal"},
	Water:     {"Water Jet", "Tsunami", "Aqua Shield", "Healing Rain"},
	Wind:      {"Wind Slash", "Gale Force", "Tornado", "Haste"},
	Lightning: {"Lightning Bolt", "Thunder Strike", "Static Shock", "Chain"},
	Earth:     {"Rock Throw", "Earthquake", "Stone Wall", "Shield Wall"},
	Light:     {"Holy Light", "Radiant Beam", "Solar Flare", "Purify"},
	Dark:      {"Shadow Bolt", "Umbral Wave", "Nightmare", "Drain"},
	Ice:       {"Ice Shard", "Frost Nova", "Blizzard", "Chill Ward"},
	Poison:    {"Poison Dart", "Venom Cloud", "Corrupt", "Toxin Trap"},
	Arcane:    {"Arcane Missiles", "Mana Burst", "Leyline", "Arcane Shield"},
	Nature:    {"Thorn Strike", "Entangle", "Regrowth", "Overgrowth"},
	Metal:     {"Iron Fist", "Metal Barrage", "Reflective Shield", "Fortify"},
	Divine:    {"Divine Bolt", "Radiant Judgement", "Sanctify", "Aegis of Dawn"},
}

// SpellIDs returns the element's spell ids in unlock order.
func (e Element) SpellIDs() []string {
	names := elementSpells[e]
	ids := make([]string, len(names))
	for i, n := range names {
		ids[i] = SpellID(n)
	}
	return ids
}
