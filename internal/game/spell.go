package game

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-errors"
)

// School is the damage category a spell resolves under.
type School string

const (
	SchoolBasic     School = "basic"
	SchoolFire      School = "fire"
	SchoolLightning School = "lightning"
	SchoolWater     School = "water"
	SchoolWind      School = "wind"
	SchoolEarth     School = "earth"
	SchoolIce       School = "ice"
	SchoolPoison    School = "poison"
	SchoolArcane    School = "arcane"
	SchoolDivine    School = "divine"
	SchoolShadow    School = "shadow"
	SchoolNature    School = "nature"
	SchoolMetal     School = "metal"
	SchoolHealing   School = "healing"
)

const (
	// BasicStrikeBase is the magnitude of the fallback attack.
	BasicStrikeBase = 20
	// DefaultSpellCost applies to spells with no listed cost.
	DefaultSpellCost = 10
)

// Keyword groups are matched in order against the lowercased spell name; the
// first group with a hit decides the school.
var schoolKeywords = []struct {
	school   School
	keywords []string
}{
	{SchoolHealing, []string{"heal", "regrowth", "sanctify", "purify", "mend"}},
	{SchoolFire, []string{"fire", "flame", "inferno"}},
	{SchoolLightning, []string{"lightning", "thunder"}},
	{SchoolWater, []string{"water", "tidal", "aqua", "tsunami"}},
	{SchoolWind, []string{"wind", "gale", "haste"}},
	{SchoolEarth, []string{"earth", "rock", "quake"}},
	{SchoolIce, []string{"ice", "frost"}},
	{SchoolPoison, []string{"poison", "venom", "toxin"}},
	{SchoolArcane, []string{"arcane"}},
	{SchoolDivine, []string{"divine", "radiant"}},
	{SchoolShadow, []string{"shadow", "dark", "umbral", "nightmare"}},
	{SchoolNature, []string{"nature", "thorn", "vine"}},
	{SchoolMetal, []string{"metal", "iron", "steel"}},
}

var schoolBase = map[School]int{
	SchoolBasic:     BasicStrikeBase,
	SchoolFire:      25,
	SchoolLightning: 28,
	SchoolWater:     18,
	SchoolWind:      15,
	SchoolEarth:     22,
	SchoolIce:       18,
	SchoolPoison:    16,
	SchoolArcane:    20,
	SchoolDivine:    30,
	SchoolShadow:    24,
	SchoolNature:    19,
	SchoolMetal:     21,
}

// Schools an element's spells fall back to when the name has no keyword.
var elementSchool = map[Element]School{
	Fire:      SchoolFire,
	Water:     SchoolWater,
	Wind:      SchoolWind,
	Lightning: SchoolLightning,
	Earth:     SchoolEarth,
	Dark:      SchoolShadow,
	Ice:       SchoolIce,
	Poison:    SchoolPoison,
	Arcane:    SchoolArcane,
	Nature:    SchoolNature,
	Metal:     SchoolMetal,
	Divine:    SchoolDivine,
}

var spellCosts = map[string]int{
	"Fireball": 15, "Flame Wave": 10, "Inferno": 30,
	"Lightning Bolt": 25, "Wind Slash": 10, "Tsunami": 25, "Water Jet": 10,
	"Rock Throw": 8, "Earthquake": 20,
	"Holy Light": 18, "Radiant Beam": 22, "Solar Flare": 30, "Purify": 20,
	"Shadow Bolt": 18, "Umbral Wave": 22, "Nightmare": 28, "Drain": 20,
	"Ice Shard": 12, "Frost Nova": 18, "Blizzard": 26, "Chill Ward": 15,
	"Poison Dart": 10, "Venom Cloud": 18, "Corrupt": 22, "Toxin Trap": 12,
	"Arcane Missiles": 12, "Mana Burst": 20, "Leyline": 25, "Arcane Shield": 15,
	"Thorn Strike": 10, "Entangle": 18, "Regrowth": 20, "Overgrowth": 28,
	"Iron Fist": 12, "Metal Barrage": 22, "Reflective Shield": 18, "Fortify": 15,
	"Divine Bolt": 20, "Radiant Judgement": 30, "Sanctify": 25, "Aegis of Dawn": 15,
}

// Spell is a structured catalog entry. Base is ignored for healing spells, whose
// magnitude scales off the caster's max HP.
type Spell struct {
	Name    string  `json:"name"`
	Element Element `json:"element,omitempty"`
	School  School  `json:"school,omitempty"`
	Base    int     `json:"base,omitempty"`
	Cost    int     `json:"cost,omitempty"`
}

// BasicStrike is cast when no spell, or an unknown one, is named.
var BasicStrike = &Spell{Name: "Basic Strike", School: SchoolBasic, Base: BasicStrikeBase}

// SpellID turns a display name into a catalog id: "Aegis of Dawn" becomes "aegis-of-dawn".
func SpellID(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.ReplaceAll(name, "'", ""))), "-")
}

// ClassifySpell picks the school for a spell name by keyword, then by element.
func ClassifySpell(name string, e Element) School {
	lower := strings.ToLower(name)
	for _, group := range schoolKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return group.school
			}
		}
	}
	if s, ok := elementSchool[e]; ok {
		return s
	}
	return SchoolBasic
}

// Normalize fills unset fields from the keyword and cost tables. Catalogs call it
// once at load time.
func (s *Spell) Normalize() {
	if s.School == "" {
		s.School = ClassifySpell(s.Name, s.Element)
	}
	if s.Base == 0 && s.School != SchoolHealing {
		s.Base = schoolBase[s.School]
	}
	if s.Cost == 0 {
		s.Cost = DefaultSpellCost
		if c, ok := spellCosts[s.Name]; ok {
			s.Cost = c
		}
	}
}

func (s *Spell) IsHealing() bool {
	return s.School == SchoolHealing
}

// Validate satisfies storage.ValidatingSpec
func (s *Spell) Validate() error {
	el := errors.NewErrorList()
	if s.Name == "" {
		el.Add(fmt.Errorf("spell name is required"))
	}
	if s.Element != "" && !s.Element.Valid() {
		el.Add(fmt.Errorf("spell element %q is invalid", s.Element))
	}
	if _, ok := schoolBase[s.School]; s.School != "" && !ok && s.School != SchoolHealing {
		el.Add(fmt.Errorf("spell school %q is invalid", s.School))
	}
	if s.Cost < 0 {
		el.Add(fmt.Errorf("spell cost must not be negative"))
	}
	return el.Err()
}

func (s *Spell) Selector() string {
	return s.Name
}

// DefaultSpells builds the built-in catalog from every element's spell list.
func DefaultSpells() map[string]*Spell {
	spells := map[string]*Spell{}
	for _, e := range Elements {
		for _, name := range elementSpells[e] {
			sp := &Spell{Name: name, Element: e}
			sp.Normalize()
			spells[SpellID(name)] = sp
		}
	}
	return spells
}
