package game

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// BestowAction is an owner-only override.
type BestowAction string

const (
	BestowSetHP       BestowAction = "setHP"
	BestowSetMana     BestowAction = "setMana"
	BestowSetGold     BestowAction = "setGold"
	BestowAddGold     BestowAction = "addGold"
	BestowSetExp      BestowAction = "setExp"
	BestowSetLevel    BestowAction = "setLevel"
	BestowSetElement  BestowAction = "setElement"
	BestowAddSpell    BestowAction = "addSpell"
	BestowRemoveSpell BestowAction = "removeSpell"
	// BestowSetSpells replaces the spell list with a comma separated list of
	// spell names; "none" clears it.
	BestowSetSpells BestowAction = "setSpells"
)

// Bestower applies owner overrides. Only catalog membership is checked; the
// normal gameplay rules are bypassed.
type Bestower struct {
	OwnerID string
	Catalog *Catalog
}

// Bestow applies action to target on behalf of actorID. value carries the
// argument: a number for the numeric actions, an element or spell name otherwise.
func (b *Bestower) Bestow(actorID string, target *Player, action BestowAction, value string) error {
	if b.OwnerID == "" || actorID != b.OwnerID {
		return fmt.Errorf("%w: bestow is owner-only", ErrPermissionDenied)
	}

	switch action {
	case BestowSetElement:
		e, err := ParseElement(value)
		if err != nil {
			return err
		}
		target.Spells = slices.DeleteFunc(target.Spells, func(id string) bool { return slices.Contains(target.Element.SpellIDs(), id) })
		target.Element = e
		target.Passive = e.Passive()
		target.learnSpells()
		Recalculate(target, b.Catalog.Items)
		return nil

	case BestowAddSpell:
		id, err := b.spellID(value)
		if err != nil {
			return err
		}
		if !target.Knows(id) {
			target.Spells = append(target.Spells, id)
		}
		return nil

	case BestowRemoveSpell:
		id, err := b.spellID(value)
		if err != nil {
			return err
		}
		if !target.Knows(id) {
			return fmt.Errorf("%w: %s does not know %s", ErrNotFound, target.Name, value)
		}
		target.Spells = slices.DeleteFunc(target.Spells, func(s string) bool { return s == id })
		return nil

	case BestowSetSpells:
		spells := []string{}
		if !strings.EqualFold(strings.TrimSpace(value), "none") {
			for _, name := range strings.Split(value, ",") {
				id, err := b.spellID(name)
				if err != nil {
					return err
				}
				if !slices.Contains(spells, id) {
					spells = append(spells, id)
				}
			}
		}
		target.Spells = spells
		return nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%w: %s needs a number", ErrInvalidChoice, action)
	}

	switch action {
	case BestowSetHP:
		target.HP = max(min(n, target.MaxHP), 0)
	case BestowSetMana:
		target.Mana = max(min(n, target.MaxMana), 0)
	case BestowSetGold:
		target.Gold = max(n, 0)
	case BestowAddGold:
		target.Gold = max(target.Gold+n, 0)
	case BestowSetExp:
		target.Experience = max(n, 0)
	case BestowSetLevel:
		if n < 1 {
			return fmt.Errorf("%w: level must be at least 1", ErrInvalidChoice)
		}
		target.Level = n
		target.relearnSpells()
		Recalculate(target, b.Catalog.Items)
	default:
		return fmt.Errorf("%w: unknown bestow action %q", ErrInvalidChoice, action)
	}
	return nil
}

// spellID resolves a spell name to a catalog id.
func (b *Bestower) spellID(name string) (string, error) {
	name = strings.TrimSpace(name)
	id := SpellID(name)
	if name == "" || b.Catalog.Spells.Get(id) == nil {
		return "", fmt.Errorf("%w: unknown spell %q", ErrInvalidChoice, name)
	}
	return id, nil
}
