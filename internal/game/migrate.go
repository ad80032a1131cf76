package game

import (
	"encoding/json"
	"fmt"

	"github.com/pixil98/go-arcana/internal/storage"
)

// Keys used by the unversioned player documents. Several names exist for the
// same field because the records grew across generations.
var legacyPlayerKeys = []string{
	"id", "username", "name", "displayName", "element",
	"Level", "level", "EXP", "exp", "Gold", "gold", "prestige",
	"HP", "maxHP", "Mana", "maxMana", "currentStats", "maxStats",
	"spells", "passive", "inventory", "equipment", "achievements", "guildId",
	"pvpPoints", "dungeonRank", "wins", "losses",
}

type legacyStats struct {
	HP      *int `json:"hp"`
	Mana    *int `json:"mana"`
	Attack  *int `json:"attack"`
	Defense *int `json:"defense"`
}

type legacyEquipment struct {
	Weapon    *string `json:"weapon"`
	Armor     *string `json:"armor"`
	Accessory *string `json:"accessory"`
}

// MigratePlayer decodes a player record from an older document version. Version 0
// records are the unversioned drafts; their HP and Mana are left above any
// reachable maximum when absent so the next Recalculate clamps them to full.
func MigratePlayer(version uint, data json.RawMessage) (*Player, error) {
	if version != 0 {
		return nil, fmt.Errorf("no migration from version %d", version)
	}

	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	p := &Player{Kind: KindPlayer, HP: HardCap, Mana: HardCap}

	var element string
	steps := []error{
		pick(raw, &p.ID, "id"),
		pick(raw, &p.Name, "name", "displayName", "username"),
		pick(raw, &element, "element"),
		pick(raw, &p.Level, "level", "Level"),
		pick(raw, &p.Experience, "exp", "EXP"),
		pick(raw, &p.Gold, "gold", "Gold"),
		pick(raw, &p.Prestige, "prestige"),
		pick(raw, &p.HP, "HP"),
		pick(raw, &p.Mana, "Mana"),
		pick(raw, &p.Passive, "passive"),
		pick(raw, &p.Inventory, "inventory"),
		pick(raw, &p.GuildID, "guildId"),
		pick(raw, &p.PvPPoints, "pvpPoints"),
		pick(raw, &p.DeepestFloor, "dungeonRank"),
		pick(raw, &p.PvPWins, "wins"),
		pick(raw, &p.PvPLosses, "losses"),
	}
	for _, err := range steps {
		if err != nil {
			return nil, err
		}
	}

	if element != "" {
		e, err := ParseElement(element)
		if err != nil {
			return nil, err
		}
		p.Element = e
	}

	var current legacyStats
	if err := pick(raw, &current, "currentStats"); err != nil {
		return nil, err
	}
	if current.HP != nil {
		p.HP = *current.HP
	}
	if current.Mana != nil {
		p.Mana = *current.Mana
	}

	var names []string
	if err := pick(raw, &names, "spells"); err != nil {
		return nil, err
	}
	for _, n := range names {
		p.Spells = append(p.Spells, SpellID(n))
	}

	var achievements []string
	if err := pick(raw, &achievements, "achievements"); err != nil {
		return nil, err
	}
	for _, a := range achievements {
		p.Achievements = append(p.Achievements, Achievement(a))
	}

	var eq legacyEquipment
	if err := pick(raw, &eq, "equipment"); err != nil {
		return nil, err
	}
	if eq.Weapon != nil {
		p.Equipment.Weapon = *eq.Weapon
	}
	if eq.Armor != nil {
		p.Equipment.Armor = *eq.Armor
	}
	if eq.Accessory != nil {
		p.Equipment.Accessory = *eq.Accessory
	}

	p.Legacy = storage.Extract(raw, legacyPlayerKeys...)
	p.applyDefaults()
	return p, nil
}

// pick decodes the first present, non-null key into dst.
func pick(raw map[string]json.RawMessage, dst any, keys ...string) error {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || string(v) == "null" {
			continue
		}
		if err := json.Unmarshal(v, dst); err != nil {
			return fmt.Errorf("legacy field %q: %w", k, err)
		}
		return nil
	}
	return nil
}
