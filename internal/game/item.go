package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// Category is the kind of item and, for equipment, the slot it occupies.
type Category string

const (
	CategoryConsumable Category = "consumable"
	CategoryWeapon     Category = "weapon"
	CategoryArmor      Category = "armor"
	CategoryAccessory  Category = "accessory"
)

func (c Category) Equippable() bool {
	return c == CategoryWeapon || c == CategoryArmor || c == CategoryAccessory
}

// Item is a shop catalog entry.
type Item struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Cost     int      `json:"cost"`

	// Equipment modifiers
	Attack  int `json:"attack,omitempty"`
	Defense int `json:"defense,omitempty"`
	HP      int `json:"hp,omitempty"`
	Mana    int `json:"mana,omitempty"`

	// Consumable effect
	RestoreHP   int `json:"restore_hp,omitempty"`
	RestoreMana int `json:"restore_mana,omitempty"`
}

// Validate satisfies storage.ValidatingSpec
func (i *Item) Validate() error {
	el := errors.NewErrorList()
	if i.Name == "" {
		el.Add(fmt.Errorf("item name is required"))
	}
	switch {
	case i.Category == CategoryConsumable:
		if i.RestoreHP <= 0 && i.RestoreMana <= 0 {
			el.Add(fmt.Errorf("consumable %q restores nothing", i.Name))
		}
	case i.Category.Equippable():
	default:
		el.Add(fmt.Errorf("item category %q is invalid", i.Category))
	}
	if i.Cost < 0 {
		el.Add(fmt.Errorf("item cost must not be negative"))
	}
	return el.Err()
}

func (i *Item) Selector() string {
	return i.Name
}

// Summary is the one-line shop description.
func (i *Item) Summary() string {
	switch i.Category {
	case CategoryConsumable:
		return fmt.Sprintf("%s (%d gold) restores %d HP / %d Mana", i.Name, i.Cost, i.RestoreHP, i.RestoreMana)
	default:
		return fmt.Sprintf("%s [%s] (%d gold) ATK %+d DEF %+d HP %+d MP %+d", i.Name, i.Category, i.Cost, i.Attack, i.Defense, i.HP, i.Mana)
	}
}
