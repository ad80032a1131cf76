package game

import (
	"time"

	"github.com/pixil98/go-arcana/internal/storage"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func testCatalog() *Catalog {
	return &Catalog{
		Items: storage.NewCatalogStoreFromMap(map[string]*Item{
			"potion_hp":   {Name: "Small HP Potion", Category: CategoryConsumable, Cost: 100, RestoreHP: 50},
			"potion_mana": {Name: "Small Mana Potion", Category: CategoryConsumable, Cost: 100, RestoreMana: 25},
			"eq_sword":    {Name: "Iron Sword", Category: CategoryWeapon, Cost: 500, Attack: 15},
			"eq_axe":      {Name: "Steel Axe", Category: CategoryWeapon, Cost: 800, Attack: 25},
			"eq_armor":    {Name: "Leather Armor", Category: CategoryArmor, Cost: 400, Defense: 10, HP: 20},
			"eq_ring":     {Name: "Simple Ring", Category: CategoryAccessory, Cost: 300, Mana: 15},
		}),
		Spells: storage.NewCatalogStoreFromMap(DefaultSpells()),
		Monsters: storage.NewCatalogStoreFromMap(map[string]*Monster{
			"goblin": {Name: "Goblin", HP: 30, Attack: 5, Exp: 20, Gold: 5},
		}),
	}
}

func newTestPlayer(id string, e Element) *Player {
	return NewPlayer(id, "P-"+id, e, testCatalog().Items, testNow)
}
