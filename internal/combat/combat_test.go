package combat

import (
	"time"

	"github.com/pixil98/go-arcana/internal/game"
	"github.com/pixil98/go-arcana/internal/storage"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// scriptRoller replays fixed rolls. Once a queue runs dry Float64 returns 0.99,
// which lands no proc, and IntN returns 0.
type scriptRoller struct {
	floats []float64
	ints   []int
}

func (r *scriptRoller) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.99
	}
	f := r.floats[0]
	r.floats = r.floats[1:]
	return f
}

func (r *scriptRoller) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	i := r.ints[0]
	r.ints = r.ints[1:]
	return i % n
}

func testCatalog() *game.Catalog {
	return &game.Catalog{
		Items: storage.NewCatalogStoreFromMap(map[string]*game.Item{
			"eq_sword": {Name: "Iron Sword", Category: game.CategoryWeapon, Cost: 500, Attack: 15},
		}),
		Spells: storage.NewCatalogStoreFromMap(game.DefaultSpells()),
		Monsters: storage.NewCatalogStoreFromMap(map[string]*game.Monster{
			"goblin":        {Name: "Goblin", HP: 30, Attack: 5, Exp: 20, Gold: 5},
			"orc":           {Name: "Orc", HP: 60, Attack: 10, Defense: 2, Exp: 40, Gold: 15},
			"goblin-king":   {Name: "Goblin King", HP: 150, Attack: 15, Defense: 5, Exp: 200, Gold: 100, Boss: true, MinFloor: 5},
			"troll-warlord": {Name: "Troll Warlord", HP: 300, Attack: 25, Defense: 8, Exp: 400, Gold: 250, Boss: true, MinFloor: 10},
		}),
	}
}

func newTestPlayer(id string, e game.Element) *game.Player {
	return game.NewPlayer(id, "P-"+id, e, testCatalog().Items, testNow)
}

func testPlayers(ps ...*game.Player) *storage.MemoryStore[*game.Player] {
	st := storage.NewMemoryStore[*game.Player]()
	for _, p := range ps {
		_ = st.Save(p.ID, p)
	}
	return st
}
