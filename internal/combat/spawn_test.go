package combat

import (
	"testing"

	"github.com/pixil98/go-arcana/internal/game"
	"github.com/pixil98/go-arcana/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalePercent(t *testing.T) {
	assert.Equal(t, 100, ScalePercent(1))
	assert.Equal(t, 130, ScalePercent(3))
	assert.Equal(t, 100, ScalePercent(0))
	assert.Less(t, ScalePercent(9), ScalePercent(10))
}

func TestSpawn(t *testing.T) {
	tests := map[string]struct {
		floor   int
		ints    []int
		expID   string
		expBoss bool
		expHP   int
		expExp  int
		expGold int
	}{
		"first floor regular": {
			floor: 1,
			expID: "goblin", expHP: 30, expExp: 20, expGold: 5,
		},
		"regular monster scaled": {
			floor: 3,
			ints:  []int{1},
			expID: "orc", expHP: 78, expExp: 52, expGold: 19,
		},
		"boss floor with tagged boss": {
			floor:   5,
			expID:   "goblin-king",
			expBoss: true, expHP: 240, expExp: 320, expGold: 160,
		},
		"boss floor tagged exactly": {
			floor:   10,
			expID:   "troll-warlord",
			expBoss: true, expHP: 705, expExp: 940, expGold: 587,
		},
		"boss floor falls back to deepest unlocked": {
			floor:   15,
			expID:   "troll-warlord",
			expBoss: true, expHP: 930, expExp: 1240, expGold: 775,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			sp, err := Spawn(testCatalog().Monsters, tt.floor, &scriptRoller{ints: tt.ints})
			require.NoError(t, err)

			assert.Equal(t, tt.expID, sp.MonsterID)
			assert.Equal(t, tt.expBoss, sp.Combatant.Boss)
			assert.Equal(t, tt.expHP, sp.Combatant.HP)
			assert.Equal(t, sp.Combatant.HP, sp.Combatant.MaxHP)
			assert.Equal(t, tt.expExp, sp.Exp)
			assert.Equal(t, tt.expGold, sp.Gold)
		})
	}
}

func TestSpawn_BossFloorWithoutBossesUsesRegular(t *testing.T) {
	monsters := storage.NewCatalogStoreFromMap(map[string]*game.Monster{
		"goblin": {Name: "Goblin", HP: 30, Attack: 5, Exp: 20, Gold: 5},
	})

	sp, err := Spawn(monsters, 5, &scriptRoller{})
	require.NoError(t, err)
	assert.Equal(t, "goblin", sp.MonsterID)
	assert.False(t, sp.Combatant.Boss)
}

func TestSpawn_EmptyPool(t *testing.T) {
	monsters := storage.NewCatalogStoreFromMap(map[string]*game.Monster{
		"goblin-king": {Name: "Goblin King", HP: 150, Boss: true, MinFloor: 5},
	})

	_, err := Spawn(monsters, 2, &scriptRoller{})
	assert.ErrorIs(t, err, game.ErrNotFound)
}
