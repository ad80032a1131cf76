package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// Monster is a dungeon foe template. Encounters scale a copy of it per floor.
type Monster struct {
	Name    string `json:"name"`
	HP      int    `json:"hp"`
	Attack  int    `json:"attack"`
	Defense int    `json:"defense"`
	Exp     int    `json:"exp"`
	Gold    int    `json:"gold"`

	// Boss monsters only spawn on boss floors at or past MinFloor.
	Boss     bool `json:"boss,omitempty"`
	MinFloor int  `json:"min_floor,omitempty"`
}

// Validate satisfies storage.ValidatingSpec
func (m *Monster) Validate() error {
	el := errors.NewErrorList()
	if m.Name == "" {
		el.Add(fmt.Errorf("monster name is required"))
	}
	if m.HP <= 0 {
		el.Add(fmt.Errorf("monster hp must be positive"))
	}
	if m.Attack < 0 || m.Defense < 0 || m.Exp < 0 || m.Gold < 0 {
		el.Add(fmt.Errorf("monster stats must not be negative"))
	}
	if m.Boss && m.MinFloor < 1 {
		el.Add(fmt.Errorf("boss %q needs a min_floor", m.Name))
	}
	return el.Err()
}

func (m *Monster) Selector() string {
	return m.Name
}
