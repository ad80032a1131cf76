package game

import "maps"

// Status is a timed condition ticking down each turn.
type Status string

const (
	StatusBurn   Status = "burn"
	StatusFreeze Status = "freeze"
	StatusPoison Status = "poison"
	StatusStun   Status = "stun"
)

// Effects maps an active status to its remaining duration in turns.
type Effects map[Status]int

func (e Effects) Clone() Effects {
	if len(e) == 0 {
		return Effects{}
	}
	return maps.Clone(e)
}

// Apply sets a status, keeping the longer of the current and new duration.
func (e Effects) Apply(s Status, turns int) {
	if turns > e[s] {
		e[s] = turns
	}
}
