package combat

import "math/rand/v2"

// Roller is the random source behind every probabilistic roll in a fight.
type Roller interface {
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
	// IntN returns a value in [0, n).
	IntN(n int) int
}

type randRoller struct{}

func (randRoller) Float64() float64 { return rand.Float64() }
func (randRoller) IntN(n int) int   { return rand.IntN(n) }

// DefaultRoller draws from math/rand/v2.
var DefaultRoller Roller = randRoller{}
