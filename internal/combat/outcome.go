package combat

// Outcome is how a fight ended. The zero value means it is still going.
type Outcome string

const (
	OutcomeOngoing  Outcome = ""
	OutcomeVictory  Outcome = "victory"
	OutcomeDefeat   Outcome = "defeat"
	OutcomeDraw     Outcome = "draw"
	OutcomeFled     Outcome = "fled"
	OutcomeDeclined Outcome = "declined"
)

func (o Outcome) Resolved() bool {
	return o != OutcomeOngoing
}
