package combat

var damageMessages = []struct {
	maxDamage int
	verb      string
}{
	{0, "misses"},
	{4, "grazes"},
	{9, "hits"},
	{14, "strikes"},
	{24, "blasts"},
	{39, "mauls"},
	{59, "devastates"},
	{89, "obliterates"},
}

// DamageVerb returns the 3rd person verb for a damage amount.
func DamageVerb(damage int) string {
	for _, msg := range damageMessages {
		if damage <= msg.maxDamage {
			return msg.verb
		}
	}
	return "annihilates"
}

// Mitigate applies the defender's defense to a raw hit. A landed hit always
// deals at least 1.
func Mitigate(raw, defense int) int {
	return max(1, raw-defense)
}
