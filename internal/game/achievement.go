package game

// Achievement is a one-time milestone badge.
type Achievement string

const (
	AchievementFirstBlood Achievement = "first-blood"
	AchievementFloor10    Achievement = "floor-10"
	AchievementBossSlayer Achievement = "boss-slayer"
	AchievementDuelist    Achievement = "duelist"
	AchievementLevel10    Achievement = "level-10"
	AchievementAscended   Achievement = "ascended"
)

var achievementRules = []struct {
	id   Achievement
	name string
	met  func(*Player) bool
}{
	{AchievementFirstBlood, "First Blood", func(p *Player) bool { return p.MonstersSlain >= 1 }},
	{AchievementFloor10, "Deep Delver", func(p *Player) bool { return p.DeepestFloor >= 10 }},
	{AchievementBossSlayer, "Boss Slayer", func(p *Player) bool { return p.BossesSlain >= 1 }},
	{AchievementDuelist, "Duelist", func(p *Player) bool { return p.PvPWins >= 1 }},
	{AchievementLevel10, "Seasoned", func(p *Player) bool { return p.Level >= 10 || p.Prestige > 0 }},
	{AchievementAscended, "Ascended", func(p *Player) bool { return p.Prestige >= 1 }},
}

// AchievementName returns the display name of an achievement.
func AchievementName(a Achievement) string {
	for _, r := range achievementRules {
		if r.id == a {
			return r.name
		}
	}
	return string(a)
}

// CheckAchievements unlocks every milestone the player now meets and returns the
// newly unlocked ones.
func (p *Player) CheckAchievements() []Achievement {
	var unlocked []Achievement
	for _, r := range achievementRules {
		if !p.HasAchievement(r.id) && r.met(p) {
			p.Achievements = append(p.Achievements, r.id)
			unlocked = append(unlocked, r.id)
		}
	}
	return unlocked
}
