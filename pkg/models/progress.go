package models

// XPPerLevel is the flat amount of XP separating two levels.
const XPPerLevel = 1000

// LevelProgress describes how far a user is into the current level.
type LevelProgress struct {
	CurrentLevelXP int64   `json:"currentLevelXp"`
	NextLevelXP    int64   `json:"nextLevelXp"`
	ProgressXP     int64   `json:"progressXp"`
	Percent        float64 `json:"percent"`
}

// ProgressFor computes the level bar for u. Percent is capped to [0,100].
func ProgressFor(u User) LevelProgress {
	level := int64(max(u.Level, 1))
	cur := (level - 1) * XPPerLevel
	next := level * XPPerLevel
	progress := u.XP - cur

	pct := float64(progress) / float64(next-cur) * 100
	pct = min(max(pct, 0), 100)

	return LevelProgress{
		CurrentLevelXP: cur,
		NextLevelXP:    next,
		ProgressXP:     progress,
		Percent:        pct,
	}
}
