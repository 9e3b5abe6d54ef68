// Package levels implements the experience points curve used across
// the gamification engine: level(xp) = floor(sqrt(xp/100)) + 1.
package levels

import "math"

// Progress describes where inside the current level a given XP total sits.
type Progress struct {
	Level                int     `json:"level"`
	CurrentLevelXP       int     `json:"currentLevelXp"`
	XPNeededForNextLevel int     `json:"xpNeededForNextLevel"`
	ProgressPercent      float64 `json:"progressPercent"`
}

// LevelOf returns the level for the given XP total. Level 1 is the floor,
// negative XP totals are treated as zero.
func LevelOf(totalXP int) int {
	if totalXP <= 0 {
		return 1
	}
	return int(math.Floor(math.Sqrt(float64(totalXP)/100))) + 1
}

// XPRequiredForLevel returns the total XP at which the given level is
// completed, i.e. the XP floor of level+1.
func XPRequiredForLevel(level int) int {
	if level < 1 {
		return 0
	}
	return level * level * 100
}

// LevelProgress breaks a total XP amount down into the progress within
// the current level. ProgressPercent is always within [0, 100].
func LevelProgress(totalXP int) Progress {
	if totalXP < 0 {
		totalXP = 0
	}

	level := LevelOf(totalXP)
	levelFloor := XPRequiredForLevel(level - 1)
	nextLevelFloor := XPRequiredForLevel(level)

	currentLevelXP := totalXP - levelFloor
	xpNeeded := nextLevelFloor - levelFloor

	var percent float64
	if xpNeeded <= 0 {
		// can not happen with the quadratic curve, but never divide by zero
		percent = 100
	} else {
		percent = float64(currentLevelXP) / float64(xpNeeded) * 100
	}

	if percent < 0 {
		percent = 0
	} else if percent > 100 {
		percent = 100
	}

	return Progress{
		Level:                level,
		CurrentLevelXP:       currentLevelXP,
		XPNeededForNextLevel: xpNeeded,
		ProgressPercent:      percent,
	}
}
