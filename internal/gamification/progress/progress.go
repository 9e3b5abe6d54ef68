package progress

import (
	"slices"
	"time"
)

// UserProgress is the single gamification record of a user: XP, level,
// streaks and program position. It is stored as one row / one snapshot
// per user, so every write replaces the whole record.
type UserProgress struct {
	UserID                 string    `json:"userId"`
	CurrentLevel           int       `json:"currentLevel"`
	TotalXP                int       `json:"totalXp"`
	CurrentStreak          int       `json:"currentStreak"`
	LongestStreak          int       `json:"longestStreak"`
	TotalWorkoutsCompleted int       `json:"totalWorkoutsCompleted"`
	AchievementsUnlocked   []string  `json:"achievementsUnlocked"`
	CurrentProgram         *string   `json:"currentProgram,omitempty"`
	CurrentWeek            int       `json:"currentWeek"`
	CompletedPrograms      []string  `json:"completedPrograms"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

// DefaultProgress is what a user who never trained looks like.
// Reads for unknown users return this instead of an error.
func DefaultProgress(userID string) UserProgress {
	return UserProgress{
		UserID:               userID,
		CurrentLevel:         1,
		TotalXP:              0,
		CurrentWeek:          1,
		AchievementsUnlocked: []string{},
		CompletedPrograms:    []string{},
	}
}

func (p *UserProgress) HasAchievement(id string) bool {
	return slices.Contains(p.AchievementsUnlocked, id)
}

func (p *UserProgress) HasCompletedProgram(programID string) bool {
	return slices.Contains(p.CompletedPrograms, programID)
}
