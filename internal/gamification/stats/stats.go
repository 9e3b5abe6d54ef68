// Package stats keeps the per-user gamification statistics: lifetime
// workout and nutrition counters, the workout streak, and the counters of
// the current week.
package stats

import "time"

type GamificationStats struct {
	UserID                 string      `json:"userId"`
	CurrentStreak          int         `json:"currentStreak"`
	LongestStreak          int         `json:"longestStreak"`
	TotalWorkouts          int         `json:"totalWorkouts"`
	TotalNutritionGoalsHit int         `json:"totalNutritionGoalsHit"`
	LastWorkoutAt          *time.Time  `json:"lastWorkoutAt,omitempty"`
	Weekly                 WeeklyStats `json:"weeklyStats"`
	UpdatedAt              time.Time   `json:"updatedAt"`
}

// WeeklyStats are the counters of one calendar week. All fields belong to
// the week starting at WeekStart and reset together on rollover, never
// individually.
type WeeklyStats struct {
	WeekStart             time.Time `json:"weekStart"`
	WorkoutsCompleted     int       `json:"workoutsCompleted"`
	NutritionGoalsHit     int       `json:"nutritionGoalsHit"`
	ConsistencyPercentage int       `json:"consistencyPercentage"`
	XPEarned              int       `json:"xpEarned"`
}

// DefaultStats is the record of a user who never trained: all counters
// zero, no last workout.
func DefaultStats(userID string) GamificationStats {
	return GamificationStats{
		UserID: userID,
	}
}
