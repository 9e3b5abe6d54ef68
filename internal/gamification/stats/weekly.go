package stats

import (
	"math"
	"time"
)

// weeklyWorkoutTarget is the number of sessions per week that counts as
// fully consistent.
const weeklyWorkoutTarget = 3

// ConsistencyPercent maps the workouts of one week onto 0-100, against
// the 3-session weekly target. More sessions than the target stay at 100.
func ConsistencyPercent(workoutsCompleted int) int {
	if workoutsCompleted <= 0 {
		return 0
	}
	percent := int(math.Round(float64(workoutsCompleted) / float64(weeklyWorkoutTarget) * 100))
	if percent > 100 {
		return 100
	}
	return percent
}

// WeekStart returns Monday 00:00 UTC of the week containing t.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -daysSinceMonday)
}

// RolloverIfStale zeroes the whole weekly block when the stored week lies
// before the week of now. The fields always reset together. Returns true
// when a rollover happened.
func (w *WeeklyStats) RolloverIfStale(now time.Time) bool {
	currentWeek := WeekStart(now)
	if !w.WeekStart.Before(currentWeek) {
		return false
	}
	*w = WeeklyStats{WeekStart: currentWeek}
	return true
}

// RecalculateConsistency refreshes the percentage from the workout count.
// Call after every weekly mutation.
func (w *WeeklyStats) RecalculateConsistency() {
	w.ConsistencyPercentage = ConsistencyPercent(w.WorkoutsCompleted)
}
