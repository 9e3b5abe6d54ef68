package stats

import "time"

type StreakState struct {
	Current int
	Longest int
}

// EvaluateStreak computes the streak after a workout at the given time.
// Days are compared as whole UTC calendar days, so two workouts on the
// same day leave the streak untouched, the next day extends it, and any
// longer gap starts over at 1. A last workout that appears to lie in the
// future (client clock skew) is treated as same-day. Longest never drops.
func EvaluateStreak(prev StreakState, lastWorkoutAt *time.Time, now time.Time) StreakState {
	next := prev

	if lastWorkoutAt == nil {
		next.Current = 1
	} else {
		lastDay := dayOf(*lastWorkoutAt)
		nowDay := dayOf(now)
		daysBetween := int(nowDay.Sub(lastDay).Hours() / 24)

		switch {
		case daysBetween <= 0:
			// same day, or skewed clock: keep the streak as it is
		case daysBetween == 1:
			next.Current++
		default:
			next.Current = 1
		}
	}

	if next.Current > next.Longest {
		next.Longest = next.Current
	}
	return next
}

func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
