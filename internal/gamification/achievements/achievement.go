// Package achievements holds the achievement catalog and the evaluation
// logic that decides which catalog entries a user unlocks when one of the
// tracked metrics changes.
package achievements

// Metric types an achievement can be bound to. The value compared against
// the target comes from a different source per type: lifetime workout
// count, current streak length, lifetime nutrition days, weekly
// consistency percentage, or the number of finished programs.
const (
	MetricWorkouts          = "workouts"
	MetricStreak            = "streak"
	MetricNutrition         = "nutrition"
	MetricConsistency       = "consistency"
	MetricProgramCompletion = "programCompletion"
)

type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	MetricType  string `json:"metricType"`
	Target      int    `json:"target"`
	XPReward    int    `json:"xpReward"`
	Rarity      string `json:"rarity"`
	SortOrder   int    `json:"sortOrder"`
}

// UserAchievement is a catalog entry together with the unlocked flag of
// one particular user.
type UserAchievement struct {
	Achievement
	Unlocked bool `json:"unlocked"`
}
