// Package tracking records what actually happens inside a workout: which
// exercises were started, every set that was logged, and the lifecycle of
// the surrounding session. Sessions are persisted as one nested record, so
// any mutation of a set writes the whole session back.
package tracking

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrSessionNotFound  = errors.New("workout session not found")
	ErrNoActiveSession  = errors.New("no active workout session")
	ErrExerciseNotFound = errors.New("exercise not found in session")
	ErrSetOutOfRange    = errors.New("set number out of range")
	ErrSessionFinished  = errors.New("workout session already finished")
)

const (
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusAbandoned  = "abandoned"
)

// WorkoutSession is one training day of one program week for one user.
// At most one session per user is in progress at any time.
type WorkoutSession struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	ProgramID string `json:"programId"`
	Week      int    `json:"weekNumber"`
	DayName   string `json:"dayName"`
	Phase     string `json:"phase,omitempty"`
	Status    string `json:"status"`
	// XPEarned accumulates the per-set awards plus the completion award
	// once the session is closed out.
	XPEarned  int       `json:"xpEarned"`
	StartedAt time.Time `json:"startedAt"`
	// CompletedAt is stamped when the session leaves in_progress; for an
	// abandoned session it records the abandon time.
	CompletedAt *time.Time         `json:"completedAt,omitempty"`
	Exercises   []ExerciseTracking `json:"exercises"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// ExerciseTracking holds the set-by-set state of one exercise within a
// session. The ID is derived from day, position and week, so re-opening
// the same workout finds the same record again.
type ExerciseTracking struct {
	ExerciseID      string     `json:"exerciseId"`
	Name            string     `json:"exerciseName"`
	TotalSets       int        `json:"totalSets"`
	TargetRepsLow   int        `json:"targetRepsLow"`
	TargetRepsHigh  int        `json:"targetRepsHigh"`
	RestSeconds     int        `json:"targetRestSeconds"`
	CurrentSetIndex int        `json:"currentSetIndex"`
	Completed       bool       `json:"completed"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
	// Sets always holds TotalSets entries with contiguous SetNumbers
	// 1..TotalSets, pre-created empty when the exercise is initialized.
	Sets []SetData `json:"sets"`
}

type SetData struct {
	SetNumber   int        `json:"setNumber"`
	Reps        int        `json:"reps"`
	Weight      float64    `json:"weight"`
	RPE         int        `json:"rpe,omitempty"` // 0 means not reported
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// NewExerciseID derives the stable tracking ID of an exercise from its
// position in the program: same day, index and week always map to the
// same ID.
func NewExerciseID(dayName string, exerciseIndex, week int) string {
	return fmt.Sprintf("%s-%d-week%d", dayName, exerciseIndex, week)
}

// FindExercise returns a pointer into the session's Exercises slice,
// or nil when the ID is not tracked yet.
func (s *WorkoutSession) FindExercise(exerciseID string) *ExerciseTracking {
	for i := range s.Exercises {
		if s.Exercises[i].ExerciseID == exerciseID {
			return &s.Exercises[i]
		}
	}
	return nil
}

func (s WorkoutSession) InProgress() bool {
	return s.Status == StatusInProgress
}

// allSetsCompleted reports whether every set of the exercise has been
// individually logged.
func (ex *ExerciseTracking) allSetsCompleted() bool {
	for i := range ex.Sets {
		if !ex.Sets[i].Completed {
			return false
		}
	}
	return len(ex.Sets) > 0
}
