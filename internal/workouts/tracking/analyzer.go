package tracking

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/lukasito25/momentum-vita-sub001/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=analyzer_mocks_test.go -package=tracking_test

type sessionsSource interface {
	List(ctx context.Context, params ListParams) ([]WorkoutSession, error)
}

// ExerciseHistory represents the history of an exercise
// so that, for each day, we get the average weight and reps per set
type ExerciseHistory struct {
	ExerciseName string                         `json:"exerciseName"`
	Stats        map[time.Time]ExerciseDayStats `json:"stats"`
}

type ExerciseDayStats struct {
	AvgWeight float64 `json:"avgWeight"`
	AvgReps   int     `json:"avgReps"`
	Sets      int     `json:"sets"`
}

type Analyzer struct {
	sessions sessionsSource
}

func NewAnalyzer(sessions sessionsSource) *Analyzer {
	return &Analyzer{
		sessions: sessions,
	}
}

// History goes through all completed sessions of a user and aggregates the
// sets logged for the given exercise name (case-insensitive), bucketed by
// the session's training day.
func (a *Analyzer) History(
	ctx context.Context,
	userID, exerciseName string,
) (_ *ExerciseHistory, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.sessions.history")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))
	span.SetAttributes(attribute.String("exercise.name", exerciseName))

	sessions, err := a.sessions.List(ctx, ListParams{
		UserID: userID,
		Status: StatusCompleted,
	})
	if err != nil {
		return nil, err
	}

	history := &ExerciseHistory{
		ExerciseName: exerciseName,
		Stats:        make(map[time.Time]ExerciseDayStats),
	}

	day2sets := make(map[time.Time][]SetData)
	for _, s := range sessions {
		day := s.StartedAt.Truncate(24 * time.Hour)
		for _, ex := range s.Exercises {
			if !strings.EqualFold(ex.Name, exerciseName) {
				continue
			}
			for _, set := range ex.Sets {
				if !set.Completed {
					continue
				}
				day2sets[day] = append(day2sets[day], set)
			}
		}
	}

	for day, daySets := range day2sets {
		var totalWeight float64
		var totalReps int
		for _, set := range daySets {
			totalWeight += set.Weight
			totalReps += set.Reps
		}
		history.Stats[day] = ExerciseDayStats{
			AvgWeight: totalWeight / float64(len(daySets)),
			AvgReps:   totalReps / len(daySets),
			Sets:      len(daySets),
		}
	}

	return history, nil
}
