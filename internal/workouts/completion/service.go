// Package completion orchestrates everything a finished workout touches:
// gamification stats, the streak, XP on the progress record, achievement
// passes and the session record itself.
package completion

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/multierr"

	"github.com/lukasito25/momentum-vita-sub001/internal/gamification/achievements"
	"github.com/lukasito25/momentum-vita-sub001/internal/gamification/progress"
	"github.com/lukasito25/momentum-vita-sub001/internal/gamification/stats"
	"github.com/lukasito25/momentum-vita-sub001/internal/levels"
	"github.com/lukasito25/momentum-vita-sub001/internal/telemetry/metrics"
	"github.com/lukasito25/momentum-vita-sub001/internal/telemetry/tracing"
	"github.com/lukasito25/momentum-vita-sub001/internal/workouts/tracking"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=completion_test

// XP ceilings for one workout, scaled by the completion rates.
const (
	workoutXPMax   = 50
	nutritionXPMax = 30
)

type statsApplier interface {
	ApplyWorkout(
		ctx context.Context,
		userID string,
		nutritionGoalsHit, xpEarned int,
		completedAt time.Time,
	) (*stats.GamificationStats, error)
}

type progressRecorder interface {
	RecordWorkoutCompletion(
		ctx context.Context,
		userID string,
		xp int,
		currentStreak, longestStreak int,
	) (*progress.UserProgress, error)
}

type achievementAwarder interface {
	EvaluateAndAward(ctx context.Context, userID, metricType string, currentValue int) ([]achievements.Achievement, error)
}

type sessionCompleter interface {
	CompleteSession(ctx context.Context, userID, sessionID string, bonusXP int) (*tracking.WorkoutSession, error)
}

type CompleteWorkoutRequest struct {
	// UserID comes from the route, not the request body.
	UserID                  string  `json:"-"`
	ProgramID               string  `json:"programId"`
	Week                    int     `json:"weekNumber"`
	DayName                 string  `json:"dayName"`
	SessionID               string  `json:"sessionId,omitempty"`
	ExerciseCompletionRate  float64 `json:"exerciseCompletionRate"`
	NutritionCompletionRate float64 `json:"nutritionCompletionRate"`
	NutritionCompleted      int     `json:"nutritionCompleted"`
}

type CompleteWorkoutResult struct {
	XPAwarded            int                        `json:"xpAwarded"`
	WorkoutXP            int                        `json:"workoutXp"`
	NutritionXP          int                        `json:"nutritionXp"`
	NewLevel             int                        `json:"newLevel"`
	LeveledUp            bool                       `json:"leveledUp"`
	StreakAfter          int                        `json:"streakAfter"`
	UnlockedAchievements []achievements.Achievement `json:"unlockedAchievements"`
}

type Service struct {
	stats        statsApplier
	progress     progressRecorder
	achievements achievementAwarder
	sessions     sessionCompleter
	metrics      *metrics.Manager

	// NowFunc stamps the workout completion time, replaceable in tests.
	NowFunc func() time.Time
}

func NewService(
	statsService statsApplier,
	progressService progressRecorder,
	achievementsService achievementAwarder,
	sessionsService sessionCompleter,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		stats:        statsService,
		progress:     progressService,
		achievements: achievementsService,
		sessions:     sessionsService,
		metrics:      metricsManager,
		NowFunc:      time.Now,
	}
}

// CompleteWorkout runs the completion steps in order: XP computation, the
// stats write (workout counters, weekly block, streak), the progress
// write (the only place workout XP enters the progress record), the four
// achievement passes, and finally the session stamp. The stats write is
// the anchor: if it fails nothing durable has happened and the whole call
// fails, a retry is safe. Everything after it is never rolled back, later
// failures are collected into the returned error while the result still
// reports what was applied, so both returns can be non-nil.
func (s *Service) CompleteWorkout(ctx context.Context, req CompleteWorkoutRequest) (_ *CompleteWorkoutResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.completion.completeworkout")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(
		attribute.String("user.id", req.UserID),
		attribute.String("program.id", req.ProgramID),
		attribute.Int("week", req.Week),
	)

	workoutXP := int(math.Floor(clampRate(req.ExerciseCompletionRate) * workoutXPMax))
	nutritionXP := int(math.Floor(clampRate(req.NutritionCompletionRate) * nutritionXPMax))
	totalXP := workoutXP + nutritionXP
	completedAt := s.NowFunc()

	statsAfter, err := s.stats.ApplyWorkout(ctx, req.UserID, req.NutritionCompleted, totalXP, completedAt)
	if err != nil {
		return nil, fmt.Errorf("apply workout to stats: %w", err)
	}
	s.metrics.CounterWorkoutsCompleted.Inc()

	result := &CompleteWorkoutResult{
		XPAwarded:            totalXP,
		WorkoutXP:            workoutXP,
		NutritionXP:          nutritionXP,
		StreakAfter:          statsAfter.CurrentStreak,
		UnlockedAchievements: []achievements.Achievement{},
	}

	var applyErrs error

	progressAfter, progressErr := s.progress.RecordWorkoutCompletion(
		ctx, req.UserID, totalXP,
		statsAfter.CurrentStreak, statsAfter.LongestStreak,
	)
	if progressErr != nil {
		applyErrs = multierr.Combine(applyErrs, fmt.Errorf("record workout on progress: %w", progressErr))
	}

	passes := []struct {
		metricType string
		value      int
	}{
		{achievements.MetricWorkouts, statsAfter.TotalWorkouts},
		{achievements.MetricStreak, statsAfter.CurrentStreak},
		{achievements.MetricNutrition, statsAfter.TotalNutritionGoalsHit},
		{achievements.MetricConsistency, statsAfter.Weekly.ConsistencyPercentage},
	}
	unlockedXP := 0
	for _, pass := range passes {
		unlocked, passErr := s.achievements.EvaluateAndAward(ctx, req.UserID, pass.metricType, pass.value)
		if passErr != nil {
			applyErrs = multierr.Combine(applyErrs, fmt.Errorf("achievements pass %s: %w", pass.metricType, passErr))
			continue
		}
		for _, a := range unlocked {
			unlockedXP += a.XPReward
		}
		result.UnlockedAchievements = append(result.UnlockedAchievements, unlocked...)
	}

	if progressAfter != nil {
		// the achievement passes may have added XP after the progress
		// write, the reported level accounts for it
		levelBefore := levels.LevelOf(progressAfter.TotalXP - totalXP)
		result.NewLevel = levels.LevelOf(progressAfter.TotalXP + unlockedXP)
		result.LeveledUp = result.NewLevel > levelBefore
	}

	if req.SessionID != "" {
		if _, sessionErr := s.sessions.CompleteSession(ctx, req.UserID, req.SessionID, totalXP); sessionErr != nil {
			applyErrs = multierr.Combine(applyErrs, fmt.Errorf("complete session %s: %w", req.SessionID, sessionErr))
		}
	}

	return result, applyErrs
}

// clampRate forces a completion rate into [0, 1]. Malformed client values
// degrade to the nearest bound instead of failing the workout.
func clampRate(rate float64) float64 {
	if rate < 0 {
		return 0
	}
	if rate > 1 {
		return 1
	}
	return rate
}
