package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/lukasito25/momentum-vita-sub001/internal/store"
	"github.com/lukasito25/momentum-vita-sub001/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=stats_test

type statsStore interface {
	Get(ctx context.Context, key string) (GamificationStats, error)
	Set(ctx context.Context, key string, val GamificationStats) error
}

type Service struct {
	store statsStore

	// NowFunc is used for the updated at timestamps, replaceable in tests.
	NowFunc func() time.Time
}

func NewService(statsStore statsStore) *Service {
	return &Service{
		store:   statsStore,
		NowFunc: time.Now,
	}
}

// Get returns the stored stats of a user, or a zeroed default record when
// the user has none yet.
func (s *Service) Get(ctx context.Context, userID string) (_ *GamificationStats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.stats.get")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	stats, err := s.store.Get(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		defaults := DefaultStats(userID)
		return &defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	return &stats, nil
}

func (s *Service) Upsert(ctx context.Context, stats GamificationStats) (_ *GamificationStats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.stats.upsert")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if err := s.persist(ctx, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ApplyWorkout folds one finished workout into the stats record and
// persists it with a single write: lifetime counters, the weekly block
// (with rollover when the stored week is over) and the streak, evaluated
// against the previous LastWorkoutAt before it is replaced.
func (s *Service) ApplyWorkout(
	ctx context.Context,
	userID string,
	nutritionGoalsHit, xpEarned int,
	completedAt time.Time,
) (_ *GamificationStats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.stats.applyworkout")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	stats, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats.TotalWorkouts++
	stats.TotalNutritionGoalsHit += nutritionGoalsHit

	stats.Weekly.RolloverIfStale(completedAt)
	stats.Weekly.WorkoutsCompleted++
	stats.Weekly.NutritionGoalsHit += nutritionGoalsHit
	stats.Weekly.XPEarned += xpEarned
	stats.Weekly.RecalculateConsistency()

	streak := EvaluateStreak(
		StreakState{Current: stats.CurrentStreak, Longest: stats.LongestStreak},
		stats.LastWorkoutAt,
		completedAt,
	)
	stats.CurrentStreak = streak.Current
	stats.LongestStreak = streak.Longest
	stats.LastWorkoutAt = &completedAt

	if err := s.persist(ctx, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// WeeklyReset zeroes the weekly block and anchors it to the current week.
// Safe to call repeatedly: within one week every call produces the same
// zeroed state.
func (s *Service) WeeklyReset(ctx context.Context, userID string) (_ *GamificationStats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.stats.weeklyreset")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	stats, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats.Weekly = WeeklyStats{WeekStart: WeekStart(s.NowFunc())}
	if err := s.persist(ctx, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Service) persist(ctx context.Context, stats *GamificationStats) error {
	if stats.LongestStreak < stats.CurrentStreak {
		stats.LongestStreak = stats.CurrentStreak
	}
	stats.UpdatedAt = s.NowFunc()

	if err := s.store.Set(ctx, stats.UserID, *stats); err != nil {
		return fmt.Errorf("persist stats: %w", err)
	}
	return nil
}
