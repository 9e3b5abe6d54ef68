package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/codes"

	"github.com/lukasito25/momentum-vita-sub001/internal/levels"
	"github.com/lukasito25/momentum-vita-sub001/internal/store"
	"github.com/lukasito25/momentum-vita-sub001/internal/telemetry/metrics"
	"github.com/lukasito25/momentum-vita-sub001/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=progress_test

type progressStore interface {
	Get(ctx context.Context, key string) (UserProgress, error)
	Set(ctx context.Context, key string, val UserProgress) error
}

// Service owns all reads and writes of UserProgress. Every XP mutation in
// the system goes through one of its methods, and every persisted record
// has its level recomputed from total XP right before the write.
type Service struct {
	store   progressStore
	metrics *metrics.Manager

	// NowFunc is used for the updated at timestamps, replaceable in tests.
	NowFunc func() time.Time
}

func NewService(progressStore progressStore, metricsManager *metrics.Manager) *Service {
	return &Service{
		store:   progressStore,
		metrics: metricsManager,
		NowFunc: time.Now,
	}
}

// Get returns the stored progress of a user, or a fresh default record
// when the user has none yet. Storage failures still surface as errors.
func (s *Service) Get(ctx context.Context, userID string) (_ *UserProgress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.get")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	p, err := s.store.Get(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		defaults := DefaultProgress(userID)
		return &defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}
	return &p, nil
}

// Upsert persists the given record as-is, apart from the level and the
// updated at timestamp, which are always recomputed here.
func (s *Service) Upsert(ctx context.Context, p UserProgress) (_ *UserProgress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.upsert")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if err := s.persist(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// AddXP adds the given amount to the user's total XP and recomputes the
// level. Amount can be zero, in which case this is a plain touch-write.
func (s *Service) AddXP(ctx context.Context, userID string, amount int) (_ *UserProgress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.addxp")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	p.TotalXP += amount
	if err := s.persist(ctx, p); err != nil {
		return nil, err
	}

	if amount > 0 {
		s.metrics.CounterXPAwarded.Add(float64(amount))
	}
	return p, nil
}

// RecordWorkoutCompletion applies everything a finished workout changes on
// the progress record in a single write: XP, the workout counter and the
// mirrored streak values.
func (s *Service) RecordWorkoutCompletion(
	ctx context.Context,
	userID string,
	xp int,
	currentStreak, longestStreak int,
) (_ *UserProgress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.recordworkout")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	p.TotalXP += xp
	p.TotalWorkoutsCompleted++
	p.CurrentStreak = currentStreak
	p.LongestStreak = longestStreak
	if err := s.persist(ctx, p); err != nil {
		return nil, err
	}

	if xp > 0 {
		s.metrics.CounterXPAwarded.Add(float64(xp))
	}
	return p, nil
}

// SetCurrentProgram switches the user to the given program and rewinds the
// week counter to the first week.
func (s *Service) SetCurrentProgram(ctx context.Context, userID, programID string) (_ *UserProgress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.setprogram")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	p.CurrentProgram = &programID
	p.CurrentWeek = 1
	if err := s.persist(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) AdvanceWeek(ctx context.Context, userID string) (_ *UserProgress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.advanceweek")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	p.CurrentWeek++
	if err := s.persist(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// CompleteProgram moves the current program to the completed list and
// clears the program position. Completing the same program twice does not
// duplicate the list entry.
func (s *Service) CompleteProgram(ctx context.Context, userID, programID string) (_ *UserProgress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.completeprogram")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !p.HasCompletedProgram(programID) {
		p.CompletedPrograms = append(p.CompletedPrograms, programID)
	}
	if p.CurrentProgram != nil && *p.CurrentProgram == programID {
		p.CurrentProgram = nil
		p.CurrentWeek = 1
	}
	if err := s.persist(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UnlockedAchievements returns the IDs of all achievements the user has.
func (s *Service) UnlockedAchievements(ctx context.Context, userID string) ([]string, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return p.AchievementsUnlocked, nil
}

// ApplyUnlocks appends the given achievement IDs to the user's unlocked
// list, adds the summed XP reward and persists once. Already present IDs
// are skipped, so replays of the same unlock set are harmless.
func (s *Service) ApplyUnlocks(
	ctx context.Context,
	userID string,
	achievementIDs []string,
	xpReward int,
) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.applyunlocks")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	p, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}

	added := 0
	for _, id := range achievementIDs {
		if p.HasAchievement(id) {
			continue
		}
		p.AchievementsUnlocked = append(p.AchievementsUnlocked, id)
		added++
	}
	if added > 0 {
		p.TotalXP += xpReward
	}

	if err := s.persist(ctx, p); err != nil {
		return err
	}

	if added > 0 && xpReward > 0 {
		s.metrics.CounterXPAwarded.Add(float64(xpReward))
	}
	return nil
}

// persist recomputes the level from total XP, stamps the record and
// writes it to the store. Slice fields are normalized so the stored JSON
// snapshots never contain nulls.
func (s *Service) persist(ctx context.Context, p *UserProgress) error {
	if p.TotalXP < 0 {
		p.TotalXP = 0
	}
	p.CurrentLevel = levels.LevelOf(p.TotalXP)
	if p.CurrentWeek < 1 {
		p.CurrentWeek = 1
	}
	if p.AchievementsUnlocked == nil {
		p.AchievementsUnlocked = []string{}
	}
	if p.CompletedPrograms == nil {
		p.CompletedPrograms = []string{}
	}
	p.UpdatedAt = s.NowFunc()

	if err := s.store.Set(ctx, p.UserID, *p); err != nil {
		return fmt.Errorf("persist progress: %w", err)
	}
	return nil
}
