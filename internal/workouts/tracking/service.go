package tracking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"

	"github.com/lukasito25/momentum-vita-sub001/internal/gamification/progress"
	"github.com/lukasito25/momentum-vita-sub001/internal/store"
	"github.com/lukasito25/momentum-vita-sub001/internal/telemetry/metrics"
	"github.com/lukasito25/momentum-vita-sub001/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=tracking_test

// sessionStore is the two-tier session record store, keyed by session ID.
type sessionStore interface {
	Get(ctx context.Context, key string) (WorkoutSession, error)
	Set(ctx context.Context, key string, val WorkoutSession) error
}

// sessionQueries are the postgres lookups that have no two-tier wrapper.
// GetActiveSession degrades to the local active pointer when they fail.
type sessionQueries interface {
	GetActive(ctx context.Context, userID string) (WorkoutSession, error)
	List(ctx context.Context, params ListParams) ([]WorkoutSession, error)
}

// activePointer remembers which session a user currently has open, kept in
// the local store so the active workout is still reachable during a
// postgres outage.
type activePointer interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, val string) error
}

// xpAwarder routes per-set XP into the user's progress record.
type xpAwarder interface {
	AddXP(ctx context.Context, userID string, amount int) (*progress.UserProgress, error)
}

const (
	baseSetXP         = 10
	repsInRangeBonus  = 2
	repsExceededBonus = 5
	optimalRPEBonus   = 3
)

type StartSessionRequest struct {
	ProgramID string `json:"programId"`
	Week      int    `json:"weekNumber"`
	DayName   string `json:"dayName"`
	Phase     string `json:"phase"`
}

type InitializeExerciseRequest struct {
	ExerciseIndex int    `json:"exerciseIndex"`
	Name          string `json:"exerciseName"`
	SetsReps      string `json:"setsReps"`
	Rest          string `json:"rest"`
}

type CompleteSetRequest struct {
	SetNumber int     `json:"setNumber"`
	Reps      int     `json:"reps"`
	Weight    float64 `json:"weight"`
	RPE       int     `json:"rpe"`
}

type CompleteSetResponse struct {
	XPAwarded int              `json:"xpAwarded"`
	Exercise  ExerciseTracking `json:"exercise"`
}

// Service drives the session lifecycle and the per-set recording. Every
// mutation loads the session, changes the nested structure in memory and
// writes the whole record back.
type Service struct {
	store    sessionStore
	queries  sessionQueries
	pointer  activePointer
	progress xpAwarder
	metrics  *metrics.Manager

	// NowFunc and NewID are replaceable in tests.
	NowFunc func() time.Time
	NewID   func() string
}

func NewService(
	sessions sessionStore,
	queries sessionQueries,
	pointer activePointer,
	progressService xpAwarder,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		store:    sessions,
		queries:  queries,
		pointer:  pointer,
		progress: progressService,
		metrics:  metricsManager,
		NowFunc:  time.Now,
		NewID:    uuid.NewString,
	}
}

// StartSession opens a workout for one program day. Starting the same day
// again returns the already open session, while an open session for a
// different day gets abandoned first, so at most one session per user is
// ever in progress.
func (s *Service) StartSession(ctx context.Context, userID string, req StartSessionRequest) (_ *WorkoutSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.start")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	active, err := s.queries.GetActive(ctx, userID)
	switch {
	case err == nil:
		if active.ProgramID == req.ProgramID && active.Week == req.Week && active.DayName == req.DayName {
			return &active, nil
		}
		now := s.NowFunc()
		active.Status = StatusAbandoned
		active.CompletedAt = &now
		active.UpdatedAt = now
		if setErr := s.store.Set(ctx, active.ID, active); setErr != nil {
			log.Errorf("start session: abandon stale session %s: %s", active.ID, setErr)
		}
	case !errors.Is(err, store.ErrNotFound):
		// the lookup itself failed; still start the new session, the
		// write path below has its own fallback
		log.Warnf("start session: active lookup for user %s failed: %s", userID, err)
	}

	now := s.NowFunc()
	session := WorkoutSession{
		ID:        s.NewID(),
		UserID:    userID,
		ProgramID: req.ProgramID,
		Week:      req.Week,
		DayName:   req.DayName,
		Phase:     req.Phase,
		Status:    StatusInProgress,
		StartedAt: now,
		UpdatedAt: now,
		Exercises: []ExerciseTracking{},
	}

	if err := s.store.Set(ctx, session.ID, session); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	s.rememberActive(ctx, userID, session.ID)

	return &session, nil
}

// GetActiveSession returns the user's in-progress session. When postgres
// cannot answer, the locally stored pointer and session snapshot are used
// instead. Returns ErrNoActiveSession when no workout is open.
func (s *Service) GetActiveSession(ctx context.Context, userID string) (_ *WorkoutSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.getActive")
	defer func() {
		if err != nil && !errors.Is(err, ErrNoActiveSession) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	active, err := s.queries.GetActive(ctx, userID)
	if err == nil {
		return &active, nil
	}
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNoActiveSession
	}

	log.Warnf("active session lookup for user %s failed, trying local pointer: %s", userID, err)

	sessionID, err := s.pointer.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoActiveSession
		}
		return nil, fmt.Errorf("active session pointer: %w", err)
	}

	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoActiveSession
		}
		return nil, err
	}
	if !session.InProgress() {
		// the pointer outlived the session, e.g. abandoned elsewhere
		return nil, ErrNoActiveSession
	}

	return &session, nil
}

func (s *Service) ListSessions(ctx context.Context, userID string, limit int) (_ []WorkoutSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.list")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if limit < 0 {
		limit = 0
	}

	return s.queries.List(ctx, ListParams{UserID: userID, Limit: limit})
}

// AbandonSession closes an in-progress session without granting anything.
// Abandoning twice is a no-op, a completed session stays completed.
func (s *Service) AbandonSession(ctx context.Context, userID, sessionID string) (_ *WorkoutSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.abandon")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	session, err := s.loadUserSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Status == StatusAbandoned {
		return &session, nil
	}
	if session.Status == StatusCompleted {
		return nil, ErrSessionFinished
	}

	now := s.NowFunc()
	session.Status = StatusAbandoned
	session.CompletedAt = &now
	session.UpdatedAt = now

	if err := s.store.Set(ctx, session.ID, session); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	return &session, nil
}

// CompleteSession marks a session completed and folds the completion XP
// into its tally. Already completed sessions are returned unchanged, so
// replayed completion calls do not double-stamp.
func (s *Service) CompleteSession(ctx context.Context, userID, sessionID string, bonusXP int) (_ *WorkoutSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.complete")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	session, err := s.loadUserSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Status == StatusCompleted {
		return &session, nil
	}

	now := s.NowFunc()
	session.Status = StatusCompleted
	session.CompletedAt = &now
	session.XPEarned += bonusXP
	session.UpdatedAt = now

	if err := s.store.Set(ctx, session.ID, session); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	return &session, nil
}

// InitializeExercise creates the tracking record for one exercise of the
// session, with TotalSets empty sets numbered 1..TotalSets. The ID is
// derived from the session's day and week plus the exercise index, and
// initializing an already tracked exercise returns the stored record
// untouched.
func (s *Service) InitializeExercise(
	ctx context.Context,
	userID, sessionID string,
	req InitializeExerciseRequest,
) (_ *ExerciseTracking, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.initExercise")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	session, err := s.loadUserSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.InProgress() {
		return nil, ErrSessionFinished
	}

	exerciseID := NewExerciseID(session.DayName, req.ExerciseIndex, session.Week)
	if existing := session.FindExercise(exerciseID); existing != nil {
		ex := *existing
		return &ex, nil
	}

	totalSets, repsLow, repsHigh := ParseExerciseSpec(req.SetsReps)
	exercise := ExerciseTracking{
		ExerciseID:     exerciseID,
		Name:           req.Name,
		TotalSets:      totalSets,
		TargetRepsLow:  repsLow,
		TargetRepsHigh: repsHigh,
		RestSeconds:    ParseRest(req.Rest),
		Sets:           make([]SetData, 0, totalSets),
	}
	for setNumber := 1; setNumber <= totalSets; setNumber++ {
		exercise.Sets = append(exercise.Sets, SetData{SetNumber: setNumber})
	}

	session.Exercises = append(session.Exercises, exercise)
	session.UpdatedAt = s.NowFunc()

	if err := s.store.Set(ctx, session.ID, session); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	return &exercise, nil
}

// CompleteSet records one logged set and returns the XP it earned. The
// whole session record is persisted first, then the XP is granted, so a
// failed grant never loses the set data.
func (s *Service) CompleteSet(
	ctx context.Context,
	userID, sessionID, exerciseID string,
	req CompleteSetRequest,
) (_ *CompleteSetResponse, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.completeSet")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	session, err := s.loadUserSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.InProgress() {
		return nil, ErrSessionFinished
	}

	exercise := session.FindExercise(exerciseID)
	if exercise == nil {
		return nil, ErrExerciseNotFound
	}
	if req.SetNumber < 1 || req.SetNumber > exercise.TotalSets {
		return nil, ErrSetOutOfRange
	}

	now := s.NowFunc()
	set := &exercise.Sets[req.SetNumber-1]
	set.Reps = req.Reps
	set.Weight = req.Weight
	set.RPE = req.RPE
	set.Completed = true
	set.CompletedAt = &now

	if exercise.CurrentSetIndex < exercise.TotalSets {
		exercise.CurrentSetIndex++
	}
	if !exercise.Completed && exercise.allSetsCompleted() {
		exercise.Completed = true
		exercise.CompletedAt = &now
	}

	xp := setXP(*exercise, req.Reps, req.RPE)
	session.XPEarned += xp
	session.UpdatedAt = now

	if err := s.store.Set(ctx, session.ID, session); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	s.metrics.CounterSetsCompleted.Inc()

	if _, err := s.progress.AddXP(ctx, userID, xp); err != nil {
		// the set itself is recorded either way
		log.Errorf("complete set: award %d xp to user %s: %s", xp, userID, err)
		return nil, fmt.Errorf("award xp: %w", err)
	}

	log.Tracef(
		"user %s completed set %d of %s [%d reps, %.1f kg, rpe %d] +%d xp",
		userID, req.SetNumber, exerciseID, req.Reps, req.Weight, req.RPE, xp,
	)

	exerciseCopy := *exercise
	return &CompleteSetResponse{
		XPAwarded: xp,
		Exercise:  exerciseCopy,
	}, nil
}

// CompleteExercise force-marks an exercise done regardless of how many of
// its sets were logged. Recorded sets stay as they are, unlogged ones
// remain empty with no timestamp.
func (s *Service) CompleteExercise(ctx context.Context, userID, sessionID, exerciseID string) (_ *ExerciseTracking, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.completeExercise")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	session, err := s.loadUserSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.InProgress() {
		return nil, ErrSessionFinished
	}

	exercise := session.FindExercise(exerciseID)
	if exercise == nil {
		return nil, ErrExerciseNotFound
	}

	if !exercise.Completed {
		now := s.NowFunc()
		exercise.Completed = true
		exercise.CompletedAt = &now
		exercise.CurrentSetIndex = exercise.TotalSets
		session.UpdatedAt = now

		if err := s.store.Set(ctx, session.ID, session); err != nil {
			return nil, fmt.Errorf("persist session: %w", err)
		}
	}

	exerciseCopy := *exercise
	return &exerciseCopy, nil
}

// setXP scores one completed set. Reps inside the target range and reps
// beating its upper bound are exclusive bonuses, the RPE bonus stacks
// with either.
func setXP(exercise ExerciseTracking, reps, rpe int) int {
	xp := baseSetXP
	switch {
	case reps > exercise.TargetRepsHigh:
		xp += repsExceededBonus
	case reps >= exercise.TargetRepsLow:
		xp += repsInRangeBonus
	}
	if rpe >= 7 && rpe <= 8 {
		xp += optimalRPEBonus
	}
	return xp
}

func (s *Service) loadUserSession(ctx context.Context, userID, sessionID string) (WorkoutSession, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return WorkoutSession{}, ErrSessionNotFound
		}
		return WorkoutSession{}, err
	}
	if session.UserID != userID {
		// sessions of other users stay invisible
		return WorkoutSession{}, ErrSessionNotFound
	}
	return session, nil
}

func (s *Service) rememberActive(ctx context.Context, userID, sessionID string) {
	if err := s.pointer.Set(ctx, userID, sessionID); err != nil {
		log.Tracef("remember active session %s for user %s: %s", sessionID, userID, err)
	}
}
