package tracking

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/lukasito25/momentum-vita-sub001/internal/store"
	"github.com/lukasito25/momentum-vita-sub001/internal/telemetry/tracing"
)

// ListParams filters session listings. Zero values mean "no filter",
// a Limit of 0 returns everything.
type ListParams struct {
	UserID string
	Status string
	Limit  int
}

// Repo keeps workout sessions in postgres. The nested exercise and set
// structure lives in a single JSONB column, so a session is always read
// and written as one record. Satisfies store.Store[WorkoutSession] with
// the session ID as key.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Get(ctx context.Context, sessionID string) (_ WorkoutSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", sessionID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, user_id, program_id, week, day_name, phase, status,
				xp_earned, started_at, completed_at, exercises, updated_at
			FROM workout_sessions
			WHERE id = $1;`,
		sessionID,
	)
	if err != nil {
		return WorkoutSession{}, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return WorkoutSession{}, err
	}

	sessions, err := r.rows2sessions(rows)
	if err != nil {
		return WorkoutSession{}, err
	}

	if len(sessions) != 1 {
		return WorkoutSession{}, store.ErrNotFound
	}

	return sessions[0], nil
}

func (r *Repo) Set(ctx context.Context, sessionID string, s WorkoutSession) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", sessionID))

	exercisesJson, err := json.Marshal(s.Exercises)
	if err != nil {
		return fmt.Errorf("marshal exercises: %w", err)
	}

	_, err = r.db.Exec(
		ctx,
		`
			INSERT INTO workout_sessions
				(id, user_id, program_id, week, day_name, phase, status,
				 xp_earned, started_at, completed_at, exercises, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			ON CONFLICT (id) DO UPDATE SET
				user_id = EXCLUDED.user_id,
				program_id = EXCLUDED.program_id,
				week = EXCLUDED.week,
				day_name = EXCLUDED.day_name,
				phase = EXCLUDED.phase,
				status = EXCLUDED.status,
				xp_earned = EXCLUDED.xp_earned,
				started_at = EXCLUDED.started_at,
				completed_at = EXCLUDED.completed_at,
				exercises = EXCLUDED.exercises,
				updated_at = EXCLUDED.updated_at;`,
		sessionID, s.UserID, s.ProgramID, s.Week, s.DayName, s.Phase, s.Status,
		s.XPEarned, s.StartedAt, s.CompletedAt, exercisesJson, s.UpdatedAt,
	)
	return err
}

// GetActive returns the most recently started in-progress session of a
// user, or store.ErrNotFound when there is none.
func (r *Repo) GetActive(ctx context.Context, userID string) (_ WorkoutSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.getActive")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, user_id, program_id, week, day_name, phase, status,
				xp_earned, started_at, completed_at, exercises, updated_at
			FROM workout_sessions
			WHERE user_id = $1 AND status = $2
			ORDER BY started_at DESC
			LIMIT 1;`,
		userID, StatusInProgress,
	)
	if err != nil {
		return WorkoutSession{}, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return WorkoutSession{}, err
	}

	sessions, err := r.rows2sessions(rows)
	if err != nil {
		return WorkoutSession{}, err
	}

	if len(sessions) == 0 {
		return WorkoutSession{}, store.ErrNotFound
	}

	return sessions[0], nil
}

func (r *Repo) List(ctx context.Context, params ListParams) (_ []WorkoutSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", params.UserID))
	span.SetAttributes(attribute.String("status", params.Status))
	span.SetAttributes(attribute.Int("limit", params.Limit))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, user_id, program_id, week, day_name, phase, status,
				xp_earned, started_at, completed_at, exercises, updated_at
			FROM workout_sessions
			WHERE ($1::text = '' OR user_id = $1)
				AND ($2::text = '' OR status = $2)
			ORDER BY started_at DESC
			LIMIT NULLIF($3, 0);`,
		params.UserID, params.Status, params.Limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	sessions, err := r.rows2sessions(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2sessions: %w", err)
	}
	return sessions, nil
}

func (r *Repo) rows2sessions(rows pgx.Rows) ([]WorkoutSession, error) {
	var sessions []WorkoutSession
	for rows.Next() {
		var s WorkoutSession
		var exercisesBytes []byte
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.ProgramID, &s.Week, &s.DayName, &s.Phase, &s.Status,
			&s.XPEarned, &s.StartedAt, &s.CompletedAt, &exercisesBytes, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}

		if len(exercisesBytes) > 0 {
			if err := json.Unmarshal(exercisesBytes, &s.Exercises); err != nil {
				return nil, fmt.Errorf("unmarshal exercises for session %s: %w", s.ID, err)
			}
		}
		if s.Exercises == nil {
			s.Exercises = []ExerciseTracking{}
		}

		sessions = append(sessions, s)
	}
	return sessions, nil
}
