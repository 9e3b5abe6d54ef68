package progress

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/lukasito25/momentum-vita-sub001/internal/store"
	"github.com/lukasito25/momentum-vita-sub001/internal/telemetry/tracing"
)

// Repo keeps user progress records in postgres, one row per user.
// It satisfies store.Store[UserProgress], with the user ID as key.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Get(ctx context.Context, userID string) (_ UserProgress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				user_id, current_level, total_xp, current_streak, longest_streak,
				total_workouts_completed, achievements_unlocked, current_program,
				current_week, completed_programs, updated_at
			FROM user_progress
			WHERE user_id = $1;`,
		userID,
	)
	if err != nil {
		return UserProgress{}, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return UserProgress{}, err
	}

	if !rows.Next() {
		return UserProgress{}, store.ErrNotFound
	}

	var p UserProgress
	if err := rows.Scan(
		&p.UserID, &p.CurrentLevel, &p.TotalXP, &p.CurrentStreak, &p.LongestStreak,
		&p.TotalWorkoutsCompleted, &p.AchievementsUnlocked, &p.CurrentProgram,
		&p.CurrentWeek, &p.CompletedPrograms, &p.UpdatedAt,
	); err != nil {
		return UserProgress{}, err
	}

	if p.AchievementsUnlocked == nil {
		p.AchievementsUnlocked = []string{}
	}
	if p.CompletedPrograms == nil {
		p.CompletedPrograms = []string{}
	}

	return p, nil
}

func (r *Repo) Set(ctx context.Context, userID string, p UserProgress) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	_, err = r.db.Exec(
		ctx,
		`
			INSERT INTO user_progress (
				user_id, current_level, total_xp, current_streak, longest_streak,
				total_workouts_completed, achievements_unlocked, current_program,
				current_week, completed_programs, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (user_id) DO UPDATE SET
				current_level = EXCLUDED.current_level,
				total_xp = EXCLUDED.total_xp,
				current_streak = EXCLUDED.current_streak,
				longest_streak = EXCLUDED.longest_streak,
				total_workouts_completed = EXCLUDED.total_workouts_completed,
				achievements_unlocked = EXCLUDED.achievements_unlocked,
				current_program = EXCLUDED.current_program,
				current_week = EXCLUDED.current_week,
				completed_programs = EXCLUDED.completed_programs,
				updated_at = EXCLUDED.updated_at;`,
		userID, p.CurrentLevel, p.TotalXP, p.CurrentStreak, p.LongestStreak,
		p.TotalWorkoutsCompleted, p.AchievementsUnlocked, p.CurrentProgram,
		p.CurrentWeek, p.CompletedPrograms, p.UpdatedAt,
	)
	return err
}
