package stats

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/lukasito25/momentum-vita-sub001/internal/store"
	"github.com/lukasito25/momentum-vita-sub001/internal/telemetry/tracing"
)

// Repo keeps gamification stats in postgres, one row per user, with the
// weekly block flattened into columns. Satisfies store.Store[GamificationStats].
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Get(ctx context.Context, userID string) (_ GamificationStats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.stats.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				user_id, current_streak, longest_streak, total_workouts,
				total_nutrition_goals_hit, last_workout_at,
				week_start, workouts_this_week, nutrition_goals_this_week,
				consistency_percentage, xp_earned_this_week, updated_at
			FROM user_gamification_stats
			WHERE user_id = $1;`,
		userID,
	)
	if err != nil {
		return GamificationStats{}, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return GamificationStats{}, err
	}

	if !rows.Next() {
		return GamificationStats{}, store.ErrNotFound
	}

	var s GamificationStats
	if err := rows.Scan(
		&s.UserID, &s.CurrentStreak, &s.LongestStreak, &s.TotalWorkouts,
		&s.TotalNutritionGoalsHit, &s.LastWorkoutAt,
		&s.Weekly.WeekStart, &s.Weekly.WorkoutsCompleted, &s.Weekly.NutritionGoalsHit,
		&s.Weekly.ConsistencyPercentage, &s.Weekly.XPEarned, &s.UpdatedAt,
	); err != nil {
		return GamificationStats{}, err
	}

	return s, nil
}

func (r *Repo) Set(ctx context.Context, userID string, s GamificationStats) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.stats.set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	_, err = r.db.Exec(
		ctx,
		`
			INSERT INTO user_gamification_stats (
				user_id, current_streak, longest_streak, total_workouts,
				total_nutrition_goals_hit, last_workout_at,
				week_start, workouts_this_week, nutrition_goals_this_week,
				consistency_percentage, xp_earned_this_week, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			ON CONFLICT (user_id) DO UPDATE SET
				current_streak = EXCLUDED.current_streak,
				longest_streak = EXCLUDED.longest_streak,
				total_workouts = EXCLUDED.total_workouts,
				total_nutrition_goals_hit = EXCLUDED.total_nutrition_goals_hit,
				last_workout_at = EXCLUDED.last_workout_at,
				week_start = EXCLUDED.week_start,
				workouts_this_week = EXCLUDED.workouts_this_week,
				nutrition_goals_this_week = EXCLUDED.nutrition_goals_this_week,
				consistency_percentage = EXCLUDED.consistency_percentage,
				xp_earned_this_week = EXCLUDED.xp_earned_this_week,
				updated_at = EXCLUDED.updated_at;`,
		userID, s.CurrentStreak, s.LongestStreak, s.TotalWorkouts,
		s.TotalNutritionGoalsHit, s.LastWorkoutAt,
		s.Weekly.WeekStart, s.Weekly.WorkoutsCompleted, s.Weekly.NutritionGoalsHit,
		s.Weekly.ConsistencyPercentage, s.Weekly.XPEarned, s.UpdatedAt,
	)
	return err
}
