package preferences

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/lukasito25/momentum-vita-sub001/internal/store"
	"github.com/lukasito25/momentum-vita-sub001/internal/telemetry/tracing"
)

// Repo keeps user preferences in postgres, one row per user.
// It satisfies store.Store[UserPreferences], with the user ID as key.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Get(ctx context.Context, userID string) (_ UserPreferences, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.preferences.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				user_id, timezone, week_starts_monday,
				notifications_enabled, unit_system, updated_at
			FROM user_preferences
			WHERE user_id = $1;`,
		userID,
	)
	if err != nil {
		return UserPreferences{}, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return UserPreferences{}, err
	}

	if !rows.Next() {
		return UserPreferences{}, store.ErrNotFound
	}

	var p UserPreferences
	if err := rows.Scan(
		&p.UserID, &p.Timezone, &p.WeekStartsMonday,
		&p.NotificationsEnabled, &p.UnitSystem, &p.UpdatedAt,
	); err != nil {
		return UserPreferences{}, err
	}

	return p, nil
}

func (r *Repo) Set(ctx context.Context, userID string, p UserPreferences) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.preferences.set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	_, err = r.db.Exec(
		ctx,
		`
			INSERT INTO user_preferences (
				user_id, timezone, week_starts_monday,
				notifications_enabled, unit_system, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (user_id) DO UPDATE SET
				timezone = EXCLUDED.timezone,
				week_starts_monday = EXCLUDED.week_starts_monday,
				notifications_enabled = EXCLUDED.notifications_enabled,
				unit_system = EXCLUDED.unit_system,
				updated_at = EXCLUDED.updated_at;`,
		userID, p.Timezone, p.WeekStartsMonday,
		p.NotificationsEnabled, p.UnitSystem, p.UpdatedAt,
	)
	return err
}
