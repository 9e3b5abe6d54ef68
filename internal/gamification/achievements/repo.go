package achievements

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/lukasito25/momentum-vita-sub001/internal/telemetry/tracing"
)

// Repo reads the achievement catalog from postgres. The catalog is seeded
// by cmd/dbsetup and changes rarely, so reads go through CachedCatalog in
// the live service.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) ListAll(ctx context.Context) (_ []Achievement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.achievements.listall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, name, description, icon, metric_type, target, xp_reward, rarity, sort_order
			FROM achievement_catalog
			ORDER BY sort_order, id;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return rows2achievements(rows)
}

func (r *Repo) ListByMetric(ctx context.Context, metricType string) (_ []Achievement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.achievements.listbymetric")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("metric.type", metricType))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, name, description, icon, metric_type, target, xp_reward, rarity, sort_order
			FROM achievement_catalog
			WHERE metric_type = $1
			ORDER BY sort_order, id;`,
		metricType,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return rows2achievements(rows)
}

func rows2achievements(rows pgx.Rows) ([]Achievement, error) {
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var catalog []Achievement
	for rows.Next() {
		var a Achievement
		if err := rows.Scan(
			&a.ID, &a.Name, &a.Description, &a.Icon,
			&a.MetricType, &a.Target, &a.XPReward, &a.Rarity, &a.SortOrder,
		); err != nil {
			return nil, err
		}
		catalog = append(catalog, a)
	}

	return catalog, nil
}
