package achievements

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/lukasito25/momentum-vita-sub001/internal/telemetry/metrics"
	"github.com/lukasito25/momentum-vita-sub001/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=achievements_test

type catalogSource interface {
	ListAll(ctx context.Context) ([]Achievement, error)
	ListByMetric(ctx context.Context, metricType string) ([]Achievement, error)
}

// progressAccess is the slice of the progress service the award flow
// needs: the unlocked IDs of a user, and a way to apply new unlocks.
type progressAccess interface {
	UnlockedAchievements(ctx context.Context, userID string) ([]string, error)
	ApplyUnlocks(ctx context.Context, userID string, achievementIDs []string, xpReward int) error
}

type Service struct {
	catalog  catalogSource
	progress progressAccess
	metrics  *metrics.Manager
}

func NewService(catalog catalogSource, progress progressAccess, metricsManager *metrics.Manager) *Service {
	return &Service{
		catalog:  catalog,
		progress: progress,
		metrics:  metricsManager,
	}
}

// EvaluateAndAward checks the catalog entries of the given metric against
// the current value and awards everything the user newly qualifies for.
// All unlocks of one evaluation land on the progress record in a single
// write, with their XP rewards summed.
func (s *Service) EvaluateAndAward(
	ctx context.Context,
	userID, metricType string,
	currentValue int,
) (_ []Achievement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.achievements.evaluate")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(
		attribute.String("metric.type", metricType),
		attribute.Int("metric.value", currentValue),
	)

	catalog, err := s.catalog.ListByMetric(ctx, metricType)
	if err != nil {
		return nil, fmt.Errorf("list catalog for %s: %w", metricType, err)
	}

	unlockedIDs, err := s.progress.UnlockedAchievements(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get unlocked achievements: %w", err)
	}

	newlyUnlocked := Unlockable(catalog, unlockedIDs, metricType, currentValue)
	if len(newlyUnlocked) == 0 {
		return []Achievement{}, nil
	}

	ids := make([]string, 0, len(newlyUnlocked))
	xpReward := 0
	for _, a := range newlyUnlocked {
		ids = append(ids, a.ID)
		xpReward += a.XPReward
	}

	if err := s.progress.ApplyUnlocks(ctx, userID, ids, xpReward); err != nil {
		return nil, fmt.Errorf("apply unlocks: %w", err)
	}

	s.metrics.CounterAchievementsUnlocked.
		WithLabelValues(metricType).
		Add(float64(len(newlyUnlocked)))
	log.Debugf(
		"user %s unlocked %d achievement(s) for %s=%d: %s",
		userID, len(newlyUnlocked), metricType, currentValue, strings.Join(ids, ", "),
	)

	return newlyUnlocked, nil
}

// Catalog returns all achievement definitions in catalog order.
func (s *Service) Catalog(ctx context.Context) (_ []Achievement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.achievements.catalog")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	catalog, err := s.catalog.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	return catalog, nil
}

// UserAchievements returns the whole catalog with the unlocked flag set
// for the entries the given user already has.
func (s *Service) UserAchievements(ctx context.Context, userID string) (_ []UserAchievement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.achievements.user")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	catalog, err := s.catalog.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}

	unlockedIDs, err := s.progress.UnlockedAchievements(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get unlocked achievements: %w", err)
	}
	unlockedSet := make(map[string]struct{}, len(unlockedIDs))
	for _, id := range unlockedIDs {
		unlockedSet[id] = struct{}{}
	}

	userAchievements := make([]UserAchievement, 0, len(catalog))
	for _, a := range catalog {
		_, unlocked := unlockedSet[a.ID]
		userAchievements = append(userAchievements, UserAchievement{
			Achievement: a,
			Unlocked:    unlocked,
		})
	}
	return userAchievements, nil
}
