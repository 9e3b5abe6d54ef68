package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/lukasito25/momentum-vita-sub001/internal/telemetry/metrics"
	"github.com/lukasito25/momentum-vita-sub001/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/multierr"
)

// ErrNotFound is returned by stores when a record does not exist.
// Callers are expected to substitute entity defaults instead of failing.
var ErrNotFound = errors.New("record not found")

// Store reads and writes one entity type, keyed by user or record id.
type Store[T any] interface {
	Get(ctx context.Context, key string) (T, error)
	Set(ctx context.Context, key string, val T) error
}

// TwoTier keeps every record in a remote primary store and mirrors it into
// a local store used when the remote one is unavailable. Reads go remote
// first, writes are accepted as long as at least one tier takes them.
// There are no transactions across entity types.
type TwoTier[T any] struct {
	entity  string
	remote  Store[T]
	local   Store[T]
	metrics *metrics.Manager
}

func NewTwoTier[T any](entity string, remote, local Store[T], metricsManager *metrics.Manager) *TwoTier[T] {
	return &TwoTier[T]{
		entity:  entity,
		remote:  remote,
		local:   local,
		metrics: metricsManager,
	}
}

func (s *TwoTier[T]) Get(ctx context.Context, key string) (val T, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, fmt.Sprintf("store.%s.get", s.entity))
	span.SetAttributes(attribute.String("key", key))
	defer func() {
		if errors.Is(err, ErrNotFound) {
			// absence is a regular outcome, not a failure
			span.SetStatus(codes.Ok, "not-found")
			span.End()
			return
		}
		tracing.EndSpanWithErrCheck(span, err)
	}()

	val, remoteErr := s.remote.Get(ctx, key)
	if remoteErr == nil {
		return val, nil
	}
	if errors.Is(remoteErr, ErrNotFound) {
		// the remote store is healthy, the record genuinely does not exist
		return val, ErrNotFound
	}

	log.Warnf("%s store: remote get %q failed, falling back to local: %s", s.entity, key, remoteErr)
	s.metrics.CounterStoreFallbacks.WithLabelValues(s.entity, "get").Inc()

	val, localErr := s.local.Get(ctx, key)
	if localErr == nil {
		return val, nil
	}
	if errors.Is(localErr, ErrNotFound) {
		return val, ErrNotFound
	}

	return val, fmt.Errorf("remote get: %w; local get: %w", remoteErr, localErr)
}

func (s *TwoTier[T]) Set(ctx context.Context, key string, val T) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, fmt.Sprintf("store.%s.set", s.entity))
	span.SetAttributes(attribute.String("key", key))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	remoteErr := s.remote.Set(ctx, key, val)
	if remoteErr == nil {
		// keep the fallback copy warm, best effort
		if localErr := s.local.Set(ctx, key, val); localErr != nil {
			log.Warnf("%s store: local refresh of %q failed: %s", s.entity, key, localErr)
		}
		return nil
	}

	log.Warnf("%s store: remote set %q failed, writing to local only: %s", s.entity, key, remoteErr)
	s.metrics.CounterStoreFallbacks.WithLabelValues(s.entity, "set").Inc()

	if localErr := s.local.Set(ctx, key, val); localErr != nil {
		// nothing took the write, this one the caller has to see
		return multierr.Combine(
			fmt.Errorf("remote set: %w", remoteErr),
			fmt.Errorf("local set: %w", localErr),
		)
	}

	return nil
}
