package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"ecotronix-hub/internal/control_plane/domain"
	"ecotronix-hub/internal/control_plane/usecases"
	"ecotronix-hub/internal/infra/cache"
)

const _telemetryKeyPrefix = "telemetry:"

var ErrTelemetryRejected = errors.New("telemetry reading rejected by cache")

func NewCachedTelemetryStore(c cache.Cache, ttl time.Duration) *CachedTelemetryStore {
	return &CachedTelemetryStore{cache: c, ttl: ttl}
}

var _ usecases.TelemetryStore = (*CachedTelemetryStore)(nil)

// CachedTelemetryStore keeps the last reading per topic until the TTL runs
// out, so peripherals that stopped answering drop out of the listing.
type CachedTelemetryStore struct {
	cache cache.Cache
	ttl   time.Duration
}

// Topic separators are swapped because cache key patterns stop at '/'.
func telemetryKey(topic string) string {
	return _telemetryKeyPrefix + strings.ReplaceAll(topic, domain.TopicSeparator, ":")
}

func (s *CachedTelemetryStore) Save(ctx context.Context, reading domain.TelemetryReading) error {
	if !s.cache.Set(ctx, telemetryKey(reading.Topic), reading, s.ttl) {
		if err := ctx.Err(); err != nil {
			return err
		}
		return ErrTelemetryRejected
	}
	return nil
}

func (s *CachedTelemetryStore) Get(ctx context.Context, topic string) (domain.TelemetryReading, bool) {
	value, ok := s.cache.Get(ctx, telemetryKey(topic))
	if !ok {
		return domain.TelemetryReading{}, false
	}
	reading, ok := value.(domain.TelemetryReading)
	return reading, ok
}

func (s *CachedTelemetryStore) All(ctx context.Context) ([]domain.TelemetryReading, error) {
	keys, err := s.cache.Keys(ctx, _telemetryKeyPrefix+"*")
	if err != nil {
		return nil, err
	}

	readings := make([]domain.TelemetryReading, 0, len(keys))
	for _, key := range keys {
		value, ok := s.cache.Get(ctx, key)
		if !ok {
			continue
		}
		if reading, ok := value.(domain.TelemetryReading); ok {
			readings = append(readings, reading)
		}
	}
	return readings, nil
}
