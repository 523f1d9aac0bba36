package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"ecotronix-hub/internal/control_plane/domain"
	"ecotronix-hub/internal/infra/async"

	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type scheduledPoll struct {
	poll     domain.TelemetryPoll
	schedule cron.Schedule
}

// NewTelemetryPollWorker parses every schedule up front so a typo fails at
// startup instead of silently never firing.
func NewTelemetryPollWorker(
	ticker *time.Ticker,
	polls []domain.TelemetryPoll,
	publisher DevicePublisher,
	clock Clock,
) (*TelemetryPollWorker, error) {
	if clock == nil {
		clock = time.Now
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	scheduled := make([]scheduledPoll, 0, len(polls))
	for _, poll := range polls {
		schedule, err := parser.Parse(poll.Schedule)
		if err != nil {
			return nil, fmt.Errorf("parsing schedule %q for %s: %w", poll.Schedule, poll.Topic(), err)
		}
		scheduled = append(scheduled, scheduledPoll{poll: poll, schedule: schedule})
	}

	w := &TelemetryPollWorker{
		ticker:    ticker,
		polls:     scheduled,
		publisher: publisher,
		now:       clock,
	}
	w.polled, _ = otel.Meter(_meterName).Int64Counter(
		fmt.Sprintf("%s.%s", _meterName, "telemetry.polls"),
		metric.WithDescription("telemetry get actions published"),
	)
	return w, nil
}

var _ async.Worker = (*TelemetryPollWorker)(nil)

type TelemetryPollWorker struct {
	ticker    *time.Ticker
	polls     []scheduledPoll
	publisher DevicePublisher
	now       Clock
	polled    metric.Int64Counter

	mu         sync.Mutex
	lastMinute time.Time
}

func (w *TelemetryPollWorker) Run(ctx context.Context, done func()) {
	slog.Debug("telemetry poll worker started", slog.Int("polls", len(w.polls)))
	defer done()

	for {
		select {
		case <-ctx.Done():
			slog.Info("telemetry poll worker cancelled")
			return
		case <-w.ticker.C:
			w.Evaluate(ctx)
		}
	}
}

// Evaluate publishes a get action for every poll due in the current minute
// and returns how many were sent. Each minute is evaluated once no matter
// how often the ticker fires.
func (w *TelemetryPollWorker) Evaluate(ctx context.Context) int {
	now := w.now().Truncate(time.Minute)

	w.mu.Lock()
	defer w.mu.Unlock()
	if !now.After(w.lastMinute) {
		return 0
	}
	w.lastMinute = now

	sent := 0
	for _, p := range w.polls {
		if !isDue(p.schedule, now) {
			continue
		}
		topic := p.poll.Topic()
		if err := w.publisher.Publish(ctx, topic, domain.TelemetryGetAction); err != nil {
			slog.Error("polling telemetry", slog.String("topic", topic), slog.Any("error", err))
			continue
		}
		w.polled.Add(ctx, 1, metric.WithAttributes(attribute.String("peripheral", p.poll.Peripheral)))
		sent++
	}
	return sent
}

func (w *TelemetryPollWorker) Shutdown() {}

func isDue(schedule cron.Schedule, now time.Time) bool {
	nextRun := schedule.Next(now.Add(-time.Minute))
	return !nextRun.After(now)
}
