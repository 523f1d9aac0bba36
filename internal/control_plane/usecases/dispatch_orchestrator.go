package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"ecotronix-hub/internal/control_plane/domain"
	"ecotronix-hub/internal/infra/async"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	_meterName          = "ecotronix_hub"
	_defaultJournalSize = 50
)

func NewDispatchOrchestrator(
	ticker *time.Ticker,
	timeout time.Duration,
	catalog CommandCatalog,
	permissions PermissionStore,
	queue *PendingCommandQueue,
	executor Executor,
	journal DispatchJournal,
	broker async.InternalBroker,
) (*DispatchOrchestrator, error) {
	phrases, err := broker.Subscribe(async.BrokerTopicName(domain.TopicPhraseEvents))
	if err != nil {
		return nil, fmt.Errorf("subscribing to phrase events: %w", err)
	}
	identities, err := broker.Subscribe(async.BrokerTopicName(domain.TopicIdentityEvents))
	if err != nil {
		return nil, fmt.Errorf("subscribing to identity events: %w", err)
	}

	o := &DispatchOrchestrator{
		ticker:      ticker,
		timeout:     timeout,
		catalog:     catalog,
		permissions: permissions,
		queue:       queue,
		executor:    executor,
		journal:     journal,
		broker:      broker,
		phrases:     phrases,
		identities:  identities,
	}
	o.setupOtelInstruments()
	return o, nil
}

var _ async.Worker = (*DispatchOrchestrator)(nil)
var _ DispatchStatusService = (*DispatchOrchestrator)(nil)

// DispatchOrchestrator reconciles phrase events, identity events and the
// expiry timer against the pending command queue. Command effects run on
// their own goroutines so the loop never waits on I/O.
type DispatchOrchestrator struct {
	ticker      *time.Ticker
	timeout     time.Duration
	catalog     CommandCatalog
	permissions PermissionStore
	queue       *PendingCommandQueue
	executor    Executor
	journal     DispatchJournal
	broker      async.InternalBroker
	phrases     async.Subscription
	identities  async.Subscription
	inflight    sync.WaitGroup
	outcomes    metric.Int64Counter
}

func (o *DispatchOrchestrator) Run(ctx context.Context, done func()) {
	slog.Debug("dispatch orchestrator started", slog.Duration("command_timeout", o.timeout))
	defer done()
	defer o.inflight.Wait()

	for {
		select {
		case <-ctx.Done():
			slog.Info("dispatch orchestrator cancelled", slog.Int("dropped_pending", o.queue.Len()))
			return
		case msg, ok := <-o.phrases.Receiver:
			if !ok {
				slog.Warn("phrase subscription closed")
				return
			}
			o.onPhraseMessage(ctx, msg)
		case msg, ok := <-o.identities.Receiver:
			if !ok {
				slog.Warn("identity subscription closed")
				return
			}
			o.onIdentityMessage(ctx, msg)
		case <-o.ticker.C:
			o.Sweep(ctx)
		}
	}
}

func (o *DispatchOrchestrator) Shutdown() {
	_ = o.broker.Unsubscribe(async.BrokerTopicName(domain.TopicPhraseEvents), o.phrases)
	_ = o.broker.Unsubscribe(async.BrokerTopicName(domain.TopicIdentityEvents), o.identities)
}

// WaitIdle blocks until every command handed to the executor has finished.
func (o *DispatchOrchestrator) WaitIdle() {
	o.inflight.Wait()
}

func (o *DispatchOrchestrator) onPhraseMessage(ctx context.Context, msg async.BrokerMessage) {
	event, ok := msg.Value.(domain.PhraseEvent)
	if !ok {
		slog.Error("unexpected phrase event payload", slog.String("type", fmt.Sprintf("%T", msg.Value)))
		return
	}

	ctx, span := otel.Tracer(_meterName).Start(ctx, "phrase_event", trace.WithAttributes(
		attribute.String("phrase", event.Phrase),
		attribute.String("language", event.Language.String()),
	))
	defer span.End()

	if err := o.HandlePhrase(ctx, event); err != nil {
		span.RecordError(err)
		slog.Warn("phrase event discarded",
			slog.String("trace_id", span.SpanContext().TraceID().String()),
			slog.Any("error", err),
		)
	}
}

func (o *DispatchOrchestrator) onIdentityMessage(ctx context.Context, msg async.BrokerMessage) {
	event, ok := msg.Value.(domain.IdentityEvent)
	if !ok {
		slog.Error("unexpected identity event payload", slog.String("type", fmt.Sprintf("%T", msg.Value)))
		return
	}

	ctx, span := otel.Tracer(_meterName).Start(ctx, "identity_event", trace.WithAttributes(
		attribute.String("user", event.User.String()),
	))
	defer span.End()

	err := o.HandleIdentity(ctx, event)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrUserNotFound):
		slog.Debug("identity event ignored", slog.String("user", event.User.String()))
	default:
		span.RecordError(err)
		slog.Warn("identity event discarded", slog.Any("error", err))
	}
}

// HandlePhrase resolves the phrase and either executes the command right away
// (unrestricted) or enqueues it until an authorized identity shows up.
func (o *DispatchOrchestrator) HandlePhrase(ctx context.Context, event domain.PhraseEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}

	phrase := domain.NormalizePhrase(event.Phrase)
	language := event.Language
	if language == "" {
		language = o.catalog.DefaultLanguage()
	}

	cmd, err := o.catalog.Resolve(ctx, phrase, language)
	if err != nil {
		slog.Warn("unrecognized phrase",
			slog.String("phrase", phrase),
			slog.String("language", language.String()),
		)
		o.record(ctx, domain.JournalEntry{
			Outcome:  domain.OutcomeUnrecognized,
			Phrase:   phrase,
			Language: language,
			Detail:   err.Error(),
		})
		return fmt.Errorf("resolving %q: %w", phrase, err)
	}

	if cmd.IsUnrestricted() {
		o.dispatch(ctx, cmd, language, domain.JournalEntry{Phrase: phrase})
		return nil
	}

	o.queue.Append(cmd, language)
	slog.Info("restricted command queued",
		slog.String("command", cmd.Key()),
		slog.Bool("age_restricted", cmd.AgeRestricted),
		slog.Bool("privileged", cmd.Privileged),
		slog.Int("pending", o.queue.Len()),
	)
	o.record(ctx, domain.JournalEntry{
		Outcome:     domain.OutcomeQueued,
		CommandKey:  cmd.Key(),
		CommandKind: cmd.Kind(),
		Phrase:      phrase,
		Language:    language,
	})
	return nil
}

// HandleIdentity drains every pending command the identified user may run.
// Permissions are looked up on every event so role changes apply right away.
func (o *DispatchOrchestrator) HandleIdentity(ctx context.Context, event domain.IdentityEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}

	snapshot, err := o.permissions.GetPermissions(ctx, event.User)
	if err != nil {
		return fmt.Errorf("looking up %q: %w", event.User, err)
	}
	if !snapshot.MayDrain() {
		return nil
	}

	authorized := o.queue.AuthorizeAndDrain(func(entry domain.PendingCommand) bool {
		return snapshot.Allows(entry.Command)
	})
	for _, entry := range authorized {
		enqueuedAt := entry.EnqueuedAt
		o.dispatch(ctx, entry.Command, entry.Language, domain.JournalEntry{
			ID:         entry.ID,
			User:       event.User,
			EnqueuedAt: &enqueuedAt,
		})
	}
	if len(authorized) > 0 {
		slog.Info("pending commands authorized",
			slog.String("user", event.User.String()),
			slog.Int("count", len(authorized)),
		)
	}
	return nil
}

// Sweep evicts expired entries and returns how many were dropped.
func (o *DispatchOrchestrator) Sweep(ctx context.Context) int {
	evicted := o.queue.SweepExpired(o.queue.Now(), o.timeout)
	for _, entry := range evicted {
		enqueuedAt := entry.EnqueuedAt
		slog.Info("pending command expired",
			slog.String("command", entry.Command.Key()),
			slog.Time("enqueued_at", enqueuedAt),
		)
		o.record(ctx, domain.JournalEntry{
			ID:          entry.ID,
			Outcome:     domain.OutcomeEvicted,
			CommandKey:  entry.Command.Key(),
			CommandKind: entry.Command.Kind(),
			Language:    entry.Language,
			EnqueuedAt:  &enqueuedAt,
		})
	}
	return len(evicted)
}

func (o *DispatchOrchestrator) Pending(_ context.Context) []domain.PendingCommand {
	return o.queue.Snapshot()
}

func (o *DispatchOrchestrator) RecentOutcomes(ctx context.Context, limit int) ([]domain.JournalEntry, error) {
	if limit <= 0 {
		limit = _defaultJournalSize
	}
	return o.journal.FindRecent(ctx, limit)
}

// dispatch hands the command to the executor on a tracked goroutine. The
// execution outlives ctx cancellation so shutdown lets it finish.
func (o *DispatchOrchestrator) dispatch(ctx context.Context, cmd domain.Command, language domain.Language, entry domain.JournalEntry) {
	execCtx := context.WithoutCancel(ctx)
	o.inflight.Add(1)
	go func() {
		defer o.inflight.Done()

		entry.Outcome = domain.OutcomeExecuted
		if err := o.executor.Execute(execCtx, cmd, language); err != nil {
			entry.Outcome = domain.OutcomeFailed
			entry.Detail = err.Error()
		}
		entry.CommandKey = cmd.Key()
		entry.CommandKind = cmd.Kind()
		entry.Language = language
		o.record(execCtx, entry)
	}()
}

func (o *DispatchOrchestrator) record(ctx context.Context, entry domain.JournalEntry) {
	if entry.ID == "" {
		entry.ID = domain.ID(uuid.NewString())
	}
	entry.RecordedAt = o.queue.Now()

	o.outcomes.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", string(entry.Outcome))))

	if err := o.journal.Record(ctx, entry); err != nil {
		slog.Error("recording dispatch outcome", slog.String("outcome", string(entry.Outcome)), slog.Any("error", err))
	}

	err := o.broker.Publish(ctx, async.BrokerTopicName(domain.TopicDispatchEvents), async.BrokerMessage{
		Event: string(entry.Outcome),
		Value: entry,
	})
	if err != nil && !errors.Is(err, async.ErrTopicNotFound) {
		slog.Error("publishing dispatch outcome", slog.Any("error", err))
	}
}

func (o *DispatchOrchestrator) setupOtelInstruments() {
	meter := otel.Meter(_meterName)
	o.outcomes, _ = meter.Int64Counter(
		fmt.Sprintf("%s.%s", _meterName, "dispatch.outcomes"),
		metric.WithDescription("dispatch outcomes by kind"),
	)
	_, _ = meter.Int64ObservableGauge(
		fmt.Sprintf("%s.%s", _meterName, "dispatch.pending"),
		metric.WithDescription("restricted commands waiting for authorization"),
		metric.WithInt64Callback(func(_ context.Context, observer metric.Int64Observer) error {
			observer.Observe(int64(o.queue.Len()))
			return nil
		}),
	)
}
