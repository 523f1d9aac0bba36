package workers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ecotronix-hub/internal/control_plane/domain"
	"ecotronix-hub/internal/data_plane/dto"
	"ecotronix-hub/internal/infra/async"
	"ecotronix-hub/internal/infra/process"
)

type SensingSource string

const (
	SpeechSource   SensingSource = "speech"
	IdentitySource SensingSource = "identity"
)

var ErrSensingStreamEnded = errors.New("sensing stream ended")

// LineStreamer runs argv and hands every stdout line to onLine until the
// process exits.
type LineStreamer func(ctx context.Context, argv []string, onLine func([]byte)) error

func NewSensingWorker(
	source SensingSource,
	argv []string,
	broker async.InternalBroker,
	fatal chan<- error,
) *SensingWorker {
	return &SensingWorker{
		source: source,
		argv:   argv,
		stream: process.Stream,
		broker: broker,
		fatal:  fatal,
		now:    time.Now,
	}
}

var _ async.Worker = &SensingWorker{}

// SensingWorker turns the line-delimited output of a recognizer process into
// phrase or identity events. The hub cannot work without its recognizers, so
// the stream ending is reported as fatal.
type SensingWorker struct {
	source SensingSource
	argv   []string
	stream LineStreamer
	broker async.InternalBroker
	fatal  chan<- error
	now    func() time.Time
}

func (w *SensingWorker) WithStreamer(stream LineStreamer) *SensingWorker {
	w.stream = stream
	return w
}

func (w *SensingWorker) Run(ctx context.Context, done func()) {
	slog.Debug("sensing worker started", slog.String("source", string(w.source)), slog.Any("argv", w.argv))
	defer done()

	err := w.stream(ctx, w.argv, func(line []byte) {
		w.handleLine(ctx, line)
	})
	if ctx.Err() != nil {
		slog.Info("sensing worker cancelled", slog.String("source", string(w.source)))
		return
	}
	if err == nil {
		err = ErrSensingStreamEnded
	}

	select {
	case w.fatal <- fmt.Errorf("%s source: %w", w.source, err):
	case <-ctx.Done():
	}
}

func (w *SensingWorker) handleLine(ctx context.Context, raw []byte) {
	line, err := dto.DecodeSensingLine(raw)
	if err != nil {
		slog.Warn("discarding sensing line", slog.String("source", string(w.source)), slog.Any("error", err))
		return
	}

	var (
		topic string
		msg   async.BrokerMessage
	)
	switch w.source {
	case SpeechSource:
		event := line.PhraseEvent(w.now())
		if err := event.Validate(); err != nil {
			slog.Warn("discarding phrase", slog.Any("error", err))
			return
		}
		topic = domain.TopicPhraseEvents
		msg = async.BrokerMessage{Event: domain.EventPhraseRecognized, Value: event}
	case IdentitySource:
		event := line.IdentityEvent(w.now())
		if err := event.Validate(); err != nil {
			slog.Warn("discarding identity", slog.Any("error", err))
			return
		}
		topic = domain.TopicIdentityEvents
		msg = async.BrokerMessage{Event: domain.EventIdentityRecognized, Value: event}
	default:
		slog.Error("unknown sensing source", slog.String("source", string(w.source)))
		return
	}

	if err := w.broker.Publish(ctx, async.BrokerTopicName(topic), msg); err != nil {
		slog.Warn("publishing sensing event", slog.String("topic", topic), slog.Any("error", err))
	}
}

func (w *SensingWorker) Shutdown() {}
