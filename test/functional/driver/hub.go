package driver

import (
	"context"
	"net/http/httptest"
	"sync"
	"time"

	"ecotronix-hub/internal/control_plane/domain"
	"ecotronix-hub/internal/control_plane/httpapi"
	"ecotronix-hub/internal/control_plane/persistence"
	"ecotronix-hub/internal/control_plane/usecases"
	"ecotronix-hub/internal/infra/async"
	"ecotronix-hub/internal/infra/cache"
	"ecotronix-hub/internal/infra/httpserver"
	"ecotronix-hub/internal/infra/sql"
)

type Publication struct {
	Topic   string
	Payload string
}

type Utterance struct {
	Text     string
	Language domain.Language
}

// Recorder stands in for the MQTT broker, the speech synthesizer and the
// local shell so scenarios can assert on every side effect.
type Recorder struct {
	mu          sync.Mutex
	published   []Publication
	spoken      []Utterance
	invocations [][]string
}

func (r *Recorder) Publish(_ context.Context, topic, payload string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.published = append(r.published, Publication{Topic: topic, Payload: payload})
	return nil
}

func (r *Recorder) Say(_ context.Context, text string, language domain.Language) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.spoken = append(r.spoken, Utterance{Text: text, Language: language})
	return nil
}

func (r *Recorder) Spawn(_ context.Context, argv []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invocations = append(r.invocations, argv)
	return nil
}

func (r *Recorder) Published() []Publication {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Publication(nil), r.published...)
}

func (r *Recorder) Spoken() []Utterance {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Utterance(nil), r.spoken...)
}

func (r *Recorder) Invocations() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]string(nil), r.invocations...)
}

type HubOpts struct {
	HomeFile       string
	CommandTimeout time.Duration
	SweepInterval  time.Duration
}

// Hub runs the dispatch pipeline in process, behind a real HTTP server.
type Hub struct {
	API      *APIDriver
	Recorder *Recorder

	server       *httptest.Server
	broker       *async.LocalBroker
	orchestrator *usecases.DispatchOrchestrator
	cancel       context.CancelFunc
	wg           sync.WaitGroup
}

func StartHub(opts HubOpts) (*Hub, error) {
	catalog, err := persistence.NewHomeCatalog(opts.HomeFile)
	if err != nil {
		return nil, err
	}

	orm, err := sql.NewMemoryORM()
	if err != nil {
		return nil, err
	}
	journal, err := persistence.NewJournalRepository(orm)
	if err != nil {
		return nil, err
	}

	telemetryCache, err := cache.New(cache.DefaultConfig())
	if err != nil {
		return nil, err
	}
	telemetryStore := persistence.NewCachedTelemetryStore(telemetryCache, time.Minute)

	recorder := &Recorder{}
	broker := async.NewLocalBroker()
	executor := usecases.NewCommandExecutor(recorder, recorder, recorder, "")
	orchestrator, err := usecases.NewDispatchOrchestrator(
		time.NewTicker(opts.SweepInterval),
		opts.CommandTimeout,
		catalog,
		catalog,
		usecases.NewPendingCommandQueue(time.Now),
		executor,
		journal,
		broker,
	)
	if err != nil {
		return nil, err
	}

	server := httpserver.NewServer(
		httpserver.ServerOpts{},
		httpapi.NewIntakeController(broker),
		httpapi.NewStatusController(orchestrator, telemetryStore, opts.CommandTimeout),
	)

	ctx, cancel := context.WithCancel(context.Background())
	hub := &Hub{
		Recorder:     recorder,
		server:       httptest.NewServer(server.Handler()),
		broker:       broker,
		orchestrator: orchestrator,
		cancel:       cancel,
	}
	hub.API = NewAPIDriver(hub.server.URL)

	hub.wg.Add(1)
	go orchestrator.Run(ctx, hub.wg.Done)
	return hub, nil
}

func (h *Hub) PendingCount() int {
	return len(h.orchestrator.Pending(context.Background()))
}

func (h *Hub) Stop() {
	h.cancel()
	h.wg.Wait()
	h.orchestrator.Shutdown()
	h.server.Close()
	h.broker.Stop()
}
