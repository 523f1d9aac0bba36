//go:build wireinject
// +build wireinject

package wire

import (
	"ecotronix-hub/internal/control_plane/communication"
	"ecotronix-hub/internal/control_plane/httpapi"
	"ecotronix-hub/internal/control_plane/persistence"
	"ecotronix-hub/internal/control_plane/usecases"
	"ecotronix-hub/internal/data_plane/workers"
	"ecotronix-hub/internal/infra/async"
	"ecotronix-hub/internal/infra/mqtt"

	"github.com/google/wire"
)

func InitializeHomeCatalog() (*persistence.HomeCatalog, error) {
	wire.Build(
		provideAppConfig,
		provideHomeCatalog,
	)
	return nil, nil
}

func InitializeDevicePublisher(client mqtt.Client) (*communication.DevicePublisher, error) {
	wire.Build(
		provideAppConfig,
		provideMQTTQoS,
		communication.NewDevicePublisher,
	)
	return nil, nil
}

var DispatchSet = wire.NewSet(
	provideAppConfig,
	provideDatabase,
	persistence.NewJournalRepository,
	wire.Bind(new(usecases.DispatchJournal), new(*persistence.SimpleJournalRepository)),
	wire.Bind(new(usecases.CommandCatalog), new(*persistence.HomeCatalog)),
	wire.Bind(new(usecases.PermissionStore), new(*persistence.HomeCatalog)),
	provideSpeaker,
	wire.Bind(new(usecases.Speaker), new(*communication.EspeakSpeaker)),
	provideCommandExecutor,
	wire.Bind(new(usecases.Executor), new(*usecases.CommandExecutor)),
	provideClock,
	usecases.NewPendingCommandQueue,
	provideSweepTicker,
	provideCommandTimeout,
	usecases.NewDispatchOrchestrator,
)

func InitializeDispatchOrchestrator(
	broker async.InternalBroker,
	catalog *persistence.HomeCatalog,
	publisher usecases.DevicePublisher,
	spawner usecases.ProcessSpawner,
) (*usecases.DispatchOrchestrator, error) {
	wire.Build(DispatchSet)
	return nil, nil
}

func InitializeTelemetryStore() (*persistence.CachedTelemetryStore, error) {
	wire.Build(
		provideAppConfig,
		provideTelemetryStore,
	)
	return nil, nil
}

func InitializeTelemetryIntegrationWorker(
	catalog *persistence.HomeCatalog,
	client mqtt.Client,
	store usecases.TelemetryStore,
	broker async.InternalBroker,
) (*workers.TelemetryIntegrationWorker, error) {
	wire.Build(
		provideAppConfig,
		provideReconcileTicker,
		provideMQTTQoS,
		wire.Bind(new(usecases.DeviceDirectory), new(*persistence.HomeCatalog)),
		workers.NewTelemetryIntegrationWorker,
	)
	return nil, nil
}

func InitializeTelemetryPollWorker(publisher usecases.DevicePublisher) (*usecases.TelemetryPollWorker, error) {
	wire.Build(
		provideAppConfig,
		providePollTicker,
		provideTelemetryPolls,
		provideClock,
		usecases.NewTelemetryPollWorker,
	)
	return nil, nil
}

func InitializeIntakeController(broker async.InternalBroker) (*httpapi.IntakeController, error) {
	wire.Build(
		httpapi.NewIntakeController,
	)
	return nil, nil
}

func InitializeStatusController(
	status usecases.DispatchStatusService,
	store usecases.TelemetryStore,
) (*httpapi.StatusController, error) {
	wire.Build(
		provideAppConfig,
		provideCommandTimeout,
		httpapi.NewStatusController,
	)
	return nil, nil
}

func InitializeDispatchEventsWebSocketController(broker async.InternalBroker) (*httpapi.DispatchEventsWebSocketController, error) {
	wire.Build(
		httpapi.NewDispatchEventsWebSocketController,
	)
	return nil, nil
}
