package wire

import (
	"fmt"
	"time"

	"ecotronix-hub/cmd/config"
	"ecotronix-hub/internal/control_plane/communication"
	"ecotronix-hub/internal/control_plane/domain"
	"ecotronix-hub/internal/control_plane/persistence"
	"ecotronix-hub/internal/control_plane/usecases"
	"ecotronix-hub/internal/infra/cache"
	"ecotronix-hub/internal/infra/sql"
)

func provideAppConfig() config.AppConfig {
	return config.LoadConfig()
}

func provideDatabase(config config.AppConfig) (sql.ORM, error) {
	orm, err := sql.Open(config.Journal.Driver, config.Journal.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	return orm, nil
}

func provideHomeCatalog(config config.AppConfig) (*persistence.HomeCatalog, error) {
	return persistence.NewHomeCatalog(config.Catalog.Path)
}

func provideClock() usecases.Clock {
	return time.Now
}

func provideSweepTicker(config config.AppConfig) *time.Ticker {
	return time.NewTicker(config.Dispatch.SweepInterval)
}

func provideCommandTimeout(config config.AppConfig) time.Duration {
	return config.Dispatch.CommandTimeout
}

func provideSpeaker(config config.AppConfig, spawner usecases.ProcessSpawner) *communication.EspeakSpeaker {
	return communication.NewEspeakSpeaker(spawner, config.TTS.Binary, config.TTS.Speed)
}

func provideCommandExecutor(
	config config.AppConfig,
	spawner usecases.ProcessSpawner,
	publisher usecases.DevicePublisher,
	speaker usecases.Speaker,
) *usecases.CommandExecutor {
	return usecases.NewCommandExecutor(spawner, publisher, speaker, config.Local.Shell)
}

func provideTelemetryStore(config config.AppConfig) (*persistence.CachedTelemetryStore, error) {
	c, err := cache.New(cache.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("creating telemetry cache: %w", err)
	}
	return persistence.NewCachedTelemetryStore(c, config.Telemetry.TTL), nil
}

func provideReconcileTicker(config config.AppConfig) *time.Ticker {
	return time.NewTicker(config.Telemetry.ReconcileInterval)
}

func providePollTicker(config config.AppConfig) *time.Ticker {
	return time.NewTicker(config.Telemetry.PollInterval)
}

func provideTelemetryPolls(config config.AppConfig) []domain.TelemetryPoll {
	polls := make([]domain.TelemetryPoll, 0, len(config.Telemetry.Polls))
	for _, p := range config.Telemetry.Polls {
		polls = append(polls, domain.TelemetryPoll{
			Schedule:   p.Schedule,
			Room:       p.Room,
			Position:   p.Position,
			Peripheral: p.Peripheral,
			Subtype:    p.Subtype,
		})
	}
	return polls
}

func provideMQTTQoS(config config.AppConfig) byte {
	return config.MQTTClient.QoS
}
