package workers

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"ecotronix-hub/internal/control_plane/domain"
	"ecotronix-hub/internal/control_plane/usecases"
	"ecotronix-hub/internal/data_plane/dto"
	"ecotronix-hub/internal/infra/async"
	"ecotronix-hub/internal/infra/mqtt"
)

func NewTelemetryIntegrationWorker(
	ticker *time.Ticker,
	devices usecases.DeviceDirectory,
	mqttClient mqtt.Client,
	store usecases.TelemetryStore,
	broker async.InternalBroker,
	qos byte,
) *TelemetryIntegrationWorker {
	return &TelemetryIntegrationWorker{
		ticker:     ticker,
		devices:    devices,
		mqttClient: mqttClient,
		store:      store,
		broker:     broker,
		qos:        qos,
		now:        time.Now,
	}
}

var _ async.Worker = &TelemetryIntegrationWorker{}

// TelemetryIntegrationWorker keeps an MQTT subscription on the reply topics
// of every installed device and caches whatever the peripherals report.
// Devices added to the home file are picked up on the next tick.
type TelemetryIntegrationWorker struct {
	ticker     *time.Ticker
	devices    usecases.DeviceDirectory
	mqttClient mqtt.Client
	store      usecases.TelemetryStore
	broker     async.InternalBroker
	qos        byte
	now        func() time.Time
	subscribed sync.Map
}

func (w *TelemetryIntegrationWorker) Run(ctx context.Context, done func()) {
	slog.Debug("telemetry integration worker started")
	defer done()
	var wg sync.WaitGroup
	defer wg.Wait()

	w.Reconcile(ctx)
	for {
		select {
		case <-ctx.Done():
			slog.Info("telemetry integration worker cancelled")
			return
		case <-w.ticker.C:
			wg.Add(1)
			go func() {
				defer wg.Done()
				w.Reconcile(ctx)
			}()
		}
	}
}

// Reconcile subscribes to the reply topics of installed devices that are not
// subscribed yet and returns how many topics were added.
func (w *TelemetryIntegrationWorker) Reconcile(ctx context.Context) int {
	devices, err := w.devices.AllDevices(ctx)
	if err != nil {
		slog.Error("getting all devices", slog.Any("error", err))
		return 0
	}

	added := 0
	for _, device := range devices {
		if !device.Installed {
			continue
		}
		for _, topic := range device.TelemetryTopics() {
			if _, exists := w.subscribed.LoadOrStore(topic, struct{}{}); exists {
				continue
			}
			if err := w.mqttClient.Subscribe(topic, w.qos, w.messageHandler(ctx)); err != nil {
				slog.Error("subscribing to telemetry", slog.String("topic", topic), slog.Any("error", err))
				w.subscribed.Delete(topic)
				continue
			}
			added++
		}
	}
	return added
}

func (w *TelemetryIntegrationWorker) messageHandler(ctx context.Context) mqtt.MessageHandler {
	return func(_ mqtt.Client, msg mqtt.Message) {
		topic, ok := dto.ParseTelemetryTopic(msg.Topic())
		if !ok {
			slog.Warn("unexpected telemetry topic", slog.String("topic", msg.Topic()))
			return
		}

		reading := topic.Reading(msg.Topic(), msg.Payload(), w.now())
		if err := w.store.Save(ctx, reading); err != nil {
			slog.Error("storing telemetry", slog.String("topic", reading.Topic), slog.Any("error", err))
			return
		}

		err := w.broker.Publish(ctx, async.BrokerTopicName(domain.TopicTelemetryEvents), async.BrokerMessage{
			Event: domain.EventTelemetryReceived,
			Value: reading,
		})
		if err != nil && !errors.Is(err, async.ErrTopicNotFound) {
			slog.Error("publishing telemetry", slog.Any("error", err))
		}
	}
}

func (w *TelemetryIntegrationWorker) Shutdown() {
	w.subscribed.Range(func(key, _ any) bool {
		if err := w.mqttClient.Unsubscribe(key.(string)); err != nil {
			slog.Warn("unsubscribing telemetry", slog.String("topic", key.(string)), slog.Any("error", err))
		}
		w.subscribed.Delete(key)
		return true
	})
}
