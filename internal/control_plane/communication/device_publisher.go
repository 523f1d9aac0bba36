package communication

import (
	"context"
	"fmt"
	"log/slog"

	"ecotronix-hub/internal/control_plane/usecases"
	"ecotronix-hub/internal/infra/mqtt"
)

const DefaultQoS byte = 1

func NewDevicePublisher(client mqtt.Client, qos byte) *DevicePublisher {
	if qos > 2 {
		qos = DefaultQoS
	}
	return &DevicePublisher{
		client: client,
		qos:    qos,
	}
}

var _ usecases.DevicePublisher = (*DevicePublisher)(nil)

// DevicePublisher sends raw string actions to peripherals over MQTT.
type DevicePublisher struct {
	client mqtt.Client
	qos    byte
}

func (p *DevicePublisher) Publish(ctx context.Context, topic string, payload string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := p.client.Publish(topic, p.qos, payload); err != nil {
		return fmt.Errorf("publishing to mqtt: %w", err)
	}

	slog.Debug("device action published",
		slog.String("topic", topic),
		slog.String("payload", payload),
		slog.Int("qos", int(p.qos)),
	)
	return nil
}
