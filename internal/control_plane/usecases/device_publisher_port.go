package usecases

import (
	"context"

	"ecotronix-hub/internal/control_plane/domain"
)

//go:generate mockgen -source=device_publisher_port.go -destination=../../../test/unit/doubles/control_plane/usecases/device_publisher_port_mock.go -package=usecases -mock_names=DevicePublisher=MockDevicePublisher,Speaker=MockSpeaker,ProcessSpawner=MockProcessSpawner

// DevicePublisher delivers an action to a peripheral topic with at-least-once
// semantics.
type DevicePublisher interface {
	Publish(ctx context.Context, topic string, payload string) error
}

// Speaker vocalizes a response. Implementations must not wait for playback.
type Speaker interface {
	Say(ctx context.Context, text string, language domain.Language) error
}

// ProcessSpawner starts a detached process without waiting for it.
type ProcessSpawner interface {
	Spawn(ctx context.Context, argv []string) error
}
