package usecases

import (
	"context"

	"ecotronix-hub/internal/control_plane/domain"
)

//go:generate mockgen -source=telemetry_store_port.go -destination=../../../test/unit/doubles/control_plane/usecases/telemetry_store_port_mock.go -package=usecases -mock_names=TelemetryStore=MockTelemetryStore

// TelemetryStore keeps the last reading reported on every telemetry topic.
type TelemetryStore interface {
	Save(ctx context.Context, reading domain.TelemetryReading) error
	Get(ctx context.Context, topic string) (domain.TelemetryReading, bool)
	All(ctx context.Context) ([]domain.TelemetryReading, error)
}
