package usecases

import (
	"context"

	"ecotronix-hub/internal/control_plane/domain"
)

//go:generate mockgen -source=api.go -destination=../../../test/unit/doubles/control_plane/usecases/api_mock.go -package=usecases -mock_names=Executor=MockExecutor,DispatchStatusService=MockDispatchStatusService

// Executor performs the side effect of a command plus its spoken response.
type Executor interface {
	Execute(ctx context.Context, cmd domain.Command, language domain.Language) error
}

type DispatchStatusService interface {
	Pending(ctx context.Context) []domain.PendingCommand
	RecentOutcomes(ctx context.Context, limit int) ([]domain.JournalEntry, error)
}
