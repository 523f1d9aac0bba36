package usecases

import (
	"context"

	"ecotronix-hub/internal/control_plane/domain"
)

//go:generate mockgen -source=repository_port.go -destination=../../../test/unit/doubles/control_plane/usecases/repository_port_mock.go -package=usecases -mock_names=CommandCatalog=MockCommandCatalog,PermissionStore=MockPermissionStore,DeviceDirectory=MockDeviceDirectory,DispatchJournal=MockDispatchJournal

// CommandCatalog resolves a recognized phrase to an immutable command
// snapshot. It returns domain.ErrPhraseNotFound when nothing matches.
// DefaultLanguage is used for events that carry no language.
type CommandCatalog interface {
	Resolve(ctx context.Context, phrase string, language domain.Language) (domain.Command, error)
	DefaultLanguage() domain.Language
}

// PermissionStore computes a fresh snapshot on every call. It returns
// domain.ErrUserNotFound for unknown users.
type PermissionStore interface {
	GetPermissions(ctx context.Context, user domain.UserName) (domain.PermissionSnapshot, error)
}

type DeviceDirectory interface {
	AllDevices(ctx context.Context) ([]domain.Device, error)
}

type DispatchJournal interface {
	Record(ctx context.Context, entry domain.JournalEntry) error
	FindRecent(ctx context.Context, limit int) ([]domain.JournalEntry, error)
}
