package persistence

import (
	"context"
	"fmt"

	"ecotronix-hub/internal/control_plane/domain"
	"ecotronix-hub/internal/control_plane/persistence/internal"
	"ecotronix-hub/internal/control_plane/usecases"
	"ecotronix-hub/internal/infra/sql"
)

func NewJournalRepository(orm sql.ORM) (*SimpleJournalRepository, error) {
	err := orm.AutoMigrate(&internal.JournalEntry{})
	if err != nil {
		return nil, fmt.Errorf("auto migrating journal entry: %w", err)
	}

	return &SimpleJournalRepository{
		orm: orm,
	}, nil
}

var _ usecases.DispatchJournal = (*SimpleJournalRepository)(nil)

type SimpleJournalRepository struct {
	orm sql.ORM
}

func (r *SimpleJournalRepository) Record(ctx context.Context, entry domain.JournalEntry) error {
	data := internal.FromJournalEntry(entry)
	err := r.orm.WithContext(ctx).Create(&data).Error()
	if err != nil {
		return fmt.Errorf("creating journal entry: %w", err)
	}

	return nil
}

// FindRecent returns the latest entries, newest first.
func (r *SimpleJournalRepository) FindRecent(ctx context.Context, limit int) ([]domain.JournalEntry, error) {
	var entries internal.JournalEntrySet
	err := r.orm.WithContext(ctx).
		Order("recorded_at desc").
		Limit(limit).
		Find(&entries).
		Error()
	if err != nil {
		return nil, fmt.Errorf("finding journal entries: %w", err)
	}

	return entries.ToDomain(), nil
}

func (r *SimpleJournalRepository) CountByOutcome(ctx context.Context, outcome domain.Outcome) (int64, error) {
	var total int64
	err := r.orm.WithContext(ctx).
		Model(&internal.JournalEntry{}).
		Where("outcome = ?", string(outcome)).
		Count(&total).
		Error()
	if err != nil {
		return 0, fmt.Errorf("counting journal entries: %w", err)
	}

	return total, nil
}
