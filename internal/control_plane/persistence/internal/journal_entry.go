package internal

import (
	"time"

	"ecotronix-hub/internal/control_plane/domain"
)

type JournalEntry struct {
	ID          string     `gorm:"primaryKey"`
	Outcome     string     `gorm:"index"`
	CommandKey  string
	CommandKind string
	Phrase      string
	Language    string
	User        string
	Detail      string
	EnqueuedAt  *time.Time
	RecordedAt  time.Time `gorm:"index"`
}

func (JournalEntry) TableName() string {
	return "dispatch_journal"
}

func (e JournalEntry) ToDomain() domain.JournalEntry {
	return domain.JournalEntry{
		ID:          domain.ID(e.ID),
		Outcome:     domain.Outcome(e.Outcome),
		CommandKey:  e.CommandKey,
		CommandKind: e.CommandKind,
		Phrase:      e.Phrase,
		Language:    domain.Language(e.Language),
		User:        domain.UserName(e.User),
		Detail:      e.Detail,
		EnqueuedAt:  e.EnqueuedAt,
		RecordedAt:  e.RecordedAt,
	}
}

func FromJournalEntry(value domain.JournalEntry) JournalEntry {
	return JournalEntry{
		ID:          value.ID.String(),
		Outcome:     string(value.Outcome),
		CommandKey:  value.CommandKey,
		CommandKind: value.CommandKind,
		Phrase:      value.Phrase,
		Language:    value.Language.String(),
		User:        value.User.String(),
		Detail:      value.Detail,
		EnqueuedAt:  value.EnqueuedAt,
		RecordedAt:  value.RecordedAt,
	}
}

type JournalEntrySet []JournalEntry

func (s JournalEntrySet) ToDomain() []domain.JournalEntry {
	result := make([]domain.JournalEntry, len(s))
	for i, v := range s {
		result[i] = v.ToDomain()
	}
	return result
}
