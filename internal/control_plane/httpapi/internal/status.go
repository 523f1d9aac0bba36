package internal

import (
	"time"

	"ecotronix-hub/internal/control_plane/domain"
)

type PendingCommandResponse struct {
	ID            string    `json:"id"`
	Command       string    `json:"command"`
	Kind          string    `json:"kind"`
	Description   string    `json:"description,omitempty"`
	AgeRestricted bool      `json:"age_restricted"`
	Privileged    bool      `json:"privileged"`
	Language      string    `json:"language,omitempty"`
	EnqueuedAt    time.Time `json:"enqueued_at"`
	ExpiresAt     time.Time `json:"expires_at"`
}

type PendingCommandListResponse struct {
	Data  []PendingCommandResponse `json:"data"`
	Total int                      `json:"total"`
}

func ToPendingCommandListResponse(entries []domain.PendingCommand, timeout time.Duration) PendingCommandListResponse {
	data := make([]PendingCommandResponse, len(entries))
	for i, e := range entries {
		data[i] = PendingCommandResponse{
			ID:            e.ID.String(),
			Command:       e.Command.Key(),
			Kind:          e.Command.Kind(),
			Description:   e.Command.Description,
			AgeRestricted: e.Command.AgeRestricted,
			Privileged:    e.Command.Privileged,
			Language:      e.Language.String(),
			EnqueuedAt:    e.EnqueuedAt,
			ExpiresAt:     e.EnqueuedAt.Add(timeout),
		}
	}
	return PendingCommandListResponse{Data: data, Total: len(data)}
}

type JournalEntryResponse struct {
	ID         string     `json:"id"`
	Outcome    string     `json:"outcome"`
	Command    string     `json:"command,omitempty"`
	Kind       string     `json:"kind,omitempty"`
	Phrase     string     `json:"phrase,omitempty"`
	Language   string     `json:"language,omitempty"`
	User       string     `json:"user,omitempty"`
	Detail     string     `json:"detail,omitempty"`
	EnqueuedAt *time.Time `json:"enqueued_at,omitempty"`
	RecordedAt time.Time  `json:"recorded_at"`
}

func ToJournalEntryResponse(e domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		ID:         e.ID.String(),
		Outcome:    string(e.Outcome),
		Command:    e.CommandKey,
		Kind:       e.CommandKind,
		Phrase:     e.Phrase,
		Language:   e.Language.String(),
		User:       e.User.String(),
		Detail:     e.Detail,
		EnqueuedAt: e.EnqueuedAt,
		RecordedAt: e.RecordedAt,
	}
}

type JournalListResponse struct {
	Data  []JournalEntryResponse `json:"data"`
	Limit int                    `json:"limit"`
}

func ToJournalListResponse(entries []domain.JournalEntry, limit int) JournalListResponse {
	data := make([]JournalEntryResponse, len(entries))
	for i, e := range entries {
		data[i] = ToJournalEntryResponse(e)
	}
	return JournalListResponse{Data: data, Limit: limit}
}

type TelemetryListResponse struct {
	Data []domain.TelemetryReading `json:"data"`
}

// StreamMessage is one frame of the dispatch events websocket.
type StreamMessage struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}
