package domain

import "time"

type Outcome string

const (
	OutcomeQueued       Outcome = "queued"
	OutcomeExecuted     Outcome = "executed"
	OutcomeEvicted      Outcome = "evicted"
	OutcomeFailed       Outcome = "failed"
	OutcomeUnrecognized Outcome = "unrecognized"
)

// JournalEntry records what happened to a recognized phrase.
type JournalEntry struct {
	ID          ID
	Outcome     Outcome
	CommandKey  string
	CommandKind string
	Phrase      string
	Language    Language
	User        UserName
	Detail      string
	EnqueuedAt  *time.Time
	RecordedAt  time.Time
}
