package domain

import "time"

// PendingCommand is a restricted command waiting for an authorized identity.
type PendingCommand struct {
	ID         ID
	Command    Command
	Language   Language
	EnqueuedAt time.Time
}

// Expired reports whether the entry is due for eviction at now.
func (p PendingCommand) Expired(now time.Time, timeout time.Duration) bool {
	return now.Sub(p.EnqueuedAt) >= timeout
}
