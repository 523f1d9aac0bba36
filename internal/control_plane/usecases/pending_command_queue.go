package usecases

import (
	"slices"
	"sync"
	"time"

	"ecotronix-hub/internal/control_plane/domain"

	"github.com/google/uuid"
)

// Clock returns the current time. Tests inject a fake one.
type Clock func() time.Time

// PendingCommandQueue holds restricted commands until an authorized identity
// drains them or they expire. Every operation runs under a single lock and
// none of them performs I/O.
type PendingCommandQueue struct {
	mu      sync.Mutex
	entries []domain.PendingCommand
	now     Clock
}

func NewPendingCommandQueue(clock Clock) *PendingCommandQueue {
	if clock == nil {
		clock = time.Now
	}
	return &PendingCommandQueue{now: clock}
}

// Append enqueues cmd stamped with the current time. Entries are never
// deduplicated.
func (q *PendingCommandQueue) Append(cmd domain.Command, language domain.Language) {
	entry := domain.PendingCommand{
		ID:         domain.ID(uuid.NewString()),
		Command:    cmd,
		Language:   language,
		EnqueuedAt: q.now(),
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries = append(q.entries, entry)
}

// SweepExpired removes and returns every entry with now-EnqueuedAt >= timeout.
func (q *PendingCommandQueue) SweepExpired(now time.Time, timeout time.Duration) []domain.PendingCommand {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.extract(func(entry domain.PendingCommand) bool {
		return entry.Expired(now, timeout)
	})
}

// AuthorizeAndDrain removes and returns the entries accepted by check in a
// single critical section, so each entry is handed out at most once. check
// must not block.
func (q *PendingCommandQueue) AuthorizeAndDrain(check func(domain.PendingCommand) bool) []domain.PendingCommand {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.extract(check)
}

func (q *PendingCommandQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Snapshot returns a copy of the queue in insertion order.
func (q *PendingCommandQueue) Snapshot() []domain.PendingCommand {
	q.mu.Lock()
	defer q.mu.Unlock()
	return slices.Clone(q.entries)
}

func (q *PendingCommandQueue) Now() time.Time {
	return q.now()
}

// extract partitions the live entries; the caller holds the lock.
func (q *PendingCommandQueue) extract(match func(domain.PendingCommand) bool) []domain.PendingCommand {
	var matched []domain.PendingCommand
	kept := q.entries[:0]
	for _, entry := range q.entries {
		if match(entry) {
			matched = append(matched, entry)
			continue
		}
		kept = append(kept, entry)
	}
	clear(q.entries[len(kept):])
	q.entries = kept
	return matched
}
