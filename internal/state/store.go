package state

import (
	"sync"
	"time"

	"github.com/five82/blu/internal/bluos"
)

// Snapshot represents the latest player state available to the UI.
type Snapshot struct {
	Status              bluos.Record
	HasStatus           bool
	Seq                 uint64
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the player has been unreachable for
// multiple polls. A single miss is normal during standby transitions.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent access to the latest snapshot. The poll
// consumer is the sole writer; the UI reads on its own cadence.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Apply folds one poll notification into the snapshot. Failures keep
// the previous status visible and only record the error.
func (s *Store) Apply(n bluos.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastUpdated = time.Now()
	if n.Err != nil {
		s.snapshot.LastError = n.Err
		s.snapshot.ConsecutiveFailures++
		return
	}
	s.snapshot.Status = n.Snapshot.Record
	s.snapshot.HasStatus = true
	s.snapshot.Seq = n.Seq
	s.snapshot.LastUpdated = n.Snapshot.At
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns the current snapshot. Records are immutable, so the
// shallow copy is safe to hand out.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}
