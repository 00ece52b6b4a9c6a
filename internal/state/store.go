package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/zplpress/internal/labels"
)

// Snapshot summarises the print runs of this session.
type Snapshot struct {
	Last                labels.Result
	HasResult           bool
	LastError           error
	LastUpdated         time.Time
	Runs                int
	Printed             int // labels handed to printers across all runs
	ConsecutiveFailures int
}

// Failing reports whether the most recent run failed.
func (s Snapshot) Failing() bool {
	return s.ConsecutiveFailures > 0
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Record stores the outcome of a run. Labels sent before a failure still
// count towards Printed.
func (s *Store) Record(result labels.Result, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Runs++
	s.snapshot.Printed += result.Sent
	s.snapshot.Last = result
	s.snapshot.HasResult = true
	s.snapshot.LastUpdated = time.Now()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
