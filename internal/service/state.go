package service

import (
	"sync"
	"time"

	"github.com/guttosm/salespulse/internal/domain/models"
	"github.com/guttosm/salespulse/internal/normalize"
)

// Snapshot is one loaded dataset. It is never mutated after being committed;
// a new load replaces it wholesale.
type Snapshot struct {
	TaskID   int
	Source   string
	Records  []models.SaleRecord
	Options  models.FilterOptions
	Report   normalize.Report
	Cached   bool
	LoadedAt time.Time
}

// State owns the dashboard's current dataset.
//
// Every load calls Begin for a token and later Commit with it. Tokens grow
// monotonically, and Commit only applies a snapshot whose token is still the
// latest one issued, so a slow response can never overwrite a newer request.
type State struct {
	mu      sync.RWMutex
	latest  uint64
	current *Snapshot
}

// Begin issues the token of a new load.
func (s *State) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest++
	return s.latest
}

// Withdraw gives token back when its load ends without a result, such as a
// cancelled request. If no newer load began, the previous token becomes the
// latest again so an earlier load still in flight can commit.
func (s *State) Withdraw(token uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token == s.latest {
		s.latest--
	}
}

// Commit installs snap if token is still the latest issued. It reports whether
// the snapshot was applied; false means the result is stale and was dropped.
func (s *State) Commit(token uint64, snap Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.latest {
		return false
	}
	s.current = &snap
	return true
}

// Current returns the committed snapshot, if any.
func (s *State) Current() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Snapshot{}, false
	}
	return *s.current, true
}
