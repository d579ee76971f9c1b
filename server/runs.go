package server

import (
	"sync"
	"time"

	"github.com/orayew2002/rast-attendance/domain"
	"github.com/orayew2002/rast-attendance/storage"
)

// Run is the outcome of one processed upload.
type Run struct {
	ID          string             `json:"run_id"`
	FileName    string             `json:"file_name"`
	ProcessedAt time.Time          `json:"processed_at"`
	Result      *domain.Result     `json:"-"`
	Archive     []storage.FileInfo `json:"archive,omitempty"`
}

// RunStore holds the single current run. Starting a new run discards the
// previous result, and only one run may be in progress at a time.
type RunStore struct {
	mu      sync.Mutex
	current *Run
	busy    bool
}

// NewRunStore creates an empty RunStore.
func NewRunStore() *RunStore {
	return &RunStore{}
}

// Begin clears the current run and marks a run as in progress.
func (s *RunStore) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy {
		return domain.ErrRunInProgress
	}
	s.busy = true
	s.current = nil
	return nil
}

// Finish ends the run in progress. A nil run records a failed run.
func (s *RunStore) Finish(run *Run) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.busy = false
	s.current = run
}

// Current returns the last successful run.
func (s *RunStore) Current() (*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, domain.ErrNoRun
	}
	return s.current, nil
}
