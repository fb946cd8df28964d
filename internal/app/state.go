package app

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// RunStatusValue represents the stage a report run has reached
type RunStatusValue string

const (
	RunStatusStart      RunStatusValue = "start"
	RunStatusLoaded     RunStatusValue = "loaded"
	RunStatusAggregated RunStatusValue = "aggregated"
	RunStatusRendering  RunStatusValue = "rendering"
	RunStatusClosed     RunStatusValue = "closed"
	RunStatusFailed     RunStatusValue = "failed"
)

// ErrInvalidTransition is returned when a run is moved out of order
var ErrInvalidTransition = errors.New("invalid run state transition")

// RunState tracks one report run through
// start -> loaded -> aggregated -> rendering(1..n) -> closed.
// Any stage may move to failed. closed and failed are terminal.
type RunState struct {
	mu        sync.RWMutex
	ID        string
	Status    RunStatusValue
	Page      int
	Pages     int
	StartTime time.Time
	EndTime   *time.Time
	Error     error
}

// NewRunState creates a run expecting the given number of pages
func NewRunState(id string, pages int) *RunState {
	return &RunState{
		ID:        id,
		Status:    RunStatusStart,
		Pages:     pages,
		StartTime: time.Now(),
	}
}

// Loaded marks the delivery log as loaded
func (s *RunState) Loaded() error {
	return s.advance(RunStatusStart, RunStatusLoaded)
}

// Aggregated marks the summary as computed
func (s *RunState) Aggregated() error {
	return s.advance(RunStatusLoaded, RunStatusAggregated)
}

// ExpectPages sets how many pages must be rendered before the run can close
func (s *RunState) ExpectPages(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Pages = n
}

// PageRendered records that page number n (1-based) has been drawn.
// Pages must be reported in order, each exactly once.
func (s *RunState) PageRendered(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case n == 1 && s.Status == RunStatusAggregated:
	case s.Status == RunStatusRendering && n == s.Page+1 && n <= s.Pages:
	default:
		return s.invalid(fmt.Sprintf("%s(%d)", RunStatusRendering, n))
	}
	s.Status = RunStatusRendering
	s.Page = n
	return nil
}

// Closed marks the document as written. Every page must have been rendered.
func (s *RunState) Closed() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Status != RunStatusRendering || s.Page != s.Pages {
		return s.invalid(string(RunStatusClosed))
	}
	s.Status = RunStatusClosed
	s.finish()
	return nil
}

// Fail moves a running state to failed. Terminal states are left untouched.
func (s *RunState) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.terminal() {
		return
	}
	s.Status = RunStatusFailed
	s.Error = err
	s.finish()
}

// Current returns the status and, while rendering, the last page drawn
func (s *RunState) Current() (RunStatusValue, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Status, s.Page
}

// String renders the state the way it appears in logs, e.g. "rendering(3)"
func (s *RunState) String() string {
	status, page := s.Current()
	if status == RunStatusRendering {
		return fmt.Sprintf("%s(%d)", status, page)
	}
	return string(status)
}

// Duration returns the run time so far, or the total once finished
func (s *RunState) Duration() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.EndTime != nil {
		return s.EndTime.Sub(s.StartTime)
	}
	return time.Since(s.StartTime)
}

func (s *RunState) advance(from, to RunStatusValue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Status != from {
		return s.invalid(string(to))
	}
	s.Status = to
	return nil
}

func (s *RunState) terminal() bool {
	return s.Status == RunStatusClosed || s.Status == RunStatusFailed
}

func (s *RunState) finish() {
	now := time.Now()
	s.EndTime = &now
}

// invalid must be called with s.mu held
func (s *RunState) invalid(to string) error {
	from := string(s.Status)
	if s.Status == RunStatusRendering {
		from = fmt.Sprintf("%s(%d)", s.Status, s.Page)
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}
