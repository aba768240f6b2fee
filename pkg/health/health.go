// Package health probes the dependencies a client session relies on, such
// as the REST backend and the key-value storage backend. Checks run
// concurrently with a shared deadline.
package health

import (
	"context"
	"sync"
	"time"
)

// Checker is a function that checks the health of one dependency.
type Checker func(ctx context.Context) error

// Status represents the health of a component.
type Status string

const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

// CheckResult is the outcome of a single check.
type CheckResult struct {
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Report aggregates all check outcomes. Status is down if any check failed.
type Report struct {
	Status    Status                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
}

// Prober runs registered checks on demand.
type Prober struct {
	mu       sync.RWMutex
	timeout  time.Duration
	checkers map[string]Checker
}

// NewProber creates a prober. Each run is bounded by timeout.
func NewProber(timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Prober{
		timeout:  timeout,
		checkers: make(map[string]Checker),
	}
}

// Register adds a named checker.
func (p *Prober) Register(name string, checker Checker) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.checkers[name] = checker
}

// Check runs all registered checkers concurrently and aggregates the result.
func (p *Prober) Check(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	p.mu.RLock()
	checkers := make(map[string]Checker, len(p.checkers))
	for name, c := range p.checkers {
		checkers[name] = c
	}
	p.mu.RUnlock()

	report := Report{
		Status:    StatusUp,
		Timestamp: time.Now().UTC(),
		Checks:    make(map[string]CheckResult, len(checkers)),
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	for name, checker := range checkers {
		wg.Add(1)
		go func(name string, checker Checker) {
			defer wg.Done()
			result := CheckResult{Status: StatusUp}
			if err := checker(ctx); err != nil {
				result = CheckResult{Status: StatusDown, Error: err.Error()}
			}
			mu.Lock()
			report.Checks[name] = result
			if result.Status == StatusDown {
				report.Status = StatusDown
			}
			mu.Unlock()
		}(name, checker)
	}
	wg.Wait()

	return report
}
