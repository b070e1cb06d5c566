package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/usagelens/usagelens/internal/core"
	"github.com/usagelens/usagelens/internal/fetch"
	"github.com/usagelens/usagelens/internal/normalize"
)

// Fetcher is the transport dependency; satisfied by *fetch.Client.
type Fetcher interface {
	FetchJSON(ctx context.Context, src fetch.Source) (any, error)
}

// Engine polls the declared sources and publishes merged snapshots. The
// normalizer is pure; all state here is the latest snapshot plus wiring.
type Engine struct {
	mu       sync.RWMutex
	client   Fetcher
	sources  []fetch.Source
	latest   core.Snapshot
	interval time.Duration
	timeout  time.Duration

	onUpdate func(core.Snapshot)
}

func New(client Fetcher, sources []fetch.Source, interval time.Duration) *Engine {
	return &Engine{
		client:   client,
		sources:  sources,
		interval: interval,
		timeout:  10 * time.Second,
	}
}

func (e *Engine) OnUpdate(fn func(core.Snapshot)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onUpdate = fn
}

func (e *Engine) SetSources(sources []fetch.Source) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sources = sources
}

// SetInterval changes the poll cadence. Run picks the new value up after the
// tick in flight. Non-positive durations are ignored.
func (e *Engine) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.interval = d
}

func (e *Engine) currentInterval() time.Duration {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.interval
}

func (e *Engine) Latest() core.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.latest
}

// Refresh fetches every source concurrently, joins results in source
// declaration order (not completion order), and merges once. The merge sees
// an identical result list no matter which fetch finishes first.
func (e *Engine) Refresh(ctx context.Context) (core.Snapshot, error) {
	e.mu.RLock()
	sources := make([]fetch.Source, len(e.sources))
	copy(sources, e.sources)
	e.mu.RUnlock()

	results := make([]normalize.SourceResult, len(sources))

	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src fetch.Source) {
			defer wg.Done()

			fetchCtx, cancel := context.WithTimeout(ctx, e.timeout)
			defer cancel()

			result := normalize.SourceResult{Name: src.Name}
			doc, err := e.client.FetchJSON(fetchCtx, src)
			if err != nil {
				result.Err = err
				log.Printf("engine: source %s failed: %v", src.Name, err)
			} else {
				result.Candidates = normalize.Extract(doc)
				profile := fetch.ScanProfile(doc)
				result.Plan = profile.PlanLabel
				result.Email = profile.Email
			}
			results[i] = result
		}(i, src)
	}
	wg.Wait()

	snap, err := normalize.Merge(results, time.Now())
	if err != nil {
		snap = core.NewSnapshot()
		snap.Status = core.StatusNoData
		snap.Message = err.Error()
		if statusErr, ok := authFailure(results); ok {
			snap.Status = core.StatusAuth
			snap.Message = fmt.Sprintf("authentication required (HTTP %d): refresh the session token", statusErr.Code)
		}
	}

	e.mu.Lock()
	e.latest = snap
	fn := e.onUpdate
	e.mu.Unlock()

	if fn != nil {
		fn(snap)
	}
	return snap, err
}

// authFailure finds an auth-classed transport failure among the source
// results. An expired session makes every endpoint fail the same way, so any
// single 401/403 is enough to prompt for a new token instead of reporting a
// generic data gap.
func authFailure(results []normalize.SourceResult) (*fetch.StatusError, bool) {
	for _, r := range results {
		var statusErr *fetch.StatusError
		if errors.As(r.Err, &statusErr) && statusErr.AuthRequired() {
			return statusErr, true
		}
	}
	return nil, false
}

// Run polls until the context is cancelled.
func (e *Engine) Run(ctx context.Context) {
	if _, err := e.Refresh(ctx); err != nil {
		log.Printf("engine: initial refresh: %v", err)
	}

	interval := e.currentInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("engine: context cancelled, stopping poll loop")
			return
		case <-ticker.C:
			if _, err := e.Refresh(ctx); err != nil {
				log.Printf("engine: refresh: %v", err)
			}
			if d := e.currentInterval(); d != interval {
				interval = d
				ticker.Reset(d)
			}
		}
	}
}
