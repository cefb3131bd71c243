package miner

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/screa/eth-vanity/internal/config"
	"github.com/screa/eth-vanity/internal/crypto"
	"github.com/screa/eth-vanity/internal/logger"
	"github.com/screa/eth-vanity/pkg/types"
	"github.com/screa/eth-vanity/pkg/worker"
)

// ErrRoundExhausted is returned by Run when a round ends without a match
// and without being cancelled.
var ErrRoundExhausted = errors.New("search round ended without a match")

// Reporter receives progress and results for display
type Reporter interface {
	Progress(p types.Progress)
	Found(n, target int, rec types.Record)
	Saved(path string)
	SaveFailed(path string, err error)
	Continuing(n, target int)
	NotFound(stats types.RoundStats)
	Interrupted(stats types.RoundStats)
	Summary(totals types.SessionTotals, path string)
}

// Store persists found matches
type Store interface {
	Append(rec types.Record) error
	Path() string
}

// Miner runs search rounds until the configured number of matches is found
type Miner struct {
	config       *config.Config
	logger       *logger.Logger
	reporter     Reporter
	store        Store
	workerConfig *types.WorkerConfig
	statsEvery   time.Duration

	newGenerator func() *crypto.Generator
	verify       func(types.MatchResult) error
}

// NewMiner creates a new miner instance
func NewMiner(cfg *config.Config, log *logger.Logger, reporter Reporter, store Store) *Miner {
	statsEvery := cfg.StatsEvery()
	if statsEvery <= 0 {
		statsEvery = config.DefaultStatsInterval * time.Second
	}

	return &Miner{
		config:       cfg,
		logger:       log,
		reporter:     reporter,
		store:        store,
		workerConfig: cfg.WorkerConfig(),
		statsEvery:   statsEvery,
		newGenerator: crypto.NewGenerator,
		verify:       crypto.Verify,
	}
}

// Run executes rounds until the target count is reached, a round comes back
// empty or ctx is cancelled. The session summary is always reported.
func (m *Miner) Run(ctx context.Context) (types.SessionTotals, error) {
	totals := types.SessionTotals{Start: time.Now()}

	var err error
	for m.config.Unbounded() || totals.Found < m.config.Count {
		if err = ctx.Err(); err != nil {
			break
		}

		result, stats, found := m.RunRound(ctx)
		totals.Attempts += stats.Attempts

		if !found {
			if err = ctx.Err(); err != nil {
				m.reporter.Interrupted(stats)
				break
			}
			m.reporter.NotFound(stats)
			err = ErrRoundExhausted
			break
		}

		if verr := m.verify(result); verr != nil {
			m.logger.Errorf("discarding match for 0x%s: %v", result.Address, verr)
			continue
		}

		totals.Found++
		m.logger.Infof("match %d: 0x%s ('%c' x %d) after %d attempts",
			totals.Found, result.Address, result.Digit, result.RunLength, stats.Attempts)

		rec := types.Record{
			Time:  time.Now().UTC(),
			Match: result,
			Stats: stats,
		}
		m.reporter.Found(totals.Found, m.config.Count, rec)

		if serr := m.store.Append(rec); serr != nil {
			m.logger.Errorf("saving match to %s: %v", m.store.Path(), serr)
			m.reporter.SaveFailed(m.store.Path(), serr)
		} else {
			m.reporter.Saved(m.store.Path())
		}

		if m.config.Unbounded() || totals.Found < m.config.Count {
			m.reporter.Continuing(totals.Found, m.config.Count)
		}
	}

	totals.Elapsed = time.Since(totals.Start)
	m.reporter.Summary(totals, m.store.Path())

	return totals, err
}

// RunRound races the configured number of workers against a fresh search
// state and returns the first match any of them reports. Further matches
// from the same race window are dropped. found is false only when every
// worker stopped without a match, which happens when ctx is cancelled or
// all workers failed.
func (m *Miner) RunRound(ctx context.Context) (result types.MatchResult, stats types.RoundStats, found bool) {
	state := NewSearchState()
	start := time.Now()
	done := make(chan struct{})

	workers := m.workerCount()
	results := make(chan types.MatchResult, workers)

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		w := worker.NewWorker(i, m.workerConfig, state, m.logger).WithGenerator(m.newGenerator())
		g.Go(func() error {
			if res, ok := w.Run(); ok {
				results <- res
			}
			return nil
		})
	}

	ticker := time.NewTicker(m.statsEvery)
	var reporterWg sync.WaitGroup
	reporterWg.Add(1)
	go func() {
		defer reporterWg.Done()
		m.periodicLogger(ticker, done, state, start)
	}()

	go func() {
		select {
		case <-ctx.Done():
			state.Stop()
		case <-done:
		}
	}()

	_ = g.Wait()
	close(results)

	ticker.Stop()
	close(done)
	reporterWg.Wait()

	result, found, dropped := firstResult(results)
	if dropped > 0 {
		m.logger.Debugf("dropped %d extra matches from the same round", dropped)
	}

	stats = types.RoundStats{
		Attempts: state.Attempts(),
		Elapsed:  time.Since(start),
	}
	return result, stats, found
}

// workerCount mirrors the NumCPU fallback of config.Validate for miners
// built from an unvalidated config.
func (m *Miner) workerCount() int {
	if m.config.Workers <= 0 {
		return runtime.NumCPU()
	}
	return m.config.Workers
}

// firstResult takes the winner from a closed results channel and drains the
// rest, returning how many were dropped.
func firstResult(results <-chan types.MatchResult) (types.MatchResult, bool, int) {
	result, found := <-results
	dropped := 0
	for range results {
		dropped++
	}
	return result, found, dropped
}

// periodicLogger reports round progress at regular intervals until the
// round is done or stopped.
func (m *Miner) periodicLogger(ticker *time.Ticker, done <-chan struct{}, state *SearchState, start time.Time) {
	for {
		select {
		case <-ticker.C:
			if state.Stopped() {
				return
			}

			stats := types.RoundStats{
				Attempts: state.Attempts(),
				Elapsed:  time.Since(start),
			}
			m.reporter.Progress(types.Progress{
				Attempts: stats.Attempts,
				Elapsed:  stats.Elapsed,
				Rate:     stats.Rate(),
			})
		case <-done:
			return
		}
	}
}
