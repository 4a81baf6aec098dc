package miner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/lightningnetwork/lnd/ticker"
	"github.com/screa/eth-vanity/internal/config"
	"github.com/screa/eth-vanity/internal/logger"
	"github.com/screa/eth-vanity/internal/metrics"
	"github.com/screa/eth-vanity/pkg/pattern"
	"github.com/screa/eth-vanity/pkg/types"
	"github.com/screa/eth-vanity/pkg/worker"
)

// ErrNoPatterns is returned when no pattern survived parsing
var ErrNoPatterns = errors.New("please, provide at least one valid pattern")

// Miner coordinates search rounds
type Miner struct {
	config   *config.Config
	logger   *logger.Logger
	observer types.Observer
	patterns *pattern.Set

	// overridable in tests
	newTicker func() ticker.Ticker
	entropy   func() io.Reader

	round     int
	completed int
}

// NewMiner parses the configured patterns and reports the skipped ones to
// observer. It fails with ErrNoPatterns if none are usable.
func NewMiner(cfg *config.Config, log *logger.Logger, observer types.Observer) (*Miner, error) {
	kind := pattern.KindPrefix
	if cfg.Regexp {
		kind = pattern.KindRegex
	}

	set, skipped := pattern.NewSet(kind, cfg.Patterns)
	for _, s := range skipped {
		log.Debugf("Skipping pattern %q: %v", s.Raw, s.Err)
		observer.PatternSkipped(s)
	}
	if set.Len() == 0 {
		return nil, ErrNoPatterns
	}

	return &Miner{
		config:   cfg,
		logger:   log,
		observer: observer,
		patterns: set,
		newTicker: func() ticker.Ticker {
			return ticker.New(SampleInterval)
		},
	}, nil
}

// Patterns returns the compiled pattern set
func (m *Miner) Patterns() *pattern.Set {
	return m.patterns
}

// Completed returns the number of rounds that found a match
func (m *Miner) Completed() int {
	return m.completed
}

// Run mines one round, or rounds until ctx is done in stream mode. Each
// result is passed to the observer.
func (m *Miner) Run(ctx context.Context) error {
	for {
		result, err := m.Mine(ctx)
		if err != nil {
			return err
		}
		m.observer.Found(result)

		if !m.config.Stream {
			return nil
		}
	}
}

// Mine runs a single round with a fresh rendezvous, counter and pool and
// returns the match it found
func (m *Miner) Mine(ctx context.Context) (*types.Result, error) {
	m.round++
	start := time.Now()

	result := worker.NewRendezvous()
	attempts := &worker.Counter{}
	pool := worker.NewPool(m.config.Workers, m.patterns, m.entropy, result, attempts)

	m.logger.Printf("Round %d: searching %s with %d workers", m.round, m.patterns.Kind(), pool.Size())
	metrics.RoundStarted(pool.Size())

	meterCtx, stopMeter := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		NewMeter(m.newTicker(), attempts, result, func(n uint32) {
			metrics.Sampled(n)
			m.observer.Throughput(n)
		}).Run(meterCtx)
	}()

	err := pool.Run(ctx)
	stopMeter()
	wg.Wait()

	duration := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("round %d: %w", m.round, err)
	}

	res := result.Result()
	if res == nil {
		// all workers exited without a claim, which only happens on cancel
		return nil, fmt.Errorf("round %d: %w", m.round, context.Canceled)
	}

	m.completed++
	metrics.RoundCompleted(duration, attempts.Load())
	m.logger.Debugf("Round %d: %d candidates left unsampled", m.round, attempts.Load())

	found := *res
	found.Round = m.round
	found.Attempts = attempts.Total()
	found.Duration = duration

	m.logger.Printf("Round %d: found 0x%s after %d attempts in %v (%.2f addresses/sec)",
		m.round, found.Address, found.Attempts, found.Duration, found.Rate())

	return &found, nil
}
