package miner

import (
	"context"
	"time"

	"github.com/lightningnetwork/lnd/ticker"
	"github.com/screa/eth-vanity/pkg/worker"
)

// SampleInterval is how often the throughput meter samples the counter
const SampleInterval = time.Second

// Meter periodically reads and resets the attempt counter of a round
type Meter struct {
	ticker   ticker.Ticker
	attempts *worker.Counter
	result   *worker.Rendezvous
	emit     func(uint32)
}

// NewMeter creates a meter sampling attempts on every tick of t until
// result is claimed
func NewMeter(t ticker.Ticker, attempts *worker.Counter, result *worker.Rendezvous, emit func(uint32)) *Meter {
	return &Meter{
		ticker:   t,
		attempts: attempts,
		result:   result,
		emit:     emit,
	}
}

// Run samples until the round ends or ctx is done
func (m *Meter) Run(ctx context.Context) {
	m.ticker.Resume()
	defer m.ticker.Stop()

	for {
		select {
		case <-m.ticker.Ticks():
			if m.result.Claimed() {
				return
			}
			m.emit(m.attempts.Reset())
		case <-m.result.Done():
			return
		case <-ctx.Done():
			return
		}
	}
}
