package worker

import (
	"context"
	"io"

	"github.com/screa/eth-vanity/internal/crypto"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
)

// Pool runs a fixed number of workers for one round
type Pool struct {
	size     int
	patterns Matcher
	entropy  func() io.Reader
	result   *Rendezvous
	attempts *Counter
	active   atomic.Int32
}

// NewPool creates a pool of size workers sharing result and attempts. Each
// worker gets its own entropy source from entropy; a nil entropy uses
// crypto/rand for every worker.
func NewPool(size int, patterns Matcher, entropy func() io.Reader, result *Rendezvous, attempts *Counter) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{
		size:     size,
		patterns: patterns,
		entropy:  entropy,
		result:   result,
		attempts: attempts,
	}
}

// Run starts the workers and blocks until all of them have exited. The
// first worker error cancels the others and is returned.
func (p *Pool) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	p.active.Store(int32(p.size))
	for i := 0; i < p.size; i++ {
		var source io.Reader
		if p.entropy != nil {
			source = p.entropy()
		}
		w := NewWorker(i, p.patterns, crypto.NewGenerator(source), p.result, p.attempts)
		g.Go(func() error {
			defer p.active.Dec()
			return w.Run(ctx)
		})
	}

	return g.Wait()
}

// Active returns the number of workers still running
func (p *Pool) Active() int32 {
	return p.active.Load()
}

// Size returns the number of workers the pool starts
func (p *Pool) Size() int {
	return p.size
}
