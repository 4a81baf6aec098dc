package worker

import (
	"context"
	"fmt"

	"github.com/screa/eth-vanity/internal/crypto"
	"github.com/screa/eth-vanity/pkg/types"
)

// Matcher tests addresses against the configured patterns
type Matcher interface {
	Contains(address string) bool
}

// Worker handles individual keypair generation and matching
type Worker struct {
	id       int
	patterns Matcher
	gen      *crypto.Generator
	result   *Rendezvous
	attempts *Counter
}

// NewWorker creates a new worker instance. Each worker owns its generator.
func NewWorker(id int, patterns Matcher, gen *crypto.Generator, result *Rendezvous, attempts *Counter) *Worker {
	return &Worker{
		id:       id,
		patterns: patterns,
		gen:      gen,
		result:   result,
		attempts: attempts,
	}
}

// Run generates candidates until a match is claimed by any worker or ctx is
// done. Stop conditions are only checked between candidates. A key
// generation failure is returned as is and ends the round.
func (w *Worker) Run(ctx context.Context) error {
	for {
		if w.result.Claimed() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		kp, err := w.gen.Generate()
		if err != nil {
			return fmt.Errorf("worker %d: %w", w.id, err)
		}
		w.attempts.Inc()

		if w.patterns.Contains(kp.Address) {
			w.result.Claim(&types.Result{
				Address:    kp.Address,
				PrivateKey: kp.PrivateKeyHex(),
			})
			return nil
		}
	}
}
