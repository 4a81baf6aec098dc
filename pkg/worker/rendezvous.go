package worker

import (
	"sync"

	"github.com/screa/eth-vanity/pkg/types"
	"go.uber.org/atomic"
)

// Rendezvous is the single-assignment slot in which the workers of one
// round report a match. The first claim wins; later claims are dropped.
type Rendezvous struct {
	mu     sync.Mutex
	result *types.Result
	done   chan struct{}
}

// NewRendezvous creates an empty rendezvous
func NewRendezvous() *Rendezvous {
	return &Rendezvous{done: make(chan struct{})}
}

// Claim stores res if the slot is empty and reports whether it did
func (r *Rendezvous) Claim(res *types.Result) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.result != nil {
		return false
	}
	r.result = res
	close(r.done)
	return true
}

// Claimed reports whether a result has been stored
func (r *Rendezvous) Claimed() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

// Done is closed once a result has been stored
func (r *Rendezvous) Done() <-chan struct{} {
	return r.done
}

// Result returns the stored result, or nil
func (r *Rendezvous) Result() *types.Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.result
}

// Counter counts generated candidates. Sampling resets it.
type Counter struct {
	n     atomic.Uint32
	total atomic.Int64
}

// Inc records one generated candidate
func (c *Counter) Inc() {
	c.n.Inc()
	c.total.Inc()
}

// Load returns the count since the last reset
func (c *Counter) Load() uint32 {
	return c.n.Load()
}

// Reset returns the count since the last reset and sets it to zero
func (c *Counter) Reset() uint32 {
	return c.n.Swap(0)
}

// Total returns the count since creation, unaffected by Reset
func (c *Counter) Total() int64 {
	return c.total.Load()
}
