package checkout

import (
	"context"
	"sync"

	"github.com/example/merchstore/internal/orders"
)

// Outcome is the best-effort result of an order's remote fan-out.
type Outcome string

const (
	// CommittedLocally means the order is in the local log and remote
	// delivery is still running or was never configured.
	CommittedLocally Outcome = "committed_locally"
	// RemoteConfirmed means every configured sink accepted the order.
	RemoteConfirmed Outcome = "remote_confirmed"
	// RemoteFailed means at least one sink failed. The order is still placed.
	RemoteFailed Outcome = "remote_failed"
)

// SinkResult records what a single sink did with the order.
type SinkResult struct {
	Sink  string `json:"sink"`
	Error string `json:"error,omitempty"`
}

// Receipt is returned once the order is committed locally. The fan-out keeps
// running after it is handed back.
type Receipt struct {
	Order orders.Record

	mu      sync.Mutex
	outcome Outcome
	results []SinkResult
	done    chan struct{}
}

func newReceipt(rec orders.Record) *Receipt {
	return &Receipt{
		Order:   rec,
		outcome: CommittedLocally,
		done:    make(chan struct{}),
	}
}

// Outcome returns the current outcome without blocking.
func (r *Receipt) Outcome() Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.outcome
}

// Results returns a copy of the per-sink results recorded so far.
func (r *Receipt) Results() []SinkResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]SinkResult, len(r.results))
	copy(out, r.results)
	return out
}

// Done is closed when the fan-out has finished.
func (r *Receipt) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the fan-out finishes or ctx is done and returns the
// outcome known at that point.
func (r *Receipt) Wait(ctx context.Context) Outcome {
	select {
	case <-r.done:
	case <-ctx.Done():
	}
	return r.Outcome()
}

func (r *Receipt) record(result SinkResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, result)
}

func (r *Receipt) finish(sinks int) {
	r.mu.Lock()
	if sinks > 0 {
		r.outcome = RemoteConfirmed
		for _, res := range r.results {
			if res.Error != "" {
				r.outcome = RemoteFailed
				break
			}
		}
	}
	r.mu.Unlock()
	close(r.done)
}
