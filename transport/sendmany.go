package transport

import (
	"context"
	"log/slog"
	"net/netip"
	"sync"

	"github.com/andrewz1/radius"
	"golang.org/x/sync/semaphore"
)

// Job pairs one outbound request with the address it is sent to, for use
// with SendMany.
type Job struct {
	Addr    netip.AddrPort
	Request OutboundRequest
	Secret  []byte
}

// Result is one Job's outcome, matched back to it by index.
type Result struct {
	Response *radius.Packet
	Err      error
}

// SendMany issues every job concurrently, each via Exchange, bounded to at
// most maxConcurrent exchanges in flight at once (spec.md §5: "multiple
// exchanges are expected to be issued from separate tasks or threads").
// Results are returned in the same order as jobs. A cancelled ctx aborts
// exchanges that have not yet acquired a slot; those report ctx.Err().
func SendMany(ctx context.Context, jobs []Job, opts Options, maxConcurrent int64, col *Collector, logger *slog.Logger) []Result {
	results := make([]Result, len(jobs))
	sem := semaphore.NewWeighted(maxConcurrent)
	var wg sync.WaitGroup

	for i, job := range jobs {
		wg.Add(1)
		go func(i int, job Job) {
			defer wg.Done()
			if err := sem.Acquire(ctx, 1); err != nil {
				results[i] = Result{Err: err}
				return
			}
			defer sem.Release(1)

			resp, err := Exchange(ctx, job.Addr, job.Request, job.Secret, opts, col, logger)
			results[i] = Result{Response: resp, Err: err}
		}(i, job)
	}

	wg.Wait()
	return results
}
