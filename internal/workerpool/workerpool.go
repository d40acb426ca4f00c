// Package workerpool runs the per-file hash/parse work of an analyzer pass
// across a bounded number of goroutines.
//
// Grounded on the goroutine+sync.WaitGroup+buffered-error-channel shape
// cmd/dep/status.go uses to fan out per-project network calls; LazyUT fans
// out per-file hashing/parsing instead. github.com/sdboyer/constext merges
// the caller's context with the pool's own abort signal, the same pattern
// golang-dep's gps solver uses to let an external cancellation and an
// internal one compose without one silently overriding the other.
package workerpool

import (
	"context"
	"sync"

	"github.com/AstyCo/lazyut/internal/filetree"
	"github.com/sdboyer/constext"
)

// Job is one unit of per-file work: hash, parse, or both, applied to n.
type Job func(ctx context.Context, n *filetree.Node) error

// Run executes fn for every node in nodes using up to width concurrent
// goroutines (width <= 0 is treated as 1), merging ctx with an internal
// cancellation that fires on the first error so stragglers stop promptly.
// It returns every error encountered, in completion order (not input
// order) — callers that need per-file attribution should close over n
// inside fn to annotate the returned error themselves.
func Run(ctx context.Context, nodes []*filetree.Node, width int, fn Job) []error {
	if width <= 0 {
		width = 1
	}
	if len(nodes) == 0 {
		return nil
	}

	internalCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	mergedCtx, cancelMerged := constext.Cons(ctx, internalCtx)
	defer cancelMerged()

	jobs := make(chan *filetree.Node)
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		errs   []error
		failed bool
	)

	for i := 0; i < width; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := range jobs {
				if err := fn(mergedCtx, n); err != nil {
					mu.Lock()
					errs = append(errs, err)
					if !failed {
						failed = true
						cancel()
					}
					mu.Unlock()
				}
			}
		}()
	}

feed:
	for _, n := range nodes {
		select {
		case jobs <- n:
		case <-mergedCtx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	return errs
}
