package engine

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/piwi3910/blastplan/internal/model"
)

// DefaultWorkers is the batch concurrency used when none is given.
const DefaultWorkers = 4

// BatchResult is the outcome of one design in a batch.
type BatchResult struct {
	Index  int
	Result Result
	Err    error
}

// DesignBatch designs independent rounds concurrently with at most workers
// in flight. Results are returned in input order; a failing design sets its
// own Err and does not stop the others. Only context cancellation aborts
// the batch.
func DesignBatch(ctx context.Context, inputs []model.BlastDesignInputs, workers int) ([]BatchResult, error) {
	if workers < 1 {
		workers = DefaultWorkers
	}

	results := make([]BatchResult, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, in := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := Design(in)
			results[i] = BatchResult{Index: i, Result: res, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
