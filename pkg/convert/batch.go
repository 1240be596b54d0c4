package convert

import (
	"context"

	"github.com/hashicorp/go-multierror"
	"github.com/jingkaihe/chimera/pkg/logger"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Result collects every operation of a batch and every error. A failed
// document never aborts the rest of the batch.
type Result struct {
	Operations []Operation
	Errors     []error
}

// Err returns the batch errors combined, or nil
func (r *Result) Err() error {
	var merr *multierror.Error
	for _, err := range r.Errors {
		merr = multierror.Append(merr, err)
	}
	return merr.ErrorOrNil()
}

// Failed reports whether any document failed
func (r *Result) Failed() bool {
	return len(r.Errors) > 0
}

// Count returns the number of operations with the given action
func (r *Result) Count(action Action) int {
	n := 0
	for _, op := range r.Operations {
		if op.Action == action {
			n++
		}
	}
	return n
}

// Batch converts every request. Requests run concurrently when
// opts.Parallelism is above one and no two requests share a destination,
// otherwise in order. Operations are reported in request order.
func (c *Converter) Batch(ctx context.Context, reqs []Request, opts Options) *Result {
	ops := make([]Operation, len(reqs))
	errs := make([]error, len(reqs))

	run := func(ctx context.Context, i int) {
		if err := ctx.Err(); err != nil {
			ops[i] = Operation{Request: reqs[i], Action: ActionFailed, DryRun: opts.DryRun}
			errs[i] = errors.Wrapf(err, "%s not converted", reqs[i].SourcePath)
			return
		}
		op, err := c.Convert(ctx, reqs[i], opts)
		if err != nil {
			logger.G(ctx).WithError(err).WithField("path", reqs[i].SourcePath).Warn("conversion failed")
		}
		ops[i], errs[i] = op, err
	}

	if opts.Parallelism > 1 && distinctDestinations(reqs) {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(opts.Parallelism)
		for i := range reqs {
			g.Go(func() error {
				run(gctx, i)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		if opts.Parallelism > 1 {
			logger.G(ctx).Debug("requests share a destination, converting sequentially")
		}
		for i := range reqs {
			run(ctx, i)
		}
	}

	result := &Result{Operations: ops}
	for _, err := range errs {
		if err != nil {
			result.Errors = append(result.Errors, err)
		}
	}
	return result
}

func distinctDestinations(reqs []Request) bool {
	seen := make(map[string]bool, len(reqs))
	for _, req := range reqs {
		if seen[req.DestPath] {
			return false
		}
		seen[req.DestPath] = true
	}
	return true
}
