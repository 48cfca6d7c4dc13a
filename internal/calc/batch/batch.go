// Package batch designs many beams at once.
package batch

import (
	"context"

	"github.com/ansel1/merry"
	"golang.org/x/sync/errgroup"

	"openstruct/internal/calc/calcerr"
	"openstruct/internal/calc/shear"
)

// MaxItems bounds a single batch request.
const MaxItems = 1000

type ShearBatchInput struct {
	Items []shear.Input `json:"items"`
}

type ShearBatchResult struct {
	Results []shear.Result `json:"results"`
}

// CalculateShear designs every beam using at most workers goroutines.
// Results keep the input order. When several beams fail the error of the
// lowest index is returned, so the outcome does not depend on scheduling.
func CalculateShear(ctx context.Context, in ShearBatchInput, workers int) (ShearBatchResult, error) {
	if len(in.Items) == 0 {
		return ShearBatchResult{}, calcerr.Invalid("items", "no items")
	}
	if len(in.Items) > MaxItems {
		return ShearBatchResult{}, calcerr.Invalid("items", "too many items: %d > %d", len(in.Items), MaxItems)
	}
	if workers < 1 {
		workers = 1
	}

	results := make([]shear.Result, len(in.Items))
	errs := make([]error, len(in.Items))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range in.Items {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i], errs[i] = shear.Calculate(in.Items[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ShearBatchResult{}, err
	}

	for i, err := range errs {
		if err != nil {
			return ShearBatchResult{}, merry.Prependf(err, "item %d (%s)", i, in.Items[i].Name)
		}
	}
	return ShearBatchResult{Results: results}, nil
}
