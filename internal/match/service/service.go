package service

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"match-service/internal/match/model"
)

type Options struct {
	Workers int // <= 0 means GOMAXPROCS
}

// Run is the batch driver: every product is compared with every listing and
// gets exactly one Result, in input order. Products are spread over a bounded
// worker pool; each worker writes only its own result slot and listings are
// never mutated, so nothing is locked.
//
// Products must already carry a non-empty model; the loaders drop the rest.
// Run stops early only when ctx ends, returning ctx.Err().
func Run(ctx context.Context, products []model.Product, listings []model.Listing, sc Scorer, opt Options) ([]model.Result, error) {
	workers := opt.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]model.Result, len(products))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range products {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = matchProduct(products[i], listings, sc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// the group context is always done after Wait; only the caller's counts
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func matchProduct(p model.Product, listings []model.Listing, sc Scorer) model.Result {
	shape := classify(p.Model)
	found := make([]model.Listing, 0)
	for _, l := range listings {
		if sc.score(p, shape, l).Match {
			found = append(found, l)
		}
	}
	return model.Result{ProductName: p.ProductName, Listings: found}
}
