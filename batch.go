package ocrgrid

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/supagonava/ocrgrid/model"
)

// Result is the outcome of one extractor in a batch
type Result struct {
	Document *model.Document
	Warnings []Warning
}

// ExtractAll runs Document on every extractor, at most concurrency at a time
// (no limit when concurrency is below 1). Results keep the order of the
// extractors. The first error cancels the extractors that have not started
// and is returned with its index.
//
// Example:
//
//	results, err := ocrgrid.ExtractAll(ctx, []*ocrgrid.Extractor{
//	    ocrgrid.Open("a.hocr"),
//	    ocrgrid.Open("b.json").PageSize(1240, 1754),
//	}, 4)
func ExtractAll(ctx context.Context, extractors []*Extractor, concurrency int) ([]Result, error) {
	results := make([]Result, len(extractors))

	g, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}

	for i, e := range extractors {
		i, e := i, e
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, warnings, err := e.Document()
			if err != nil {
				return fmt.Errorf("extractor %d: %w", i, err)
			}
			results[i] = Result{Document: doc, Warnings: warnings}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
