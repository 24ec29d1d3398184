package store

import (
	"context"
	"fmt"

	"github.com/agentx-labs/recordx/internal/record"
	"golang.org/x/sync/errgroup"
)

// transform runs mod over every record concurrently and returns the results
// in input order. With a nil modifier recs is returned unchanged.
func transform(ctx context.Context, scope string, recs []*record.Record, mod record.Modifier) ([]*record.Record, error) {
	if mod == nil || len(recs) == 0 {
		return recs, nil
	}

	out := make([]*record.Record, len(recs))
	g, gctx := errgroup.WithContext(ctx)
	for i, rec := range recs {
		g.Go(func() error {
			res, err := mod(gctx, scope, rec)
			if err != nil {
				return fmt.Errorf("modifying %q: %w", rec.Key(), err)
			}
			if res == nil {
				return fmt.Errorf("modifying %q: %w", rec.Key(), record.ErrNilRecord)
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
