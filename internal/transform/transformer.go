// Package transform converts raw resource records into the public shapes
// returned by the API.
//
// Every resource has its own Transformer with an explicit allow-list of
// output fields. Collections are transformed by applying the same per-item
// rule to each record, in order.
package transform

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Transformer converts one Record into its public Shape.
//
// Implementations must be free of side effects so that the records of a
// collection can be transformed concurrently.
type Transformer interface {
	Transform(rec Record) (Shape, error)
}

// Func adapts an ordinary function to the Transformer interface.
type Func func(rec Record) (Shape, error)

// Transform calls f(rec).
func (f Func) Transform(rec Record) (Shape, error) { return f(rec) }

// Collection applies t to every record in order. The result has the same
// length as records; an empty input yields an empty, non-nil slice.
// The first failing record aborts the whole collection.
func Collection(t Transformer, records []Record) ([]Shape, error) {
	out := make([]Shape, len(records))
	for i, rec := range records {
		shape, err := t.Transform(rec)
		if err != nil {
			return nil, fmt.Errorf("transform record %d: %w", i, err)
		}
		out[i] = shape
	}
	return out, nil
}

// ParallelCollection is Collection with up to workers records transformed at
// the same time. Each goroutine writes only its own slot of the result, so
// the output order always matches the input order.
func ParallelCollection(ctx context.Context, t Transformer, records []Record, workers int) ([]Shape, error) {
	if workers <= 1 || len(records) <= 1 {
		return Collection(t, records)
	}

	out := make([]Shape, len(records))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range records {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			shape, err := t.Transform(records[i])
			if err != nil {
				return fmt.Errorf("transform record %d: %w", i, err)
			}
			out[i] = shape
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
