package contribution

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Source reads the two inputs of the report. Both calls must honor ctx.
type Source interface {
	// Units returns every unit ordered by name.
	Units(ctx context.Context) ([]Unit, error)
	// Registrations returns the unit id, tree count and email of every registration.
	Registrations(ctx context.Context) ([]Registration, error)
}

// State is the lifecycle of one report load.
type State string

const (
	StateLoading State = "loading"
	StateLoaded  State = "loaded"
	StateFailed  State = "failed"
)

// Result is the outcome of Load. Stats is empty unless State is StateLoaded;
// a failed load never carries a partial aggregate.
type Result struct {
	State         State
	Units         []Unit
	Registrations []Registration
	Stats         []Stats
	Err           error
}

// Canceled reports whether the load was abandoned because ctx ended.
func (r Result) Canceled() bool {
	return errors.Is(r.Err, context.Canceled) || errors.Is(r.Err, context.DeadlineExceeded)
}

// Load fetches units and registrations concurrently, waits for both and
// aggregates them with policy. If either read fails the other is canceled.
func Load(ctx context.Context, src Source, policy Policy) Result {
	var (
		units []Unit
		regs  []Registration
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := src.Units(gctx)
		if err != nil {
			return fmt.Errorf("load units: %w", err)
		}
		units = u
		return nil
	})
	g.Go(func() error {
		r, err := src.Registrations(gctx)
		if err != nil {
			return fmt.Errorf("load registrations: %w", err)
		}
		regs = r
		return nil
	})

	if err := g.Wait(); err != nil {
		return Result{State: StateFailed, Err: err}
	}
	// Both reads may have succeeded just as the caller went away.
	if err := ctx.Err(); err != nil {
		return Result{State: StateFailed, Err: err}
	}

	return Result{
		State:         StateLoaded,
		Units:         units,
		Registrations: regs,
		Stats:         Aggregate(units, regs, policy),
	}
}
