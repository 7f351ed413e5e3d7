package main

import (
	"context"
	"fmt"

	"cost-planner/internal/location"
	"cost-planner/internal/planner"

	"github.com/pkg/errors"
)

func runRoute(ctx context.Context, flags commonFlags, from, to string, nudge int) error {
	source, err := location.DecodeOne(from)
	if err != nil {
		return errors.Wrap(err, "invalid --from")
	}
	destination, err := location.DecodeOne(to)
	if err != nil {
		return errors.Wrap(err, "invalid --to")
	}

	env, err := flags.setup()
	if err != nil {
		return err
	}
	defer env.close()

	engine := env.engine
	if nudge >= 0 {
		engine = engine.With(planner.WithNudgeRounds(nudge))
	}
	if env.cfg.Search.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, env.cfg.Search.Timeout)
		defer cancel()
	}

	result, err := engine.Search(ctx, source, destination)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
		return err
	}

	fmt.Println(result.Path.String())
	fmt.Printf("cost:        %g\n", result.Cost)
	fmt.Printf("found:       %t\n", result.Found)
	fmt.Printf("degraded:    %d\n", result.Degraded)
	fmt.Printf("evaluations: %d / %d\n", result.Evaluations, result.Budget)
	fmt.Printf("candidates:  %d\n", result.Candidates)
	fmt.Printf("stopped:     %s\n", result.Stopped)
	fmt.Printf("elapsed:     %v\n", result.Elapsed)

	return nil
}

func runMove(ctx context.Context, flags commonFlags, from, dir string) error {
	point, err := location.DecodeOne(from)
	if err != nil {
		return errors.Wrap(err, "invalid --from")
	}

	env, err := flags.setup()
	if err != nil {
		return err
	}
	defer env.close()

	moved, err := env.engine.MoveOneUnit(ctx, point, dir)
	if err != nil {
		return err
	}

	fmt.Println(moved.String())
	return nil
}

func runCost(ctx context.Context, flags commonFlags, serialized string) error {
	path, err := location.DecodePath(serialized)
	if err != nil {
		return errors.Wrap(err, "invalid --path")
	}

	env, err := flags.setup()
	if err != nil {
		return err
	}
	defer env.close()

	cost, err := env.engine.PathCost(ctx, path)
	if err != nil {
		return err
	}

	fmt.Printf("cost:     %g\n", cost.Value)
	fmt.Printf("found:    %t\n", cost.Value < env.engine.NotFoundCost())
	fmt.Printf("degraded: %d\n", cost.Degraded)

	return nil
}

func runCache(ctx context.Context, flags commonFlags, reset bool) error {
	env, err := flags.setup()
	if err != nil {
		return err
	}
	defer env.close()

	if env.cache == nil {
		return errors.New("no cache configured; pass --cache or enable it in the config file")
	}

	if reset {
		if err := env.cache.Clear(ctx); err != nil {
			return err
		}
		fmt.Println("cache cleared")
		return nil
	}

	n, err := env.cache.Len(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("cached answers: %d\n", n)

	return nil
}
