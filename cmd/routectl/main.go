package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
)

// Supported subcommands:
// - route: search the cheapest path between two locations
// - move:  move a location one unit in a named direction
// - cost:  price a serialized path
// - cache: inspect or clear the persistent cost cache

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runSubcommand(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runSubcommand(ctx context.Context, name string, args []string) error {
	switch name {
	case "route":
		return handleRoute(ctx, args)
	case "move":
		return handleMove(ctx, args)
	case "cost":
		return handleCost(ctx, args)
	case "cache":
		return handleCache(ctx, args)
	default:
		printUsage()

		return errors.Errorf("unknown subcommand %q", name)
	}
}

func handleRoute(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("route", flag.ExitOnError)
	common := registerCommonFlags(cmd)
	from := cmd.String("from", "", "Source location, e.g. 0,0:")
	to := cmd.String("to", "", "Destination location, e.g. 10,0:")
	nudge := cmd.Int("nudge", -1, "Nudge rounds; negative keeps the configured value")

	if err := cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse route flags")
	}
	if *from == "" || *to == "" {
		return errors.New("--from and --to are required for route command")
	}

	return runRoute(ctx, common, *from, *to, *nudge)
}

func handleMove(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("move", flag.ExitOnError)
	common := registerCommonFlags(cmd)
	from := cmd.String("from", "", "Location to move, e.g. 2,2@1:")
	dir := cmd.String("dir", "", "Direction name, e.g. left")

	if err := cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse move flags")
	}
	if *from == "" || *dir == "" {
		return errors.New("--from and --dir are required for move command")
	}

	return runMove(ctx, common, *from, *dir)
}

func handleCost(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("cost", flag.ExitOnError)
	common := registerCommonFlags(cmd)
	path := cmd.String("path", "", "Serialized path, e.g. 0,0:5,1:10,0:")

	if err := cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse cost flags")
	}
	if *path == "" {
		return errors.New("--path is required for cost command")
	}

	return runCost(ctx, common, *path)
}

func handleCache(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("cache", flag.ExitOnError)
	common := registerCommonFlags(cmd)
	reset := cmd.Bool("clear", false, "Delete every cached answer")

	if err := cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse cache flags")
	}

	return runCache(ctx, common, *reset)
}

func printUsage() {
	fmt.Println("Usage: routectl <command> [options]")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  route    Find the cheapest path between two locations")
	fmt.Println("  move     Move a location one unit in a named direction")
	fmt.Println("  cost     Price a serialized path")
	fmt.Println("  cache    Inspect or clear the cost cache")
	fmt.Println("")
	fmt.Println("Use 'routectl <command> -h' for more information about a command.")
}
