package main

import (
	"context"
	"flag"
	"fmt"
	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"ringkit/auth"
	"ringkit/history"
	"ringkit/monitor"
	"ringkit/workload"
	"syscall"
)

var configPath = flag.String("config", "", "the workload YAML file to run")
var only = flag.String("workload", "", "run only the workload of this name")
var parallel = flag.Int("parallel", 1, "how many workloads run at the same time")
var rounds = flag.Int("rounds", 1, "how many times the workloads run, send SIGHUP to reload the config between rounds")
var tail = flag.Int("tail", 0, "keep the last N lines of stdin and print them at EOF, instead of running workloads")
var verbose = flag.Bool("verbose", false, "log at debug level")

var newUsername = flag.String("newUsername", "", "the new username to generate shadow line to append")
var newPassword = flag.String("newPassword", "", "the new password to generate shadow line to append")

func main() {
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if *newUsername != "" && *newPassword != "" {
		line, err := auth.Register(*newUsername, *newPassword)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(line)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *tail > 0 {
		if err := runTail(ctx, *tail); err != nil {
			log.Fatal(err)
		}
		return
	}

	if *configPath == "" {
		flag.Usage()
		os.Exit(2)
	}
	if err := runWorkloads(ctx, *configPath, *only, *parallel, *rounds); err != nil {
		log.Fatal(err)
	}
}

func runTail(ctx context.Context, limit int) error {
	r := history.New(limit)
	if err := r.Run(ctx, history.Lines(ctx, os.Stdin, "")); err != nil {
		slog.Warn("tail interrupted", "err", err)
	}
	lines, err := r.Query(context.Background())
	if err != nil {
		return err
	}
	for _, line := range lines {
		fmt.Println(line)
	}
	return nil
}

// reloadOnSignal reloads repo when a SIGHUP is pending on hup, and returns nil when none is.
// A failed reload leaves the previous workloads in place.
func reloadOnSignal(repo *workload.Repository, hup <-chan os.Signal) (*workload.ReloadResult, error) {
	select {
	case <-hup:
	default:
		return nil, nil
	}
	result, err := repo.Reload()
	if err != nil {
		return nil, err
	}
	slog.Info("workloads reloaded",
		"before", result.Before.ItemCount,
		"after", result.After.ItemCount,
		"size", humanize.IBytes(uint64(result.After.Size)),
		"modified", humanize.Time(result.After.ModifiedTime),
	)
	return result, nil
}

func selectWorkloads(repo *workload.Repository, name string) ([]workload.Workload, error) {
	if name == "" {
		return repo.FindAll(), nil
	}
	w, ok := repo.Find(name)
	if !ok {
		return nil, fmt.Errorf("no workload %s", name)
	}
	return []workload.Workload{w}, nil
}

// runWorkloads runs the selected workloads rounds times. Sending SIGHUP picks up edits to the
// config file before the next round.
func runWorkloads(ctx context.Context, path, name string, limit, rounds int) error {
	repo, err := workload.NewRepository(path)
	if err != nil {
		return err
	}
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for round := 1; round <= max(rounds, 1); round++ {
		if round > 1 {
			if _, err := reloadOnSignal(repo, hup); err != nil {
				slog.Warn("workloads reload", "err", err)
			}
		}
		workloads, err := selectWorkloads(repo, name)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		slog.Debug("round start", "round", round, "workloads", len(workloads))
		if err := runRound(ctx, workloads, limit); err != nil {
			return err
		}
	}
	return nil
}

func runRound(ctx context.Context, workloads []workload.Workload, limit int) error {
	before, err := monitor.Self()
	if err != nil {
		slog.Warn("memory sample", "err", err)
	}

	results := make([]workload.Result, len(workloads))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(limit, 1))
	for i, w := range workloads {
		i, w := i, w
		g.Go(func() error {
			slog.Debug("workload start", "name", w.Name, "operations", w.Operations, "seed", w.Seed)
			result, err := workload.Run(ctx, w)
			if err != nil {
				return err
			}
			slog.Info("workload done", "name", w.Name, "elapsed", result.Elapsed, "len", result.Len, "cap", result.Cap)
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, result := range results {
		fmt.Println(result)
	}

	if after, err := monitor.Self(); err == nil && before.PID != 0 {
		fmt.Println("memory", monitor.Growth(before, after), "now", after)
	}
	return nil
}
