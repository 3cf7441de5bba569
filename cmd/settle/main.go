// Command settle computes who pays whom to settle a group's shared expenses.
//
//	settle -n 5 alice=30 bob=12.50 carol=0
//
// Everyone listed with name=amount is a participant; the remaining people up
// to -n spent nothing and share the bill as one anonymous group.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mmynk/splitsettle/internal/config"
	"github.com/mmynk/splitsettle/internal/input"
	"github.com/mmynk/splitsettle/internal/metrics"
	"github.com/mmynk/splitsettle/internal/models"
	"github.com/mmynk/splitsettle/internal/service"
	"github.com/mmynk/splitsettle/internal/settlement"
	"github.com/mmynk/splitsettle/pkg/logging"
)

const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	fs := flag.NewFlagSet("settle", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: settle -n HEADCOUNT [flags] name=amount...")
		fs.PrintDefaults()
	}
	headcount := fs.Int64("n", 0, "total number of people sharing the bill (default: number of pairs)")
	dotPath := fs.String("dot", "", "write the settlement graph in Graphviz DOT format to `file` (- for stdout)")
	showNaive := fs.Bool("naive", false, "also print the unoptimized transfers")
	strict := fs.Bool("strict", cfg.Strict, "panic instead of falling back when the optimized settlement fails validation")
	metricsFile := fs.String("metrics", cfg.MetricsFile, "write Prometheus metrics in textfile format to `file`")
	optimizerName := fs.String("optimizer", cfg.Optimizer, "graph optimizer: greedy or pairwise")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	logger := logging.Setup(stderr, cfg.LogLevel)

	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}

	optimizer, err := settlement.LookupOptimizer(*optimizerName)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	participants, err := input.ParsePairs(fs.Args())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	recorder := metrics.New()
	svc := service.NewSettleService(
		service.WithStrict(*strict),
		service.WithMetrics(recorder),
		service.WithOptimizer(optimizer),
		service.WithLogger(logger),
	)

	res, err := svc.Settle(ctx, service.Request{Participants: participants, Headcount: *headcount})
	if *metricsFile != "" {
		if werr := recorder.WriteTextfile(*metricsFile); werr != nil {
			slog.Error("Failed to write metrics", "path", *metricsFile, "error", werr)
		}
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if errors.Is(err, models.ErrInvalidInput) {
			return exitUsage
		}
		return exitFailed
	}

	if err := writeReport(stdout, res, *showNaive); err != nil {
		slog.Error("Failed to write report", "error", err)
		return exitFailed
	}

	if *dotPath != "" {
		if err := writeDOT(*dotPath, stdout, res); err != nil {
			slog.Error("Failed to write DOT graph", "path", *dotPath, "error", err)
			return exitFailed
		}
	}

	return exitOK
}
