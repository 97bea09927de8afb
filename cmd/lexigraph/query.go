package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fulmenhq/lexigraph/batch"
	"github.com/fulmenhq/lexigraph/logging"
	"github.com/fulmenhq/lexigraph/query"
	"github.com/fulmenhq/lexigraph/querycache"
	"go.uber.org/zap"
)

func runQuery(args []string) error {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	mf := registerModelFlags(fs)
	pf := registerParamFlags(fs)
	format := fs.String("format", "text", "output format (text|json|table)")
	singleThread := fs.Bool("single-thread", false, "run on the calling thread and consult the per-query cache, instead of the parallel batch executor")
	workers := fs.Int("workers", batch.DefaultWorkers, "worker pool size for the parallel batch executor")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("query: provide one or more input strings")
	}
	inputs := fs.Args()

	ctx, _ := logging.NewRunContext(context.Background())
	log := cliLogger.WithContext(ctx)

	result, err := mf.build(ctx)
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}

	params := pf.parameters(result.ConfusablePatterns)

	log.Info("batch query started", zap.Int("inputs", len(inputs)), zap.Bool("single_thread", *singleThread))

	guard := newInterruptGuard()
	defer guard.stop()

	opts := batch.Options{Workers: *workers, SingleThread: *singleThread}
	if *singleThread {
		opts.Cache = querycache.New[[]query.Match]()
	}
	matchesByInput := batch.Run(inputs, result.Alphabet, result.Index, result.Vocabulary, params, opts)

	log.Info("batch query finished")

	if *format == "table" {
		return writeQueryTable(os.Stdout, inputs, matchesByInput)
	}

	for i, input := range inputs {
		if guard.stopRequested() {
			break
		}
		if err := writeQueryResult(os.Stdout, input, matchesByInput[i], *format); err != nil {
			return err
		}
	}
	return nil
}
