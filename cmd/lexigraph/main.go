// Command lexigraph drives the anagram-hashed fuzzy matching core via four
// subcommands: query (exact-input correction), search (running text),
// index (dump the primary anagram index), and learn (emit a weighted
// variant list mined from a lexicon's own near-neighbor structure).
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	sub := os.Args[1]
	args := os.Args[2:]

	var err error
	switch sub {
	case "query":
		err = runQuery(args)
	case "search":
		err = runSearch(args)
	case "index":
		err = runIndex(args)
	case "learn":
		err = runLearn(args)
	case "help", "-h", "--help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", sub)
		usage()
		os.Exit(1)
	}

	if err != nil {
		cliLogger.Error("command failed", zap.String("command", sub), zap.Error(err))
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `lexigraph commands:
  query   <input>... Correct one or more exact inputs against the loaded vocabulary.
  search  <file>     Find and rank matches for every word in running text.
  index              Dump the primary anagram index (buckets with >1 entry).
  learn               Emit a weighted variant list mined from near-neighbors.

Every subcommand accepts -alphabet, -lexicon (repeatable glob), -variant,
-confusable, -lm, and -format=text|json|table (table renders a width-aware
aligned table instead of raw TSV; learn accepts only text|table). query additionally accepts
-single-thread and -workers to control the parallel batch executor.
Run "lexigraph <command> -h" for subcommand-specific flags.
`)
}
