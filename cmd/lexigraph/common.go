package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fulmenhq/lexigraph/confusable"
	"github.com/fulmenhq/lexigraph/loader"
	"github.com/fulmenhq/lexigraph/logging"
	"github.com/fulmenhq/lexigraph/pkg/signals"
	"github.com/fulmenhq/lexigraph/query"
	"github.com/fulmenhq/lexigraph/searchconfig"
	"github.com/fulmenhq/lexigraph/similarity"
	"github.com/fulmenhq/lexigraph/vocabulary"
	"go.uber.org/zap"
)

// cliLogger is the subcommands' shared structured logger, stderr-only so it
// never interleaves with the TSV/JSON result stream on stdout.
var cliLogger = func() *logging.Logger {
	l, err := logging.NewCLI("lexigraph")
	if err != nil {
		// NewCLI only fails on an invalid static LoggerConfig, which the
		// hardcoded CLI config never produces; a nil logger would panic on
		// first use, so this is genuinely unreachable rather than a path
		// worth handling gracefully.
		panic(err)
	}
	return l
}()

// globList collects a repeatable -lexicon/-variant/-confusable flag into a
// slice, in the manner of the teacher's own repeatable-flag helpers.
type globList []string

func (g *globList) String() string { return strings.Join(*g, ",") }
func (g *globList) Set(v string) error {
	*g = append(*g, v)
	return nil
}

// modelFlags are the data-loading flags shared by every subcommand.
type modelFlags struct {
	alphabet    string
	lexicons    globList
	variants    globList
	confusables globList
	lm          string
	freqSum     bool
}

func registerModelFlags(fs *flag.FlagSet) *modelFlags {
	mf := &modelFlags{}
	fs.StringVar(&mf.alphabet, "alphabet", "", "path to the alphabet TSV file (required)")
	fs.Var(&mf.lexicons, "lexicon", "lexicon TSV glob pattern (repeatable)")
	fs.Var(&mf.variants, "variant", "variant-list TSV glob pattern (repeatable)")
	fs.Var(&mf.confusables, "confusable", "confusable-pattern TSV glob pattern (repeatable)")
	fs.StringVar(&mf.lm, "lm", "", "path to an LM n-gram frequency TSV file")
	fs.BoolVar(&mf.freqSum, "freq-sum", true, "merge duplicate lexicon rows by summing frequency (false merges by max)")
	return mf
}

func (mf *modelFlags) build(ctx context.Context) (*loader.Result, error) {
	if mf.alphabet == "" {
		return nil, fmt.Errorf("-alphabet is required")
	}
	handling := vocabulary.FreqSum
	if !mf.freqSum {
		handling = vocabulary.FreqMax
	}
	result, err := loader.Build(ctx, loader.LoadSpec{
		AlphabetPath:    mf.alphabet,
		LexiconPaths:    mf.lexicons,
		VariantPaths:    mf.variants,
		ConfusablePaths: mf.confusables,
		LMPath:          mf.lm,
		FreqHandling:    handling,
	})
	if err != nil {
		return nil, err
	}

	cliLogger.Info("vocabulary loaded",
		zap.Int("entries", result.Vocabulary.Len()),
		zap.Int("confusable_patterns", len(result.ConfusablePatterns)),
		zap.Int("rejected_records", len(result.RejectedRecords)),
	)
	for _, rec := range result.RejectedRecords {
		cliLogger.Warn("record rejected",
			zap.String("file", rec.File),
			zap.Int("line", rec.Line),
			zap.String("reason", rec.Reason),
		)
	}
	return result, nil
}

// paramFlags are the query.Parameters tunables shared by query and search.
type paramFlags struct {
	maxAnagramDistance int
	maxEditDistance    int
	maxMatches         int
	scoreThreshold     float64
	cutoffThreshold    float64
	stopCriterion      bool
	freqWeight         float64
}

// registerParamFlags registers the query.Parameters tunables, defaulted from
// the layered config resolution (C13): embedded defaults overlaid by an
// XDG/home/cwd "lexigraph" config file, then by LEXIGRAPH_* environment
// variables. A resolution or schema-validation failure falls back to the
// package's hardcoded Defaults() and is logged, not fatal, since every flag
// remains explicitly settable regardless.
func registerParamFlags(fs *flag.FlagSet) *paramFlags {
	defaults, err := searchconfig.Resolve("")
	if err != nil {
		cliLogger.Warn("search config resolution failed, using built-in defaults", zap.Error(err))
		defaults = searchconfig.Defaults()
	}

	pf := &paramFlags{}
	fs.IntVar(&pf.maxAnagramDistance, "max-anagram-distance", defaults.MaxAnagramDistance, "maximum anagram (deletion/insertion) distance")
	fs.IntVar(&pf.maxEditDistance, "max-edit-distance", defaults.MaxEditDistance, "maximum Damerau-Levenshtein edit distance")
	fs.IntVar(&pf.maxMatches, "max-matches", defaults.MaxMatches, "maximum results per input (0 = unlimited)")
	fs.Float64Var(&pf.scoreThreshold, "score-threshold", defaults.ScoreThreshold, "minimum similarity score to admit a result")
	fs.Float64Var(&pf.cutoffThreshold, "cutoff-threshold", defaults.CutoffThreshold, "prune results scoring below best/cutoff (0 disables)")
	fs.BoolVar(&pf.stopCriterion, "stop-on-exact", defaults.StopOnExact, "stop neighborhood search as soon as a verbatim match is found")
	fs.Float64Var(&pf.freqWeight, "freq-weight", defaults.FreqWeight, "blend weight of frequency rank into the ranking key")
	return pf
}

// interruptGuard reports whether a graceful shutdown (SIGINT/SIGTERM) has
// been requested, set up so batch loops over multiple queries (the `query`
// subcommand's positional inputs, `learn`'s lexicon scan) can stop between
// items rather than mid-item, per spec.md §5's "not mid-query" requirement.
// A second Ctrl+C force-exits immediately via the manager's double-tap.
type interruptGuard struct {
	manager   *signals.Manager
	requested atomic.Bool
}

func newInterruptGuard() *interruptGuard {
	g := &interruptGuard{manager: signals.NewManager()}
	_ = g.manager.EnableDoubleTap(signals.DoubleTapConfig{Window: 2 * time.Second})
	g.manager.OnShutdown(func(context.Context) error {
		g.requested.Store(true)
		return nil
	})
	go func() { _ = g.manager.Listen(context.Background()) }()
	return g
}

func (g *interruptGuard) stopRequested() bool {
	return g.requested.Load()
}

func (g *interruptGuard) stop() {
	g.manager.Stop()
}

func (pf *paramFlags) parameters(patterns []confusable.Pattern) query.Parameters {
	return query.Parameters{
		MaxAnagramDistance: query.Absolute(pf.maxAnagramDistance),
		MaxEditDistance:    query.Absolute(pf.maxEditDistance),
		MaxMatches:         pf.maxMatches,
		ScoreThreshold:     pf.scoreThreshold,
		CutoffThreshold:    pf.cutoffThreshold,
		StopCriterion:      pf.stopCriterion,
		FreqWeight:         pf.freqWeight,
		Weights:            similarity.DefaultWeights(),
		ConfusablePatterns: patterns,
	}
}
