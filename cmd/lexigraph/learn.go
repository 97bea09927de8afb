package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/fulmenhq/lexigraph/ascii"
	"github.com/fulmenhq/lexigraph/query"
	"github.com/fulmenhq/lexigraph/vocabulary"
)

// runLearn mines a loaded lexicon for near-neighbor pairs and emits them as
// a weighted variant list in the same TSV shape loadVariants consumes:
// reference, then alternating variant/score columns (or, with
// -format=table, an aligned human-readable table instead). Each Indexed
// entry is queried against the whole vocabulary using the ordinary query
// pipeline; matches other than the entry itself above -learn-threshold
// become candidate variants, capped at -max-variants.
func runLearn(args []string) error {
	fs := flag.NewFlagSet("learn", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	mf := registerModelFlags(fs)
	pf := registerParamFlags(fs)
	learnThreshold := fs.Float64("learn-threshold", 0.5, "minimum similarity score to propose a variant pair")
	maxVariants := fs.Int("max-variants", 5, "maximum proposed variants per reference entry")
	format := fs.String("format", "text", "output format (text|table)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, err := mf.build(context.Background())
	if err != nil {
		return fmt.Errorf("learn: %w", err)
	}

	params := pf.parameters(result.ConfusablePatterns)
	params.ScoreThreshold = *learnThreshold
	params.MaxMatches = *maxVariants + 1 // +1 since the entry itself always matches its own text

	guard := newInterruptGuard()
	defer guard.stop()

	w := os.Stdout
	var tableRows [][]string
	result.Vocabulary.Iter(func(e vocabulary.Entry) bool {
		if guard.stopRequested() {
			return false
		}
		if e.Kind != vocabulary.Indexed {
			return true
		}
		matches := query.Run(e.Text, result.Alphabet, result.Index, result.Vocabulary, params)

		if *format == "table" {
			written := 0
			for _, m := range matches {
				if m.EntryID == e.ID || written >= *maxVariants {
					continue
				}
				tableRows = append(tableRows, []string{e.Text, m.Text, strconv.FormatFloat(m.Score, 'f', 4, 64)})
				written++
			}
			if written == 0 {
				tableRows = append(tableRows, []string{e.Text, "", ""})
			}
			return true
		}

		fmt.Fprint(w, e.Text)
		written := 0
		for _, m := range matches {
			if m.EntryID == e.ID || written >= *maxVariants {
				continue
			}
			fmt.Fprintf(w, "\t%s\t%s", m.Text, strconv.FormatFloat(m.Score, 'f', 4, 64))
			written++
		}
		fmt.Fprintln(w)
		return true
	})

	if *format == "table" {
		_, err := fmt.Fprint(w, ascii.Table([]string{"entry", "variant", "score"}, tableRows))
		return err
	}
	return nil
}
