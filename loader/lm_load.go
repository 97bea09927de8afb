package loader

import (
	"io"
	"math"
	"strings"

	lgerrors "github.com/fulmenhq/lexigraph/errors"
)

// CountTableLM is a lm.Collaborator backed by a flat n-gram count table,
// built directly from an LM frequency file. It implements add-one smoothed
// maximum-likelihood scoring over its own counts: enough to exercise the
// textsearch consolidation path without depending on an external model.
type CountTableLM struct {
	order  int
	counts map[string]float64
	totals map[int]float64 // total count observed at each n-gram order
}

func newCountTableLM() *CountTableLM {
	return &CountTableLM{
		counts: make(map[string]float64),
		totals: make(map[int]float64),
	}
}

func ngramKey(tokens []string) string {
	return strings.Join(tokens, "\x1f")
}

func (lm *CountTableLM) add(tokens []string, count float64) {
	if len(tokens) > lm.order {
		lm.order = len(tokens)
	}
	lm.counts[ngramKey(tokens)] += count
	lm.totals[len(tokens)] += count
}

// Order returns the longest n-gram length recorded in the table.
func (lm *CountTableLM) Order() int {
	return lm.order
}

// NgramLookup returns the raw recorded count for tokens, if any.
func (lm *CountTableLM) NgramLookup(tokens []string) (float64, bool) {
	c, ok := lm.counts[ngramKey(tokens)]
	return c, ok
}

// Score returns the add-one-smoothed log-probability of tokens as a whole
// n-gram under the table, falling back to a uniform floor when the n-gram
// (or the order it belongs to) was never observed.
func (lm *CountTableLM) Score(tokens []string) (float64, error) {
	n := len(tokens)
	if n == 0 {
		return 0, nil
	}
	count, _ := lm.counts[ngramKey(tokens)]
	total := lm.totals[n]
	vocab := float64(len(lm.counts)) + 1
	prob := (count + 1) / (total + vocab)
	return math.Log(prob), nil
}

// loadLM parses an LM n-gram frequency TSV (`<space-separated tokens>\t
// <count>` per row, `<bos>`/`<eos>` sentinels accepted as ordinary tokens)
// into a CountTableLM.
func loadLM(path string, r io.Reader, rejected *[]RejectedRecord) (*CountTableLM, error) {
	lm := newCountTableLM()

	err := readLines(r, func(lineNo int, line string) error {
		if line == "" {
			return nil
		}
		fields := splitTSV(line)
		if len(fields) != 2 {
			return lgerrors.DataFormat("LOADER_LM_BAD_ROW",
				"LM row must have exactly an n-gram column and a count column", path, lineNo)
		}
		tokens := strings.Fields(fields[0])
		if len(tokens) == 0 {
			return lgerrors.DataFormat("LOADER_LM_EMPTY_NGRAM",
				"LM row has an empty n-gram", path, lineNo)
		}
		count, ok := parseFloatOr(fields[1], -1)
		if !ok || count < 0 {
			return lgerrors.DataFormat("LOADER_LM_BAD_COUNT",
				"LM row has a non-numeric count", path, lineNo)
		}
		lm.add(tokens, count)
		return nil
	}, func(lineNo int) {
		*rejected = append(*rejected, RejectedRecord{File: path, Line: lineNo, Reason: "invalid UTF-8"})
	})
	if err != nil {
		return nil, err
	}
	return lm, nil
}
