package loader

import (
	"io"

	lgerrors "github.com/fulmenhq/lexigraph/errors"
	"github.com/fulmenhq/lexigraph/vocabulary"
)

type lexiconRow struct {
	text string
	freq float64
}

// loadLexicon parses a lexicon TSV (text, optional frequency column) and
// inserts every row into store under lexiconTag. A malformed row aborts
// the entire file atomically — no partial admission — per spec.md §7, so
// rows are fully parsed and validated before any Insert call runs.
func loadLexicon(path string, r io.Reader, lexiconTag string, handling vocabulary.FreqHandling, store *vocabulary.Store, rejected *[]RejectedRecord) error {
	var rows []lexiconRow

	err := readLines(r, func(lineNo int, line string) error {
		if line == "" {
			return nil
		}
		fields := splitTSV(line)
		text := fields[0]
		if text == "" {
			return lgerrors.DataFormat("LOADER_LEXICON_EMPTY_TEXT",
				"lexicon row has an empty text column", path, lineNo)
		}
		freq := 1.0
		if len(fields) > 1 {
			parsed, ok := parseFloatOr(fields[1], 1.0)
			if !ok {
				return lgerrors.DataFormat("LOADER_LEXICON_BAD_FREQ",
					"lexicon row has a non-numeric frequency column", path, lineNo)
			}
			freq = parsed
		}
		rows = append(rows, lexiconRow{text: text, freq: freq})
		return nil
	}, func(lineNo int) {
		*rejected = append(*rejected, RejectedRecord{File: path, Line: lineNo, Reason: "invalid UTF-8"})
	})
	if err != nil {
		return err
	}

	for _, row := range rows {
		if _, err := store.Insert(row.text, row.freq, lexiconTag, vocabulary.Indexed, handling); err != nil {
			return err
		}
	}
	return nil
}
