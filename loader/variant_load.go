package loader

import (
	"io"

	lgerrors "github.com/fulmenhq/lexigraph/errors"
	"github.com/fulmenhq/lexigraph/vocabulary"
)

// VariantMode selects whether a variant file's entries are stored as
// Variant-of entries, whose matches are reported as their reference entry,
// or as Transparent entries, whose matches are reported as the reference
// with a "via" annotation — spec.md §6's "variants" vs "errors" load option.
type VariantMode int

const (
	VariantVisible VariantMode = iota
	VariantTransparent
)

// loadVariants parses a variant-list TSV row of the form
// `<reference>\t[<ref_freq>\t]<variant>\t<score>[\t<variant>\t<score>]...`
// and declares a Variant-of edge for each variant, pointing at the
// reference entry (inserted if not already present). Per-variant
// frequency overrides are not supported by this parser — see DESIGN.md.
func loadVariants(path string, r io.Reader, lexiconTag string, mode VariantMode, store *vocabulary.Store, rejected *[]RejectedRecord) error {
	type pendingRow struct {
		lineNo   int
		refText  string
		refFreq  float64
		variants []struct {
			text  string
			score float64
		}
	}
	var rows []pendingRow

	err := readLines(r, func(lineNo int, line string) error {
		if line == "" {
			return nil
		}
		fields := splitTSV(line)
		if len(fields) < 3 {
			return lgerrors.DataFormat("LOADER_VARIANT_TOO_SHORT",
				"variant row needs a reference and at least one variant/score pair", path, lineNo)
		}

		refText := fields[0]
		rest := fields[1:]
		refFreq := 1.0
		if maybeFreq, ok := parseFloatOr(rest[0], -1); ok && maybeFreq >= 0 && len(rest)%2 == 1 {
			refFreq = maybeFreq
			rest = rest[1:]
		}
		if len(rest) == 0 || len(rest)%2 != 0 {
			return lgerrors.DataFormat("LOADER_VARIANT_UNPAIRED",
				"variant row has an unpaired variant/score sequence", path, lineNo)
		}

		row := pendingRow{lineNo: lineNo, refText: refText, refFreq: refFreq}
		for i := 0; i < len(rest); i += 2 {
			score, ok := parseFloatOr(rest[i+1], -1)
			if !ok || score < 0 {
				return lgerrors.DataFormat("LOADER_VARIANT_BAD_SCORE",
					"variant row has a non-numeric score", path, lineNo)
			}
			row.variants = append(row.variants, struct {
				text  string
				score float64
			}{text: rest[i], score: score})
		}
		rows = append(rows, row)
		return nil
	}, func(lineNo int) {
		*rejected = append(*rejected, RejectedRecord{File: path, Line: lineNo, Reason: "invalid UTF-8"})
	})
	if err != nil {
		return err
	}

	for _, row := range rows {
		refID, insertErr := store.Insert(row.refText, row.refFreq, lexiconTag, vocabulary.Indexed, vocabulary.FreqMax)
		if insertErr != nil {
			return insertErr
		}
		for _, v := range row.variants {
			transparent := mode == VariantTransparent
			if _, insertErr := store.InsertVariant(v.text, refID, v.score, transparent, lexiconTag); insertErr != nil {
				return insertErr
			}
		}
	}
	return nil
}
