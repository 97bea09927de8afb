package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/fulmenhq/lexigraph/textsearch"
)

func runSearch(args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	mf := registerModelFlags(fs)
	pf := registerParamFlags(fs)
	format := fs.String("format", "text", "output format (text|json|table)")
	maxNgram := fs.Int("max-ngram", 1, "maximum token n-gram order to search")
	consolidate := fs.Bool("consolidate-matches", false, "select a single non-overlapping cover of segments")
	maxSeq := fs.Int("max-seq", 1, "candidate consolidated paths considered when an LM is loaded")
	unicodeOffsets := fs.String("unicodeoffsets", "byte", "offset unit for segment spans (byte|char)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("search: provide exactly one text file path (use \"-\" for stdin)")
	}

	text, err := readTextArg(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	result, err := mf.build(context.Background())
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	params := textsearch.Params{
		Query:              pf.parameters(result.ConfusablePatterns),
		MaxNgram:           *maxNgram,
		ConsolidateMatches: *consolidate,
		MaxSeq:             *maxSeq,
		LM:                 result.LanguageModel,
	}

	segments := textsearch.Search(text, result.Alphabet, result.Index, result.Vocabulary, params)

	views := make([]segmentMatchView, len(segments))
	for i, seg := range segments {
		begin, end := seg.ByteBegin, seg.ByteEnd
		if *unicodeOffsets == "char" {
			begin = utf8.RuneCountInString(text[:seg.ByteBegin])
			end = utf8.RuneCountInString(text[:seg.ByteEnd])
		}
		views[i] = segmentMatchView{Begin: begin, End: end, Variants: seg.Variants}
	}

	return writeSegments(os.Stdout, views, *format)
}

func readTextArg(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path) // #nosec G304 -- CLI argument is an intentional user-provided path
	return string(data), err
}
