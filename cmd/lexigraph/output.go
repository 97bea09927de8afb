package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fulmenhq/lexigraph/ascii"
	"github.com/fulmenhq/lexigraph/query"
)

type matchOutput struct {
	Text      string   `json:"text"`
	Score     float64  `json:"score"`
	DistScore float64  `json:"dist_score"`
	FreqScore float64  `json:"freq_score"`
	Lexicons  []string `json:"lexicons"`
	Via       string   `json:"via,omitempty"`
}

func toMatchOutput(m query.Match) matchOutput {
	return matchOutput{
		Text:      m.Text,
		Score:     m.Score,
		DistScore: m.DistScore,
		FreqScore: m.FreqScore,
		Lexicons:  m.Lexicons,
		Via:       m.Via,
	}
}

// offset is the byte or character span of a text-search segment, per
// spec.md §6's "{offset: {begin, end}}" output field.
type offset struct {
	Begin int `json:"begin"`
	End   int `json:"end"`
}

type segmentOutput struct {
	Offset   offset        `json:"offset"`
	Variants []matchOutput `json:"variants"`
}

// writeQueryResult renders one input's ranked matches in the requested
// format: TSV (input, then alternating variant/score) or JSON (array of
// {text, score, dist_score, freq_score, lexicons[], via?}).
func writeQueryResult(w io.Writer, input string, matches []query.Match, format string) error {
	if format == "json" {
		outs := make([]matchOutput, len(matches))
		for i, m := range matches {
			outs[i] = toMatchOutput(m)
		}
		// One array per input, per spec.md §6: "JSON: per input an array of
		// {text, score, dist_score, freq_score, lexicons[], via?}". Multiple
		// inputs therefore render as JSON Lines, one array per line.
		return json.NewEncoder(w).Encode(outs)
	}

	var b strings.Builder
	b.WriteString(input)
	for _, m := range matches {
		b.WriteByte('\t')
		b.WriteString(m.Text)
		b.WriteByte('\t')
		b.WriteString(strconv.FormatFloat(m.Score, 'f', 4, 64))
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

// writeQueryTable renders every input's ranked matches as one aligned table
// (one row per input/variant pair), column widths sized by display width
// (ascii.Table/StringWidth) rather than byte or rune count, so multi-width
// Unicode match text still lines up.
func writeQueryTable(w io.Writer, inputs []string, matchesByInput [][]query.Match) error {
	header := []string{"input", "variant", "score", "dist_score", "freq_score", "lexicons", "via"}
	var rows [][]string
	for i, input := range inputs {
		matches := matchesByInput[i]
		if len(matches) == 0 {
			rows = append(rows, []string{input, "", "", "", "", "", ""})
			continue
		}
		for _, m := range matches {
			rows = append(rows, []string{
				input,
				m.Text,
				strconv.FormatFloat(m.Score, 'f', 4, 64),
				strconv.FormatFloat(m.DistScore, 'f', 4, 64),
				strconv.FormatFloat(m.FreqScore, 'f', 4, 64),
				strings.Join(m.Lexicons, ","),
				m.Via,
			})
		}
	}
	_, err := io.WriteString(w, ascii.Table(header, rows))
	return err
}

// writeSegments renders text-search segment matches in the requested format
// (text: TSV; json: array of {offset, variants[]}; table: aligned table,
// one row per segment/variant pair).
func writeSegments(w io.Writer, segments []segmentMatchView, format string) error {
	if format == "json" {
		outs := make([]segmentOutput, len(segments))
		for i, seg := range segments {
			variants := make([]matchOutput, len(seg.Variants))
			for j, m := range seg.Variants {
				variants[j] = toMatchOutput(m)
			}
			outs[i] = segmentOutput{
				Offset:   offset{Begin: seg.Begin, End: seg.End},
				Variants: variants,
			}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(outs)
	}

	if format == "table" {
		header := []string{"begin", "end", "variant", "score"}
		var rows [][]string
		for _, seg := range segments {
			begin, end := strconv.Itoa(seg.Begin), strconv.Itoa(seg.End)
			if len(seg.Variants) == 0 {
				rows = append(rows, []string{begin, end, "", ""})
				continue
			}
			for _, m := range seg.Variants {
				rows = append(rows, []string{begin, end, m.Text, strconv.FormatFloat(m.Score, 'f', 4, 64)})
			}
		}
		_, err := io.WriteString(w, ascii.Table(header, rows))
		return err
	}

	for _, seg := range segments {
		fmt.Fprintf(w, "%d\t%d", seg.Begin, seg.End)
		for _, m := range seg.Variants {
			fmt.Fprintf(w, "\t%s\t%s", m.Text, strconv.FormatFloat(m.Score, 'f', 4, 64))
		}
		fmt.Fprintln(w)
	}
	return nil
}

// segmentMatchView decouples output formatting from textsearch.SegmentMatch
// so both byte- and character-unit offsets can be rendered without a second
// copy of the textsearch package's type.
type segmentMatchView struct {
	Begin, End int
	Variants   []query.Match
}
