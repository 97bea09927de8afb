package loader

import (
	"fmt"
	"io"
	"strings"

	"github.com/fulmenhq/lexigraph/confusable"
	lgerrors "github.com/fulmenhq/lexigraph/errors"
)

// loadConfusables parses a confusable-list TSV (`<edit_script_pattern>\t
// <weight>` per row) into compiled confusable.Pattern values.
func loadConfusables(path string, r io.Reader, rejected *[]RejectedRecord) ([]confusable.Pattern, error) {
	var patterns []confusable.Pattern

	err := readLines(r, func(lineNo int, line string) error {
		if line == "" {
			return nil
		}
		fields := splitTSV(line)
		if len(fields) != 2 {
			return lgerrors.DataFormat("LOADER_CONFUSABLE_BAD_ROW",
				"confusable row must have exactly a pattern column and a weight column", path, lineNo)
		}
		weight, ok := parseFloatOr(fields[1], -1)
		if !ok || weight < 0 {
			return lgerrors.DataFormat("LOADER_CONFUSABLE_BAD_WEIGHT",
				"confusable row has a non-numeric weight", path, lineNo)
		}
		pattern, err := parsePattern(fields[0], weight)
		if err != nil {
			return lgerrors.DataFormat("LOADER_CONFUSABLE_BAD_PATTERN",
				fmt.Sprintf("confusable pattern %q: %v", fields[0], err), path, lineNo)
		}
		patterns = append(patterns, pattern)
		return nil
	}, func(lineNo int) {
		*rejected = append(*rejected, RejectedRecord{File: path, Line: lineNo, Reason: "invalid UTF-8"})
	})
	return patterns, err
}

// parsePattern compiles one confusable pattern string, e.g.
// `^=[c|k]-[y]+[i]$`, into a confusable.Pattern. A `-[x]` immediately
// followed by `+[y]` is merged into a single OpSubstitute PatternOp to
// match how ComputeEditScript merges adjacent delete+insert operations.
func parsePattern(s string, weight float64) (confusable.Pattern, error) {
	p := confusable.Pattern{Weight: weight}

	if strings.HasPrefix(s, "^") {
		p.StartAnchor = true
		s = s[1:]
	}
	if strings.HasSuffix(s, "$") {
		p.EndAnchor = true
		s = s[:len(s)-1]
	}

	var rawOps []confusable.PatternOp
	for len(s) > 0 {
		kindChar := s[0]
		var kind confusable.OpKind
		switch kindChar {
		case '=':
			kind = confusable.OpEqual
		case '-':
			kind = confusable.OpDelete
		case '+':
			kind = confusable.OpInsert
		default:
			return confusable.Pattern{}, fmt.Errorf("unexpected character %q", kindChar)
		}

		rest := s[1:]
		if len(rest) == 0 || rest[0] != '[' {
			return confusable.Pattern{}, fmt.Errorf("expected '[' after %q", kindChar)
		}
		end := strings.IndexByte(rest, ']')
		if end == -1 {
			return confusable.Pattern{}, fmt.Errorf("unterminated '[' in pattern")
		}
		alts := strings.Split(rest[1:end], "|")

		op := confusable.PatternOp{Kind: kind}
		switch kind {
		case confusable.OpEqual:
			op.From = alts
			op.To = alts
		case confusable.OpDelete:
			op.From = alts
		case confusable.OpInsert:
			op.To = alts
		}
		rawOps = append(rawOps, op)

		s = rest[end+1:]
	}

	p.Ops = mergeAdjacentPatternDeleteInsert(rawOps)
	return p, nil
}

func mergeAdjacentPatternDeleteInsert(ops []confusable.PatternOp) []confusable.PatternOp {
	merged := make([]confusable.PatternOp, 0, len(ops))
	i := 0
	for i < len(ops) {
		if i+1 < len(ops) && ops[i].Kind == confusable.OpDelete && ops[i+1].Kind == confusable.OpInsert {
			merged = append(merged, confusable.PatternOp{
				Kind: confusable.OpSubstitute,
				From: ops[i].From,
				To:   ops[i+1].To,
			})
			i += 2
			continue
		}
		merged = append(merged, ops[i])
		i++
	}
	return merged
}
