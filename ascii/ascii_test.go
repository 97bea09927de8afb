package ascii

import (
	"strings"
	"testing"
)

func TestStringWidth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"ASCII", "hello", 5},
		{"Spaces", "hello world", 11},
		{"CJK", "こんにちは", 10}, // CJK characters are width 2
		{"Emoji", "🚀", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := StringWidth(tt.input); w != tt.expected {
				t.Errorf("StringWidth(%q) = %d, expected %d", tt.input, w, tt.expected)
			}
		})
	}
}

func TestTable_AlignsColumnsByDisplayWidth(t *testing.T) {
	header := []string{"word", "score"}
	rows := [][]string{
		{"cat", "0.9000"},
		{"こんにちは", "0.5000"},
	}

	out := Table(header, rows)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines (header + 2 rows), got %d: %q", len(lines), out)
	}

	// The score column must start at the same display-width offset on
	// every line, even though "こんにちは" occupies 10 display columns for
	// 5 runes.
	wantCol := StringWidth("こんにちは") + 2
	scoreCells := []string{"score", "0.9000", "0.5000"}
	for i, line := range lines {
		idx := strings.Index(line, scoreCells[i])
		if idx < 0 {
			t.Fatalf("line %q missing expected cell %q", line, scoreCells[i])
		}
		if gotCol := StringWidth(line[:idx]); gotCol != wantCol {
			t.Errorf("line %q: score column starts at display width %d, want %d", line, gotCol, wantCol)
		}
	}
}

func TestTable_ShortRowPadsMissingCells(t *testing.T) {
	header := []string{"a", "b", "c"}
	rows := [][]string{{"x"}}

	out := Table(header, rows)
	if !strings.Contains(out, "x") {
		t.Fatalf("expected row content preserved, got %q", out)
	}
}
