package loader

import (
	"io"

	"github.com/fulmenhq/lexigraph/alphabet"
	lgerrors "github.com/fulmenhq/lexigraph/errors"
)

// loadAlphabet parses an alphabet TSV (one class per line, tab-separated
// equivalent symbols, blank lines ignored) into an *alphabet.Alphabet.
func loadAlphabet(path string, r io.Reader) (*alphabet.Alphabet, error) {
	var classes [][]string

	err := readLines(r, func(lineNo int, line string) error {
		if line == "" {
			return nil
		}
		symbols := splitTSV(line)
		for _, s := range symbols {
			if s == "" {
				return lgerrors.DataFormat("LOADER_ALPHABET_EMPTY_SYMBOL",
					"alphabet class contains an empty symbol", path, lineNo)
			}
		}
		classes = append(classes, symbols)
		return nil
	}, nil)
	if err != nil {
		return nil, err
	}

	if len(classes) == 0 {
		return nil, lgerrors.Configuration("LOADER_ALPHABET_EMPTY", "alphabet file declares no classes")
	}

	a, err := alphabet.New(classes)
	if err != nil {
		return nil, lgerrors.Configuration("LOADER_ALPHABET_INVALID", err.Error())
	}
	return a, nil
}
