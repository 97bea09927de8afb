// Package loader builds an alphabet, vocabulary, and index pair from a set
// of TSV inputs: an alphabet file, one or more lexicon/variant/confusable
// file globs, and an optional language-model frequency file.
package loader

import (
	"github.com/fulmenhq/lexigraph/alphabet"
	"github.com/fulmenhq/lexigraph/confusable"
	"github.com/fulmenhq/lexigraph/lexindex"
	"github.com/fulmenhq/lexigraph/lm"
	"github.com/fulmenhq/lexigraph/vocabulary"
)

// LoadSpec describes the inputs to a single load pass.
type LoadSpec struct {
	AlphabetPath string

	// LexiconPaths, VariantPaths, and ConfusablePaths are glob patterns
	// (e.g. "lexicons/*.tsv") expanded via pathfinder's doublestar-backed
	// discovery before streaming.
	LexiconPaths    []string
	VariantPaths    []string
	ConfusablePaths []string

	LMPath string

	FreqHandling vocabulary.FreqHandling
}

// Result is the fully built model ready for querying.
type Result struct {
	Alphabet           *alphabet.Alphabet
	Vocabulary         *vocabulary.Store
	Index              *lexindex.Index
	ConfusablePatterns []confusable.Pattern

	// LanguageModel is non-nil only when LoadSpec.LMPath was set; it is a
	// count-table-backed lm.Collaborator built directly from that file.
	// Callers are free to ignore it and supply their own collaborator.
	LanguageModel lm.Collaborator

	RejectedRecords []RejectedRecord
}

// RejectedRecord describes one Input-decoding-class failure: a single
// record skipped due to invalid UTF-8, logged but not fatal to the file's
// load per spec.md §7.
type RejectedRecord struct {
	File   string
	Line   int
	Reason string
}
