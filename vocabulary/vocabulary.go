// Package vocabulary stores the entries loaded from one or more lexicons: the
// canonical text, per-lexicon frequencies, and variant/transparency
// relationships consulted during query resolution.
package vocabulary

import (
	"errors"
	"fmt"
)

// ErrUnknownFreqHandling is returned when insert is asked to merge
// frequencies using an unrecognized strategy.
var ErrUnknownFreqHandling = errors.New("vocabulary: unknown frequency handling strategy")

// ErrVariantRefNotFound is returned when Build encounters a Variant-of entry
// whose reference id was never inserted.
var ErrVariantRefNotFound = errors.New("vocabulary: variant reference id not found")

// FreqHandling controls how repeated inserts of the same text are merged.
type FreqHandling int

const (
	FreqSum FreqHandling = iota
	FreqMax
	FreqMin
	FreqReplace
)

// Kind classifies how an entry participates in search.
type Kind int

const (
	// Indexed entries are ordinary searchable vocabulary.
	Indexed Kind = iota
	// Transparent entries may match during search but are never returned
	// directly; the Variant-of reference is reported instead, annotated
	// "via <transparent text>".
	Transparent
	// LMOnly entries exist for language-model context only and are never
	// searchable.
	LMOnly
	// VariantOf entries point at a canonical reference entry with a
	// blending weight.
	VariantOf
)

// Entry is one vocabulary record.
type Entry struct {
	ID           int
	Text         string
	Encoded      []int
	CharLen      int
	AnagramKey   string // Value.Key() of the entry's anagram value, set by the index builder
	FreqPerLex   map[string]float64
	LexiconTags  []string
	Kind         Kind
	VariantRef   int     // meaningful when Kind == VariantOf
	VariantWeight float64 // meaningful when Kind == VariantOf
}

// TotalFreq sums frequency across every lexicon tag the entry appears under.
func (e *Entry) TotalFreq() float64 {
	total := 0.0
	for _, f := range e.FreqPerLex {
		total += f
	}
	return total
}

// Store is an insertion-ordered, idempotent-by-text collection of entries.
// Entries may be inserted until Build is called; thereafter the store is
// read-only and safe to share across goroutines.
type Store struct {
	entries    []Entry
	byText     map[string]int // text -> index into entries
	built      bool
}

// NewStore returns an empty, loadable vocabulary store.
func NewStore() *Store {
	return &Store{
		byText: make(map[string]int),
	}
}

// Insert adds or merges an entry by text, returning its stable id. If text
// was already inserted under this or another lexicon tag, the existing
// entry's frequency for lexiconTag is merged per handling and the tag
// appended if new; otherwise a new entry is appended. Insert panics if
// called after Build — that is a programming error, not a runtime one.
func (s *Store) Insert(text string, freq float64, lexiconTag string, kind Kind, handling FreqHandling) (int, error) {
	if s.built {
		panic("vocabulary: Insert called after Build")
	}

	if idx, ok := s.byText[text]; ok {
		entry := &s.entries[idx]
		merged, err := mergeFreq(entry.FreqPerLex[lexiconTag], freq, handling)
		if err != nil {
			return 0, err
		}
		entry.FreqPerLex[lexiconTag] = merged
		if !containsTag(entry.LexiconTags, lexiconTag) {
			entry.LexiconTags = append(entry.LexiconTags, lexiconTag)
		}
		return entry.ID, nil
	}

	id := len(s.entries)
	entry := Entry{
		ID:          id,
		Text:        text,
		FreqPerLex:  map[string]float64{lexiconTag: freq},
		LexiconTags: []string{lexiconTag},
		Kind:        kind,
	}
	s.entries = append(s.entries, entry)
	s.byText[text] = id
	return id, nil
}

// InsertVariant adds a Variant-of(refID, weight) entry. The referenced id is
// not validated until Build, since the reference may be inserted later in
// the same load pass.
func (s *Store) InsertVariant(text string, refID int, weight float64, transparent bool, lexiconTag string) (int, error) {
	if s.built {
		panic("vocabulary: InsertVariant called after Build")
	}
	kind := VariantOf
	id := len(s.entries)
	entry := Entry{
		ID:            id,
		Text:          text,
		FreqPerLex:    map[string]float64{},
		LexiconTags:   []string{lexiconTag},
		Kind:          kind,
		VariantRef:    refID,
		VariantWeight: weight,
	}
	if transparent {
		entry.Kind = Transparent
	}
	s.entries = append(s.entries, entry)
	s.byText[text] = id
	return id, nil
}

// Get returns the entry for id. ok is false if id is out of range.
func (s *Store) Get(id int) (Entry, bool) {
	if id < 0 || id >= len(s.entries) {
		return Entry{}, false
	}
	return s.entries[id], true
}

// Len returns the number of entries currently in the store.
func (s *Store) Len() int {
	return len(s.entries)
}

// Iter calls fn for every entry in insertion order, stopping early if fn
// returns false.
func (s *Store) Iter(fn func(Entry) bool) {
	for i := range s.entries {
		if !fn(s.entries[i]) {
			return
		}
	}
}

// Build validates variant references and freezes the store against further
// inserts. It is idempotent.
func (s *Store) Build() error {
	if s.built {
		return nil
	}
	for _, e := range s.entries {
		if e.Kind == VariantOf || e.Kind == Transparent {
			if e.VariantRef < 0 || e.VariantRef >= len(s.entries) {
				return fmt.Errorf("%w: entry %q references id %d", ErrVariantRefNotFound, e.Text, e.VariantRef)
			}
		}
	}
	s.built = true
	return nil
}

// SetEncoded records the alphabet-encoded form and length for an entry,
// called by the index builder during its first pass.
func (s *Store) SetEncoded(id int, encoded []int, anagramKey string) {
	s.entries[id].Encoded = encoded
	s.entries[id].CharLen = len(encoded)
	s.entries[id].AnagramKey = anagramKey
}

func mergeFreq(existing, incoming float64, handling FreqHandling) (float64, error) {
	switch handling {
	case FreqSum:
		return existing + incoming, nil
	case FreqMax:
		if incoming > existing {
			return incoming, nil
		}
		return existing, nil
	case FreqMin:
		if existing == 0 {
			return incoming, nil
		}
		if incoming < existing {
			return incoming, nil
		}
		return existing, nil
	case FreqReplace:
		return incoming, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownFreqHandling, handling)
	}
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
