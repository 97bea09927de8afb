package loader

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fulmenhq/lexigraph/confusable"
	lgerrors "github.com/fulmenhq/lexigraph/errors"
	"github.com/fulmenhq/lexigraph/lexindex"
	"github.com/fulmenhq/lexigraph/lm"
	"github.com/fulmenhq/lexigraph/pathfinder"
	"github.com/fulmenhq/lexigraph/telemetry"
	"github.com/fulmenhq/lexigraph/telemetry/metrics"
	"github.com/fulmenhq/lexigraph/vocabulary"
)

// Build runs a full load pass: parses the alphabet file, expands every
// lexicon/variant/confusable glob pattern via pathfinder, streams each
// matched file through its dedicated parser, loads the optional LM file,
// and finalizes the vocabulary store and lexical index.
func Build(ctx context.Context, spec LoadSpec) (*Result, error) {
	start := time.Now()
	defer func() {
		telemetry.EmitHistogram(metrics.LoaderLoadMs, time.Since(start), nil)
	}()

	if spec.AlphabetPath == "" {
		return nil, lgerrors.Configuration("LOADER_MISSING_ALPHABET", "LoadSpec.AlphabetPath is required")
	}

	alphaFile, err := os.Open(spec.AlphabetPath)
	if err != nil {
		return nil, lgerrors.Configuration("LOADER_ALPHABET_OPEN", err.Error())
	}
	defer alphaFile.Close()

	alpha, err := loadAlphabet(spec.AlphabetPath, alphaFile)
	if err != nil {
		return nil, err
	}

	store := vocabulary.NewStore()
	var rejected []RejectedRecord
	var patterns []confusable.Pattern
	var model *CountTableLM

	finder := pathfinder.NewFinder()

	lexiconFiles, err := expandGlobs(ctx, finder, spec.LexiconPaths)
	if err != nil {
		return nil, err
	}
	for _, path := range lexiconFiles {
		if err := withFile(path, func(f *os.File) error {
			return loadLexicon(path, f, lexiconTagFor(path), spec.FreqHandling, store, &rejected)
		}); err != nil {
			return nil, err
		}
		telemetry.EmitCounter(metrics.LoaderFilesLoadedTotal, 1, map[string]string{"kind": "lexicon"})
	}

	variantFiles, err := expandGlobs(ctx, finder, spec.VariantPaths)
	if err != nil {
		return nil, err
	}
	for _, path := range variantFiles {
		if err := withFile(path, func(f *os.File) error {
			return loadVariants(path, f, lexiconTagFor(path), VariantTransparent, store, &rejected)
		}); err != nil {
			return nil, err
		}
		telemetry.EmitCounter(metrics.LoaderFilesLoadedTotal, 1, map[string]string{"kind": "variant"})
	}

	confusableFiles, err := expandGlobs(ctx, finder, spec.ConfusablePaths)
	if err != nil {
		return nil, err
	}
	for _, path := range confusableFiles {
		if err := withFile(path, func(f *os.File) error {
			filePatterns, loadErr := loadConfusables(path, f, &rejected)
			patterns = append(patterns, filePatterns...)
			return loadErr
		}); err != nil {
			return nil, err
		}
		telemetry.EmitCounter(metrics.LoaderFilesLoadedTotal, 1, map[string]string{"kind": "confusable"})
	}

	if spec.LMPath != "" {
		if err := withFile(spec.LMPath, func(f *os.File) error {
			loaded, loadErr := loadLM(spec.LMPath, f, &rejected)
			model = loaded
			return loadErr
		}); err != nil {
			return nil, err
		}
		telemetry.EmitCounter(metrics.LoaderFilesLoadedTotal, 1, map[string]string{"kind": "lm"})
	}
	if err := store.Build(); err != nil {
		return nil, err
	}

	telemetry.EmitCounter(metrics.LoaderRowsRejectedTotal, float64(len(rejected)), nil)
	telemetry.EmitCounter(metrics.LoaderRowsAcceptedTotal, float64(store.Len()), nil)

	idx := lexindex.NewIndex(alpha)
	if err := idx.Build(store); err != nil {
		return nil, err
	}

	var collaborator lm.Collaborator
	if model != nil {
		collaborator = model
	}

	return &Result{
		Alphabet:           alpha,
		Vocabulary:         store,
		Index:              idx,
		ConfusablePatterns: patterns,
		LanguageModel:      collaborator,
		RejectedRecords:    rejected,
	}, nil
}

// expandGlobs resolves each glob pattern relative to its own directory
// component, so both repo-relative patterns ("lexicons/*.tsv") and absolute
// ones (as used in tests) anchor pathfinder's root correctly; the file
// component (which may itself contain wildcards, including "**") becomes
// the Include pattern.
func expandGlobs(ctx context.Context, finder *pathfinder.Finder, patterns []string) ([]string, error) {
	var paths []string
	for _, pattern := range patterns {
		root := filepath.Dir(pattern)
		include := filepath.Base(pattern)
		results, err := finder.FindFiles(ctx, pathfinder.FindQuery{Root: root, Include: []string{include}})
		if err != nil {
			return nil, lgerrors.Configuration("LOADER_GLOB_EXPAND", err.Error())
		}
		for _, r := range results {
			paths = append(paths, r.SourcePath)
		}
	}
	return paths, nil
}

func withFile(path string, fn func(*os.File) error) error {
	f, err := os.Open(path)
	if err != nil {
		return lgerrors.Configuration("LOADER_FILE_OPEN", err.Error())
	}
	defer f.Close()
	return fn(f)
}

// lexiconTagFor derives a lexicon tag from a file's base name, stripping
// its extension, so "lexicons/nl-common.tsv" tags entries "nl-common".
func lexiconTagFor(path string) string {
	base := path
	for i := len(base) - 1; i >= 0; i-- {
		if base[i] == '/' || base[i] == '\\' {
			base = base[i+1:]
			break
		}
	}
	for i := len(base) - 1; i >= 0; i-- {
		if base[i] == '.' {
			return base[:i]
		}
	}
	return base
}
