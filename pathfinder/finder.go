package pathfinder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	lgerrors "github.com/fulmenhq/lexigraph/errors"
	"github.com/fulmenhq/lexigraph/fulhash"
	"github.com/fulmenhq/lexigraph/telemetry"
)

// FinderConfig holds default settings for the FinderFacade
type FinderConfig struct {
	// TODO: implement concurrent file discovery
	MaxWorkers int `json:"maxWorkers"` // Currently unused - single-threaded implementation

	// TODO: implement result caching
	CacheEnabled bool `json:"cacheEnabled"` // Currently unused - no caching layer
	CacheTTL     int  `json:"cacheTTL"`     // Currently unused - cache TTL in seconds

	// TODO: implement PathConstraint enforcement
	Constraint PathConstraint `json:"constraint"` // Currently unused - no constraint validation

	LoaderType      string `json:"loaderType"`      // Type of loader (default: "local")
	ValidateInputs  bool   `json:"validateInputs"`  // Currently unused - no schema layer in this module
	ValidateOutputs bool   `json:"validateOutputs"` // Currently unused - no schema layer in this module
}

// FindQuery specifies the parameters for discovery. lexigraph's loader uses
// this to expand glob patterns like "lexicon/**/*.tsv" or
// "confusable/*.tsv" into a concrete file list before streaming rows.
type FindQuery struct {
	Root               string                                             `json:"root"`
	Include            []string                                           `json:"include"`
	Exclude            []string                                           `json:"exclude,omitempty"`
	MaxDepth           int                                                `json:"maxDepth,omitempty"`
	FollowSymlinks     bool                                               `json:"followSymlinks,omitempty"`
	IncludeHidden      bool                                               `json:"includeHidden,omitempty"`
	CalculateChecksums bool                                               `json:"calculateChecksums,omitempty"`
	ChecksumAlgorithm  string                                             `json:"checksumAlgorithm,omitempty"`
	ErrorHandler       func(path string, err error) error                 `json:"-"`
	ProgressCallback   func(processed int, total int, currentPath string) `json:"-"`
}

// PathResult represents a discovered path along with logical mapping information
type PathResult struct {
	RelativePath string         `json:"relativePath"`
	SourcePath   string         `json:"sourcePath"`
	LogicalPath  string         `json:"logicalPath"`
	LoaderType   string         `json:"loaderType"`
	Metadata     map[string]any `json:"metadata"`
}

// Finder provides high-level path discovery operations, used by the loader
// to expand glob patterns over a lexicon root into a concrete set of TSV
// files before any row is parsed.
type Finder struct {
	config          FinderConfig
	telemetrySystem *telemetry.System
}

// NewFinder creates a new finder with default config
func NewFinder() *Finder {
	config := telemetry.DefaultConfig()
	config.Enabled = true
	telSys, _ := telemetry.NewSystem(config)

	return &Finder{
		config: FinderConfig{
			MaxWorkers:      4,
			CacheEnabled:    false,
			LoaderType:      "local",
			ValidateInputs:  false,
			ValidateOutputs: false,
		},
		telemetrySystem: telSys,
	}
}

// FindFiles performs file discovery based on the query
func (f *Finder) FindFiles(ctx context.Context, query FindQuery) ([]PathResult, error) {
	return f.FindFilesWithEnvelope(ctx, query, "")
}

// FindFilesWithEnvelope performs file discovery based on the query with structured error reporting
func (f *Finder) FindFilesWithEnvelope(ctx context.Context, query FindQuery, correlationID string) ([]PathResult, error) {
	start := time.Now()
	status := "success"
	defer func() {
		if f.telemetrySystem != nil {
			duration := time.Since(start)
			_ = f.telemetrySystem.Histogram("pathfinder_find_ms", duration, map[string]string{
				"root":   query.Root,
				"status": status,
			})
		}
	}()

	if query.CalculateChecksums {
		switch query.ChecksumAlgorithm {
		case "", "xxh3-128", "sha256":
		default:
			status = "error"
			return nil, lgerrors.Configuration("PATHFINDER_INVALID_CHECKSUM_ALGORITHM",
				fmt.Sprintf("unsupported checksum algorithm %q", query.ChecksumAlgorithm)).
				WithCorrelationID(correlationID)
		}
	}

	absRoot, err := filepath.Abs(query.Root)
	if err != nil {
		status = "error"
		return nil, lgerrors.Configuration("PATHFINDER_ROOT_PATH_ERROR",
			fmt.Sprintf("failed to resolve absolute root path for %s", query.Root)).
			WithCorrelationID(correlationID).WithOriginal(err)
	}

	ignoreMatcher, err := NewIgnoreMatcher(absRoot)
	if err != nil && query.ErrorHandler != nil {
		_ = query.ErrorHandler(".fulmenignore", err)
	}

	var results []PathResult

	for _, pattern := range query.Include {
		globPattern := filepath.Join(absRoot, pattern)

		basePattern := globPattern
		for _, wildcard := range []string{"*", "?", "[", "]"} {
			if idx := strings.Index(basePattern, wildcard); idx != -1 {
				basePattern = basePattern[:idx]
			}
		}
		basePattern = filepath.Clean(basePattern)

		if basePattern != absRoot && !strings.HasPrefix(basePattern, absRoot+string(filepath.Separator)) {
			if query.ErrorHandler != nil {
				_ = query.ErrorHandler(pattern, ErrEscapesRoot)
			}
			if f.telemetrySystem != nil {
				_ = f.telemetrySystem.Counter("pathfinder_security_warnings", 1, map[string]string{
					"root":         query.Root,
					"warning_type": "path_traversal",
				})
			}
			continue
		}

		matches, err := doublestar.FilepathGlob(globPattern)
		if err != nil {
			if query.ErrorHandler != nil {
				if handlerErr := query.ErrorHandler(pattern, err); handlerErr != nil {
					return nil, handlerErr
				}
			}
			continue
		}

		for _, match := range matches {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}

			absMatch, err := filepath.Abs(match)
			if err != nil {
				continue
			}

			if err := ValidatePath(absMatch); err != nil {
				if query.ErrorHandler != nil {
					_ = query.ErrorHandler(absMatch, err)
				}
				continue
			}
			if err := ValidatePathWithinRoot(absMatch, absRoot); err != nil {
				if query.ErrorHandler != nil {
					_ = query.ErrorHandler(absMatch, err)
				}
				continue
			}

			info, err := os.Lstat(absMatch)
			if err != nil {
				if query.ErrorHandler != nil {
					_ = query.ErrorHandler(absMatch, err)
				}
				continue
			}
			if info.IsDir() {
				continue
			}
			if !query.FollowSymlinks && info.Mode()&os.ModeSymlink != 0 {
				continue
			}

			relPath, err := filepath.Rel(absRoot, absMatch)
			if err != nil {
				continue
			}

			if query.MaxDepth > 0 {
				depth := strings.Count(relPath, string(filepath.Separator)) + 1
				if depth > query.MaxDepth {
					continue
				}
			}

			if !query.IncludeHidden && ContainsHiddenSegment(relPath) {
				continue
			}
			if ignoreMatcher != nil && ignoreMatcher.IsIgnored(relPath) {
				continue
			}

			metadata := make(map[string]any)
			metadata["size"] = info.Size()
			metadata["mtime"] = info.ModTime().Format("2006-01-02T15:04:05.000000000Z07:00")

			if query.CalculateChecksums {
				algorithm := query.ChecksumAlgorithm
				if algorithm == "" {
					algorithm = "xxh3-128"
				}
				var alg fulhash.Algorithm
				switch algorithm {
				case "xxh3-128":
					alg = fulhash.XXH3_128
				case "sha256":
					alg = fulhash.SHA256
				}
				file, err := os.Open(absMatch) // #nosec G304 -- absMatch validated with ValidatePathWithinRoot
				if err != nil {
					metadata["checksumError"] = fmt.Sprintf("failed to open file: %v", err)
				} else {
					digest, err := fulhash.HashReader(file, fulhash.WithAlgorithm(alg))
					if err != nil {
						metadata["checksumError"] = fmt.Sprintf("checksum calculation failed: %v", err)
					} else {
						metadata["checksum"] = digest.String()
						metadata["checksumAlgorithm"] = string(digest.Algorithm())
					}
					_ = file.Close()
				}
			}

			result := PathResult{
				RelativePath: relPath,
				SourcePath:   absMatch,
				LogicalPath:  relPath,
				LoaderType:   f.config.LoaderType,
				Metadata:     metadata,
			}
			results = append(results, result)

			if query.ProgressCallback != nil {
				query.ProgressCallback(len(results), -1, absMatch)
			}
		}
	}

	if len(query.Exclude) > 0 {
		filtered := make([]PathResult, 0, len(results))
		for _, result := range results {
			excluded := false
			for _, excludePattern := range query.Exclude {
				matched, _ := doublestar.Match(excludePattern, result.RelativePath)
				if matched {
					excluded = true
					break
				}
			}
			if !excluded {
				filtered = append(filtered, result)
			}
		}
		results = filtered
	}

	return results, nil
}

// FindLexiconFiles finds TSV lexicon files under root, e.g. "lexicon/**/*.tsv".
func (f *Finder) FindLexiconFiles(ctx context.Context, root string) ([]PathResult, error) {
	return f.FindFiles(ctx, FindQuery{Root: root, Include: []string{"**/*.tsv"}})
}

// FindGoFiles finds Go source files
func (f *Finder) FindGoFiles(ctx context.Context, root string) ([]PathResult, error) {
	return f.FindFiles(ctx, FindQuery{Root: root, Include: []string{"**/*.go"}})
}

// FindConfigFiles finds common configuration files
func (f *Finder) FindConfigFiles(ctx context.Context, root string) ([]PathResult, error) {
	query := FindQuery{
		Root:    root,
		Include: []string{"**/*.json", "**/*.yaml", "**/*.yml", "**/*.toml", "**/*.config", "**/*.conf"},
	}
	return f.FindFiles(ctx, query)
}

// FindSchemaFiles finds JSON Schema files
func (f *Finder) FindSchemaFiles(ctx context.Context, root string) ([]PathResult, error) {
	query := FindQuery{Root: root, Include: []string{"**/*.schema.json", "**/schema.json"}}
	return f.FindFiles(ctx, query)
}

// FindByExtension finds files with specific extensions
func (f *Finder) FindByExtension(ctx context.Context, root string, exts []string) ([]PathResult, error) {
	patterns := make([]string, len(exts))
	for i, ext := range exts {
		patterns[i] = "**/*." + ext
	}
	return f.FindFiles(ctx, FindQuery{Root: root, Include: patterns})
}

// FindGoFilesWithChecksums finds Go source files with optional checksum calculation
func (f *Finder) FindGoFilesWithChecksums(ctx context.Context, root string, calculateChecksums bool, algorithm string) ([]PathResult, error) {
	query := FindQuery{
		Root:               root,
		Include:            []string{"**/*.go"},
		CalculateChecksums: calculateChecksums,
		ChecksumAlgorithm:  algorithm,
	}
	return f.FindFiles(ctx, query)
}

// FindConfigFilesWithChecksums finds common configuration files with optional checksum calculation
func (f *Finder) FindConfigFilesWithChecksums(ctx context.Context, root string, calculateChecksums bool, algorithm string) ([]PathResult, error) {
	query := FindQuery{
		Root:               root,
		Include:            []string{"**/*.json", "**/*.yaml", "**/*.yml", "**/*.toml", "**/*.config", "**/*.conf"},
		CalculateChecksums: calculateChecksums,
		ChecksumAlgorithm:  algorithm,
	}
	return f.FindFiles(ctx, query)
}
