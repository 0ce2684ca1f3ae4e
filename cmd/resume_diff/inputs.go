package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jonathan/resume-diff/internal/changeset"
	"github.com/jonathan/resume-diff/internal/resume"
	"github.com/jonathan/resume-diff/internal/types"
)

// stdinPath makes an input flag read standard input.
const stdinPath = "-"

// readInput reads path, or stdin when path is "-".
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == stdinPath {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return data, nil
}

// checkStdin rejects more than one input flag reading stdin, since the
// second read would see an empty stream.
func checkStdin(paths ...string) error {
	n := 0
	for _, p := range paths {
		if p == stdinPath {
			n++
		}
	}
	if n > 1 {
		return fmt.Errorf("only one input can be read from stdin (%q)", stdinPath)
	}
	return nil
}

// comparison holds the decoded inputs of one compare run.
type comparison struct {
	original  resume.Value
	optimized resume.Value
	changes   *changeset.Raw
	// result is set when the inputs came from a backend response.
	result *types.OptimizationResult
}

// inputPaths are the file flags shared by commands that take a comparison.
type inputPaths struct {
	result    string
	original  string
	optimized string
	changes   string
}

func (p inputPaths) validate() error {
	separate := p.original != "" || p.optimized != "" || p.changes != ""
	switch {
	case p.result != "" && separate:
		return fmt.Errorf("--result cannot be combined with --original/--optimized/--changes")
	case p.result == "" && !separate:
		return fmt.Errorf("must provide either --result or --original and --optimized")
	case p.result == "" && (p.original == "" || p.optimized == ""):
		return fmt.Errorf("--original and --optimized must be provided together")
	}
	return checkStdin(p.result, p.original, p.optimized, p.changes)
}

// loadComparison decodes either one backend response or separate files.
func loadComparison(p inputPaths, stdin io.Reader) (*comparison, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	if p.result != "" {
		data, err := readInput(p.result, stdin)
		if err != nil {
			return nil, err
		}
		result, err := types.ParseOptimizationResult(data)
		if err != nil {
			return nil, err
		}
		if result.Diff == nil {
			return nil, fmt.Errorf("optimization result has no diff")
		}
		original, optimized, changes, err := result.Diff.Documents()
		if err != nil {
			return nil, err
		}
		return &comparison{original: original, optimized: optimized, changes: changes, result: result}, nil
	}

	original, err := loadResume(p.original, stdin)
	if err != nil {
		return nil, fmt.Errorf("original: %w", err)
	}
	optimized, err := loadResume(p.optimized, stdin)
	if err != nil {
		return nil, fmt.Errorf("optimized: %w", err)
	}
	changes, err := loadChanges(p.changes, stdin)
	if err != nil {
		return nil, err
	}
	return &comparison{original: original, optimized: optimized, changes: changes}, nil
}

func loadResume(path string, stdin io.Reader) (resume.Value, error) {
	data, err := readInput(path, stdin)
	if err != nil {
		return nil, err
	}
	return resume.Parse(data)
}

// loadChanges reads a change-set file; no path means no changes.
func loadChanges(path string, stdin io.Reader) (*changeset.Raw, error) {
	if path == "" {
		return &changeset.Raw{}, nil
	}
	data, err := readInput(path, stdin)
	if err != nil {
		return nil, err
	}
	raw, err := types.ChangesFromDocument(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode changes: %w", err)
	}
	return raw, nil
}

// normalize builds the change index and logs every entry it had to ignore.
func normalize(raw *changeset.Raw) *changeset.Index {
	ix := changeset.Normalize(raw)
	for _, s := range ix.Skipped() {
		logger.Warn("ignored change-set entry", "field", s.Field, "path", s.Path, "reason", s.Reason)
	}
	return ix
}
