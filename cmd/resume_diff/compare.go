package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jonathan/resume-diff/internal/annotate"
	"github.com/jonathan/resume-diff/internal/config"
	"github.com/jonathan/resume-diff/internal/diffpath"
	"github.com/jonathan/resume-diff/internal/observability"
	"github.com/jonathan/resume-diff/internal/scoring"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Show the annotated comparison of an original and an optimized resume",
	Long: `Render both resumes as one tree of labeled fields, each marked added (+), removed (-),
modified (~) or unchanged, according to the change-set produced by the structural diff.

Inputs are either a backend response (--result) or separate files (--original, --optimized
and optionally --changes). Use "-" to read one of the files from stdin. --path narrows the
output to a single field, for example root['experience'][0].`,
	RunE: runCompare,
}

var (
	compareResultFile    string
	compareOriginalFile  string
	compareOptimizedFile string
	compareChangesFile   string
	compareFormat        string
	compareChangedOnly   bool
	compareOutputFile    string
	comparePath          string
)

func init() {
	compareCmd.Flags().StringVarP(&compareResultFile, "result", "r", "", "Path to optimization result JSON (contains diff.original, diff.optimized, diff.changes)")
	compareCmd.Flags().StringVar(&compareOriginalFile, "original", "", "Path to original resume JSON")
	compareCmd.Flags().StringVar(&compareOptimizedFile, "optimized", "", "Path to optimized resume JSON")
	compareCmd.Flags().StringVar(&compareChangesFile, "changes", "", "Path to change-set JSON (optional)")
	compareCmd.Flags().StringVarP(&compareFormat, "format", "f", config.FormatText, "Output format: text, json or yaml")
	compareCmd.Flags().BoolVar(&compareChangedOnly, "changed-only", false, "Only show sections the change-set touches")
	compareCmd.Flags().StringVarP(&compareOutputFile, "out", "o", "", "Write output to file instead of stdout")
	compareCmd.Flags().StringVar(&comparePath, "path", "", "Only show the field at this diff path")

	rootCmd.AddCommand(compareCmd)
}

// compareReport is the json and yaml form of a comparison.
type compareReport struct {
	Sections    []*annotate.Node     `json:"sections" yaml:"sections"`
	Summary     annotate.Summary     `json:"summary" yaml:"summary"`
	Improvement *scoring.Improvement `json:"improvement,omitempty" yaml:"improvement,omitempty"`
	Skipped     []string             `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

func runCompare(cmd *cobra.Command, _ []string) error {
	format := appConfig.Format
	if cmd.Flags().Changed("format") {
		format = compareFormat
	}
	if format != config.FormatText && format != config.FormatJSON && format != config.FormatYAML {
		return fmt.Errorf("unsupported format %q (want text, json or yaml)", format)
	}

	var focus diffpath.Path
	if comparePath != "" {
		p, err := diffpath.Parse(comparePath)
		if err != nil {
			return fmt.Errorf("invalid --path: %w", err)
		}
		if _, ok := p.Section(); !ok {
			return fmt.Errorf("invalid --path: %s does not name a section", comparePath)
		}
		focus = p
	}

	opts := appConfig.Options()
	if cmd.Flags().Changed("changed-only") {
		opts.ChangedOnly = compareChangedOnly
	}

	start := time.Now()
	cmp, err := loadComparison(inputPaths{
		result:    compareResultFile,
		original:  compareOriginalFile,
		optimized: compareOptimizedFile,
		changes:   compareChangesFile,
	}, cmd.InOrStdin())
	if err != nil {
		return err
	}
	logger.Debug("decoded inputs", "changes", cmp.changes.Len(), "elapsed", time.Since(start))

	ix := normalize(cmp.changes)
	nodes := annotate.New(ix, opts).Annotate(cmp.original, cmp.optimized)
	count := 0
	for _, n := range nodes {
		count += n.Count()
	}
	logger.Debug("annotated comparison", "sections", len(nodes), "nodes", count, "elapsed", time.Since(start))

	if focus != nil {
		nodes, err = focusNodes(nodes, focus)
		if err != nil {
			return err
		}
	}

	report := compareReport{
		Sections: nodes,
		Summary:  annotate.Summarize(nodes),
	}
	if report.Sections == nil {
		report.Sections = []*annotate.Node{}
	}
	if cmp.result != nil {
		imp := scoring.Improve(cmp.result.InitialScore, cmp.result.FinalScore)
		report.Improvement = &imp
	}
	for _, s := range ix.Skipped() {
		report.Skipped = append(report.Skipped, s.String())
	}

	out := cmd.OutOrStdout()
	if compareOutputFile != "" {
		f, err := os.Create(compareOutputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	if err := writeReport(out, format, report); err != nil {
		return err
	}
	if compareOutputFile != "" {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully wrote comparison to %s\n", compareOutputFile)
	}
	return nil
}

// focusNodes returns the single node at path, looked up in its section's tree.
func focusNodes(nodes []*annotate.Node, path diffpath.Path) ([]*annotate.Node, error) {
	for _, n := range nodes {
		if found := n.Find(path); found != nil {
			return []*annotate.Node{found}, nil
		}
	}
	return nil, fmt.Errorf("path %s is not in the comparison", path)
}

func writeReport(w io.Writer, format string, report compareReport) error {
	switch format {
	case config.FormatJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal comparison: %w", err)
		}
		if _, err := fmt.Fprintln(w, string(data)); err != nil {
			return fmt.Errorf("failed to write comparison: %w", err)
		}
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to marshal comparison: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to write comparison: %w", err)
		}
	default:
		p := observability.NewPrinter(w)
		if report.Improvement != nil {
			p.PrintImprovement(*report.Improvement)
		}
		p.PrintTree(report.Sections)
		p.PrintSummary(report.Summary)
		p.PrintSkipped(report.Skipped)
	}
	return nil
}
