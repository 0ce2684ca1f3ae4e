// Package observability provides structured logging and formatted output
// utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-diff/internal/annotate"
	"github.com/jonathan/resume-diff/internal/resume"
	"github.com/jonathan/resume-diff/internal/scoring"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// maxTextWidth bounds leaf values printed in the tree
	maxTextWidth = 72
)

// markers prefix tree lines by classification.
var markers = map[annotate.Classification]string{
	annotate.Added:     "+",
	annotate.Removed:   "-",
	annotate.Modified:  "~",
	annotate.Unchanged: " ",
}

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most width runes, ending in "..." when cut.
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

// PrintTree writes the annotated sections as an indented outline. Each line
// starts with a marker: + added, - removed, ~ modified.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintTree(nodes []*annotate.Node) {
	if len(nodes) == 0 {
		fmt.Fprintln(p.out, "No differences to show.")
		return
	}
	for i, n := range nodes {
		if i > 0 {
			fmt.Fprintln(p.out)
		}
		p.printNode(n, 0)
	}
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printNode(n *annotate.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	marker := markers[n.Classification]

	if !n.IsLeaf() {
		fmt.Fprintf(p.out, "%s %s%s\n", marker, indent, n.Label)
		for _, c := range n.Children {
			p.printNode(c, depth+1)
		}
		return
	}

	fmt.Fprintf(p.out, "%s %s%s: %s\n", marker, indent, n.Label, truncate(leafText(n), maxTextWidth))
}

// leafText renders the value of a leaf, with before and after for modified
// nodes.
func leafText(n *annotate.Node) string {
	if n.Classification != annotate.Modified || (n.Old == nil && n.New == nil) {
		return n.Text
	}
	text := fmt.Sprintf("%s → %s", resume.Display(n.Old), resume.Display(n.New))
	if n.OldType != "" || n.NewType != "" {
		text += fmt.Sprintf(" (%s → %s)", n.OldType, n.NewType)
	}
	return text
}

// PrintSummary outputs the classification counts for the whole comparison.
func (p *Printer) PrintSummary(s annotate.Summary) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("+ Added:     %d\n", s.Added))
	sb.WriteString(fmt.Sprintf("- Removed:   %d\n", s.Removed))
	sb.WriteString(fmt.Sprintf("~ Modified:  %d\n", s.Modified))
	sb.WriteString(fmt.Sprintf("  Unchanged: %d", s.Unchanged))

	p.printBox("CHANGE SUMMARY", sb.String())
}

// PrintImprovement outputs the before and after scores.
func (p *Printer) PrintImprovement(imp scoring.Improvement) {
	arrow := "▲"
	if imp.Direction == scoring.DirectionDown {
		arrow = "▼"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Original:  %.0f\n", imp.Initial))
	sb.WriteString(fmt.Sprintf("Optimized: %.0f\n", imp.Final))
	sb.WriteString(fmt.Sprintf("Change:    %s %+.0f (%+d%%)", arrow, imp.Delta, imp.Percent))

	p.printBox("ATS SCORE", sb.String())
}

// PrintFeedback outputs the structured feedback sections that are present.
func (p *Printer) PrintFeedback(fb scoring.Feedback) {
	var sb strings.Builder

	if fb.Summary != "" {
		sb.WriteString(fmt.Sprintf("Summary: %s\n\n", fb.Summary))
	}
	writeList(&sb, "Strengths", "✓", fb.Strengths)
	writeList(&sb, "Weaknesses", "⚠", fb.Weaknesses)
	if fb.ATSScore != nil {
		sb.WriteString(fmt.Sprintf("ATS Score:  %d\n", *fb.ATSScore))
	}
	if fb.Iterations != nil {
		sb.WriteString(fmt.Sprintf("Iterations: %d\n", *fb.Iterations))
	}

	content := strings.TrimRight(sb.String(), "\n")
	if content == "" {
		return
	}
	p.printBox("FEEDBACK", content)
}

func writeList(sb *strings.Builder, title, bullet string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(title + ":\n")
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  %s %s\n", bullet, items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
	sb.WriteString("\n")
}

// PrintSkipped lists change-set entries that were ignored.
func (p *Printer) PrintSkipped(skipped []string) {
	if len(skipped) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Ignored %d change-set entries:\n\n", len(skipped)))
	count := min(len(skipped), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", skipped[i]))
	}
	if len(skipped) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more", len(skipped)-maxItemsToShow))
	}

	p.printBox("SKIPPED CHANGES", strings.TrimSuffix(sb.String(), "\n"))
}
