package main

import (
	"fmt"

	"github.com/jonathan/resume-diff/internal/annotate"
	"github.com/spf13/cobra"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List the displayable sections of a resume",
	Long: `List the top-level sections of a resume JSON document in document order, with the label
each is shown under. Reserved type-marker keys are skipped. With --changes, only sections the
change-set touches are listed.`,
	RunE: runSections,
}

var (
	sectionsInputFile   string
	sectionsChangesFile string
)

func init() {
	sectionsCmd.Flags().StringVarP(&sectionsInputFile, "in", "i", "", "Path to resume JSON")
	sectionsCmd.Flags().StringVar(&sectionsChangesFile, "changes", "", "Path to change-set JSON (optional)")

	if err := sectionsCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(sectionsCmd)
}

func runSections(cmd *cobra.Command, _ []string) error {
	if err := checkStdin(sectionsInputFile, sectionsChangesFile); err != nil {
		return err
	}

	doc, err := loadResume(sectionsInputFile, cmd.InOrStdin())
	if err != nil {
		return err
	}

	raw, err := loadChanges(sectionsChangesFile, cmd.InOrStdin())
	if err != nil {
		return err
	}

	a := annotate.New(normalize(raw), appConfig.Options())
	sections := a.Sections(doc)

	if sectionsChangesFile != "" {
		changed := make(map[string]bool)
		for _, s := range a.ChangedSections() {
			changed[s] = true
		}
		filtered := sections[:0]
		for _, s := range sections {
			if changed[s] {
				filtered = append(filtered, s)
			}
		}
		sections = filtered
	}

	out := cmd.OutOrStdout()
	for _, s := range sections {
		_, _ = fmt.Fprintf(out, "%s\t%s\n", s, annotate.Label(s))
	}
	logger.Debug("listed sections", "count", len(sections))
	return nil
}
