package main

import (
	"fmt"

	"github.com/jonathan/resume-diff/internal/annotate"
	"github.com/jonathan/resume-diff/internal/diffpath"
	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify PATH...",
	Short: "Print the classification of change-set paths",
	Long: `Print how each path is classified by the change-set: modified, added, removed or unchanged.
Paths use the diff tool's notation, for example root['experience'][0]['title'].`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

var classifyChangesFile string

func init() {
	classifyCmd.Flags().StringVar(&classifyChangesFile, "changes", "", "Path to change-set JSON")

	if err := classifyCmd.MarkFlagRequired("changes"); err != nil {
		panic(fmt.Sprintf("failed to mark changes flag as required: %v", err))
	}

	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	raw, err := loadChanges(classifyChangesFile, cmd.InOrStdin())
	if err != nil {
		return err
	}
	ix := normalize(raw)

	out := cmd.OutOrStdout()
	for _, arg := range args {
		name := arg
		if path, err := diffpath.Parse(arg); err != nil {
			logger.Warn("invalid path", "path", arg, "error", err)
		} else {
			name = path.String()
		}
		_, _ = fmt.Fprintf(out, "%s\t%s\n", name, annotate.ClassifyString(arg, ix))
	}
	return nil
}
