package main

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-diff/internal/config"
	"github.com/jonathan/resume-diff/internal/observability"
	"github.com/jonathan/resume-diff/internal/scoring"
	"github.com/jonathan/resume-diff/internal/types"
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Summarize the ATS score improvement of an optimization run",
	Long: `Show the original and optimized ATS scores with the change between them, and the
structured feedback. Scores come from a backend response (--result) or from --initial and --final.`,
	RunE: runScore,
}

var (
	scoreResultFile string
	scoreInitial    float64
	scoreFinal      float64
	scoreFeedback   string
	scoreFormat     string
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreResultFile, "result", "r", "", "Path to optimization result JSON")
	scoreCmd.Flags().Float64Var(&scoreInitial, "initial", 0, "Score of the original resume (0-100)")
	scoreCmd.Flags().Float64Var(&scoreFinal, "final", 0, "Score of the optimized resume (0-100)")
	scoreCmd.Flags().StringVar(&scoreFeedback, "feedback", "", "Feedback text to parse (Summary:, Strengths: [...], ...)")
	scoreCmd.Flags().StringVarP(&scoreFormat, "format", "f", config.FormatText, "Output format: text or json")

	rootCmd.AddCommand(scoreCmd)
}

// scoreReport is the json form of the score command.
type scoreReport struct {
	Improvement scoring.Improvement `json:"improvement"`
	Feedback    scoring.Feedback    `json:"feedback"`
}

func runScore(cmd *cobra.Command, _ []string) error {
	useResult := scoreResultFile != ""
	useScores := cmd.Flags().Changed("initial") || cmd.Flags().Changed("final")

	if useResult && useScores {
		return fmt.Errorf("cannot use --result with --initial/--final flags")
	}
	if !useResult && !(cmd.Flags().Changed("initial") && cmd.Flags().Changed("final")) {
		return fmt.Errorf("must provide either --result or both --initial and --final")
	}

	var report scoreReport
	if useResult {
		data, err := readInput(scoreResultFile, cmd.InOrStdin())
		if err != nil {
			return err
		}
		result, err := types.ParseOptimizationResult(data)
		if err != nil {
			return err
		}
		report.Improvement = scoring.Improve(result.InitialScore, result.FinalScore)
		report.Feedback = feedbackFromResult(result)
	} else {
		scores := types.OptimizationResult{InitialScore: scoreInitial, FinalScore: scoreFinal}
		if err := scores.Validate(); err != nil {
			return fmt.Errorf("invalid scores: %w", err)
		}
		report.Improvement = scoring.Improve(scoreInitial, scoreFinal)
		report.Feedback = scoring.ParseFeedback(scoreFeedback)
	}
	if cmd.Flags().Changed("feedback") && useResult {
		report.Feedback = scoring.ParseFeedback(scoreFeedback)
	}

	out := cmd.OutOrStdout()
	switch scoreFormat {
	case config.FormatJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal score: %w", err)
		}
		_, _ = fmt.Fprintln(out, string(data))
	case config.FormatText:
		p := observability.NewPrinter(out)
		p.PrintImprovement(report.Improvement)
		p.PrintFeedback(report.Feedback)
	default:
		return fmt.Errorf("unsupported format %q (want text or json)", scoreFormat)
	}
	return nil
}

// feedbackFromResult prefers the structured fields of a response and falls
// back to parsing its feedback text.
func feedbackFromResult(r *types.OptimizationResult) scoring.Feedback {
	if r.Summary == "" && len(r.Strengths) == 0 && len(r.Weaknesses) == 0 {
		return scoring.ParseFeedback(r.Feedback)
	}
	fb := scoring.Feedback{
		Summary:    r.Summary,
		Strengths:  append([]string{}, r.Strengths...),
		Weaknesses: append([]string{}, r.Weaknesses...),
	}
	return fb
}
