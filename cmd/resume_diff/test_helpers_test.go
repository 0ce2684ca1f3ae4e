package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/resume-diff/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

const (
	originalResume  = `{"__type__": "Resume", "name": "Ada", "title": "Engineer", "skills": ["Go"]}`
	optimizedResume = `{"__type__": "Resume", "name": "Ada", "title": "Senior Engineer", "skills": ["Go", "Kubernetes"]}`
	changeSet       = `{
		"values_changed": {"root['title']": {"old_value": "Engineer", "new_value": "Senior Engineer"}},
		"iterable_item_added": {"root['skills'][1]": "Kubernetes"}
	}`
	resultDocument = `{
		"initial_score": 61,
		"final_score": 84,
		"summary": "Closer match to the platform role",
		"strengths": ["Go"],
		"weaknesses": ["No frontend"],
		"diff": {
			"original": {"title": "Engineer", "skills": ["Go"]},
			"optimized": {"title": "Senior Engineer", "skills": ["Go", "Kubernetes"]},
			"changes": {
				"values_changed": {"root['title']": {"old_value": "Engineer", "new_value": "Senior Engineer"}},
				"iterable_item_added": {"root['skills'][1]": "Kubernetes"}
			}
		}
	}`
)

// writeFixture writes content to a file in a per-test temp dir.
func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// execute runs the root command in-process with fresh flag values.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(config.EnvConfigPath, "")
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
