package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jonathan/resume-diff/internal/schemas"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a document against its JSON Schema",
	Long: `Validate an optimization result, change-set or resume JSON document against the schema shipped
with the tool (--kind), or against a JSON Schema file of your own (--schema).`,
	RunE: runValidate,
}

var (
	validateKind       string
	validateSchemaFile string
	validateInputFile  string
)

func init() {
	validateCmd.Flags().StringVarP(&validateKind, "kind", "k", "", "Document kind: "+strings.Join(schemas.KindNames(), ", "))
	validateCmd.Flags().StringVarP(&validateSchemaFile, "schema", "s", "", "Path to a JSON Schema file to validate against")
	validateCmd.Flags().StringVarP(&validateInputFile, "in", "i", "", "Path to JSON document")

	validateCmd.MarkFlagsOneRequired("kind", "schema")
	validateCmd.MarkFlagsMutuallyExclusive("kind", "schema")
	if err := validateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	if validateSchemaFile != "" {
		if err := validateAgainstFile(validateSchemaFile, validateInputFile, cmd.InOrStdin()); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Validation passed: %s matches %s\n", validateInputFile, validateSchemaFile)
		return nil
	}

	kind, err := schemas.ParseKind(validateKind)
	if err != nil {
		return err
	}

	data, err := readInput(validateInputFile, cmd.InOrStdin())
	if err != nil {
		return err
	}

	if err := schemas.ValidateDocument(kind, data); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Validation passed: %s is a valid %s document\n", validateInputFile, kind)
	return nil
}

// validateAgainstFile checks a document against a user-supplied schema. A
// document read from stdin is validated from memory.
func validateAgainstFile(schemaPath, docPath string, stdin io.Reader) error {
	if docPath != stdinPath {
		return schemas.ValidateJSON(schemaPath, docPath)
	}

	schema, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}
	doc, err := readInput(docPath, stdin)
	if err != nil {
		return err
	}
	return schemas.ValidateJSONString(string(schema), string(doc))
}
