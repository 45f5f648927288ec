// Command verita validates JSON instances against JSON Schema documents and
// lints schema documents for common structural mistakes.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dlovans/verita/pkg/lint"
	"github.com/dlovans/verita/pkg/schema"
)

var logger = logrus.StandardLogger()

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "verita",
		Short: "JSON Schema validation engine (drafts 04, 06, 07, 2019-09)",
	}
	root.AddCommand(newValidateCmd())
	root.AddCommand(newLintCmd())
	return root
}

func newValidateCmd() *cobra.Command {
	var (
		schemaPath   string
		outputFormat string
		draft        string
		validateFmt  bool
		allowUnknown bool
	)

	cmd := &cobra.Command{
		Use:   "validate [instance.json]",
		Short: "Validate a JSON instance against a schema document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schemaRaw, err := os.ReadFile(schemaPath)
			if err != nil {
				return fmt.Errorf("reading schema: %w", err)
			}

			var instanceRaw []byte
			if len(args) == 1 {
				instanceRaw, err = os.ReadFile(args[0])
			} else {
				instanceRaw, err = io.ReadAll(os.Stdin)
			}
			if err != nil {
				return fmt.Errorf("reading instance: %w", err)
			}

			opts := schema.NewOptions(
				schema.WithDraft(draftFromFlag(draft)),
				schema.WithOutputFormat(outputFormatFromFlag(outputFormat)),
				schema.WithValidateFormat(validateFmt),
				schema.WithAllowUnknownFormats(allowUnknown),
				schema.WithLogger(logger),
			)

			doc, err := schema.ParseBytes(schemaRaw, opts)
			if err != nil {
				return fmt.Errorf("parsing schema: %w", err)
			}

			var instance any
			if err := json.Unmarshal(instanceRaw, &instance); err != nil {
				return fmt.Errorf("parsing instance: %w", err)
			}

			result := doc.Validate(instance, opts)
			report := schema.Format(result, opts.OutputFormat)

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return err
			}
			if !report.Valid {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&schemaPath, "schema", "", "path to the schema document (required)")
	cmd.Flags().StringVar(&outputFormat, "output", "detailed", "output format: flag, basic, detailed")
	cmd.Flags().StringVar(&draft, "draft", "2019-09", "default draft when the schema has no $schema: draft-04, draft-06, draft-07, 2019-09")
	cmd.Flags().BoolVar(&validateFmt, "validate-format", true, "treat \"format\" as an assertion rather than an annotation")
	cmd.Flags().BoolVar(&allowUnknown, "allow-unknown-formats", false, "don't fail on an unrecognized format name")
	cmd.MarkFlagRequired("schema")

	return cmd
}

func newLintCmd() *cobra.Command {
	var schemaPath string

	cmd := &cobra.Command{
		Use:   "lint [schema.json]",
		Short: "Statically check a schema document for common mistakes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw []byte
			var err error
			if schemaPath != "" {
				raw, err = os.ReadFile(schemaPath)
			} else if len(args) == 1 {
				raw, err = os.ReadFile(args[0])
			} else {
				raw, err = io.ReadAll(os.Stdin)
			}
			if err != nil {
				return fmt.Errorf("reading schema: %w", err)
			}

			result, err := lint.Run(string(raw))
			if err != nil {
				return err
			}

			if len(result.Issues) == 0 {
				fmt.Println("no issues found")
				return nil
			}
			for _, issue := range result.Issues {
				icon := "warning"
				if issue.Severity == "error" {
					icon = "error"
				}
				fmt.Printf("%s: %s [%s] %s\n", icon, issue.Path, issue.Keyword, issue.Message)
			}
			if !result.Valid {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&schemaPath, "file", "", "JSON schema file to lint (defaults to stdin or the positional argument)")
	return cmd
}

func draftFromFlag(s string) schema.Draft {
	switch s {
	case "draft-04", "04":
		return schema.Draft04
	case "draft-06", "06":
		return schema.Draft06
	case "draft-07", "07":
		return schema.Draft07
	default:
		return schema.Draft2019
	}
}

func outputFormatFromFlag(s string) schema.OutputFormat {
	switch s {
	case "flag":
		return schema.OutputFlag
	case "basic":
		return schema.OutputBasic
	default:
		return schema.OutputDetailed
	}
}
