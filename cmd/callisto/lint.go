package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"mercator-hq/callisto/pkg/cli"
	"mercator-hq/callisto/pkg/rpsl/parser"
	"mercator-hq/callisto/pkg/rpsl/rpslerr"
	"mercator-hq/callisto/pkg/rpsl/schema"
	"mercator-hq/callisto/pkg/rpsl/source"
)

var lintFlags struct {
	schemaPath string
	format     string
}

var lintCmd = &cobra.Command{
	Use:   "lint FILE...",
	Short: "Check registry dumps for malformed content",
	Long: `Check RPSL registry dumps for malformed lines, reporting every
problem with its line and object position.

With a schema declaration, objects are additionally checked against the
schema, so duplicate values for single-valued attributes are reported too.

The exit status is non-zero when any file has problems.

Examples:
  # Syntax check
  callisto lint ripe.db

  # Syntax and schema check, JSON output for CI
  callisto lint ripe.db --schema route.yaml --format json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLint,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.schemaPath, "schema", "s", "", "YAML schema declaration to check against")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json")
}

// LintResult is the outcome for one linted file.
type LintResult struct {
	Path     string   `json:"path"`
	Objects  int      `json:"objects"`
	Problems []string `json:"problems"`
}

func runLint(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return cli.NewConfigError("", err.Error())
	}
	if err := setupLogging(cfg); err != nil {
		return err
	}

	var sch *schema.Schema
	if lintFlags.schemaPath != "" {
		sch, err = schema.Load(lintFlags.schemaPath)
		if err != nil {
			return cli.NewConfigError("schema", err.Error())
		}
	}

	results := make([]*LintResult, 0, len(args))
	problems := 0
	for _, path := range args {
		result, err := lintFile(path, sch)
		if err != nil {
			return cli.NewCommandError("lint", err)
		}
		problems += len(result.Problems)
		results = append(results, result)
	}

	if lintFlags.format == "json" {
		formatter := cli.NewFormatter(cli.FormatJSON)
		if err := formatter.FormatTo(os.Stdout, results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if len(r.Problems) == 0 {
				fmt.Printf("✓ %s: %d objects\n", r.Path, r.Objects)
				continue
			}
			fmt.Printf("✗ %s: %d problem(s)\n", r.Path, len(r.Problems))
			for _, p := range r.Problems {
				fmt.Printf("    %s\n", p)
			}
		}
	}

	if problems > 0 {
		return cli.NewCommandError("lint", fmt.Errorf("%d problem(s) found", problems))
	}
	return nil
}

// lintFile reads one dump leniently so every problem is collected rather
// than only the first.
func lintFile(path string, sch *schema.Schema) (*LintResult, error) {
	rc, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	result := &LintResult{Path: path, Problems: []string{}}
	reader := parser.NewReader(rc).WithLenient(true)

	ordinal := 0
	for {
		obj, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		ordinal++
		result.Objects++
		if sch == nil {
			continue
		}
		if _, perr := schema.Project(obj, sch); perr != nil {
			if e, ok := perr.(*rpslerr.Error); ok {
				e.Pos.Object = ordinal
			}
			result.Problems = append(result.Problems, perr.Error())
		}
	}

	for _, serr := range reader.Skipped().Errors {
		result.Problems = append(result.Problems, serr.Error())
	}
	return result, nil
}
