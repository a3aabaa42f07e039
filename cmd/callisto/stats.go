package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"mercator-hq/callisto/pkg/cli"
	"mercator-hq/callisto/pkg/rpsl/parser"
	"mercator-hq/callisto/pkg/rpsl/source"
)

var statsFlags struct {
	format  string
	lenient bool
}

var statsCmd = &cobra.Command{
	Use:   "stats FILE",
	Short: "Summarize a registry dump",
	Long: `Count the objects and attributes in an RPSL registry dump, per class.

Examples:
  callisto stats ripe.db.gz
  callisto stats ripe.db --format json
  callisto stats ripe.db --format csv > stats.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVar(&statsFlags.format, "format", "text", "output format: text, json, csv")
	statsCmd.Flags().BoolVar(&statsFlags.lenient, "lenient", false, "skip malformed lines instead of failing")
}

// ClassStats is the per-class slice of a stats run.
type ClassStats struct {
	Class      string `json:"class"`
	Objects    int    `json:"objects"`
	Attributes int    `json:"attributes"`
}

// StatsResult is the output of the stats command.
type StatsResult struct {
	Path         string       `json:"path"`
	Objects      int          `json:"objects"`
	Attributes   int          `json:"attributes"`
	SkippedLines int          `json:"skipped_lines,omitempty"`
	Classes      []ClassStats `json:"classes"`
}

// Headers implements cli.Tabular.
func (r *StatsResult) Headers() []string {
	return []string{"class", "objects", "attributes"}
}

// Rows implements cli.Tabular.
func (r *StatsResult) Rows() [][]string {
	rows := make([][]string, 0, len(r.Classes))
	for _, c := range r.Classes {
		rows = append(rows, []string{c.Class, strconv.Itoa(c.Objects), strconv.Itoa(c.Attributes)})
	}
	return rows
}

// String renders the text format.
func (r *StatsResult) String() string {
	out := fmt.Sprintf("%s: %d objects, %d attributes", r.Path, r.Objects, r.Attributes)
	if r.SkippedLines > 0 {
		out += fmt.Sprintf(" (%d lines skipped)", r.SkippedLines)
	}
	for _, c := range r.Classes {
		out += fmt.Sprintf("\n  %-16s %8d objects %10d attributes", c.Class, c.Objects, c.Attributes)
	}
	return out
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return cli.NewConfigError("", err.Error())
	}
	if err := setupLogging(cfg); err != nil {
		return err
	}

	rc, err := source.Open(args[0])
	if err != nil {
		return cli.NewCommandError("stats", err)
	}
	defer rc.Close()

	result, err := collectStats(rc, args[0], statsFlags.lenient)
	if err != nil {
		return cli.NewCommandError("stats", err)
	}

	formatter := cli.NewFormatter(cli.OutputFormat(statsFlags.format))
	return formatter.FormatTo(os.Stdout, result)
}

func collectStats(r io.Reader, path string, lenient bool) (*StatsResult, error) {
	reader := parser.NewReader(r).WithLenient(lenient)

	type counts struct{ objects, attributes int }
	perClass := make(map[string]*counts)

	result := &StatsResult{Path: path}
	for {
		obj, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		result.Objects++
		result.Attributes += obj.Len()

		c := perClass[obj.Class()]
		if c == nil {
			c = &counts{}
			perClass[obj.Class()] = c
		}
		c.objects++
		c.attributes += obj.Len()
	}
	result.SkippedLines = reader.Skipped().Count()

	for class, c := range perClass {
		result.Classes = append(result.Classes, ClassStats{
			Class:      class,
			Objects:    c.objects,
			Attributes: c.attributes,
		})
	}
	sort.Slice(result.Classes, func(i, j int) bool {
		if result.Classes[i].Objects != result.Classes[j].Objects {
			return result.Classes[i].Objects > result.Classes[j].Objects
		}
		return result.Classes[i].Class < result.Classes[j].Class
	})
	return result, nil
}
