package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"dataqc/adapters/ingest"
	"dataqc/domain/quality"
	"dataqc/internal/analysis"
	apperrors "dataqc/internal/errors"
)

var (
	asJSON    bool
	verbose   bool
	rulesFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dataqc",
		Short: "Data-quality analysis for CSV and Excel files",
	}

	rootCmd.AddCommand(newScanCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// fileReport pairs a scanned file with its analysis result
type fileReport struct {
	Path   string                  `json:"path"`
	Result *quality.AnalysisResult `json:"result"`
}

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [files...]",
		Short: "Analyze data files for quality issues",
		Long: `Analyze one or more CSV/XLSX files and report per-column statistics,
duplicates, outliers, validation issues and a 0-100 quality score.

Example: dataqc scan orders.csv customers.xlsx --rules rules.json --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := loadRules(rulesFile)
			if err != nil {
				return err
			}

			// One analyzer call per file; every call owns its dataset,
			// so the files can be processed concurrently.
			reports := make([]fileReport, len(args))
			var g errgroup.Group
			for i, path := range args {
				i, path := i, path
				g.Go(func() error {
					result, err := analyzeFile(path, rules)
					if err != nil {
						return err
					}
					reports[i] = fileReport{Path: path, Result: result}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(reports)
			}
			for _, report := range reports {
				printReport(cmd, report)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the full report as JSON")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print per-column details")
	cmd.Flags().StringVar(&rulesFile, "rules", "", "JSON file with custom rules")
	return cmd
}

func analyzeFile(path string, rules []quality.CustomRule) (*quality.AnalysisResult, error) {
	reader := ingest.NewDataReader(path)
	data, err := reader.ReadData()
	if err != nil {
		return nil, apperrors.IngestError(path, err)
	}

	analyzer := analysis.New(analysis.DefaultConfig())
	rows := data.Rows
	if rows == nil {
		rows = []quality.Row{}
	}
	headers := data.Headers
	if headers == nil {
		headers = []string{}
	}
	result, err := analyzer.Analyze(rows, headers, rules)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return result, nil
}

func loadRules(path string) ([]quality.CustomRule, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}
	var rules []quality.CustomRule
	if err := json.Unmarshal(raw, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse rules file: %w", err)
	}
	return rules, nil
}

func printReport(cmd *cobra.Command, report fileReport) {
	out := cmd.OutOrStdout()
	result := report.Result

	fmt.Fprintf(out, "\nFile: %s\n", report.Path)
	fmt.Fprintf(out, "- Rows: %d, Columns: %d\n", result.TotalRows, result.TotalColumns)
	fmt.Fprintf(out, "- Quality score: %d/100\n", result.QualityScore)
	fmt.Fprintf(out, "- Duplicates: %d\n", result.Duplicates)
	fmt.Fprintf(out, "- Nulls: %d, Outliers: %d\n", result.TotalNulls(), result.OutlierCount())
	fmt.Fprintf(out, "- Issues: %d contextual, %d cross-field\n",
		len(result.ContextualIssues), len(result.CrossFieldIssues))
	for _, warning := range result.Warnings {
		fmt.Fprintf(out, "- Warning [%s]: %s\n", warning.Code, warning.Message)
	}
	for _, rr := range result.RuleResults {
		fmt.Fprintf(out, "- Rule %q: %d affected rows (%s)\n", rr.RuleName, len(rr.AffectedRows), rr.Severity)
	}

	if !verbose {
		return
	}
	columns := make([]string, 0, len(result.DataTypes))
	for column := range result.DataTypes {
		columns = append(columns, column)
	}
	sort.Strings(columns)
	for _, column := range columns {
		stats := result.Statistics[column]
		fmt.Fprintf(out, "\nColumn: %s\n", column)
		fmt.Fprintf(out, "  Type: %s\n", result.DataTypes[column])
		fmt.Fprintf(out, "  Non-null: %d, Distinct: %d, Nulls: %d\n",
			stats.Count, stats.Distinct, result.NullValues[column])
		if stats.Mean != nil {
			fmt.Fprintf(out, "  Min: %g, Max: %g, Mean: %g, Median: %g\n",
				*stats.Min, *stats.Max, *stats.Mean, *stats.Median)
		}
		if stats.MostCommon != nil {
			fmt.Fprintf(out, "  Most common: %q, Avg length: %.1f\n",
				*stats.MostCommon, *stats.AvgLength)
		}
	}
}
