package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	triagemapper "github.com/Apurer/sales-backoffice/internal/domains/backoffice/adapters/http/mapper"
	salesmapper "github.com/Apurer/sales-backoffice/internal/domains/sales/adapters/http/mapper"
	salesdomain "github.com/Apurer/sales-backoffice/internal/domains/sales/domain"
	"github.com/Apurer/sales-backoffice/internal/domains/sales/triage"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify a JSON export of sales",
		Long: `Reads a JSON array of sales and prints the triage report: one classification per
sale, ordered by urgency, plus aggregate metrics and bucket counts.

Examples:
  triagectl classify --input sales.json
  triagectl classify --input - --as-of 2024-06-12T10:00:00Z < sales.json`,
		RunE: runClassify,
	}
	cmd.Flags().StringP("input", "i", "-", "path of the JSON export, - for stdin")
	cmd.Flags().String("as-of", "", "RFC3339 instant to classify against (default: now)")
	_ = viper.BindPFlag("classify.input", cmd.Flags().Lookup("input"))
	_ = viper.BindPFlag("classify.as_of", cmd.Flags().Lookup("as-of"))
	return cmd
}

func runClassify(cmd *cobra.Command, _ []string) error {
	asOf, err := parseAsOf(viper.GetString("classify.as_of"))
	if err != nil {
		return err
	}
	in, closeInput, err := openInput(cmd, viper.GetString("classify.input"))
	if err != nil {
		return err
	}
	defer closeInput()

	report, err := classifyExport(in, asOf)
	if err != nil {
		return err
	}
	slog.Debug("classified export", slog.Int("sales", report.Metrics.TotalCases), slog.Time("asOf", report.AsOf))
	return writeJSON(cmd.OutOrStdout(), triagemapper.FromReport(report))
}

// classifyExport decodes sales and classifies them against asOf. Invalid rows are reported as
// unclassifiable rather than rejected; only a payload that is not a JSON array fails.
func classifyExport(r io.Reader, asOf time.Time) (triage.Report, error) {
	var rows []json.RawMessage
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return triage.Report{}, fmt.Errorf("decode sales: %w", err)
	}
	sales := make([]*salesdomain.Sale, 0, len(rows))
	for i, raw := range rows {
		sales = append(sales, decodeRow(i, raw))
	}
	report := triage.New(asOf).Evaluate(sales)
	triage.SortResults(report.Results)
	return report, nil
}

// decodeRow converts one export row. A row that does not decode keeps whatever id it carries
// and nothing else, so the classifier fails it closed.
func decodeRow(index int, raw json.RawMessage) *salesdomain.Sale {
	var row salesmapper.Sale
	err := json.Unmarshal(raw, &row)
	if err == nil {
		return salesmapper.ToDomainSale(row)
	}
	var ident struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(raw, &ident)
	slog.Warn("export row is malformed", slog.Int("row", index), slog.String("id", ident.ID), slog.String("error", err.Error()))
	return &salesdomain.Sale{ID: ident.ID}
}

func openInput(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func parseAsOf(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now().UTC(), nil
	}
	asOf, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("--as-of must be RFC3339: %w", err)
	}
	return asOf.UTC(), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
