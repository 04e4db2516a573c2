package handlers

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/xolan/tally/internal/cli"
	"github.com/xolan/tally/internal/report"
	"github.com/xolan/tally/internal/service"
)

// exportRow is one charge code in machine-readable export output.
type exportRow struct {
	Identifier  string  `json:"identifier"`
	Description string  `json:"description,omitempty"`
	Seconds     int64   `json:"seconds"`
	Hours       float64 `json:"hours"`
}

// exportDocument is the JSON export envelope.
type exportDocument struct {
	From         time.Time   `json:"from"`
	To           time.Time   `json:"to"`
	AsOf         time.Time   `json:"as_of"`
	Codes        []exportRow `json:"codes"`
	TotalSeconds int64       `json:"total_seconds"`
}

func buildExport(deps *cli.Deps, identifiers []string, spec service.DateRangeSpec) (*report.Summary, bool) {
	services := openServices(deps)
	if services == nil {
		return nil, false
	}

	summary, _, err := services.Report.Summarize(identifiers, spec, deps.Now(), report.SortByIdentifier)
	if err != nil {
		reportReportError(deps, err)
		return nil, false
	}
	return summary, true
}

// ExportCSV writes per-code totals for the range as CSV to stdout.
func ExportCSV(deps *cli.Deps, identifiers []string, spec service.DateRangeSpec) {
	summary, ok := buildExport(deps, identifiers, spec)
	if !ok {
		return
	}

	writer := csv.NewWriter(deps.Stdout)
	rows := [][]string{{"identifier", "description", "seconds", "hours"}}
	for _, row := range summary.Rows {
		rows = append(rows, []string{
			row.Identifier,
			row.Description,
			strconv.FormatInt(row.Seconds(), 10),
			strconv.FormatFloat(row.Hours(), 'f', 4, 64),
		})
	}
	if err := writer.WriteAll(rows); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to write CSV output")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
	}
}

// ExportJSON writes per-code totals for the range as JSON to stdout.
func ExportJSON(deps *cli.Deps, identifiers []string, spec service.DateRangeSpec) {
	summary, ok := buildExport(deps, identifiers, spec)
	if !ok {
		return
	}

	doc := exportDocument{
		From:  summary.Window.Start,
		To:    summary.Window.End,
		AsOf:  summary.AsOf,
		Codes: []exportRow{},
	}
	for _, row := range summary.Rows {
		doc.Codes = append(doc.Codes, exportRow{
			Identifier:  row.Identifier,
			Description: row.Description,
			Seconds:     row.Seconds(),
			Hours:       row.Hours(),
		})
		doc.TotalSeconds += row.Seconds()
	}

	encoder := json.NewEncoder(deps.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to write JSON output")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
	}
}
