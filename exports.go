package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ExportFormat is a supported download/export file type
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
	ExportPDF  ExportFormat = "pdf"
	ExportHTML ExportFormat = "html"
)

// ParseExportFormat converts a user string to an ExportFormat
func ParseExportFormat(s string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case ExportCSV, ExportXLSX, ExportPDF, ExportHTML:
		return f, nil
	}
	return "", ValidationError{Field: "format", Message: fmt.Sprintf("unsupported export format %q (use csv, xlsx, pdf or html)", s)}
}

// ContentType returns the MIME type for the format
func (f ExportFormat) ContentType() string {
	switch f {
	case ExportCSV:
		return "text/csv; charset=utf-8"
	case ExportXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ExportPDF:
		return "application/pdf"
	case ExportHTML:
		return "text/html; charset=utf-8"
	}
	return "application/octet-stream"
}

// Report bundles everything a report generator needs for one run
type Report struct {
	Inputs      CalculationInputs
	Result      CalculationResult
	Comparison  Comparison
	Display     DisplayConfig
	Horizon     Horizon
	Sensitivity SensitivityConfig // Grid for the XLSX sensitivity sheet; zero uses the defaults
	GeneratedAt time.Time
}

// NewReport computes the comparison for in and wraps it for rendering
func NewReport(in CalculationInputs, display DisplayConfig, horizon Horizon) *Report {
	result := ComputeWithHorizon(in, horizon)
	return &Report{
		Inputs:      in,
		Result:      result,
		Comparison:  Compare(in, result),
		Display:     display,
		Horizon:     horizon,
		GeneratedAt: time.Now(),
	}
}

// Render produces the report in the requested format
func (r *Report) Render(format ExportFormat) ([]byte, error) {
	switch format {
	case ExportCSV:
		return r.CSV()
	case ExportXLSX:
		return GenerateXLSXReport(r)
	case ExportPDF:
		return GeneratePDFReport(r)
	case ExportHTML:
		return GenerateHTMLReport(r)
	}
	return nil, fmt.Errorf("unsupported export format %q", format)
}

// reportRows returns the metric rows shared by the tabular exports:
// metric name, Option A value, Option B value
func (r *Report) reportRows() [][3]string {
	a := FormatOption(OptionA, r.Result.A, r.Display)
	b := FormatOption(OptionB, r.Result.B, r.Display)
	return [][3]string{
		{"Total Cost", a.TotalCost, b.TotalCost},
		{"Cost per Lead", a.CostPerLead, b.CostPerLead},
		{"Deals Closed", a.DealsClosed, b.DealsClosed},
		{"Estimated GCI", a.EstimatedRevenue, b.EstimatedRevenue},
		{"Net ROI", a.NetROI, b.NetROI},
	}
}

// CSV renders inputs and both options as comma separated values
func (r *Report) CSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{{"Input", "Value"}}
	for _, field := range InputFields {
		records = append(records, []string{r.Display.Label(field), FormatNumber(r.Inputs.FieldValue(field))})
	}
	records = append(records, []string{}, []string{"Metric", OptionA.String(), OptionB.String()})
	for _, row := range r.reportRows() {
		records = append(records, []string{row[0], row[1], row[2]})
	}

	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("writing csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportFilename builds a unique file name such as
// "roi-comparison-2026-10-19-150405-1a2b3c4d.pdf"
func ExportFilename(format ExportFormat, at time.Time) string {
	id := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("roi-comparison-%s-%s.%s", at.Format("2006-01-02-150405"), id, format)
}

// WriteExport renders the report and saves it into dir, returning the
// absolute path of the written file
func WriteExport(r *Report, format ExportFormat, dir string) (string, error) {
	data, err := r.Render(format)
	if err != nil {
		return "", err
	}

	if dir == "" {
		dir = "exports"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	path := filepath.Join(dir, ExportFilename(format, r.GeneratedAt))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return path, nil
	}
	return abs, nil
}
