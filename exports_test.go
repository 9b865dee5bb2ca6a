package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testReport(t *testing.T, mutate func(*CalculationInputs)) *Report {
	t.Helper()
	in := defaultScenario()
	if mutate != nil {
		mutate(&in)
	}
	r := NewReport(in, DisplayConfig{}, DefaultHorizon)
	r.GeneratedAt = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	return r
}

func TestParseExportFormat(t *testing.T) {
	for _, s := range []string{"csv", "XLSX", " pdf ", "Html"} {
		f, err := ParseExportFormat(s)
		require.NoError(t, err, s)
		assert.NotEqual(t, "application/octet-stream", f.ContentType())
	}

	_, err := ParseExportFormat("docx")
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "format", verr.Field)
	assert.Equal(t, "application/octet-stream", ExportFormat("docx").ContentType())
}

func TestNewReport(t *testing.T) {
	r := testReport(t, nil)
	assert.Equal(t, Compute(defaultScenario()), r.Result)
	assert.Equal(t, "B", r.Comparison.Better)
	assert.Equal(t, DefaultHorizon, r.Horizon)
}

func TestReport_CSV(t *testing.T) {
	data, err := testReport(t, nil).CSV()
	require.NoError(t, err)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"Input", "Value"}, records[0])
	assert.Equal(t, []string{DefaultLabels["service_fee_a"], "2000.00"}, records[1])
	assert.Contains(t, records, []string{"Metric", "Option A", "Option B"})
	assert.Contains(t, records, []string{"Total Cost", "$33,000.00", "$10,000.00"})
	assert.Contains(t, records, []string{"Net ROI", "$51,375.00", "$74,375.00"})
}

func TestReport_CSV_NonFinite(t *testing.T) {
	data, err := testReport(t, func(in *CalculationInputs) { in.LeadCost = 0 }).CSV()
	require.NoError(t, err)
	assert.Contains(t, string(data), "∞")
}

func TestGeneratePDFReport(t *testing.T) {
	for _, theme := range []Theme{ThemeLight, ThemeDark} {
		t.Run(string(theme), func(t *testing.T) {
			r := testReport(t, nil)
			r.Display.Theme = theme
			data, err := r.Render(ExportPDF)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
		})
	}
}

func TestGeneratePDFReport_NonFiniteAndCurrency(t *testing.T) {
	r := testReport(t, func(in *CalculationInputs) { in.LeadsPerDeal = 0 })
	r.Display.CurrencySymbol = "€"
	data, err := GeneratePDFReport(r)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestPDFText(t *testing.T) {
	assert.Equal(t, "\xa3100", pdfText("£100"))
	assert.Equal(t, "Inf", pdfText("∞"))
	assert.Equal(t, "12 months x 30 days", pdfText("12 months × 30 days"))
}

func TestGenerateXLSXReport(t *testing.T) {
	data, err := testReport(t, nil).Render(ExportXLSX)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{xlsxComparisonSheet, xlsxSensitivitySheet}, f.GetSheetList())

	title, err := f.GetCellValue(xlsxComparisonSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Lead Gen ROI Calculator", title)

	rows, err := f.GetRows(xlsxComparisonSheet)
	require.NoError(t, err)
	var found bool
	for _, row := range rows {
		if len(row) == 3 && row[0] == "Total Cost" {
			found = true
			assert.Equal(t, "33,000.00", row[1])
			assert.Equal(t, "10,000.00", row[2])
		}
	}
	assert.True(t, found, "total cost row")

	corner, err := f.GetCellValue(xlsxSensitivitySheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "23000", corner)
}

func TestGenerateXLSXReport_NonFinite(t *testing.T) {
	data, err := testReport(t, func(in *CalculationInputs) { in.LeadCost = 0 }).Render(ExportXLSX)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(xlsxComparisonSheet)
	require.NoError(t, err)
	for _, row := range rows {
		if len(row) == 3 && row[0] == "Leads" {
			assert.Equal(t, "∞", row[1])
		}
	}
}

func TestGenerateHTMLReport(t *testing.T) {
	r := testReport(t, nil)
	r.Display.Theme = ThemeLight
	data, err := r.Render(ExportHTML)
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, "light", doc.Find("html").AttrOr("data-theme", ""))
	assert.Equal(t, "Lead Gen ROI Calculator", doc.Find("title").Text())
	assert.Equal(t, 2, doc.Find("table").Length(), "inputs and results tables")

	var netROI []string
	doc.Find("table").Eq(1).Find("tr").Each(func(_ int, s *goquery.Selection) {
		if strings.TrimSpace(s.Find("td").First().Text()) == "Net ROI" {
			s.Find("td").Each(func(_ int, td *goquery.Selection) { netROI = append(netROI, td.Text()) })
		}
	})
	assert.Equal(t, []string{"Net ROI", "$51,375.00", "$74,375.00"}, netROI)
	assert.Contains(t, doc.Find("main").Text(), "Option B returns more over the year")
	assert.Zero(t, doc.Find("blockquote").Length())
}

func TestGenerateHTMLReport_Warning(t *testing.T) {
	data, err := testReport(t, func(in *CalculationInputs) { in.LeadCost = 0 }).Render(ExportHTML)
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find("blockquote").Length())
	assert.Contains(t, doc.Find("main").Text(), "No clear winner")
}

func TestReport_MarkdownEscapesLabels(t *testing.T) {
	r := testReport(t, nil)
	r.Display.Labels = map[string]string{"lead_cost": "Cost | per lead"}
	assert.Contains(t, r.Markdown(), `Cost \| per lead`)
}

func TestExportFilename(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 30, 5, 0, time.UTC)
	name := ExportFilename(ExportPDF, at)
	assert.Regexp(t, regexp.MustCompile(`^roi-comparison-2026-03-14-093005-[0-9a-f]{8}\.pdf$`), name)
	assert.NotEqual(t, name, ExportFilename(ExportPDF, at), "unique per call")
}

func TestWriteExport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "exports")
	path, err := WriteExport(testReport(t, nil), ExportCSV, dir)
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(path))
	assert.Equal(t, dir, filepath.Dir(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Total Cost")
}

func TestRender_UnknownFormat(t *testing.T) {
	_, err := testReport(t, nil).Render(ExportFormat("docx"))
	assert.Error(t, err)
}
