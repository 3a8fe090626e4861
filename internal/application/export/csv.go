package export

import (
	"strings"

	"github.com/sangkips/beatlicense-api/internal/domain/enum"
	"github.com/sangkips/beatlicense-api/internal/domain/report"
)

// CSVExporter flattens a Report into a sectioned CSV document
type CSVExporter struct {
	format Formatter
}

// NewCSVExporter creates a CSV exporter using currency as the money prefix
func NewCSVExporter(currency string) *CSVExporter {
	return &CSVExporter{format: Formatter{CurrencySymbol: currency}}
}

// Render returns the CSV text. Sections are Summary, Categories, Earners and
// Days, separated by a blank line. Every cell is quoted.
func (e *CSVExporter) Render(r *report.Report) string {
	var lines []string
	add := func(cells ...string) {
		lines = append(lines, csvRow(cells))
	}
	f := e.format

	add("Summary")
	add("Metric", "Value")
	add("Start Date", r.DateRange.StartDate())
	add("End Date", r.DateRange.EndDate())
	add("Total Revenue", f.Money(r.Totals.TotalRevenue))
	add("Total Sales", f.Count(r.Totals.TotalSales))
	add("Average Sale", f.Money(r.Totals.AverageSale))
	add("Earners", f.Count(r.Totals.EarnerCount))
	add("Unattributed Sales", f.Count(r.Totals.UnattributedSales))
	add("Unattributed Revenue", f.Money(r.Totals.UnattributedRevenue))
	lines = append(lines, "")

	add("Categories")
	add("Category", "Sales", "Revenue", "Percentage")
	for _, cs := range r.Categories {
		add(cs.Category.Label(), f.Count(cs.Count), f.Money(cs.Revenue), f.Percent(cs.Percentage))
	}
	lines = append(lines, "")

	add("Earners")
	header := []string{"Earner", "Email"}
	for _, cat := range enum.RevenueCategories() {
		header = append(header, cat.Label())
	}
	add(append(header, "Total Sales", "Total Revenue")...)
	for _, es := range r.Earners {
		row := []string{es.Name, es.Email}
		row = append(row, countCells(f, es.Counts)...)
		add(append(row, f.Count(es.TotalCount), f.Money(es.TotalRevenue))...)
	}
	lines = append(lines, "")

	add("Days")
	header = []string{"Date"}
	for _, cat := range enum.RevenueCategories() {
		header = append(header, cat.Label())
	}
	add(append(header, "Total Sales", "Total Revenue")...)
	for _, ds := range r.Days {
		row := []string{ds.Date.Format(report.DateLayout)}
		row = append(row, countCells(f, ds.Counts)...)
		add(append(row, f.Count(ds.TotalCount), f.Money(ds.TotalRevenue))...)
	}

	return strings.Join(lines, "\n")
}

func countCells(f Formatter, counts report.CategoryCounts) []string {
	cells := make([]string, 0, len(counts))
	for _, c := range counts {
		cells = append(cells, f.Count(c))
	}
	return cells
}

// csvRow quotes every cell and doubles embedded quotes
func csvRow(cells []string) string {
	quoted := make([]string, len(cells))
	for i, c := range cells {
		quoted[i] = `"` + strings.ReplaceAll(c, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}
