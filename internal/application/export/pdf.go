package export

import (
	"fmt"
	"io"

	"github.com/sangkips/beatlicense-api/internal/domain/enum"
	"github.com/sangkips/beatlicense-api/internal/domain/report"
	"github.com/sangkips/beatlicense-api/pkg/coverstore"
	"github.com/sangkips/beatlicense-api/pkg/pdfdoc"
)

const reportTitle = "Sales Report"

// PDFExporter renders a Report as a paginated document
type PDFExporter struct {
	format     Formatter
	topEarners int
	author     string
}

// NewPDFExporter creates a PDF exporter. topEarners limits the earners
// table; 0 lists every earner.
func NewPDFExporter(currency string, topEarners int, author string) *PDFExporter {
	return &PDFExporter{
		format:     Formatter{CurrencySymbol: currency},
		topEarners: topEarners,
		author:     author,
	}
}

// RenderInfo describes what was rendered
type RenderInfo struct {
	Pages        int
	CoverApplied bool
	// CoverErr is set when a cover was supplied but could not be used
	CoverErr error
}

// Render writes the document to w. cover may be nil; an unusable cover image is
// dropped, leaving a blank cover page, and reported in RenderInfo rather than
// failing the export.
func (e *PDFExporter) Render(w io.Writer, r *report.Report, cover *coverstore.Image) (RenderInfo, error) {
	doc, info := e.Build(r, cover)
	if err := doc.Write(w); err != nil {
		return info, err
	}
	return info, nil
}

// Build lays out the document without writing it
func (e *PDFExporter) Build(r *report.Report, cover *coverstore.Image) (*pdfdoc.Document, RenderInfo) {
	var info RenderInfo
	f := e.format
	doc := pdfdoc.NewDocument(reportTitle, e.author)

	if cover != nil {
		if err := doc.Cover(cover.Data, cover.Type); err != nil {
			info.CoverErr = err
		} else {
			info.CoverApplied = true
		}
	}
	if !info.CoverApplied {
		_ = doc.BlankCover()
	}

	doc.Title(reportTitle).
		Text(periodLine(r.DateRange)).
		Text("Generated " + r.GeneratedAt.Format("2006-01-02 15:04 UTC")).
		Spacer(4)

	doc.Table(pdfdoc.Table{
		Heading: "Summary",
		Columns: []pdfdoc.Column{
			{Header: "Metric", Width: 3},
			{Header: "Value", Width: 2, Align: pdfdoc.AlignRight},
		},
		Rows: [][]string{
			{"Total Revenue", f.Money(r.Totals.TotalRevenue)},
			{"Total Sales", f.Count(r.Totals.TotalSales)},
			{"Average Sale", f.Money(r.Totals.AverageSale)},
			{"Earners", f.Count(r.Totals.EarnerCount)},
			{"Unattributed Sales", f.Count(r.Totals.UnattributedSales)},
		},
	})

	categoryRows := make([][]string, 0, len(r.Categories))
	for _, cs := range r.Categories {
		categoryRows = append(categoryRows, []string{
			cs.Category.Label(), f.Count(cs.Count), f.Money(cs.Revenue), f.Percent(cs.Percentage),
		})
	}
	doc.Table(pdfdoc.Table{
		Heading: "Revenue by Category",
		Columns: []pdfdoc.Column{
			{Header: "Category", Width: 4},
			{Header: "Sales", Width: 2, Align: pdfdoc.AlignRight},
			{Header: "Revenue", Width: 3, Align: pdfdoc.AlignRight},
			{Header: "Share", Width: 2, Align: pdfdoc.AlignRight},
		},
		Rows: categoryRows,
	})

	earners := r.TopEarners(e.topEarners)
	earnerRows := make([][]string, 0, len(earners))
	for i, es := range earners {
		earnerRows = append(earnerRows, []string{
			f.Count(i + 1), es.Name, es.Email, f.Count(es.TotalCount), f.Money(es.TotalRevenue),
		})
	}
	heading := "Top Earners"
	if e.topEarners > 0 && len(r.Earners) > e.topEarners {
		heading = fmt.Sprintf("Top %d Earners", e.topEarners)
	}
	doc.Table(pdfdoc.Table{
		Heading: heading,
		Columns: []pdfdoc.Column{
			{Header: "#", Width: 1, Align: pdfdoc.AlignRight},
			{Header: "Earner", Width: 5},
			{Header: "Email", Width: 6},
			{Header: "Sales", Width: 2, Align: pdfdoc.AlignRight},
			{Header: "Revenue", Width: 3, Align: pdfdoc.AlignRight},
		},
		Rows:      earnerRows,
		EmptyText: "No attributed sales",
	})

	dayColumns := []pdfdoc.Column{{Header: "Date", Width: 3}}
	for _, cat := range enum.RevenueCategories() {
		dayColumns = append(dayColumns, pdfdoc.Column{Header: cat.ShortLabel(), Width: 2, Align: pdfdoc.AlignRight})
	}
	dayColumns = append(dayColumns,
		pdfdoc.Column{Header: "Total", Width: 2, Align: pdfdoc.AlignRight},
		pdfdoc.Column{Header: "Revenue", Width: 3, Align: pdfdoc.AlignRight},
	)
	dayRows := make([][]string, 0, len(r.Days))
	for _, ds := range r.Days {
		row := []string{ds.Date.Format(report.DateLayout)}
		row = append(row, countCells(f, ds.Counts)...)
		dayRows = append(dayRows, append(row, f.Count(ds.TotalCount), f.Money(ds.TotalRevenue)))
	}
	doc.Table(pdfdoc.Table{
		Heading:   "Daily Breakdown",
		Columns:   dayColumns,
		Rows:      dayRows,
		EmptyText: "No sales in this period",
	})

	info.Pages = doc.Layout().Pages
	return doc, info
}

func periodLine(dr report.DateRange) string {
	unit := "days"
	if dr.Days() == 1 {
		unit = "day"
	}
	return fmt.Sprintf("%s to %s (%d %s)", dr.StartDate(), dr.EndDate(), dr.Days(), unit)
}
