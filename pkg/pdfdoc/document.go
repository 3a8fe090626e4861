package pdfdoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/go-pdf/fpdf"
)

// Text alignment, as understood by fpdf
const (
	AlignLeft   = "L"
	AlignCenter = "C"
	AlignRight  = "R"
)

// Geometry of an A4 portrait page in millimetres
const (
	marginLeft   = 15.0
	marginTop    = 18.0
	marginRight  = 15.0
	marginBottom = 18.0

	titleHeight   = 10.0
	textHeight    = 6.0
	headingHeight = 8.0
	headerHeight  = 7.0
	rowHeight     = 6.5
	cellPadding   = 1.5
	tableGap      = 5.0
	footerOffset  = 8.0
)

const (
	coverImageName = "cover"
	pageTotalAlias = "{content_pages}"
)

// Block kinds recorded in the layout
const (
	BlockCover   = "cover"
	BlockTitle   = "title"
	BlockText    = "text"
	BlockHeading = "heading"
	BlockHeader  = "header"
	BlockRow     = "row"
)

// Block records where one element ended up
type Block struct {
	Kind   string
	Table  string
	Row    int
	Page   int
	Y      float64
	Height float64
}

// Layout is the placement of every element, used to check pagination
type Layout struct {
	Pages      int
	CoverPages int
	CoverImage bool
	PageHeight float64
	Bottom     float64
	Blocks     []Block
}

// Column describes one table column. Width is relative to the other columns.
type Column struct {
	Header string
	Width  float64
	Align  string
}

// Table is a titled grid of single-line rows
type Table struct {
	Heading   string
	Columns   []Column
	Rows      [][]string
	EmptyText string
}

// Document builds a paginated PDF: an optional cover page followed by
// content pages with flowing tables. Rows never split across pages and
// table headers repeat on every page a table spans.
type Document struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	layout Layout

	pageW, pageH float64
	contentStart int
	finished     bool
}

// NewDocument creates an empty A4 portrait document
func NewDocument(title, author string) *Document {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.SetTitle(title, true)
	pdf.SetAuthor(author, true)
	pdf.SetCreator(author, true)

	w, h := pdf.GetPageSize()
	d := &Document{
		pdf:   pdf,
		tr:    pdf.UnicodeTranslatorFromDescriptor(""),
		pageW: w,
		pageH: h,
	}
	d.layout.PageHeight = h
	d.layout.Bottom = h - marginBottom
	pdf.SetFooterFunc(d.footer)
	return d
}

// Cover adds a full-bleed cover page with the given image.
// imageType is "PNG" or "JPG". It must be called before any content.
// On error the document is left unchanged.
func (d *Document) Cover(data []byte, imageType string) error {
	if err := d.checkCover(); err != nil {
		return err
	}
	opts := fpdf.ImageOptions{ImageType: imageType}
	d.pdf.RegisterImageOptionsReader(coverImageName, opts, bytes.NewReader(data))
	if d.pdf.Err() {
		err := d.pdf.Error()
		d.pdf.ClearError()
		return fmt.Errorf("pdfdoc: invalid cover image: %w", err)
	}

	d.pdf.AddPage()
	d.pdf.ImageOptions(coverImageName, 0, 0, d.pageW, d.pageH, false, opts, 0, "")
	d.layout.CoverPages = 1
	d.layout.CoverImage = true
	d.record(BlockCover, "", 0, 0, d.pageH)
	return nil
}

// BlankCover adds a cover page with no background image
func (d *Document) BlankCover() error {
	if err := d.checkCover(); err != nil {
		return err
	}
	d.pdf.AddPage()
	d.layout.CoverPages = 1
	d.record(BlockCover, "", 0, 0, d.pageH)
	return nil
}

func (d *Document) checkCover() error {
	if d.contentStart > 0 || d.pdf.PageCount() > 0 {
		return errors.New("pdfdoc: cover must be the first page")
	}
	return nil
}

// Title writes a large bold line
func (d *Document) Title(s string) *Document {
	d.ensureSpace(titleHeight)
	d.pdf.SetFont("Helvetica", "B", 18)
	d.record(BlockTitle, "", 0, d.pdf.GetY(), titleHeight)
	d.pdf.CellFormat(0, titleHeight, d.tr(s), "", 1, AlignLeft, false, 0, "")
	return d
}

// Text writes a plain line
func (d *Document) Text(s string) *Document {
	d.ensureSpace(textHeight)
	d.pdf.SetFont("Helvetica", "", 10)
	d.record(BlockText, "", 0, d.pdf.GetY(), textHeight)
	d.pdf.CellFormat(0, textHeight, d.fit(s, d.contentWidth()), "", 1, AlignLeft, false, 0, "")
	return d
}

// Spacer moves down by h millimetres, or to a new page if that runs off this one
func (d *Document) Spacer(h float64) *Document {
	if !d.ensureSpace(h) {
		d.pdf.Ln(h)
	}
	return d
}

// Table writes t. The heading is kept on the same page as the column header
// and the first row.
func (d *Document) Table(t Table) *Document {
	widths := d.columnWidths(t.Columns)
	rows := t.Rows
	if len(rows) == 0 {
		empty := t.EmptyText
		if empty == "" {
			empty = "No records"
		}
		rows = [][]string{{empty}}
	}

	lead := headerHeight + rowHeight
	if t.Heading != "" {
		lead += headingHeight
	}
	d.ensureSpace(lead)

	if t.Heading != "" {
		d.pdf.SetFont("Helvetica", "B", 12)
		d.record(BlockHeading, t.Heading, 0, d.pdf.GetY(), headingHeight)
		d.pdf.CellFormat(0, headingHeight, d.tr(t.Heading), "", 1, AlignLeft, false, 0, "")
	}
	d.header(t, widths)

	for i, row := range rows {
		if d.ensureSpace(rowHeight) {
			d.header(t, widths)
		}
		d.row(t, widths, i, row)
	}
	d.pdf.Ln(tableGap)
	return d
}

func (d *Document) header(t Table, widths []float64) {
	d.pdf.SetFont("Helvetica", "B", 9)
	d.pdf.SetFillColor(230, 230, 230)
	d.record(BlockHeader, t.Heading, 0, d.pdf.GetY(), headerHeight)
	for i, col := range t.Columns {
		d.pdf.CellFormat(widths[i], headerHeight, d.fit(col.Header, widths[i]), "1", 0, alignOf(col), true, 0, "")
	}
	d.pdf.Ln(headerHeight)
}

func (d *Document) row(t Table, widths []float64, index int, cells []string) {
	d.pdf.SetFont("Helvetica", "", 9)
	d.record(BlockRow, t.Heading, index, d.pdf.GetY(), rowHeight)
	for i, col := range t.Columns {
		var s string
		if i < len(cells) {
			s = cells[i]
		}
		d.pdf.CellFormat(widths[i], rowHeight, d.fit(s, widths[i]), "1", 0, alignOf(col), false, 0, "")
	}
	d.pdf.Ln(rowHeight)
}

// ensureSpace starts a new content page when fewer than h millimetres remain.
// It reports whether a page was added.
func (d *Document) ensureSpace(h float64) bool {
	if d.contentStart == 0 {
		d.newPage()
		return true
	}
	if d.pdf.GetY()+h > d.pageH-marginBottom {
		d.newPage()
		return true
	}
	return false
}

func (d *Document) newPage() {
	d.pdf.AddPage()
	if d.contentStart == 0 {
		d.contentStart = d.pdf.PageNo()
	}
}

func (d *Document) contentWidth() float64 {
	return d.pageW - marginLeft - marginRight
}

func (d *Document) columnWidths(cols []Column) []float64 {
	total := 0.0
	for _, c := range cols {
		w := c.Width
		if w <= 0 {
			w = 1
		}
		total += w
	}
	widths := make([]float64, len(cols))
	for i, c := range cols {
		w := c.Width
		if w <= 0 {
			w = 1
		}
		widths[i] = d.contentWidth() * w / total
	}
	return widths
}

// fit translates s to the core font encoding and cuts it to fit width w
func (d *Document) fit(s string, w float64) string {
	s = d.tr(s)
	avail := w - 2*cellPadding
	if d.pdf.GetStringWidth(s) <= avail {
		return s
	}
	const ellipsis = "..."
	for len(s) > 0 && d.pdf.GetStringWidth(s+ellipsis) > avail {
		s = s[:len(s)-1]
	}
	return s + ellipsis
}

func (d *Document) record(kind, table string, row int, y, h float64) {
	d.layout.Blocks = append(d.layout.Blocks, Block{
		Kind:   kind,
		Table:  table,
		Row:    row,
		Page:   d.pdf.PageNo(),
		Y:      y,
		Height: h,
	})
}

// finish closes the content flow and fixes the page total used by the footer
func (d *Document) finish() {
	if d.finished {
		return
	}
	d.finished = true
	if d.contentStart == 0 {
		d.newPage()
	}

	last := d.pdf.PageCount()
	d.pdf.RegisterAlias(pageTotalAlias, strconv.Itoa(last-d.contentStart+1))
	d.layout.Pages = last
}

// footer stamps "Page X of Y" on content pages. Cover pages are not counted.
func (d *Document) footer() {
	if d.contentStart == 0 || d.pdf.PageNo() < d.contentStart {
		return
	}
	d.pdf.SetY(d.pageH - marginBottom + footerOffset/2)
	d.pdf.SetFont("Helvetica", "I", 8)
	label := fmt.Sprintf("Page %d of %s", d.pdf.PageNo()-d.contentStart+1, pageTotalAlias)
	d.pdf.CellFormat(0, footerOffset/2, label, "", 0, AlignCenter, false, 0, "")
}

// Layout finishes the document and returns where everything was placed
func (d *Document) Layout() Layout {
	d.finish()
	return d.layout
}

// Write finishes the document and writes the PDF bytes to w
func (d *Document) Write(w io.Writer) error {
	d.finish()
	if err := d.pdf.Output(w); err != nil {
		return fmt.Errorf("pdfdoc: failed to render: %w", err)
	}
	return nil
}

func alignOf(c Column) string {
	if c.Align == "" {
		return AlignLeft
	}
	return c.Align
}
