package service

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sangkips/beatlicense-api/internal/application/export"
	"github.com/sangkips/beatlicense-api/internal/domain/report"
	"github.com/sangkips/beatlicense-api/internal/logging"
	"github.com/sangkips/beatlicense-api/internal/metrics"
	"github.com/sangkips/beatlicense-api/pkg/apperror"
	"github.com/sangkips/beatlicense-api/pkg/coverstore"
)

// Export formats
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

// CoverNone explicitly asks for a cover page without an image
const CoverNone = "none"

// ExportFile is a rendered export ready to be sent as an attachment
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders sales reports as downloadable files
type ExportService struct {
	reports  *SalesReportService
	settings *SettingsService
	covers   coverstore.Store
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	logger   zerolog.Logger
}

// NewExportService creates a new export service
func NewExportService(
	reports *SalesReportService,
	settings *SettingsService,
	covers coverstore.Store,
	csvExporter *export.CSVExporter,
	pdfExporter *export.PDFExporter,
	logger zerolog.Logger,
) *ExportService {
	return &ExportService{
		reports:  reports,
		settings: settings,
		covers:   covers,
		csv:      csvExporter,
		pdf:      pdfExporter,
		logger:   logging.Component(logger, "ExportService"),
	}
}

// ExportCSV generates the report for dr and renders it as CSV
func (s *ExportService) ExportCSV(ctx context.Context, dr report.DateRange) (*ExportFile, error) {
	rep, err := s.reports.Generate(ctx, dr)
	if err != nil {
		return nil, err
	}

	body := s.csv.Render(rep)
	metrics.ExportsGenerated.WithLabelValues(FormatCSV, metrics.OutcomeSuccess).Inc()
	return &ExportFile{
		Filename:    dr.Filename(FormatCSV),
		ContentType: "text/csv; charset=utf-8",
		Data:        []byte(body),
	}, nil
}

// ExportPDF generates the report for dr and renders it as PDF. cover selects
// the cover image; empty uses the stored default and "none" disables it.
func (s *ExportService) ExportPDF(ctx context.Context, dr report.DateRange, cover string) (*ExportFile, error) {
	rep, err := s.reports.Generate(ctx, dr)
	if err != nil {
		return nil, err
	}

	img := s.resolveCover(ctx, cover)

	var buf bytes.Buffer
	info, err := s.pdf.Render(&buf, rep, img)
	if err != nil {
		metrics.ExportsGenerated.WithLabelValues(FormatPDF, metrics.OutcomeError).Inc()
		s.logger.Error().Err(err).Str("start", dr.StartDate()).Str("end", dr.EndDate()).Msg("Failed to render PDF")
		return nil, apperror.NewAppError(http.StatusInternalServerError, "Failed to export sales report.").Wrap(err)
	}
	if info.CoverErr != nil {
		s.logger.Warn().Err(info.CoverErr).Msg("Cover image could not be used, exporting without cover")
	}
	metrics.ExportsGenerated.WithLabelValues(FormatPDF, metrics.OutcomeSuccess).Inc()

	s.logger.Info().
		Str("start", dr.StartDate()).
		Str("end", dr.EndDate()).
		Int("pages", info.Pages).
		Bool("cover", info.CoverApplied).
		Msg("PDF export rendered")

	return &ExportFile{
		Filename:    dr.Filename(FormatPDF),
		ContentType: "application/pdf",
		Data:        buf.Bytes(),
	}, nil
}

// resolveCover picks the request's cover, then the stored default, then none.
// Any lookup failure degrades to no cover.
func (s *ExportService) resolveCover(ctx context.Context, requested string) *coverstore.Image {
	id := strings.TrimSpace(requested)
	if strings.EqualFold(id, CoverNone) {
		return nil
	}
	if id == "" {
		def, err := s.settings.DefaultCover(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("Failed to read default cover setting")
			return nil
		}
		id = def
	}
	if id == "" {
		return nil
	}

	img, err := s.covers.Open(ctx, id)
	if err != nil {
		ev := s.logger.Warn()
		if errors.Is(err, coverstore.ErrDisabled) {
			ev = s.logger.Debug()
		}
		ev.Err(err).Str("cover", id).Str("store", s.covers.Name()).Msg("Cover image unavailable")
		return nil
	}
	return img
}
