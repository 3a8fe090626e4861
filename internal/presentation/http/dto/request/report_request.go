package request

import (
	"errors"

	"github.com/sangkips/beatlicense-api/internal/domain/report"
	"github.com/sangkips/beatlicense-api/pkg/apperror"
	"github.com/sangkips/beatlicense-api/pkg/pagination"
)

// SalesReportRequest represents the date range query shared by every report endpoint
type SalesReportRequest struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

// DateRange validates the query and returns the inclusive range it names
func (r SalesReportRequest) DateRange() (report.DateRange, error) {
	var fieldErrors []apperror.FieldError
	if r.StartDate == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "start_date", Message: "start_date is required"})
	}
	if r.EndDate == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "end_date", Message: "end_date is required"})
	}
	if len(fieldErrors) > 0 {
		return report.DateRange{}, apperror.NewValidationError(fieldErrors)
	}

	dr, err := report.ParseDateRange(r.StartDate, r.EndDate)
	switch {
	case err == nil:
		return dr, nil
	case errors.Is(err, report.ErrInvertedRange):
		return report.DateRange{}, apperror.NewValidationError([]apperror.FieldError{
			{Field: "end_date", Message: err.Error()},
		})
	default:
		return report.DateRange{}, apperror.NewValidationError([]apperror.FieldError{
			{Field: "date", Message: err.Error()},
		})
	}
}

// EarnersRequest represents earner list query parameters
type EarnersRequest struct {
	SalesReportRequest
	Page    int `form:"page"`
	PerPage int `form:"per_page"`
}

// Pagination returns the requested page
func (r EarnersRequest) Pagination() *pagination.PaginationParams {
	return &pagination.PaginationParams{Page: r.Page, PerPage: r.PerPage}
}

// ExportPDFRequest represents PDF export query parameters.
// Cover is a cover image id, or "none" for a blank cover page.
type ExportPDFRequest struct {
	SalesReportRequest
	Cover string `form:"cover"`
}

// UpdateReportSettingsRequest represents a report settings update.
// An empty default_cover_image clears the default.
type UpdateReportSettingsRequest struct {
	DefaultCoverImage *string `json:"default_cover_image"`
}
