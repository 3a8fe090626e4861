package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/beatlicense-api/internal/application/service"
	"github.com/sangkips/beatlicense-api/internal/presentation/http/dto/request"
	"github.com/sangkips/beatlicense-api/internal/presentation/http/dto/response"
	"github.com/sangkips/beatlicense-api/pkg/pagination"
)

// ReportHandler handles sales report HTTP requests
type ReportHandler struct {
	reportService *service.SalesReportService
	exportService *service.ExportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.SalesReportService, exportService *service.ExportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		exportService: exportService,
	}
}

// GetSalesReport handles generating the sales report for a date range
func (h *ReportHandler) GetSalesReport(c *gin.Context) {
	var req request.SalesReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	dr, err := req.DateRange()
	if err != nil {
		response.Error(c, err)
		return
	}

	rep, err := h.reportService.Generate(c.Request.Context(), dr)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales report generated successfully", rep)
}

// ListEarners handles paging through the earner ranking of a sales report
func (h *ReportHandler) ListEarners(c *gin.Context) {
	var req request.EarnersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	dr, err := req.DateRange()
	if err != nil {
		response.Error(c, err)
		return
	}

	rep, err := h.reportService.Generate(c.Request.Context(), dr)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Earners retrieved successfully", pagination.Slice(rep.Earners, req.Pagination()))
}

// ExportCSV handles downloading the sales report as CSV
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	var req request.SalesReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	dr, err := req.DateRange()
	if err != nil {
		response.Error(c, err)
		return
	}

	file, err := h.exportService.ExportCSV(c.Request.Context(), dr)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Attachment(c, file.Filename, file.ContentType, file.Data)
}

// ExportPDF handles downloading the sales report as PDF
func (h *ReportHandler) ExportPDF(c *gin.Context) {
	var req request.ExportPDFRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	dr, err := req.DateRange()
	if err != nil {
		response.Error(c, err)
		return
	}

	file, err := h.exportService.ExportPDF(c.Request.Context(), dr, req.Cover)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Attachment(c, file.Filename, file.ContentType, file.Data)
}
