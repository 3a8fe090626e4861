package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/beatlicense-api/internal/application/service"
	"github.com/sangkips/beatlicense-api/internal/presentation/http/dto/request"
	"github.com/sangkips/beatlicense-api/internal/presentation/http/dto/response"
	"github.com/sangkips/beatlicense-api/pkg/apperror"
)

// SettingsHandler handles report settings HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetReportSettings retrieves the report settings
func (h *SettingsHandler) GetReportSettings(c *gin.Context) {
	settings, err := h.settingsService.GetReportSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report settings retrieved successfully", settings)
}

// UpdateReportSettings updates the default cover image
func (h *SettingsHandler) UpdateReportSettings(c *gin.Context) {
	var req request.UpdateReportSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if req.DefaultCoverImage == nil {
		response.ValidationError(c, []apperror.FieldError{
			{Field: "default_cover_image", Message: "default_cover_image is required"},
		})
		return
	}

	settings, err := h.settingsService.SetDefaultCover(c.Request.Context(), *req.DefaultCoverImage, actor(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report settings updated successfully", settings)
}
