package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yigit/crackgrid/internal/app/services"
	"github.com/yigit/crackgrid/internal/middleware"
	"github.com/yigit/crackgrid/internal/pkg/export"
	"github.com/yigit/crackgrid/internal/pkg/logger"
)

// SpreadsheetContentType is the media type of an .xlsx workbook
const SpreadsheetContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportController serves roster spreadsheets
type ExportController struct {
	exportService services.ExportService
}

// NewExportController creates a new ExportController
func NewExportController(exportService services.ExportService) *ExportController {
	return &ExportController{
		exportService: exportService,
	}
}

// ExportRoster streams a roster workbook. With companyId it covers one
// company, without it every company of the year.
// @Summary Export placed students
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param year path int true "Placement year"
// @Param companyId query int false "Restrict the roster to one company"
// @Success 200 {file} file "Roster workbook"
// @Failure 400 {object} dto.ErrorResponse "Invalid parameters"
// @Failure 404 {object} dto.ErrorResponse "Nothing to export"
// @Router /years/{year}/export [get]
func (c *ExportController) ExportRoster(ctx *gin.Context) {
	year, ok := yearParam(ctx)
	if !ok {
		return
	}

	var (
		wb  *export.Workbook
		err error
	)
	if raw := ctx.Query("companyId"); raw != "" {
		companyID, perr := strconv.ParseInt(raw, 10, 64)
		if perr != nil || companyID <= 0 {
			middleware.HandleBadParam(ctx, "companyId", "companyId must be a positive number")
			return
		}
		wb, err = c.exportService.CompanyRoster(ctx, year, companyID)
	} else {
		wb, err = c.exportService.YearRoster(ctx, year)
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer wb.Close()

	ctx.Header("Content-Disposition", `attachment; filename="`+wb.FileName+`"`)
	ctx.Header("Content-Type", SpreadsheetContentType)
	ctx.Status(http.StatusOK)
	if _, err := wb.WriteTo(ctx.Writer); err != nil {
		logger.Error().Err(err).Str("file", wb.FileName).Msg("Failed to stream roster workbook")
	}
}
