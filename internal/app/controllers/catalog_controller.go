package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/crackgrid/internal/app/models/dto"
	"github.com/yigit/crackgrid/internal/app/services"
	"github.com/yigit/crackgrid/internal/middleware"
	"github.com/yigit/crackgrid/internal/pkg/helpers"
)

// CatalogController serves the year and company lookups
type CatalogController struct {
	catalogService services.CatalogService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService services.CatalogService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

// HealthCheck reports liveness
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.HealthResponse}
// @Router /health [get]
func (c *CatalogController) HealthCheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.HealthResponse{Status: "ok"}))
}

// GetYears returns the merged year list
// @Summary List years
// @Description Years that have interview documents or placements, newest first
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.YearListResponse}
// @Failure 503 {object} dto.ErrorResponse "Data store unavailable"
// @Router /years [get]
func (c *CatalogController) GetYears(ctx *gin.Context) {
	years, err := c.catalogService.Years(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.YearListResponse{Years: years}))
}

// GetYearRows returns the raw year rows of every source
// @Summary List raw year rows
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.YearRowsResponse}
// @Failure 503 {object} dto.ErrorResponse "Data store unavailable"
// @Router /years/rows [get]
func (c *CatalogController) GetYearRows(ctx *gin.Context) {
	rows, err := c.catalogService.ListYears(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.YearRowsResponse{Rows: rows}))
}

// GetCompanies returns the merged company options of a year
// @Summary List companies of a year
// @Tags catalog
// @Produce json
// @Param year path int true "Placement year"
// @Success 200 {object} dto.APIResponse{data=dto.CompanyListResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid year"
// @Failure 503 {object} dto.ErrorResponse "Data store unavailable"
// @Router /years/{year}/companies [get]
func (c *CatalogController) GetCompanies(ctx *gin.Context) {
	year, ok := yearParam(ctx)
	if !ok {
		return
	}

	companies, err := c.catalogService.Companies(ctx, year)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.CompanyListResponse{Year: year, Companies: companies}))
}

// GetCompanyIDs returns the raw company ids of every source for a year
// @Summary List raw company ids of a year
// @Tags catalog
// @Produce json
// @Param year path int true "Placement year"
// @Success 200 {object} dto.APIResponse{data=dto.CompanyIDsResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid year"
// @Failure 503 {object} dto.ErrorResponse "Data store unavailable"
// @Router /years/{year}/company-ids [get]
func (c *CatalogController) GetCompanyIDs(ctx *gin.Context) {
	year, ok := yearParam(ctx)
	if !ok {
		return
	}

	ids, err := c.catalogService.ListCompanyIDsForYear(ctx, year)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.CompanyIDsResponse{Year: year, CompanyIDs: ids}))
}

// ResolveCompanies maps company ids to names
// @Summary Resolve company names
// @Tags catalog
// @Produce json
// @Param ids query string true "Comma-separated company ids"
// @Success 200 {object} dto.APIResponse{data=dto.CompanyNamesResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid ids"
// @Failure 503 {object} dto.ErrorResponse "Data store unavailable"
// @Router /companies [get]
func (c *CatalogController) ResolveCompanies(ctx *gin.Context) {
	ids, err := parseIDList(ctx.Query("ids"))
	if err != nil {
		middleware.HandleBadParam(ctx, "ids", "ids must be a comma-separated list of numbers")
		return
	}

	names, err := c.catalogService.ResolveCompanyNames(ctx, ids)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.CompanyNamesResponse{Companies: names}))
}

// GetCompanyDetails returns students, photos and the interview document of one company in a year
// @Summary Get company details for a year
// @Tags catalog
// @Produce json
// @Param year path int true "Placement year"
// @Param companyId path int true "Company ID"
// @Success 200 {object} dto.APIResponse{data=dto.CompanyDetailsResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid parameters"
// @Failure 503 {object} dto.ErrorResponse "Data store unavailable"
// @Router /years/{year}/companies/{companyId} [get]
func (c *CatalogController) GetCompanyDetails(ctx *gin.Context) {
	year, ok := yearParam(ctx)
	if !ok {
		return
	}
	companyID, ok := idParam(ctx, "companyId")
	if !ok {
		return
	}

	details, err := c.catalogService.GetCompanyDetails(ctx, year, companyID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.CompanyDetailsResponse{
		Year:      year,
		CompanyID: companyID,
		Students:  details.Students,
		Photos:    details.Photos,
		Document:  details.Document,
	}
	if details.Document != nil {
		resp.PreviewURL = helpers.EmbedURL(details.Document.QuestionsLink)
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
