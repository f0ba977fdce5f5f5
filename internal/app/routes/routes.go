package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/yigit/crackgrid/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	catalogController *controllers.CatalogController,
	exportController *controllers.ExportController,
	documentController *controllers.DocumentController,
) {
	// API version group
	v1 := router.Group("/api/v1")

	v1.GET("/health", catalogController.HealthCheck)

	// Year -> company cascade (public access)
	years := v1.Group("/years")
	{
		years.GET("", catalogController.GetYears)
		years.GET("/rows", catalogController.GetYearRows)
		years.GET("/:year/companies", catalogController.GetCompanies)
		years.GET("/:year/company-ids", catalogController.GetCompanyIDs)
		years.GET("/:year/companies/:companyId", catalogController.GetCompanyDetails)
		years.GET("/:year/export", exportController.ExportRoster)
	}

	v1.GET("/companies", catalogController.ResolveCompanies)

	// Documents and their analytics log
	v1.POST("/analytics/events", documentController.RecordEvent)
	v1.GET("/documents/:id/open", documentController.OpenDocument)
}
