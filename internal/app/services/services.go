// Package services holds the business logic between HTTP controllers and repositories.
//
// Services defined in this package:
//   - CatalogService: the data-access facade (years, companies, details, analytics)
//   - ExportService: roster spreadsheets for a company or a whole year
package services
