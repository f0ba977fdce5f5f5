package dto

import (
	"time"

	"github.com/yigit/crackgrid/internal/app/models"
)

// YearListResponse is the merged year list, newest first
type YearListResponse struct {
	Years []int `json:"years" example:"2024,2023,2022"`
}

// YearRowsResponse carries the raw year rows of every source
type YearRowsResponse struct {
	Rows []models.YearRow `json:"rows"`
}

// CompanyListResponse is the merged company option list of one year
type CompanyListResponse struct {
	Year      int                  `json:"year" example:"2024"`
	Companies []models.CompanyName `json:"companies"`
}

// CompanyIDsResponse carries the raw company ids of every source for one year
type CompanyIDsResponse struct {
	Year       int     `json:"year" example:"2024"`
	CompanyIDs []int64 `json:"companyIds"`
}

// CompanyNamesResponse is the result of an id to name resolution
type CompanyNamesResponse struct {
	Companies []models.CompanyName `json:"companies"`
}

// CompanyDetailsResponse is the combined detail record of one (year, company) pair
type CompanyDetailsResponse struct {
	Year       int                       `json:"year" example:"2024"`
	CompanyID  int64                     `json:"companyId" example:"3"`
	Students   []models.PlacedStudent    `json:"students"`
	Photos     []models.PlacementPhoto   `json:"photos"`
	Document   *models.InterviewDocument `json:"document"`
	PreviewURL string                    `json:"previewUrl,omitempty"`
}

// RecordAnalyticsEventRequest is the body of an analytics write
type RecordAnalyticsEventRequest struct {
	Action     string     `json:"action" validate:"required,oneof=view download" example:"view"`
	DocumentID int64      `json:"documentId" validate:"required,min=1" example:"12"`
	Timestamp  *time.Time `json:"timestamp,omitempty"`
}

// HealthResponse reports liveness
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
