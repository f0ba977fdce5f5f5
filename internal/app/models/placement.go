package models

import "time"

// Person is a student profile referenced by placements
type Person struct {
	ID             int64   `json:"id"`
	FullName       string  `json:"full_name"`
	Branch         string  `json:"branch"`
	GraduationYear int     `json:"graduation_year"`
	LinkedInURL    *string `json:"linkedin_url,omitempty"`
}

// Placement links a person to a company for a placement year
type Placement struct {
	ID        int64 `json:"id"`
	Year      int   `json:"year"`
	CompanyID int64 `json:"company_id"`
	PersonID  int64 `json:"person_id"`
}

// PlacedStudent is a placement joined with the person profile fields
type PlacedStudent struct {
	PersonID       int64   `json:"person_id"`
	FullName       string  `json:"full_name"`
	Branch         string  `json:"branch"`
	GraduationYear int     `json:"graduation_year"`
	LinkedInURL    *string `json:"linkedin_url,omitempty"`
	// CompanyName is only filled for whole-year rosters.
	CompanyName string `json:"company_name,omitempty"`
}

// PlacementPhoto is a gallery image of a placement drive
type PlacementPhoto struct {
	ID        int64     `json:"id"`
	Year      int       `json:"year"`
	CompanyID int64     `json:"company_id"`
	ImageURL  string    `json:"image_url"`
	Caption   *string   `json:"caption,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
