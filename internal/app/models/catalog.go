package models

import "time"

// Year sources. Each source table contributes its own year and company rows.
const (
	SourceInterviewDocuments = "interview_documents"
	SourcePlacements         = "placements"
)

// YearRow is one raw year value as read from a single source table
type YearRow struct {
	Year   int    `json:"year"`
	Source string `json:"source"`
}

// Company represents an entry of the company directory
type Company struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Website   *string   `json:"website,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CompanyName pairs a company identifier with its display name
type CompanyName struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// InterviewDocument represents a shared interview-questions document for a
// (year, company) pair. There is at most one per pair.
type InterviewDocument struct {
	ID            int64     `json:"id"`
	Year          int       `json:"year"`
	CompanyID     int64     `json:"company_id"`
	Title         string    `json:"title"`
	QuestionsLink string    `json:"questions_link"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// LastModified returns the update time, falling back to creation time
func (d *InterviewDocument) LastModified() time.Time {
	if d.UpdatedAt.IsZero() {
		return d.CreatedAt
	}
	return d.UpdatedAt
}

// CompanyDetails is the combined detail record for one (year, company) pair
type CompanyDetails struct {
	Students []PlacedStudent    `json:"students"`
	Photos   []PlacementPhoto   `json:"photos"`
	Document *InterviewDocument `json:"document"`
}

// IsEmpty reports whether none of the three lookups produced anything
func (d *CompanyDetails) IsEmpty() bool {
	return d == nil || (len(d.Students) == 0 && len(d.Photos) == 0 && d.Document == nil)
}
