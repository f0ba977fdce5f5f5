package filter

import "github.com/yigit/crackgrid/internal/app/models"

// ErrorKind classifies what the user sees when a fetch did not produce data
type ErrorKind int

const (
	ErrNone ErrorKind = iota
	// DataUnavailable: an option list could not be loaded; a fallback is shown.
	DataUnavailable
	// TransportError: the detail lookup failed as a whole.
	TransportError
	// NoDataFound: the lookup succeeded but matched nothing.
	NoDataFound
)

// User-facing messages
const (
	MsgYearsUnavailable     = "Failed to load years from database"
	MsgCompaniesUnavailable = "Failed to load companies"
	MsgDetailsFailed        = "Error loading document"
	MsgNoData               = "No data found for this selection"
)

// FallbackYearWindow is how many years are offered when the year list cannot be loaded
const FallbackYearWindow = 5

func (k ErrorKind) String() string {
	switch k {
	case ErrNone:
		return "none"
	case DataUnavailable:
		return "data_unavailable"
	case TransportError:
		return "transport_error"
	case NoDataFound:
		return "no_data_found"
	default:
		return "unknown"
	}
}

// State is a point-in-time copy of the controller's selection and derived lists.
// Company is only ever set while Year is set.
type State struct {
	Year      *int
	Company   *models.CompanyName
	Years     []int
	Companies []models.CompanyName

	Students     []models.PlacedStudent
	Photos       []models.PlacementPhoto
	InterviewDoc *models.InterviewDocument

	Loading bool
	Error   ErrorKind
	Message string
}

// HasDetails reports whether any detail lookup produced something
func (s State) HasDetails() bool {
	return len(s.Students) > 0 || len(s.Photos) > 0 || s.InterviewDoc != nil
}

func (s *State) clearDetails() {
	s.Students = nil
	s.Photos = nil
	s.InterviewDoc = nil
}

func (s *State) clearError() {
	s.Error = ErrNone
	s.Message = ""
}

func (s *State) fail(kind ErrorKind, message string) {
	s.Error = kind
	s.Message = message
}

// clone copies every slice and pointer so the caller cannot reach controller state
func (s State) clone() State {
	out := s
	if s.Year != nil {
		y := *s.Year
		out.Year = &y
	}
	if s.Company != nil {
		c := *s.Company
		out.Company = &c
	}
	if s.InterviewDoc != nil {
		d := *s.InterviewDoc
		out.InterviewDoc = &d
	}
	out.Years = cloneSlice(s.Years)
	out.Companies = cloneSlice(s.Companies)
	out.Students = cloneSlice(s.Students)
	out.Photos = cloneSlice(s.Photos)
	return out
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	return append(make([]T, 0, len(in)), in...)
}
