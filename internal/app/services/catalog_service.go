package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/yigit/crackgrid/internal/app/models"
	"github.com/yigit/crackgrid/internal/app/repositories"
	"github.com/yigit/crackgrid/internal/pkg/apperrors"
	"github.com/yigit/crackgrid/internal/pkg/helpers"
	"github.com/yigit/crackgrid/internal/pkg/validation"
)

// CatalogService is the data-access facade over the placement store
type CatalogService interface {
	ListYears(ctx context.Context) ([]models.YearRow, error)
	ListCompanyIDsForYear(ctx context.Context, year int) ([]int64, error)
	ResolveCompanyNames(ctx context.Context, ids []int64) ([]models.CompanyName, error)
	GetCompanyDetails(ctx context.Context, year int, companyID int64) (*models.CompanyDetails, error)
	RecordAnalyticsEvent(ctx context.Context, action models.AnalyticsAction, documentID int64, at time.Time) error

	// Years is the merged, deduplicated year list, newest first.
	Years(ctx context.Context) ([]int, error)
	// Companies is the merged company option list of a year, sorted by name.
	Companies(ctx context.Context, year int) ([]models.CompanyName, error)
	GetDocument(ctx context.Context, id int64) (*models.InterviewDocument, error)
}

type companyDirectory interface {
	ResolveNames(ctx context.Context, ids []int64) ([]models.CompanyName, error)
}

type documentStore interface {
	GetByYearAndCompany(ctx context.Context, year int, companyID int64) (*models.InterviewDocument, error)
	GetByID(ctx context.Context, id int64) (*models.InterviewDocument, error)
}

type studentStore interface {
	ListPlacedStudents(ctx context.Context, year int, companyID int64) ([]models.PlacedStudent, error)
	ListPlacedStudentsForYear(ctx context.Context, year int) ([]models.PlacedStudent, error)
}

type photoStore interface {
	ListForCompany(ctx context.Context, year int, companyID int64) ([]models.PlacementPhoto, error)
}

type analyticsStore interface {
	Insert(ctx context.Context, event *models.AnalyticsEvent) error
}

// CatalogStores groups the stores the catalog reads from and writes to
type CatalogStores struct {
	YearSources      []repositories.YearSource
	CompanyIDSources []repositories.CompanyIDSource
	Companies        companyDirectory
	Documents        documentStore
	Students         studentStore
	Photos           photoStore
	Analytics        analyticsStore
}

// StoresFromRepositories wires the catalog to the Postgres repositories
func StoresFromRepositories(repos *repositories.Repositories) CatalogStores {
	return CatalogStores{
		YearSources:      repos.YearSources(),
		CompanyIDSources: repos.CompanyIDSources(),
		Companies:        repos.CompanyRepository,
		Documents:        repos.InterviewDocumentRepository,
		Students:         repos.PlacementRepository,
		Photos:           repos.PhotoRepository,
		Analytics:        repos.AnalyticsRepository,
	}
}

type catalogServiceImpl struct {
	stores CatalogStores
	logger zerolog.Logger
	newID  func() uuid.UUID
}

// NewCatalogService creates a new catalog service instance
func NewCatalogService(stores CatalogStores, lgr zerolog.Logger) CatalogService {
	return &catalogServiceImpl{
		stores: stores,
		logger: lgr.With().Str("service", "catalog").Logger(),
		newID:  uuid.New,
	}
}

func validateYear(year int) error {
	if !validation.ValidYear(year) {
		return fmt.Errorf("%w: year %d is out of range", apperrors.ErrValidationFailed, year)
	}
	return nil
}

// ListYears returns raw year rows from every year source
func (s *catalogServiceImpl) ListYears(ctx context.Context) ([]models.YearRow, error) {
	rows := []models.YearRow{}
	for _, src := range s.stores.YearSources {
		years, err := src.ListYears(ctx)
		if err != nil {
			return nil, apperrors.NewTransportError("listing years from "+src.SourceName(), err)
		}
		for _, y := range years {
			rows = append(rows, models.YearRow{Year: y, Source: src.SourceName()})
		}
	}
	return rows, nil
}

// ListCompanyIDsForYear returns raw company ids from every company-id source
func (s *catalogServiceImpl) ListCompanyIDsForYear(ctx context.Context, year int) ([]int64, error) {
	if err := validateYear(year); err != nil {
		return nil, err
	}

	ids := []int64{}
	for _, src := range s.stores.CompanyIDSources {
		found, err := src.ListCompanyIDsForYear(ctx, year)
		if err != nil {
			return nil, apperrors.NewTransportError("listing companies from "+src.SourceName(), err)
		}
		ids = append(ids, found...)
	}
	return ids, nil
}

// ResolveCompanyNames maps identifiers to display names
func (s *catalogServiceImpl) ResolveCompanyNames(ctx context.Context, ids []int64) ([]models.CompanyName, error) {
	names, err := s.stores.Companies.ResolveNames(ctx, helpers.UniqueAscending(ids))
	if err != nil {
		return nil, apperrors.NewTransportError("resolving company names", err)
	}
	return names, nil
}

// GetCompanyDetails runs the student, photo and document lookups concurrently.
// The first failure cancels the others and no partial result is returned.
// A missing document is reported as a nil Document, not as an error.
func (s *catalogServiceImpl) GetCompanyDetails(ctx context.Context, year int, companyID int64) (*models.CompanyDetails, error) {
	if err := validateYear(year); err != nil {
		return nil, err
	}
	if !validation.ValidID(companyID) {
		return nil, fmt.Errorf("%w: invalid company ID", apperrors.ErrValidationFailed)
	}

	var (
		students []models.PlacedStudent
		photos   []models.PlacementPhoto
		document *models.InterviewDocument
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		found, err := s.stores.Students.ListPlacedStudents(gctx, year, companyID)
		if err != nil {
			return apperrors.NewTransportError("loading placed students", err)
		}
		students = found
		return nil
	})
	g.Go(func() error {
		found, err := s.stores.Photos.ListForCompany(gctx, year, companyID)
		if err != nil {
			return apperrors.NewTransportError("loading placement photos", err)
		}
		photos = found
		return nil
	})
	g.Go(func() error {
		found, err := s.stores.Documents.GetByYearAndCompany(gctx, year, companyID)
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		if err != nil {
			return apperrors.NewTransportError("loading interview document", err)
		}
		document = found
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Int("year", year).Int64("companyID", companyID).Msg("Company details lookup failed")
		return nil, err
	}

	if students == nil {
		students = []models.PlacedStudent{}
	}
	if photos == nil {
		photos = []models.PlacementPhoto{}
	}
	return &models.CompanyDetails{Students: students, Photos: photos, Document: document}, nil
}

// RecordAnalyticsEvent appends one event to the analytics log
func (s *catalogServiceImpl) RecordAnalyticsEvent(ctx context.Context, action models.AnalyticsAction, documentID int64, at time.Time) error {
	if !action.Valid() {
		return fmt.Errorf("%w: unknown analytics action %q", apperrors.ErrValidationFailed, action)
	}
	if !validation.ValidID(documentID) {
		return fmt.Errorf("%w: invalid document ID", apperrors.ErrValidationFailed)
	}
	if at.IsZero() {
		at = time.Now()
	}

	event := &models.AnalyticsEvent{
		ID:         s.newID(),
		DocumentID: documentID,
		Action:     action,
		Timestamp:  at.UTC(),
	}
	if err := s.stores.Analytics.Insert(ctx, event); err != nil {
		return apperrors.NewTransportError("recording analytics event", err)
	}
	return nil
}

// Years merges the year rows of all sources
func (s *catalogServiceImpl) Years(ctx context.Context) ([]int, error) {
	rows, err := s.ListYears(ctx)
	if err != nil {
		return nil, err
	}
	return models.MergeYearRows(rows), nil
}

// Companies merges the company ids of all sources for a year and resolves their names
func (s *catalogServiceImpl) Companies(ctx context.Context, year int) ([]models.CompanyName, error) {
	ids, err := s.ListCompanyIDsForYear(ctx, year)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.CompanyName{}, nil
	}
	names, err := s.ResolveCompanyNames(ctx, ids)
	if err != nil {
		return nil, err
	}
	return models.MergeCompanyNames(names), nil
}

// GetDocument returns a document by ID
func (s *catalogServiceImpl) GetDocument(ctx context.Context, id int64) (*models.InterviewDocument, error) {
	if !validation.ValidID(id) {
		return nil, fmt.Errorf("%w: invalid document ID", apperrors.ErrValidationFailed)
	}
	doc, err := s.stores.Documents.GetByID(ctx, id)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("document %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewTransportError("loading interview document", err)
	}
	return doc, nil
}
