package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yigit/crackgrid/internal/pkg/apperrors"
	"github.com/yigit/crackgrid/internal/pkg/export"
)

// ExportService builds roster spreadsheets from the placement store
type ExportService interface {
	CompanyRoster(ctx context.Context, year int, companyID int64) (*export.Workbook, error)
	YearRoster(ctx context.Context, year int) (*export.Workbook, error)
}

type exportServiceImpl struct {
	companies companyDirectory
	students  studentStore
	logger    zerolog.Logger
}

// NewExportService creates a new export service instance
func NewExportService(stores CatalogStores, lgr zerolog.Logger) ExportService {
	return &exportServiceImpl{
		companies: stores.Companies,
		students:  stores.Students,
		logger:    lgr.With().Str("service", "export").Logger(),
	}
}

// CompanyRoster exports the students one company placed in a year
func (s *exportServiceImpl) CompanyRoster(ctx context.Context, year int, companyID int64) (*export.Workbook, error) {
	if err := validateYear(year); err != nil {
		return nil, err
	}

	names, err := s.companies.ResolveNames(ctx, []int64{companyID})
	if err != nil {
		return nil, apperrors.NewTransportError("resolving company name", err)
	}
	if len(names) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("company %d not found", companyID))
	}

	students, err := s.students.ListPlacedStudents(ctx, year, companyID)
	if err != nil {
		return nil, apperrors.NewTransportError("loading placed students", err)
	}
	if len(students) == 0 {
		return nil, apperrors.ErrEmptyRoster
	}

	wb, err := export.BuildCompanyRoster(names[0].Name, year, students)
	if err != nil {
		return nil, fmt.Errorf("error building company roster: %w", err)
	}
	s.logger.Info().Str("file", wb.FileName).Int("rows", wb.Rows).Msg("Company roster exported")
	return wb, nil
}

// YearRoster exports every placed student of a year, grouped by company
func (s *exportServiceImpl) YearRoster(ctx context.Context, year int) (*export.Workbook, error) {
	if err := validateYear(year); err != nil {
		return nil, err
	}

	students, err := s.students.ListPlacedStudentsForYear(ctx, year)
	if err != nil {
		return nil, apperrors.NewTransportError("loading year roster", err)
	}
	if len(students) == 0 {
		return nil, apperrors.ErrEmptyRoster
	}

	wb, err := export.BuildYearRoster(year, students)
	if err != nil {
		return nil, fmt.Errorf("error building year roster: %w", err)
	}
	s.logger.Info().Str("file", wb.FileName).Int("rows", wb.Rows).Msg("Year roster exported")
	return wb, nil
}
