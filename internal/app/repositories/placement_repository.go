package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/crackgrid/internal/app/models"
	"github.com/yigit/crackgrid/internal/pkg/dberrors"
	"github.com/yigit/crackgrid/internal/pkg/logger"
)

// PlacementRepository handles placement and person database operations
type PlacementRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewPlacementRepository creates a new PlacementRepository
func NewPlacementRepository(db DBTX) *PlacementRepository {
	return &PlacementRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// SourceName identifies this repository as a year and company-id source
func (r *PlacementRepository) SourceName() string {
	return models.SourcePlacements
}

// ListYears returns every year with at least one placement
func (r *PlacementRepository) ListYears(ctx context.Context) ([]int, error) {
	years, err := queryInts[int](ctx, r.db, distinctYearsQuery(r.sb, "placements"))
	if err != nil {
		logger.Error().Err(err).Msg("Error listing placement years")
		return nil, fmt.Errorf("error listing placement years: %w", err)
	}
	return years, nil
}

// ListCompanyIDsForYear returns the companies that placed students in the given year
func (r *PlacementRepository) ListCompanyIDsForYear(ctx context.Context, year int) ([]int64, error) {
	ids, err := queryInts[int64](ctx, r.db, distinctCompanyIDsQuery(r.sb, "placements", year))
	if err != nil {
		logger.Error().Err(err).Int("year", year).Msg("Error listing placement companies")
		return nil, fmt.Errorf("error listing placement companies: %w", err)
	}
	return ids, nil
}

func (r *PlacementRepository) studentsQuery(year int, companyID int64) squirrel.SelectBuilder {
	return r.sb.Select("p.id", "p.full_name", "p.branch", "p.graduation_year", "p.linkedin_url").
		From("placements pl").
		Join("persons p ON pl.person_id = p.id").
		Where(squirrel.Eq{"pl.year": year, "pl.company_id": companyID}).
		OrderBy("p.full_name ASC")
}

func (r *PlacementRepository) yearRosterQuery(year int) squirrel.SelectBuilder {
	return r.sb.Select("p.id", "p.full_name", "p.branch", "p.graduation_year", "p.linkedin_url", "c.name").
		From("placements pl").
		Join("persons p ON pl.person_id = p.id").
		Join("companies c ON pl.company_id = c.id").
		Where(squirrel.Eq{"pl.year": year}).
		OrderBy("c.name ASC", "p.full_name ASC")
}

// ListPlacedStudents returns the students placed at a company in a year, joined with their profiles
func (r *PlacementRepository) ListPlacedStudents(ctx context.Context, year int, companyID int64) ([]models.PlacedStudent, error) {
	sql, args, err := r.studentsQuery(year, companyID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build placed students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int("year", year).Int64("companyID", companyID).Msg("Error querying placed students")
		return nil, fmt.Errorf("error querying placed students: %w", err)
	}
	defer rows.Close()

	students := []models.PlacedStudent{}
	for rows.Next() {
		var s models.PlacedStudent
		if err := rows.Scan(&s.PersonID, &s.FullName, &s.Branch, &s.GraduationYear, &s.LinkedInURL); err != nil {
			return nil, fmt.Errorf("error scanning placed student row: %w", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating placed student rows: %w", err)
	}
	return students, nil
}

// ListPlacedStudentsForYear returns every placed student of a year with their company name
func (r *PlacementRepository) ListPlacedStudentsForYear(ctx context.Context, year int) ([]models.PlacedStudent, error) {
	sql, args, err := r.yearRosterQuery(year).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build year roster query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int("year", year).Msg("Error querying year roster")
		return nil, fmt.Errorf("error querying year roster: %w", err)
	}

	students, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.PlacedStudent, error) {
		var s models.PlacedStudent
		err := row.Scan(&s.PersonID, &s.FullName, &s.Branch, &s.GraduationYear, &s.LinkedInURL, &s.CompanyName)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning year roster: %w", err)
	}
	return students, nil
}

// CreatePerson inserts a person profile and sets its ID
func (r *PlacementRepository) CreatePerson(ctx context.Context, person *models.Person) error {
	sql, args, err := r.sb.Insert("persons").
		Columns("full_name", "branch", "graduation_year", "linkedin_url").
		Values(person.FullName, person.Branch, person.GraduationYear, person.LinkedInURL).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create person query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&person.ID); err != nil {
		return fmt.Errorf("error creating person: %w", err)
	}
	return nil
}

// Create inserts a placement and sets its ID
func (r *PlacementRepository) Create(ctx context.Context, placement *models.Placement) error {
	sql, args, err := r.sb.Insert("placements").
		Columns("year", "company_id", "person_id").
		Values(placement.Year, placement.CompanyID, placement.PersonID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create placement query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&placement.ID); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "placements_year_company_person_key") {
			return ErrAlreadyExists
		}
		return fmt.Errorf("error creating placement: %w", err)
	}
	return nil
}
