package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/crackgrid/internal/app/models"
	"github.com/yigit/crackgrid/internal/pkg/apperrors"
	"github.com/yigit/crackgrid/internal/pkg/dberrors"
	"github.com/yigit/crackgrid/internal/pkg/logger"
)

// CompanyRepository handles company directory database operations
type CompanyRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewCompanyRepository creates a new CompanyRepository
func NewCompanyRepository(db DBTX) *CompanyRepository {
	return &CompanyRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func (r *CompanyRepository) namesQuery(ids []int64) squirrel.SelectBuilder {
	return r.sb.Select("id", "name").
		From("companies").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("name ASC")
}

// ResolveNames maps company identifiers to display names. Unknown ids are
// silently absent from the result.
func (r *CompanyRepository) ResolveNames(ctx context.Context, ids []int64) ([]models.CompanyName, error) {
	if len(ids) == 0 {
		return []models.CompanyName{}, nil
	}

	sql, args, err := r.namesQuery(ids).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build resolve company names query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int("idCount", len(ids)).Msg("Error resolving company names")
		return nil, fmt.Errorf("error resolving company names: %w", err)
	}
	defer rows.Close()

	names := make([]models.CompanyName, 0, len(ids))
	for rows.Next() {
		var n models.CompanyName
		if err := rows.Scan(&n.ID, &n.Name); err != nil {
			return nil, fmt.Errorf("error scanning company name row: %w", err)
		}
		names = append(names, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating company name rows: %w", err)
	}
	return names, nil
}

// GetByName looks a company up by its exact display name
func (r *CompanyRepository) GetByName(ctx context.Context, name string) (*models.Company, error) {
	sql, args, err := r.sb.Select("id", "name", "website", "created_at").
		From("companies").
		Where(squirrel.Eq{"name": name}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get company query: %w", err)
	}

	company := &models.Company{}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&company.ID, &company.Name, &company.Website, &company.CreatedAt); err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error getting company by name: %w", err)
	}
	return company, nil
}

// Create inserts a company and sets its ID
func (r *CompanyRepository) Create(ctx context.Context, company *models.Company) error {
	sql, args, err := r.sb.Insert("companies").
		Columns("name", "website").
		Values(company.Name, company.Website).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create company query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&company.ID, &company.CreatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "companies_name_key") {
			return ErrAlreadyExists
		}
		logger.Error().Err(err).Str("name", company.Name).Msg("Error creating company")
		return fmt.Errorf("error creating company: %w", err)
	}
	return nil
}
