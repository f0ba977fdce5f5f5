package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/crackgrid/internal/app/models"
	"github.com/yigit/crackgrid/internal/pkg/logger"
)

// PhotoRepository handles placement photo database operations
type PhotoRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewPhotoRepository creates a new PhotoRepository
func NewPhotoRepository(db DBTX) *PhotoRepository {
	return &PhotoRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func (r *PhotoRepository) listQuery(year int, companyID int64) squirrel.SelectBuilder {
	return r.sb.Select("id", "year", "company_id", "image_url", "caption", "created_at").
		From("placement_photos").
		Where(squirrel.Eq{"year": year, "company_id": companyID}).
		OrderBy("id ASC")
}

// ListForCompany returns the gallery of a (year, company) pair in insertion order
func (r *PhotoRepository) ListForCompany(ctx context.Context, year int, companyID int64) ([]models.PlacementPhoto, error) {
	sql, args, err := r.listQuery(year, companyID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list photos query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int("year", year).Int64("companyID", companyID).Msg("Error querying placement photos")
		return nil, fmt.Errorf("error querying placement photos: %w", err)
	}
	defer rows.Close()

	photos := []models.PlacementPhoto{}
	for rows.Next() {
		var p models.PlacementPhoto
		if err := rows.Scan(&p.ID, &p.Year, &p.CompanyID, &p.ImageURL, &p.Caption, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning placement photo row: %w", err)
		}
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating placement photo rows: %w", err)
	}
	return photos, nil
}

// Create inserts a photo and sets its ID
func (r *PhotoRepository) Create(ctx context.Context, photo *models.PlacementPhoto) error {
	sql, args, err := r.sb.Insert("placement_photos").
		Columns("year", "company_id", "image_url", "caption").
		Values(photo.Year, photo.CompanyID, photo.ImageURL, photo.Caption).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create photo query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&photo.ID, &photo.CreatedAt); err != nil {
		return fmt.Errorf("error creating placement photo: %w", err)
	}
	return nil
}
