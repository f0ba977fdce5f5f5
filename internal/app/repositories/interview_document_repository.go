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

var documentColumns = []string{"id", "year", "company_id", "title", "questions_link", "created_at", "updated_at"}

// InterviewDocumentRepository handles interview document database operations
type InterviewDocumentRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewInterviewDocumentRepository creates a new InterviewDocumentRepository
func NewInterviewDocumentRepository(db DBTX) *InterviewDocumentRepository {
	return &InterviewDocumentRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// SourceName identifies this repository as a year and company-id source
func (r *InterviewDocumentRepository) SourceName() string {
	return models.SourceInterviewDocuments
}

// ListYears returns every year that has at least one interview document
func (r *InterviewDocumentRepository) ListYears(ctx context.Context) ([]int, error) {
	years, err := queryInts[int](ctx, r.db, distinctYearsQuery(r.sb, "interview_documents"))
	if err != nil {
		logger.Error().Err(err).Msg("Error listing interview document years")
		return nil, fmt.Errorf("error listing interview document years: %w", err)
	}
	return years, nil
}

// ListCompanyIDsForYear returns the companies that have a document in the given year
func (r *InterviewDocumentRepository) ListCompanyIDsForYear(ctx context.Context, year int) ([]int64, error) {
	ids, err := queryInts[int64](ctx, r.db, distinctCompanyIDsQuery(r.sb, "interview_documents", year))
	if err != nil {
		logger.Error().Err(err).Int("year", year).Msg("Error listing interview document companies")
		return nil, fmt.Errorf("error listing interview document companies: %w", err)
	}
	return ids, nil
}

func (r *InterviewDocumentRepository) byYearAndCompanyQuery(year int, companyID int64) squirrel.SelectBuilder {
	return r.sb.Select(documentColumns...).
		From("interview_documents").
		Where(squirrel.Eq{"year": year, "company_id": companyID}).
		Limit(1)
}

// GetByYearAndCompany returns the single document of a (year, company) pair.
// A missing document yields apperrors.ErrNotFound; any other failure is returned wrapped.
func (r *InterviewDocumentRepository) GetByYearAndCompany(ctx context.Context, year int, companyID int64) (*models.InterviewDocument, error) {
	return r.getOne(ctx, r.byYearAndCompanyQuery(year, companyID))
}

// GetByID returns a document by its identifier
func (r *InterviewDocumentRepository) GetByID(ctx context.Context, id int64) (*models.InterviewDocument, error) {
	return r.getOne(ctx, r.sb.Select(documentColumns...).From("interview_documents").Where(squirrel.Eq{"id": id}).Limit(1))
}

func (r *InterviewDocumentRepository) getOne(ctx context.Context, q squirrel.SelectBuilder) (*models.InterviewDocument, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get interview document query: %w", err)
	}

	doc := &models.InterviewDocument{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&doc.ID, &doc.Year, &doc.CompanyID, &doc.Title, &doc.QuestionsLink, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrNotFound
		}
		logger.Error().Err(err).Msg("Error scanning interview document row")
		return nil, fmt.Errorf("error getting interview document: %w", err)
	}
	return doc, nil
}

// Create inserts a document and sets its ID
func (r *InterviewDocumentRepository) Create(ctx context.Context, doc *models.InterviewDocument) error {
	sql, args, err := r.sb.Insert("interview_documents").
		Columns("year", "company_id", "title", "questions_link").
		Values(doc.Year, doc.CompanyID, doc.Title, doc.QuestionsLink).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create interview document query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&doc.ID, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "interview_documents_year_company_key") {
			return ErrAlreadyExists
		}
		return fmt.Errorf("error creating interview document: %w", err)
	}
	return nil
}
