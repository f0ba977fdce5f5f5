package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrAlreadyExists is returned when an insert hits a unique constraint
var ErrAlreadyExists = errors.New("record already exists")

// DBTX is the query surface shared by *pgxpool.Pool and pgx.Tx, so the same
// repositories run against the pool or inside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// YearSource is a record set that contributes year values to the year list
type YearSource interface {
	SourceName() string
	ListYears(ctx context.Context) ([]int, error)
}

// CompanyIDSource is a record set that contributes company identifiers for a year
type CompanyIDSource interface {
	SourceName() string
	ListCompanyIDsForYear(ctx context.Context, year int) ([]int64, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	CompanyRepository           *CompanyRepository
	InterviewDocumentRepository *InterviewDocumentRepository
	PlacementRepository         *PlacementRepository
	PhotoRepository             *PhotoRepository
	AnalyticsRepository         *AnalyticsRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db DBTX) *Repositories {
	return &Repositories{
		CompanyRepository:           NewCompanyRepository(db),
		InterviewDocumentRepository: NewInterviewDocumentRepository(db),
		PlacementRepository:         NewPlacementRepository(db),
		PhotoRepository:             NewPhotoRepository(db),
		AnalyticsRepository:         NewAnalyticsRepository(db),
	}
}

// YearSources returns the providers whose years make up the year list
func (r *Repositories) YearSources() []YearSource {
	return []YearSource{r.InterviewDocumentRepository, r.PlacementRepository}
}

// CompanyIDSources returns the providers whose company ids make up a year's company list
func (r *Repositories) CompanyIDSources() []CompanyIDSource {
	return []CompanyIDSource{r.InterviewDocumentRepository, r.PlacementRepository}
}

func statementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// distinctYearsQuery builds the year listing shared by both year sources
func distinctYearsQuery(sb squirrel.StatementBuilderType, table string) squirrel.SelectBuilder {
	return sb.Select("year").Distinct().From(table).OrderBy("year DESC")
}

// distinctCompanyIDsQuery builds the company id listing shared by both sources
func distinctCompanyIDsQuery(sb squirrel.StatementBuilderType, table string, year int) squirrel.SelectBuilder {
	return sb.Select("company_id").Distinct().From(table).Where(squirrel.Eq{"year": year})
}

func queryInts[T int | int64](ctx context.Context, db DBTX, q squirrel.SelectBuilder) ([]T, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[T])
}
