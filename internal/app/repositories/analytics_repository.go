package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/crackgrid/internal/app/models"
)

// AnalyticsRepository writes to the document analytics log
type AnalyticsRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewAnalyticsRepository creates a new AnalyticsRepository
func NewAnalyticsRepository(db DBTX) *AnalyticsRepository {
	return &AnalyticsRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func (r *AnalyticsRepository) insertQuery(event *models.AnalyticsEvent) squirrel.InsertBuilder {
	return r.sb.Insert("document_analytics").
		Columns("id", "document_id", "action_type", "timestamp").
		Values(event.ID, event.DocumentID, string(event.Action), event.Timestamp)
}

// Insert appends one event to the log
func (r *AnalyticsRepository) Insert(ctx context.Context, event *models.AnalyticsEvent) error {
	sql, args, err := r.insertQuery(event).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert analytics event query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error inserting analytics event: %w", err)
	}
	return nil
}
