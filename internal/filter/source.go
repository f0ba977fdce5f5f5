package filter

import (
	"context"
	"time"

	"github.com/yigit/crackgrid/internal/app/models"
)

// DataSource is the query surface the controller reads from and writes
// analytics events to. services.CatalogService and client.Client satisfy it.
//
// GetCompanyDetails reports a missing interview document as a nil Document.
// Any returned error means the whole record is unusable.
type DataSource interface {
	ListYears(ctx context.Context) ([]models.YearRow, error)
	ListCompanyIDsForYear(ctx context.Context, year int) ([]int64, error)
	ResolveCompanyNames(ctx context.Context, ids []int64) ([]models.CompanyName, error)
	GetCompanyDetails(ctx context.Context, year int, companyID int64) (*models.CompanyDetails, error)
	RecordAnalyticsEvent(ctx context.Context, action models.AnalyticsAction, documentID int64, at time.Time) error
}
