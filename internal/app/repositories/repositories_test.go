package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/crackgrid/internal/app/models"
)

func TestYearAndCompanySourcesQueries(t *testing.T) {
	sb := statementBuilder()

	t.Run("years", func(t *testing.T) {
		sql, args, err := distinctYearsQuery(sb, "placements").ToSql()
		require.NoError(t, err)
		assert.Equal(t, "SELECT DISTINCT year FROM placements ORDER BY year DESC", sql)
		assert.Empty(t, args)
	})

	t.Run("company ids for a year", func(t *testing.T) {
		sql, args, err := distinctCompanyIDsQuery(sb, "interview_documents", 2024).ToSql()
		require.NoError(t, err)
		assert.Equal(t, "SELECT DISTINCT company_id FROM interview_documents WHERE year = $1", sql)
		assert.Equal(t, []interface{}{2024}, args)
	})
}

func TestRepositoriesExposeBothSources(t *testing.T) {
	repos := NewRepositories(nil)

	var names []string
	for _, s := range repos.YearSources() {
		names = append(names, s.SourceName())
	}
	assert.Equal(t, []string{models.SourceInterviewDocuments, models.SourcePlacements}, names)
	assert.Len(t, repos.CompanyIDSources(), 2)
}

func TestInterviewDocumentQueries(t *testing.T) {
	repo := NewInterviewDocumentRepository(nil)

	sql, args, err := repo.byYearAndCompanyQuery(2023, 7).ToSql()

	require.NoError(t, err)
	assert.Contains(t, sql, "FROM interview_documents")
	assert.Contains(t, sql, "WHERE company_id = $1 AND year = $2")
	assert.Contains(t, sql, "LIMIT 1")
	assert.Equal(t, []interface{}{int64(7), 2023}, args)
}

func TestPlacementQueries(t *testing.T) {
	repo := NewPlacementRepository(nil)

	t.Run("students of one company", func(t *testing.T) {
		sql, args, err := repo.studentsQuery(2022, 3).ToSql()
		require.NoError(t, err)
		assert.Contains(t, sql, "JOIN persons p ON pl.person_id = p.id")
		assert.Contains(t, sql, "WHERE pl.company_id = $1 AND pl.year = $2")
		assert.Contains(t, sql, "ORDER BY p.full_name ASC")
		assert.Equal(t, []interface{}{int64(3), 2022}, args)
	})

	t.Run("whole-year roster", func(t *testing.T) {
		sql, args, err := repo.yearRosterQuery(2022).ToSql()
		require.NoError(t, err)
		assert.Contains(t, sql, "JOIN companies c ON pl.company_id = c.id")
		assert.Contains(t, sql, "ORDER BY c.name ASC, p.full_name ASC")
		assert.Equal(t, []interface{}{2022}, args)
	})
}

func TestPhotoQuery(t *testing.T) {
	sql, args, err := NewPhotoRepository(nil).listQuery(2021, 9).ToSql()

	require.NoError(t, err)
	assert.Contains(t, sql, "FROM placement_photos")
	assert.Contains(t, sql, "ORDER BY id ASC")
	assert.Equal(t, []interface{}{int64(9), 2021}, args)
}

func TestCompanyRepository(t *testing.T) {
	repo := NewCompanyRepository(nil)

	t.Run("resolving no ids does not touch the store", func(t *testing.T) {
		names, err := repo.ResolveNames(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, names)
	})

	t.Run("name lookup uses an IN clause", func(t *testing.T) {
		sql, args, err := repo.namesQuery([]int64{1, 2, 3}).ToSql()
		require.NoError(t, err)
		assert.Contains(t, sql, "WHERE id IN ($1,$2,$3)")
		assert.Equal(t, []interface{}{int64(1), int64(2), int64(3)}, args)
	})
}

func TestAnalyticsInsertQuery(t *testing.T) {
	id := uuid.New()
	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	event := &models.AnalyticsEvent{ID: id, DocumentID: 11, Action: models.ActionDownload, Timestamp: ts}

	sql, args, err := NewAnalyticsRepository(nil).insertQuery(event).ToSql()

	require.NoError(t, err)
	assert.Contains(t, sql, "INSERT INTO document_analytics")
	assert.Equal(t, []interface{}{id, int64(11), "download", ts}, args)
}
