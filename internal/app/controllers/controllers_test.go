package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/yigit/crackgrid/internal/app/models"
	"github.com/yigit/crackgrid/internal/app/models/dto"
	"github.com/yigit/crackgrid/internal/pkg/apperrors"
	"github.com/yigit/crackgrid/internal/pkg/export"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeCatalog struct {
	mu sync.Mutex

	rows    []models.YearRow
	ids     []int64
	names   []models.CompanyName
	details *models.CompanyDetails
	doc     *models.InterviewDocument
	err     error

	eventErr error
	events   chan models.AnalyticsAction
	lastIDs  []int64
}

func (f *fakeCatalog) ListYears(context.Context) ([]models.YearRow, error) { return f.rows, f.err }

func (f *fakeCatalog) ListCompanyIDsForYear(context.Context, int) ([]int64, error) {
	return f.ids, f.err
}

func (f *fakeCatalog) ResolveCompanyNames(_ context.Context, ids []int64) ([]models.CompanyName, error) {
	f.mu.Lock()
	f.lastIDs = ids
	f.mu.Unlock()
	return f.names, f.err
}

func (f *fakeCatalog) GetCompanyDetails(context.Context, int, int64) (*models.CompanyDetails, error) {
	return f.details, f.err
}

func (f *fakeCatalog) RecordAnalyticsEvent(_ context.Context, action models.AnalyticsAction, _ int64, _ time.Time) error {
	if f.events != nil {
		f.events <- action
	}
	return f.eventErr
}

func (f *fakeCatalog) Years(context.Context) ([]int, error) {
	if f.err != nil {
		return nil, f.err
	}
	return models.MergeYearRows(f.rows), nil
}

func (f *fakeCatalog) Companies(context.Context, int) ([]models.CompanyName, error) {
	if f.err != nil {
		return nil, f.err
	}
	return models.MergeCompanyNames(f.names), nil
}

func (f *fakeCatalog) GetDocument(context.Context, int64) (*models.InterviewDocument, error) {
	if f.doc == nil {
		return nil, apperrors.NewNotFoundError("document not found")
	}
	return f.doc, f.err
}

type fakeExport struct {
	students []models.PlacedStudent
	err      error
	company  int64
}

func (f *fakeExport) CompanyRoster(_ context.Context, year int, companyID int64) (*export.Workbook, error) {
	f.company = companyID
	if f.err != nil {
		return nil, f.err
	}
	return export.BuildCompanyRoster("Acme", year, f.students)
}

func (f *fakeExport) YearRoster(_ context.Context, year int) (*export.Workbook, error) {
	if f.err != nil {
		return nil, f.err
	}
	return export.BuildYearRoster(year, f.students)
}

func newRouter(catalog *fakeCatalog, exp *fakeExport) *gin.Engine {
	router := gin.New()
	cc := NewCatalogController(catalog)
	ec := NewExportController(exp)
	dc := NewDocumentController(catalog, time.Second)

	v1 := router.Group("/api/v1")
	v1.GET("/health", cc.HealthCheck)
	v1.GET("/years", cc.GetYears)
	v1.GET("/years/rows", cc.GetYearRows)
	v1.GET("/years/:year/companies", cc.GetCompanies)
	v1.GET("/years/:year/company-ids", cc.GetCompanyIDs)
	v1.GET("/years/:year/companies/:companyId", cc.GetCompanyDetails)
	v1.GET("/years/:year/export", ec.ExportRoster)
	v1.GET("/companies", cc.ResolveCompanies)
	v1.POST("/analytics/events", dc.RecordEvent)
	v1.GET("/documents/:id/open", dc.OpenDocument)
	return router
}

func do(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var envelope struct {
		Success bool `json:"success"`
		Data    T    `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	return envelope.Data
}

func TestCatalogController_Years(t *testing.T) {
	catalog := &fakeCatalog{rows: []models.YearRow{
		{Year: 2023, Source: models.SourceInterviewDocuments},
		{Year: 2022, Source: models.SourcePlacements},
		{Year: 2023, Source: models.SourcePlacements},
	}}
	router := newRouter(catalog, &fakeExport{})

	t.Run("merged list", func(t *testing.T) {
		rec := do(router, http.MethodGet, "/api/v1/years", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []int{2023, 2022}, decodeData[dto.YearListResponse](t, rec).Years)
	})

	t.Run("raw rows", func(t *testing.T) {
		rec := do(router, http.MethodGet, "/api/v1/years/rows", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decodeData[dto.YearRowsResponse](t, rec).Rows, 3)
	})

	t.Run("store failure is 503", func(t *testing.T) {
		failing := newRouter(&fakeCatalog{err: apperrors.NewTransportError("listing years", errors.New("timeout"))}, &fakeExport{})
		rec := do(failing, http.MethodGet, "/api/v1/years", "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestCatalogController_Companies(t *testing.T) {
	catalog := &fakeCatalog{
		ids:   []int64{3, 1, 3},
		names: []models.CompanyName{{ID: 3, Name: "Cee"}, {ID: 1, Name: "Acme"}},
	}
	router := newRouter(catalog, &fakeExport{})

	t.Run("merged options", func(t *testing.T) {
		rec := do(router, http.MethodGet, "/api/v1/years/2024/companies", "")
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeData[dto.CompanyListResponse](t, rec)
		assert.Equal(t, 2024, resp.Year)
		assert.Equal(t, []models.CompanyName{{ID: 1, Name: "Acme"}, {ID: 3, Name: "Cee"}}, resp.Companies)
	})

	t.Run("raw ids", func(t *testing.T) {
		rec := do(router, http.MethodGet, "/api/v1/years/2024/company-ids", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []int64{3, 1, 3}, decodeData[dto.CompanyIDsResponse](t, rec).CompanyIDs)
	})

	t.Run("non-numeric year is 400", func(t *testing.T) {
		rec := do(router, http.MethodGet, "/api/v1/years/latest/companies", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("name resolution parses the id list", func(t *testing.T) {
		rec := do(router, http.MethodGet, "/api/v1/companies?ids=3,%201,,", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []int64{3, 1}, catalog.lastIDs)
	})

	t.Run("malformed id list is 400", func(t *testing.T) {
		rec := do(router, http.MethodGet, "/api/v1/companies?ids=3,x", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCatalogController_GetCompanyDetails(t *testing.T) {
	t.Run("includes the preview link", func(t *testing.T) {
		catalog := &fakeCatalog{details: &models.CompanyDetails{
			Students: []models.PlacedStudent{{FullName: "Riya Shah"}},
			Photos:   []models.PlacementPhoto{},
			Document: &models.InterviewDocument{ID: 4, QuestionsLink: "https://docs.google.com/document/d/k3y/edit"},
		}}
		rec := do(newRouter(catalog, &fakeExport{}), http.MethodGet, "/api/v1/years/2024/companies/2", "")

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeData[dto.CompanyDetailsResponse](t, rec)
		assert.Equal(t, int64(2), resp.CompanyID)
		assert.Len(t, resp.Students, 1)
		assert.Equal(t, "https://docs.google.com/document/d/k3y/preview", resp.PreviewURL)
	})

	t.Run("missing document is a null field", func(t *testing.T) {
		catalog := &fakeCatalog{details: &models.CompanyDetails{Students: []models.PlacedStudent{}, Photos: []models.PlacementPhoto{}}}
		rec := do(newRouter(catalog, &fakeExport{}), http.MethodGet, "/api/v1/years/2024/companies/2", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"document":null`)
	})

	t.Run("invalid company id is 400", func(t *testing.T) {
		rec := do(newRouter(&fakeCatalog{}, &fakeExport{}), http.MethodGet, "/api/v1/years/2024/companies/0", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestExportController_ExportRoster(t *testing.T) {
	students := []models.PlacedStudent{
		{FullName: "Riya Shah", Branch: "CSE", GraduationYear: 2024},
		{FullName: "Arjun Rao", Branch: "ECE", GraduationYear: 2024},
	}

	t.Run("single company workbook", func(t *testing.T) {
		exp := &fakeExport{students: students}
		rec := do(newRouter(&fakeCatalog{}, exp), http.MethodGet, "/api/v1/years/2024/export?companyId=7", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(7), exp.company)
		assert.Equal(t, SpreadsheetContentType, rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "Acme_Placed_Students_2024.xlsx")

		f, err := excelize.OpenReader(rec.Body)
		require.NoError(t, err)
		defer f.Close()
		rows, err := f.GetRows(export.SheetName)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, export.CompanyHeader, rows[0])
		assert.Equal(t, "Riya Shah", rows[1][0])
	})

	t.Run("whole year workbook", func(t *testing.T) {
		rec := do(newRouter(&fakeCatalog{}, &fakeExport{students: students}), http.MethodGet, "/api/v1/years/2024/export", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "All_Placed_Students_2024.xlsx")
	})

	t.Run("empty roster is 404", func(t *testing.T) {
		rec := do(newRouter(&fakeCatalog{}, &fakeExport{err: apperrors.ErrEmptyRoster}), http.MethodGet, "/api/v1/years/2024/export", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("bad company id is 400", func(t *testing.T) {
		rec := do(newRouter(&fakeCatalog{}, &fakeExport{}), http.MethodGet, "/api/v1/years/2024/export?companyId=abc", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDocumentController(t *testing.T) {
	doc := &models.InterviewDocument{ID: 12, QuestionsLink: "https://docs.google.com/document/d/q1/edit"}

	t.Run("records a valid event", func(t *testing.T) {
		catalog := &fakeCatalog{events: make(chan models.AnalyticsAction, 1)}
		rec := do(newRouter(catalog, &fakeExport{}), http.MethodPost, "/api/v1/analytics/events", `{"action":"download","documentId":12}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, models.ActionDownload, <-catalog.events)
	})

	t.Run("rejects unknown actions", func(t *testing.T) {
		rec := do(newRouter(&fakeCatalog{}, &fakeExport{}), http.MethodPost, "/api/v1/analytics/events", `{"action":"share","documentId":12}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("open redirects even when the event write fails", func(t *testing.T) {
		catalog := &fakeCatalog{
			doc:      doc,
			events:   make(chan models.AnalyticsAction, 1),
			eventErr: apperrors.NewTransportError("recording analytics event", errors.New("timeout")),
		}
		rec := do(newRouter(catalog, &fakeExport{}), http.MethodGet, "/api/v1/documents/12/open?action=download", "")

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, doc.QuestionsLink, rec.Header().Get("Location"))
		select {
		case action := <-catalog.events:
			assert.Equal(t, models.ActionDownload, action)
		case <-time.After(time.Second):
			t.Fatal("analytics event was not attempted")
		}
	})

	t.Run("unknown document is 404", func(t *testing.T) {
		rec := do(newRouter(&fakeCatalog{}, &fakeExport{}), http.MethodGet, "/api/v1/documents/5/open", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid action is 400", func(t *testing.T) {
		rec := do(newRouter(&fakeCatalog{doc: doc}, &fakeExport{}), http.MethodGet, "/api/v1/documents/12/open?action=share", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHealthCheck(t *testing.T) {
	rec := do(newRouter(&fakeCatalog{}, &fakeExport{}), http.MethodGet, "/api/v1/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeData[dto.HealthResponse](t, rec).Status)
}
