package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/crackgrid/internal/app/models"
	"github.com/yigit/crackgrid/internal/app/models/dto"
)

func newAPI(t *testing.T) *httptest.Server {
	t.Helper()

	writeData := func(w http.ResponseWriter, data interface{}) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(dto.NewSuccessResponse(data)))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/years", func(w http.ResponseWriter, _ *http.Request) {
		writeData(w, dto.YearListResponse{Years: []int{2024, 2023}})
	})
	mux.HandleFunc("GET /api/v1/years/2024/companies", func(w http.ResponseWriter, _ *http.Request) {
		writeData(w, dto.CompanyListResponse{Year: 2024, Companies: []models.CompanyName{
			{ID: 1, Name: "Acme"},
			{ID: 2, Name: "Beta"},
		}})
	})
	mux.HandleFunc("GET /api/v1/years/2024/export", func(w http.ResponseWriter, r *http.Request) {
		name := "All_Placed_Students_2024.xlsx"
		if r.URL.Query().Get("companyId") == "2" {
			name = "Beta_Placed_Students_2024.xlsx"
		}
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
		_, _ = w.Write([]byte("xlsx-bytes"))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, srv *httptest.Server, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{
		"--config", filepath.Join(t.TempDir(), "missing.yaml"),
		"--base-url", srv.URL + "/api/v1",
	}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestYearsCmd(t *testing.T) {
	out, err := run(t, newAPI(t), "years")

	require.NoError(t, err)
	assert.Equal(t, "2024\n2023\n", out)
}

func TestCompaniesCmd(t *testing.T) {
	srv := newAPI(t)

	out, err := run(t, srv, "companies", "2024")
	require.NoError(t, err)
	assert.Regexp(t, `(?m)^1 +Acme$`, out)
	assert.Regexp(t, `(?m)^2 +Beta$`, out)

	_, err = run(t, srv, "companies", "24")
	assert.EqualError(t, err, `invalid year "24"`)

	_, err = run(t, srv, "companies")
	assert.Error(t, err)
}

func TestExportCmd(t *testing.T) {
	srv := newAPI(t)

	t.Run("whole year", func(t *testing.T) {
		dir := t.TempDir()
		out, err := run(t, srv, "export", "2024", "--out", dir)

		require.NoError(t, err)
		path := filepath.Join(dir, "All_Placed_Students_2024.xlsx")
		assert.Equal(t, path+"\n", out)
		body, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "xlsx-bytes", string(body))
	})

	t.Run("one company matched by name", func(t *testing.T) {
		dir := t.TempDir()
		out, err := run(t, srv, "export", "2024", "--company", "Beta", "-o", dir)

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "Beta_Placed_Students_2024.xlsx")+"\n", out)
	})

	t.Run("unknown company", func(t *testing.T) {
		_, err := run(t, srv, "export", "2024", "--company", "Nope", "-o", t.TempDir())
		assert.EqualError(t, err, `no company named "Nope" in 2024`)
	})
}

func TestYearsCmdReportsUnreachableServer(t *testing.T) {
	srv := newAPI(t)
	srv.Close()

	_, err := run(t, srv, "years")
	assert.Error(t, err)
}
