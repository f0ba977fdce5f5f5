package tui

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/crackgrid/internal/app/models"
	"github.com/yigit/crackgrid/internal/filter"
)

type fakeSelector struct {
	state filter.State

	loadYears int
	years     []int
	companies []string
	refreshed int
	resets    int
	opened    []models.AnalyticsAction
}

func (f *fakeSelector) LoadYears() { f.loadYears++ }

func (f *fakeSelector) SelectYear(year *int) {
	f.years = append(f.years, *year)
	y := *year
	f.state.Year = &y
	f.state.Company = nil
	f.state.Companies = []models.CompanyName{{ID: 1, Name: "Acme"}, {ID: 2, Name: "Beta"}}
}

func (f *fakeSelector) SelectCompany(name *string) {
	f.companies = append(f.companies, *name)
	f.state.Company = &models.CompanyName{ID: 2, Name: *name}
}

func (f *fakeSelector) Refresh() { f.refreshed++ }

func (f *fakeSelector) ResetSelections() {
	f.resets++
	f.state.Year = nil
	f.state.Company = nil
	f.state.Companies = nil
}

func (f *fakeSelector) OpenDocument(action models.AnalyticsAction) (string, bool) {
	f.opened = append(f.opened, action)
	if f.state.InterviewDoc == nil {
		return "", false
	}
	return f.state.InterviewDoc.QuestionsLink, true
}

func (f *fakeSelector) PreviewURL() string { return "https://docs.google.com/document/d/abc/preview" }

func (f *fakeSelector) Snapshot() filter.State { return f.state }

func newTestModel(f *fakeSelector, exporter ExportFunc) *Model {
	m := NewModel(f, NewNotifier(), exporter, nil)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewModel(t *testing.T) {
	f := &fakeSelector{state: filter.State{Years: []int{2024, 2023}}}
	m := NewModel(f, NewNotifier(), nil, nil)

	require.NotNil(t, m)
	assert.NotNil(t, m.styles)
	assert.Equal(t, []int{2024, 2023}, m.state.Years)
	assert.Equal(t, yearPane, m.focus)
	assert.NotNil(t, m.Init())
	assert.Equal(t, "Initialising...", m.View())
}

func TestModel_Navigation(t *testing.T) {
	f := &fakeSelector{state: filter.State{Years: []int{2024, 2023, 2022}}}
	m := newTestModel(f, nil)

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.yearCursor)

	m.Update(key('j'))
	m.Update(key('j'))
	assert.Equal(t, 2, m.yearCursor, "cursor stops at the last year")

	m.Update(key('k'))
	assert.Equal(t, 1, m.yearCursor)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, companyPane, m.focus)
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 0, m.companyCursor, "empty company list keeps cursor at zero")
}

func TestModel_SelectYearThenCompany(t *testing.T) {
	f := &fakeSelector{state: filter.State{Years: []int{2024, 2023}}}
	m := newTestModel(f, nil)

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, []int{2023}, f.years)
	assert.Equal(t, companyPane, m.focus)
	require.Len(t, m.state.Companies, 2)

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, []string{"Beta"}, f.companies)
	require.NotNil(t, m.state.Company)
	assert.Equal(t, "Beta", m.state.Company.Name)
}

func TestModel_EnterOnEmptyListDoesNothing(t *testing.T) {
	f := &fakeSelector{}
	m := newTestModel(f, nil)

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Empty(t, f.years)
	assert.Equal(t, yearPane, m.focus)
}

func TestModel_RefreshAndReset(t *testing.T) {
	f := &fakeSelector{state: filter.State{Years: []int{2024}}}
	m := newTestModel(f, nil)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	m.Update(key('r'))
	assert.Equal(t, 1, f.refreshed)

	m.Update(key('c'))
	assert.Equal(t, 1, f.resets)
	assert.Nil(t, m.state.Year)
	assert.Equal(t, yearPane, m.focus)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, 2, f.resets)
}

func TestModel_OpenDocument(t *testing.T) {
	t.Run("no document", func(t *testing.T) {
		f := &fakeSelector{}
		m := newTestModel(f, nil)

		m.Update(key('o'))

		assert.Equal(t, []models.AnalyticsAction{models.ActionView}, f.opened)
		assert.True(t, m.statusIsError)
		assert.Contains(t, m.View(), "No interview document")
	})

	t.Run("view and download", func(t *testing.T) {
		f := &fakeSelector{state: filter.State{
			InterviewDoc: &models.InterviewDocument{ID: 9, Title: "Acme 2024", QuestionsLink: "https://docs.google.com/document/d/abc/edit"},
		}}
		m := newTestModel(f, nil)

		m.Update(key('o'))
		assert.Equal(t, "Open: https://docs.google.com/document/d/abc/edit", m.status)

		m.Update(key('d'))
		assert.Equal(t, "Download: https://docs.google.com/document/d/abc/edit", m.status)
		assert.Equal(t, []models.AnalyticsAction{models.ActionView, models.ActionDownload}, f.opened)
	})
}

func TestModel_Export(t *testing.T) {
	t.Run("unavailable", func(t *testing.T) {
		m := newTestModel(&fakeSelector{}, nil)
		m.Update(key('x'))
		assert.Equal(t, "Export is not available", m.status)
	})

	t.Run("failure", func(t *testing.T) {
		m := newTestModel(&fakeSelector{}, func(filter.State) (string, error) {
			return "", errors.New("disk full")
		})
		m.Update(key('x'))
		assert.Equal(t, "Export failed: disk full", m.status)
		assert.True(t, m.statusIsError)
	})

	t.Run("success", func(t *testing.T) {
		var got filter.State
		f := &fakeSelector{state: filter.State{Years: []int{2024}}}
		m := newTestModel(f, func(s filter.State) (string, error) {
			got = s
			return "/tmp/roster.xlsx", nil
		})
		m.Update(key('x'))
		assert.Equal(t, "Saved /tmp/roster.xlsx", m.status)
		assert.Equal(t, []int{2024}, got.Years)
	})
}

func TestModel_ChangeNotification(t *testing.T) {
	f := &fakeSelector{}
	n := NewNotifier()
	m := NewModel(f, n, nil, nil)

	n.Notify(filter.State{})
	n.Notify(filter.State{})

	msg := n.wait()()
	assert.IsType(t, changedMsg{}, msg)

	f.state.Years = []int{2025}
	_, cmd := m.Update(msg)
	assert.NotNil(t, cmd)
	assert.Equal(t, []int{2025}, m.state.Years)
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(&fakeSelector{}, nil)

	_, cmd := m.Update(key('q'))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
}

func TestModel_View(t *testing.T) {
	year := 2024
	link := "https://linkedin.com/in/riya"
	caption := "Offer day"
	f := &fakeSelector{state: filter.State{
		Years:     []int{2024, 2023},
		Year:      &year,
		Companies: []models.CompanyName{{ID: 1, Name: "Acme"}},
		Company:   &models.CompanyName{ID: 1, Name: "Acme"},
		Students: []models.PlacedStudent{
			{PersonID: 1, FullName: "Riya Shah", Branch: "CSE", GraduationYear: 2024, LinkedInURL: &link},
		},
		Photos:       []models.PlacementPhoto{{ID: 3, ImageURL: "https://img.example/3.jpg", Caption: &caption}},
		InterviewDoc: &models.InterviewDocument{ID: 9, Title: "Acme questions", QuestionsLink: "https://docs.google.com/document/d/abc/edit"},
	}}
	m := newTestModel(f, nil)

	view := m.View()

	assert.Contains(t, view, "CrackGrid")
	assert.Contains(t, view, "2023")
	assert.Contains(t, view, "Acme questions")
	assert.Contains(t, view, "/preview")
	assert.Contains(t, view, "Placed students (1)")
	assert.Contains(t, view, "Riya Shah")
	assert.Contains(t, view, "Offer day")
	assert.Contains(t, view, "[q] Quit")
}

func TestModel_ViewShowsLoadingAndErrors(t *testing.T) {
	f := &fakeSelector{state: filter.State{
		Loading: true,
		Error:   filter.DataUnavailable,
		Message: filter.MsgYearsUnavailable,
	}}
	m := newTestModel(f, nil)

	view := m.View()

	assert.Contains(t, view, "Loading...")
	assert.Contains(t, view, filter.MsgYearsUnavailable)
	assert.Contains(t, view, "(none)")
}

func TestSaveRoster(t *testing.T) {
	dir := t.TempDir()
	save := SaveRoster(dir)

	_, err := save(filter.State{})
	assert.ErrorIs(t, err, ErrNothingToExport)

	year := 2024
	path, err := save(filter.State{
		Year:     &year,
		Company:  &models.CompanyName{ID: 1, Name: "Acme"},
		Students: []models.PlacedStudent{{PersonID: 1, FullName: "Riya Shah", Branch: "CSE", GraduationYear: 2024}},
	})

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Acme_Placed_Students_2024.xlsx"), path)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}
