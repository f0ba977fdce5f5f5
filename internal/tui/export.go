package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yigit/crackgrid/internal/filter"
	"github.com/yigit/crackgrid/internal/pkg/export"
)

// ErrNothingToExport is returned when the selection has no placed students
var ErrNothingToExport = errors.New("select a year and a company with placed students first")

// SaveRoster exports the students currently on screen into dir.
func SaveRoster(dir string) ExportFunc {
	return func(s filter.State) (string, error) {
		if s.Year == nil || s.Company == nil || len(s.Students) == 0 {
			return "", ErrNothingToExport
		}

		wb, err := export.BuildCompanyRoster(s.Company.Name, *s.Year, s.Students)
		if err != nil {
			return "", err
		}
		defer wb.Close()

		return wb.SaveIn(dir)
	}
}

// Run starts the browse view on the terminal and blocks until the user quits.
func Run(ctrl Selector, changes Notifier, exporter ExportFunc) error {
	_, err := tea.NewProgram(NewModel(ctrl, changes, exporter, nil), tea.WithAltScreen()).Run()
	return err
}
