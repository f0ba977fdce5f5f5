// Package export builds roster spreadsheets of placed students.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"github.com/yigit/crackgrid/internal/app/models"
)

// SheetName is the single worksheet of every roster workbook
const SheetName = "Placed Students"

const (
	minColumnWidth = 10
	maxColumnWidth = 60
)

var (
	// CompanyHeader is the header row of a single-company roster
	CompanyHeader = []string{"Full Name", "Branch", "Graduation Year", "LinkedIn URL"}
	// YearHeader is the header row of a whole-year roster
	YearHeader = append([]string{"Company"}, CompanyHeader...)

	unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9]+`)
)

// Workbook is a finished roster ready to be written out
type Workbook struct {
	File     *excelize.File
	FileName string
	Rows     int
}

// CompanyFileName names a single-company roster file
func CompanyFileName(company string, year int) string {
	safe := strings.Trim(unsafeFileChars.ReplaceAllString(company, "_"), "_")
	if safe == "" {
		safe = "Company"
	}
	return fmt.Sprintf("%s_Placed_Students_%d.xlsx", safe, year)
}

// YearFileName names a whole-year roster file
func YearFileName(year int) string {
	return fmt.Sprintf("All_Placed_Students_%d.xlsx", year)
}

// BuildCompanyRoster lays out the students of one company, in input order
func BuildCompanyRoster(company string, year int, students []models.PlacedStudent) (*Workbook, error) {
	rows := make([][]interface{}, 0, len(students))
	for _, s := range students {
		rows = append(rows, studentCells(s))
	}
	return build(CompanyHeader, rows, CompanyFileName(company, year))
}

// BuildYearRoster lays out every placed student of a year with a leading company column
func BuildYearRoster(year int, students []models.PlacedStudent) (*Workbook, error) {
	rows := make([][]interface{}, 0, len(students))
	for _, s := range students {
		rows = append(rows, append([]interface{}{s.CompanyName}, studentCells(s)...))
	}
	return build(YearHeader, rows, YearFileName(year))
}

func studentCells(s models.PlacedStudent) []interface{} {
	linkedIn := ""
	if s.LinkedInURL != nil {
		linkedIn = *s.LinkedInURL
	}
	return []interface{}{s.FullName, s.Branch, s.GraduationYear, linkedIn}
}

func build(header []string, rows [][]interface{}, fileName string) (*Workbook, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	widths := make([]int, len(header))
	headerCells := make([]interface{}, len(header))
	for i, h := range header {
		headerCells[i] = h
		widths[i] = utf8.RuneCountInString(h)
	}
	if err := f.SetSheetRow(SheetName, "A1", &headerCells); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		err = f.SetRowStyle(SheetName, 1, 1, bold)
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("style header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
		for c, v := range row {
			if c < len(widths) {
				widths[c] = max(widths[c], utf8.RuneCountInString(fmt.Sprint(v)))
			}
		}
	}

	if err := autoSize(f, widths); err != nil {
		f.Close()
		return nil, err
	}

	return &Workbook{File: f, FileName: fileName, Rows: len(rows)}, nil
}

// autoSize fits every column to its widest cell within fixed bounds
func autoSize(f *excelize.File, widths []int) error {
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		width := min(max(w+2, minColumnWidth), maxColumnWidth)
		if err := f.SetColWidth(SheetName, col, col, float64(width)); err != nil {
			return fmt.Errorf("size column %s: %w", col, err)
		}
	}
	return nil
}

// WriteTo streams the workbook as xlsx
func (w *Workbook) WriteTo(out io.Writer) (int64, error) {
	return w.File.WriteTo(out)
}

// SaveIn writes the workbook into dir under its own file name and returns the path
func (w *Workbook) SaveIn(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	path := filepath.Join(dir, w.FileName)
	if err := w.File.SaveAs(path); err != nil {
		return "", fmt.Errorf("save %s: %w", w.FileName, err)
	}
	return path, nil
}

// Close releases the workbook's resources
func (w *Workbook) Close() error {
	return w.File.Close()
}
