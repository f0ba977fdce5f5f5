package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/crackgrid/internal/app/models"
	"github.com/yigit/crackgrid/internal/pkg/apperrors"
)

func TestExportService_CompanyRoster(t *testing.T) {
	t.Run("names the file after the company", func(t *testing.T) {
		fx := newFixture()
		fx.students.students = []models.PlacedStudent{{FullName: "Zoya"}, {FullName: "Aarav"}}
		svc := NewExportService(fx.stores(), zerolog.Nop())

		wb, err := svc.CompanyRoster(context.Background(), 2024, 2)

		require.NoError(t, err)
		defer wb.Close()
		assert.Equal(t, "Beta_Placed_Students_2024.xlsx", wb.FileName)
		assert.Equal(t, 2, wb.Rows)
	})

	t.Run("unknown company is not found", func(t *testing.T) {
		svc := NewExportService(newFixture().stores(), zerolog.Nop())

		_, err := svc.CompanyRoster(context.Background(), 2024, 99)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("empty roster is reported", func(t *testing.T) {
		svc := NewExportService(newFixture().stores(), zerolog.Nop())

		_, err := svc.CompanyRoster(context.Background(), 2024, 1)

		assert.ErrorIs(t, err, apperrors.ErrEmptyRoster)
	})
}

func TestExportService_YearRoster(t *testing.T) {
	fx := newFixture()
	fx.students.students = []models.PlacedStudent{{FullName: "Zoya", CompanyName: "Acme"}}
	svc := NewExportService(fx.stores(), zerolog.Nop())

	wb, err := svc.YearRoster(context.Background(), 2024)

	require.NoError(t, err)
	defer wb.Close()
	assert.Equal(t, "All_Placed_Students_2024.xlsx", wb.FileName)

	fx.students.err = errDown
	_, err = svc.YearRoster(context.Background(), 2024)
	assert.ErrorIs(t, err, apperrors.ErrTransport)
}
