package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsNoRows(t *testing.T) {
	assert.True(t, IsNoRows(pgx.ErrNoRows))
	assert.True(t, IsNoRows(fmt.Errorf("scan document: %w", pgx.ErrNoRows)))
	assert.False(t, IsNoRows(errors.New("connection refused")))
	assert.False(t, IsNoRows(nil))
}

func TestIsDuplicateConstraintError(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "companies_name_key"}

	assert.True(t, IsDuplicateConstraintError(dup, "companies_name_key"))
	assert.True(t, IsDuplicateConstraintError(fmt.Errorf("insert: %w", dup), ""))
	assert.False(t, IsDuplicateConstraintError(dup, "persons_pkey"))
	assert.False(t, IsDuplicateConstraintError(&pgconn.PgError{Code: "42P01"}, ""))
	assert.False(t, IsDuplicateConstraintError(errors.New("boom"), ""))
}
