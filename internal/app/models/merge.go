package models

import (
	"strings"

	"github.com/yigit/crackgrid/internal/pkg/helpers"
)

// MergeYearRows unions year rows from any number of sources, newest first
func MergeYearRows(rows ...[]YearRow) []int {
	years := make([][]int, 0, len(rows))
	for _, set := range rows {
		ys := make([]int, 0, len(set))
		for _, r := range set {
			ys = append(ys, r.Year)
		}
		years = append(years, ys)
	}
	return helpers.UniqueDescending(years...)
}

// MergeCompanyNames deduplicates resolved companies by name and sorts them ascending
func MergeCompanyNames(names ...[]CompanyName) []CompanyName {
	return helpers.Coalesce(
		func(c CompanyName) string { return c.Name },
		func(a, b CompanyName) int { return strings.Compare(a.Name, b.Name) },
		names...,
	)
}

// FindCompany looks a company option up by display name
func FindCompany(options []CompanyName, name string) (CompanyName, bool) {
	for _, c := range options {
		if c.Name == name {
			return c, true
		}
	}
	return CompanyName{}, false
}
