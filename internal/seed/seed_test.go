package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultDrives(t *testing.T) {
	type key struct {
		year    int
		company string
	}
	seen := map[key]bool{}
	docYears := map[int]bool{}
	placementYears := map[int]bool{}

	for _, d := range DefaultDrives {
		k := key{d.Year, d.Company}
		assert.False(t, seen[k], "duplicate drive %v", k)
		seen[k] = true

		if d.DocLink != "" {
			assert.NotEmpty(t, d.DocTitle)
			docYears[d.Year] = true
		}
		if len(d.Students) > 0 {
			placementYears[d.Year] = true
		}
	}

	assert.True(t, docYears[2024] && placementYears[2024], "sample data should overlap across sources")
	assert.True(t, placementYears[2023] && !docYears[2023], "sample data should have a placements-only year")
}
