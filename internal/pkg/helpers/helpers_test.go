package helpers

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUniqueDescending(t *testing.T) {
	t.Run("unions two sources without duplicates", func(t *testing.T) {
		got := UniqueDescending([]int{2023, 2022}, []int{2022, 2021})
		assert.Equal(t, []int{2023, 2022, 2021}, got)
	})

	t.Run("returns an empty non-nil slice for no input", func(t *testing.T) {
		got := UniqueDescending[int]()
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestUniqueAscending(t *testing.T) {
	got := UniqueAscending([]string{"Cee", "Acme"}, []string{"Beta", "Acme"})
	assert.Equal(t, []string{"Acme", "Beta", "Cee"}, got)
}

func TestCoalesce(t *testing.T) {
	type row struct {
		ID   int64
		Name string
	}
	first := []row{{1, "Acme"}, {2, "beta"}}
	second := []row{{2, "beta"}, {3, "Cee"}}

	got := Coalesce(
		func(r row) int64 { return r.ID },
		func(a, b row) int { return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)) },
		first, second,
	)

	assert.Equal(t, []row{{1, "Acme"}, {2, "beta"}, {3, "Cee"}}, got)
}

func TestEmbedURL(t *testing.T) {
	cases := map[string]struct {
		in   string
		want string
	}{
		"empty link":        {"", ""},
		"edit link":         {"https://docs.google.com/document/d/1AbC-x_9/edit?usp=sharing", "https://docs.google.com/document/d/1AbC-x_9/preview"},
		"bare id path":      {"https://docs.google.com/document/d/XYZ", "https://docs.google.com/document/d/XYZ/preview"},
		"no identifier":     {"https://example.com/questions.pdf", "https://example.com/questions.pdf"},
		"already a preview": {"https://docs.google.com/document/d/abc/preview", "https://docs.google.com/document/d/abc/preview"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, EmbedURL(tc.in))
		})
	}
}

func TestRecentYears(t *testing.T) {
	now := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, []int{2025, 2024, 2023, 2022, 2021}, RecentYears(now, 5))
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 3*time.Second, ParseDuration("3s", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("later", time.Minute))
}
