package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("default style table", func(t *testing.T) {
		table, err := Parse("A+:90,A:80,B+:70,B:60,C:50,D:40,F:0")
		require.NoError(t, err)

		bands := table.Bands()
		require.Len(t, bands, 7)
		assert.Equal(t, "A+", bands[0].Letter)
		assert.Equal(t, 90.0, bands[0].MinPercent)
		assert.Equal(t, "F", bands[6].Letter)
	})

	t.Run("input order does not matter", func(t *testing.T) {
		table, err := Parse("F:0,A:80,B:60")
		require.NoError(t, err)

		bands := table.Bands()
		assert.Equal(t, []string{"A", "B", "F"}, []string{bands[0].Letter, bands[1].Letter, bands[2].Letter})
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, raw := range []string{
			"",
			"A;90",
			"A:ninety",
			":90",
			"A:120",
			"A:-5",
			"A:80,B:80", // duplicate cutoff
		} {
			_, err := Parse(raw)
			assert.Error(t, err, "input %q", raw)
		}
	})
}

func TestGrade(t *testing.T) {
	table, err := Parse("A+:90,A:80,B+:70,B:60,C:50,D:40,F:0")
	require.NoError(t, err)

	tests := []struct {
		name     string
		obtained float64
		max      float64
		want     string
	}{
		{"top of the table", 95, 100, "A+"},
		{"exact cutoff earns the band", 90, 100, "A+"},
		{"just under a cutoff", 89.9, 100, "A"},
		{"mid-table total", 55, 100, "C"},
		{"scaled maximum", 55, 60, "A+"},
		{"zero obtained", 0, 100, "F"},
		{"non-positive max falls to lowest band", 50, 0, "F"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Grade(tt.obtained, tt.max))
		})
	}
}
