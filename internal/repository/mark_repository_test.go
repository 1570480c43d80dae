package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMarkSort(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"", "m.created_at DESC, m.id"},
		{"total", "m.total_marks ASC, m.id"},
		{"-total", "m.total_marks DESC, m.id"},
		{"grade", "m.grade ASC, m.id"},
		{"created_at", "m.created_at ASC, m.id"},
		{"-evaluated_at", "m.evaluated_at DESC, m.id"},
		{"student", "st.roll_number ASC, m.id"},
		{"-student", "st.roll_number DESC, m.id"},
		{"subject", "sub.name ASC, m.id"},
		{"-exam", "e.exam_date DESC, m.id"},
	}
	for _, tt := range tests {
		t.Run("token "+tt.token, func(t *testing.T) {
			got, err := ParseMarkSort(tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMarkSortRejectsUnknownKeys(t *testing.T) {
	// Free-form tokens must never reach the query builder.
	for _, token := range []string{
		"name",
		"-name",
		"m.total_marks",
		"total; DROP TABLE marks",
		"total ASC",
		"--total",
		"-",
	} {
		t.Run("token "+token, func(t *testing.T) {
			_, err := ParseMarkSort(token)
			assert.ErrorIs(t, err, ErrUnknownSortKey)
		})
	}
}
