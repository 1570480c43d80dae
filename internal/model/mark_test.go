package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestDeriveTotal(t *testing.T) {
	tests := []struct {
		name       string
		components MarkComponents
		explicit   *float64
		isAbsent   bool
		want       *float64
	}{
		{
			name:       "theory plus practical",
			components: MarkComponents{Theory: f(35), Practical: f(20)},
			want:       f(55),
		},
		{
			name:       "all four components",
			components: MarkComponents{Theory: f(40), Practical: f(20), Project: f(15), Internal: f(10)},
			want:       f(85),
		},
		{
			name:       "missing components count as zero",
			components: MarkComponents{Internal: f(8)},
			want:       f(8),
		},
		{
			name:       "no components at all sums to zero",
			components: MarkComponents{},
			want:       f(0),
		},
		{
			name:       "explicit total wins over components",
			components: MarkComponents{Theory: f(35), Practical: f(20)},
			explicit:   f(60),
			want:       f(60),
		},
		{
			name:       "absent student gets no derived total",
			components: MarkComponents{Theory: f(35)},
			isAbsent:   true,
			want:       nil,
		},
		{
			name:     "absent student keeps an explicit total",
			explicit: f(12),
			isAbsent: true,
			want:     f(12),
		},
		{
			name:       "zero-valued component is present, not missing",
			components: MarkComponents{Theory: f(0), Practical: f(20)},
			want:       f(20),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveTotal(tt.components, tt.explicit, tt.isAbsent)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestDeriveTotalDoesNotAliasExplicit(t *testing.T) {
	explicit := f(50)
	got := DeriveTotal(MarkComponents{}, explicit, false)

	require.NotNil(t, got)
	*got = 99
	assert.Equal(t, 50.0, *explicit)
}

func TestHasComponentChange(t *testing.T) {
	assert.False(t, (&UpdateMarkRequest{}).HasComponentChange())
	assert.False(t, (&UpdateMarkRequest{TotalMarks: f(90)}).HasComponentChange())
	assert.True(t, (&UpdateMarkRequest{TheoryMarks: f(30)}).HasComponentChange())
	assert.True(t, (&UpdateMarkRequest{InternalMarks: f(0)}).HasComponentChange())
}
