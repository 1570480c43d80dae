package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edubase/edubase-backend/internal/model"
)

func TestCheckComponents(t *testing.T) {
	ok := 42.5
	neg := -1.0

	assert.NoError(t, checkComponents())
	assert.NoError(t, checkComponents(nil, &ok, nil))
	assert.ErrorIs(t, checkComponents(&ok, &neg), ErrNegativeMarks)
}

func f(v float64) *float64 { return &v }

func b(v bool) *bool { return &v }

func TestMergeMarkUpdateAbsentFlagKeepsTotal(t *testing.T) {
	m := &model.Mark{TotalMarks: f(55)}

	mergeMarkUpdate(m, &model.UpdateMarkRequest{IsAbsent: b(true)})

	assert.True(t, m.IsAbsent)
	require.NotNil(t, m.TotalMarks)
	assert.Equal(t, 55.0, *m.TotalMarks)
}

func TestMergeMarkUpdateComponentChangeRecomputes(t *testing.T) {
	m := &model.Mark{
		TheoryMarks:    f(35),
		PracticalMarks: f(20),
		TotalMarks:     f(55),
	}

	mergeMarkUpdate(m, &model.UpdateMarkRequest{TheoryMarks: f(40)})

	require.NotNil(t, m.TotalMarks)
	assert.Equal(t, 60.0, *m.TotalMarks)
}

func TestMergeMarkUpdateExplicitTotalWins(t *testing.T) {
	m := &model.Mark{TheoryMarks: f(35), TotalMarks: f(35)}

	mergeMarkUpdate(m, &model.UpdateMarkRequest{
		TheoryMarks: f(50),
		TotalMarks:  f(70),
	})

	require.NotNil(t, m.TotalMarks)
	assert.Equal(t, 70.0, *m.TotalMarks)
}

func TestMergeMarkUpdateNoTriggerLeavesTotal(t *testing.T) {
	grade := "B"
	m := &model.Mark{TheoryMarks: f(35), TotalMarks: f(35)}

	mergeMarkUpdate(m, &model.UpdateMarkRequest{Grade: &grade})

	require.NotNil(t, m.TotalMarks)
	assert.Equal(t, 35.0, *m.TotalMarks)
	require.NotNil(t, m.Grade)
	assert.Equal(t, "B", *m.Grade)
}
