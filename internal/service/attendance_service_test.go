package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edubase/edubase-backend/internal/model"
	"github.com/edubase/edubase-backend/internal/repository"
)

func TestBuildSectionGridZeroFills(t *testing.T) {
	classes := []model.Class{
		{ID: 1, Name: "Grade 8", GradeLevel: 8},
		{ID: 2, Name: "Grade 9", GradeLevel: 9},
	}
	sections := []model.Section{
		{ID: 10, ClassID: 1, Name: "A"},
		{ID: 11, ClassID: 1, Name: "B"},
		{ID: 20, ClassID: 2, Name: "A"},
	}
	rows := []repository.SectionStatusCountRow{
		{ClassID: 1, SectionID: 10, Status: model.AttendancePresent, Count: 27},
		{ClassID: 1, SectionID: 10, Status: model.AttendanceAbsent, Count: 2},
		{ClassID: 1, SectionID: 10, Status: model.AttendanceLate, Count: 1},
	}

	grid := buildSectionGrid(classes, sections, rows)

	require.Len(t, grid, 2)
	require.Len(t, grid[0].Sections, 2)
	require.Len(t, grid[1].Sections, 1)

	populated := grid[0].Sections[0]
	assert.Equal(t, 10, populated.SectionID)
	assert.Equal(t, 30, populated.Counts.Total)
	assert.Equal(t, 27, populated.Counts.Present)
	assert.Equal(t, 90, populated.Counts.Percentage)

	// sections with no records still appear, all zeroes
	empty := grid[0].Sections[1]
	assert.Equal(t, 11, empty.SectionID)
	assert.Equal(t, 0, empty.Counts.Total)
	assert.Equal(t, 0, empty.Counts.Percentage)

	assert.Equal(t, 0, grid[1].Sections[0].Counts.Total)
}

func TestBuildSectionGridDropsOrphanRows(t *testing.T) {
	classes := []model.Class{{ID: 1, Name: "Grade 8", GradeLevel: 8}}
	sections := []model.Section{{ID: 10, ClassID: 1, Name: "A"}}
	rows := []repository.SectionStatusCountRow{
		{ClassID: 1, SectionID: 10, Status: model.AttendancePresent, Count: 5},
		{ClassID: 9, SectionID: 99, Status: model.AttendancePresent, Count: 3},
	}

	grid := buildSectionGrid(classes, sections, rows)

	require.Len(t, grid, 1)
	require.Len(t, grid[0].Sections, 1)
	assert.Equal(t, 5, grid[0].Sections[0].Counts.Total)
}

func TestBuildSectionGridEmptyBranch(t *testing.T) {
	grid := buildSectionGrid(nil, nil, nil)
	assert.Empty(t, grid)
	assert.NotNil(t, grid)
}
