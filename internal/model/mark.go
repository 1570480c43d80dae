package model

import (
	"time"

	"github.com/google/uuid"
)

// Mark represents one student's result for one (exam, subject) pair.
// At most one row exists per (branch, exam, subject, student); the database
// enforces this with a unique constraint.
type Mark struct {
	ID             uuid.UUID  `json:"id"`
	BranchID       int        `json:"branch_id"`
	ExamID         uuid.UUID  `json:"exam_id"`
	SubjectID      int        `json:"subject_id"`
	StudentID      int        `json:"student_id"`
	TheoryMarks    *float64   `json:"theory_marks,omitempty"`
	PracticalMarks *float64   `json:"practical_marks,omitempty"`
	ProjectMarks   *float64   `json:"project_marks,omitempty"`
	InternalMarks  *float64   `json:"internal_marks,omitempty"`
	TotalMarks     *float64   `json:"total_marks,omitempty"`
	Grade          *string    `json:"grade,omitempty"`
	IsAbsent       bool       `json:"is_absent"`
	EvaluatedBy    *int       `json:"evaluated_by,omitempty"`
	EvaluatedAt    *time.Time `json:"evaluated_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Projection fields populated by list queries (not stored on the row).
	StudentName *string `json:"student_name,omitempty"`
	RollNumber  *int    `json:"roll_number,omitempty"`
	SubjectName *string `json:"subject_name,omitempty"`
	ExamName    *string `json:"exam_name,omitempty"`
}

// MarkComponents groups the optional component scores of a mark.
type MarkComponents struct {
	Theory    *float64
	Practical *float64
	Project   *float64
	Internal  *float64
}

// Components returns the mark's stored component scores.
func (m *Mark) Components() MarkComponents {
	return MarkComponents{
		Theory:    m.TheoryMarks,
		Practical: m.PracticalMarks,
		Project:   m.ProjectMarks,
		Internal:  m.InternalMarks,
	}
}

// DeriveTotal computes the total for a mark from its component scores.
// The rule is shared verbatim by the create and update paths:
//
//   - an explicitly supplied total always wins;
//   - for an absent student no total is derived (stays nil);
//   - otherwise the total is the sum of the supplied components, with a
//     missing component counting as 0 rather than poisoning the sum.
func DeriveTotal(c MarkComponents, explicit *float64, isAbsent bool) *float64 {
	if explicit != nil {
		v := *explicit
		return &v
	}
	if isAbsent {
		return nil
	}

	sum := 0.0
	for _, part := range []*float64{c.Theory, c.Practical, c.Project, c.Internal} {
		if part != nil {
			sum += *part
		}
	}
	return &sum
}

// CreateMarkRequest is the payload for recording a single mark.
type CreateMarkRequest struct {
	ExamID         uuid.UUID `json:"exam_id" binding:"required"`
	SubjectID      int       `json:"subject_id" binding:"required,min=1"`
	StudentID      int       `json:"student_id" binding:"required,min=1"`
	TheoryMarks    *float64  `json:"theory_marks" binding:"omitempty,min=0"`
	PracticalMarks *float64  `json:"practical_marks" binding:"omitempty,min=0"`
	ProjectMarks   *float64  `json:"project_marks" binding:"omitempty,min=0"`
	InternalMarks  *float64  `json:"internal_marks" binding:"omitempty,min=0"`
	TotalMarks     *float64  `json:"total_marks" binding:"omitempty,min=0"`
	Grade          *string   `json:"grade" binding:"omitempty,max=5"`
	IsAbsent       bool      `json:"is_absent"`
	EvaluatedBy    *int      `json:"evaluated_by" binding:"omitempty,min=1"`
}

// UpdateMarkRequest is the partial payload for re-evaluating a mark.
// Pointer fields distinguish "not supplied" from zero values.
type UpdateMarkRequest struct {
	TheoryMarks    *float64 `json:"theory_marks" binding:"omitempty,min=0"`
	PracticalMarks *float64 `json:"practical_marks" binding:"omitempty,min=0"`
	ProjectMarks   *float64 `json:"project_marks" binding:"omitempty,min=0"`
	InternalMarks  *float64 `json:"internal_marks" binding:"omitempty,min=0"`
	TotalMarks     *float64 `json:"total_marks" binding:"omitempty,min=0"`
	Grade          *string  `json:"grade" binding:"omitempty,max=5"`
	IsAbsent       *bool    `json:"is_absent"`
	EvaluatedBy    *int     `json:"evaluated_by" binding:"omitempty,min=1"`
}

// HasComponentChange reports whether at least one component score is
// supplied, which is what triggers total recomputation on update.
func (r *UpdateMarkRequest) HasComponentChange() bool {
	return r.TheoryMarks != nil || r.PracticalMarks != nil ||
		r.ProjectMarks != nil || r.InternalMarks != nil
}

// BulkMarkRow is one per-student entry of a bulk grading submission.
// Exam and subject come from the request path.
type BulkMarkRow struct {
	StudentID      int      `json:"student_id" binding:"required,min=1"`
	TheoryMarks    *float64 `json:"theory_marks" binding:"omitempty,min=0"`
	PracticalMarks *float64 `json:"practical_marks" binding:"omitempty,min=0"`
	ProjectMarks   *float64 `json:"project_marks" binding:"omitempty,min=0"`
	InternalMarks  *float64 `json:"internal_marks" binding:"omitempty,min=0"`
	TotalMarks     *float64 `json:"total_marks" binding:"omitempty,min=0"`
	Grade          *string  `json:"grade" binding:"omitempty,max=5"`
	IsAbsent       bool     `json:"is_absent"`
	EvaluatedBy    *int     `json:"evaluated_by" binding:"omitempty,min=1"`
}

// MarkListFilter narrows the paginated mark listing. Filters compose with
// AND semantics; nil fields are ignored.
type MarkListFilter struct {
	ExamID    *uuid.UUID
	SubjectID *int
	StudentID *int
	IsAbsent  *bool
}
