package model

import (
	"time"

	"github.com/google/uuid"
)

// Exam represents one examination event (e.g. "Term 1 Midterm").
// Marks reference exams; exam rows themselves are structural data.
type Exam struct {
	ID        uuid.UUID `json:"id"`
	BranchID  int       `json:"branch_id"`
	Name      string    `json:"name"`
	Term      string    `json:"term"`
	ExamDate  time.Time `json:"exam_date"`
	MaxMarks  float64   `json:"max_marks"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateExamRequest is the payload for creating or updating an exam.
type CreateExamRequest struct {
	Name     string  `json:"name" binding:"required,min=2,max=150"`
	Term     string  `json:"term" binding:"required,min=1,max=50"`
	ExamDate string  `json:"exam_date" binding:"required,datetime=2006-01-02"`
	MaxMarks float64 `json:"max_marks" binding:"required,gt=0,max=1000"`
}
