package model

import "time"

// Student represents a student's current enrollment at a branch.
type Student struct {
	ID          int       `json:"id"`
	BranchID    int       `json:"branch_id"`
	AdmissionNo string    `json:"admission_no"`
	Name        string    `json:"name"`
	RollNumber  int       `json:"roll_number"`
	ClassID     int       `json:"class_id"`
	SectionID   int       `json:"section_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateStudentRequest is the payload for enrolling a new student.
type CreateStudentRequest struct {
	AdmissionNo string `json:"admission_no" binding:"required,min=1,max=30"`
	Name        string `json:"name" binding:"required,min=2,max=100"`
	RollNumber  int    `json:"roll_number" binding:"required,min=1"`
	ClassID     int    `json:"class_id" binding:"required,min=1"`
	SectionID   int    `json:"section_id" binding:"required,min=1"`
}

// UpdateStudentRequest is the payload for updating an existing student.
type UpdateStudentRequest struct {
	AdmissionNo string `json:"admission_no" binding:"required,min=1,max=30"`
	Name        string `json:"name" binding:"required,min=2,max=100"`
	RollNumber  int    `json:"roll_number" binding:"required,min=1"`
	ClassID     int    `json:"class_id" binding:"required,min=1"`
	SectionID   int    `json:"section_id" binding:"required,min=1"`
}
