package model

import "time"

// Class represents a school class group (e.g. "Grade 8").
type Class struct {
	ID         int       `json:"id"`
	BranchID   int       `json:"branch_id"`
	Name       string    `json:"name"`
	GradeLevel int       `json:"grade_level"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Section is a division within a class (e.g. "8-A").
type Section struct {
	ID        int       `json:"id"`
	BranchID  int       `json:"branch_id"`
	ClassID   int       `json:"class_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateClassRequest is the payload for creating or updating a class.
type CreateClassRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=100"`
	GradeLevel int    `json:"grade_level" binding:"required,min=1,max=13"`
}

// CreateSectionRequest is the payload for creating or updating a section.
type CreateSectionRequest struct {
	ClassID int    `json:"class_id" binding:"required,min=1"`
	Name    string `json:"name" binding:"required,min=1,max=20"`
}
