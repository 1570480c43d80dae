package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// AttendanceStatus enumerates the possible states of an attendance record.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceExcused AttendanceStatus = "excused"
	AttendanceMedical AttendanceStatus = "medical"
	AttendanceHalfDay AttendanceStatus = "half_day"
)

// Valid reports whether the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate,
		AttendanceExcused, AttendanceMedical, AttendanceHalfDay:
		return true
	default:
		return false
	}
}

// AttendanceSource records how a status entered the system.
type AttendanceSource string

const (
	SourceManual    AttendanceSource = "manual"
	SourceBiometric AttendanceSource = "biometric"
	SourceImport    AttendanceSource = "import"
)

// Valid reports whether the source is a supported value.
func (s AttendanceSource) Valid() bool {
	switch s {
	case SourceManual, SourceBiometric, SourceImport:
		return true
	default:
		return false
	}
}

// AttendanceRecord is a student's status for one date, optionally scoped to
// a period. At most one record exists per (branch, student, date, period).
type AttendanceRecord struct {
	ID          uuid.UUID        `json:"id"`
	BranchID    int              `json:"branch_id"`
	StudentID   int              `json:"student_id"`
	Date        time.Time        `json:"date"`
	Period      *int             `json:"period,omitempty"`
	Status      AttendanceStatus `json:"status"`
	Reason      *string          `json:"reason,omitempty"`
	MinutesLate *int             `json:"minutes_late,omitempty"`
	MarkedBy    *int             `json:"marked_by,omitempty"`
	Source      AttendanceSource `json:"source"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`

	// Projection fields populated by list queries.
	StudentName *string `json:"student_name,omitempty"`
}

// Validation errors for attendance records.
var (
	ErrUnknownStatus      = errors.New("unknown attendance status")
	ErrUnknownSource      = errors.New("unknown attendance source")
	ErrReasonRequired     = errors.New("reason is required when status is not present")
	ErrMinutesLateMissing = errors.New("late records must carry a positive minutes_late")
	ErrMinutesLateInvalid = errors.New("minutes_late is only valid on late records")
)

// ValidateAttendance enforces the per-record invariants before persistence:
// recognized status and source, a reason for anything other than present,
// and a positive minutes_late on exactly the late records.
func ValidateAttendance(status AttendanceStatus, source AttendanceSource, reason *string, minutesLate *int) error {
	if !status.Valid() {
		return ErrUnknownStatus
	}
	if !source.Valid() {
		return ErrUnknownSource
	}
	if status != AttendancePresent && (reason == nil || *reason == "") {
		return ErrReasonRequired
	}
	if status == AttendanceLate {
		if minutesLate == nil || *minutesLate <= 0 {
			return ErrMinutesLateMissing
		}
	} else if minutesLate != nil {
		return ErrMinutesLateInvalid
	}
	return nil
}

// CreateAttendanceRequest is the payload for recording a status.
type CreateAttendanceRequest struct {
	StudentID   int              `json:"student_id" binding:"required,min=1"`
	Date        string           `json:"date" binding:"required,datetime=2006-01-02"`
	Period      *int             `json:"period" binding:"omitempty,min=1,max=12"`
	Status      AttendanceStatus `json:"status" binding:"required"`
	Reason      *string          `json:"reason" binding:"omitempty,max=500"`
	MinutesLate *int             `json:"minutes_late" binding:"omitempty"`
	MarkedBy    *int             `json:"marked_by" binding:"omitempty,min=1"`
	Source      AttendanceSource `json:"source" binding:"omitempty"`
}

// AttendanceFilter narrows attendance queries. A single-day query sets
// From == To. Class and section filters compose with AND semantics.
type AttendanceFilter struct {
	From      time.Time
	To        time.Time
	ClassID   *int
	SectionID *int
}

// StatusCounts is the aggregation shape shared by the dashboard, the
// class-section summary and the trend buckets.
type StatusCounts struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Late    int `json:"late"`
	Excused int `json:"excused"`
	Medical int `json:"medical"`
	HalfDay int `json:"half_day"`
	Total   int `json:"total"`
	// Percentage is present/total*100 rounded to the nearest integer,
	// defined as 0 for an empty population.
	Percentage int `json:"percentage"`
}

// Add counts one record with the given status.
func (c *StatusCounts) Add(status AttendanceStatus, n int) {
	switch status {
	case AttendancePresent:
		c.Present += n
	case AttendanceAbsent:
		c.Absent += n
	case AttendanceLate:
		c.Late += n
	case AttendanceExcused:
		c.Excused += n
	case AttendanceMedical:
		c.Medical += n
	case AttendanceHalfDay:
		c.HalfDay += n
	default:
		return
	}
	c.Total += n
}

// Finalize computes the percentage from the accumulated counts.
func (c *StatusCounts) Finalize() {
	if c.Total == 0 {
		c.Percentage = 0
		return
	}
	c.Percentage = int(float64(c.Present)/float64(c.Total)*100 + 0.5)
}
