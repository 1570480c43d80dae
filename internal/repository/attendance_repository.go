package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edubase/edubase-backend/internal/model"
	"github.com/edubase/edubase-backend/internal/tenant"
)

// ErrDuplicateAttendance signals a second record for the same
// (student, date, period) within a branch.
var ErrDuplicateAttendance = errors.New("attendance already recorded for this student, date and period")

// StatusCountRow is one grouped-count result row.
type StatusCountRow struct {
	Status model.AttendanceStatus
	Count  int
}

// SectionStatusCountRow carries grouped counts keyed by class and section.
type SectionStatusCountRow struct {
	ClassID   int
	SectionID int
	Status    model.AttendanceStatus
	Count     int
}

// DateStatusCountRow carries grouped counts keyed by calendar date.
type DateStatusCountRow struct {
	Date   time.Time
	Status model.AttendanceStatus
	Count  int
}

// AttendanceRepository handles attendance record data access.
type AttendanceRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository.
func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// Create inserts a new attendance record. The partial unique index on
// (branch, student, date, period) maps violations to ErrDuplicateAttendance.
func (r *AttendanceRepository) Create(ctx context.Context, branch tenant.BranchID, rec *model.AttendanceRecord) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO attendance_records (branch_id, student_id, date, period,
		        status, reason, minutes_late, marked_by, source)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at`,
		int(branch), rec.StudentID, rec.Date, rec.Period,
		rec.Status, rec.Reason, rec.MinutesLate, rec.MarkedBy, rec.Source,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateAttendance
		}
		return err
	}
	rec.BranchID = int(branch)
	return nil
}

// Delete removes an attendance record within the branch. Returns
// pgx.ErrNoRows when the row does not exist in this branch.
func (r *AttendanceRepository) Delete(ctx context.Context, branch tenant.BranchID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM attendance_records WHERE id = $1 AND branch_id = $2`, id, int(branch))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ListPaginated retrieves attendance records for a date range with optional
// student filter, newest date first.
func (r *AttendanceRepository) ListPaginated(ctx context.Context, branch tenant.BranchID, from, to time.Time, studentID *int, limit, offset int) ([]model.AttendanceRecord, int, error) {
	where := []string{"a.branch_id = $1", "a.date >= $2", "a.date <= $3"}
	args := []interface{}{int(branch), from, to}
	if studentID != nil {
		args = append(args, *studentID)
		where = append(where, "a.student_id = $"+strconv.Itoa(len(args)))
	}
	whereClause := strings.Join(where, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM attendance_records a WHERE `+whereClause, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT a.id, a.branch_id, a.student_id, a.date, a.period, a.status,
	       a.reason, a.minutes_late, a.marked_by, a.source, a.created_at, a.updated_at,
	       st.name
	 FROM attendance_records a
	 JOIN students st ON st.id = a.student_id AND st.branch_id = a.branch_id
	 WHERE ` + whereClause +
		` ORDER BY a.date DESC, st.roll_number, a.id
	 LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []model.AttendanceRecord
	for rows.Next() {
		var rec model.AttendanceRecord
		if err := rows.Scan(&rec.ID, &rec.BranchID, &rec.StudentID, &rec.Date, &rec.Period,
			&rec.Status, &rec.Reason, &rec.MinutesLate, &rec.MarkedBy, &rec.Source,
			&rec.CreatedAt, &rec.UpdatedAt, &rec.StudentName); err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}
	return records, total, rows.Err()
}

// CountByStatus returns grouped status counts for the filtered population.
// Class and section filters require the student join; they compose with AND.
func (r *AttendanceRepository) CountByStatus(ctx context.Context, branch tenant.BranchID, filter model.AttendanceFilter) ([]StatusCountRow, error) {
	where := []string{"a.branch_id = $1", "a.date >= $2", "a.date <= $3"}
	args := []interface{}{int(branch), filter.From, filter.To}
	if filter.ClassID != nil {
		args = append(args, *filter.ClassID)
		where = append(where, "st.class_id = $"+strconv.Itoa(len(args)))
	}
	if filter.SectionID != nil {
		args = append(args, *filter.SectionID)
		where = append(where, "st.section_id = $"+strconv.Itoa(len(args)))
	}

	rows, err := r.pool.Query(ctx,
		`SELECT a.status, COUNT(*)
		 FROM attendance_records a
		 JOIN students st ON st.id = a.student_id AND st.branch_id = a.branch_id
		 WHERE `+strings.Join(where, " AND ")+`
		 GROUP BY a.status`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []StatusCountRow
	for rows.Next() {
		var c StatusCountRow
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// ListNotPresent retrieves every record in the filtered population whose
// status is anything other than present, ordered by date then roll number.
func (r *AttendanceRepository) ListNotPresent(ctx context.Context, branch tenant.BranchID, filter model.AttendanceFilter) ([]model.AttendanceRecord, error) {
	where := []string{"a.branch_id = $1", "a.date >= $2", "a.date <= $3", "a.status <> 'present'"}
	args := []interface{}{int(branch), filter.From, filter.To}
	if filter.ClassID != nil {
		args = append(args, *filter.ClassID)
		where = append(where, "st.class_id = $"+strconv.Itoa(len(args)))
	}
	if filter.SectionID != nil {
		args = append(args, *filter.SectionID)
		where = append(where, "st.section_id = $"+strconv.Itoa(len(args)))
	}

	rows, err := r.pool.Query(ctx,
		`SELECT a.id, a.branch_id, a.student_id, a.date, a.period, a.status,
		        a.reason, a.minutes_late, a.marked_by, a.source, a.created_at, a.updated_at,
		        st.name
		 FROM attendance_records a
		 JOIN students st ON st.id = a.student_id AND st.branch_id = a.branch_id
		 WHERE `+strings.Join(where, " AND ")+`
		 ORDER BY a.date, st.roll_number, a.id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.AttendanceRecord
	for rows.Next() {
		var rec model.AttendanceRecord
		if err := rows.Scan(&rec.ID, &rec.BranchID, &rec.StudentID, &rec.Date, &rec.Period,
			&rec.Status, &rec.Reason, &rec.MinutesLate, &rec.MarkedBy, &rec.Source,
			&rec.CreatedAt, &rec.UpdatedAt, &rec.StudentName); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CountByClassSection returns grouped status counts keyed by the student's
// class and section for one date. Only groups with records come back; the
// service layer materializes the full class×section grid around them.
func (r *AttendanceRepository) CountByClassSection(ctx context.Context, branch tenant.BranchID, date time.Time) ([]SectionStatusCountRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT st.class_id, st.section_id, a.status, COUNT(*)
		 FROM attendance_records a
		 JOIN students st ON st.id = a.student_id AND st.branch_id = a.branch_id
		 WHERE a.branch_id = $1 AND a.date = $2
		 GROUP BY st.class_id, st.section_id, a.status`,
		int(branch), date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []SectionStatusCountRow
	for rows.Next() {
		var c SectionStatusCountRow
		if err := rows.Scan(&c.ClassID, &c.SectionID, &c.Status, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// CountByDate returns grouped status counts per calendar date across the
// inclusive range. Dates without records produce no rows; trend bucketing
// zero-fills around them.
func (r *AttendanceRepository) CountByDate(ctx context.Context, branch tenant.BranchID, from, to time.Time) ([]DateStatusCountRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.date, a.status, COUNT(*)
		 FROM attendance_records a
		 WHERE a.branch_id = $1 AND a.date >= $2 AND a.date <= $3
		 GROUP BY a.date, a.status
		 ORDER BY a.date`,
		int(branch), from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []DateStatusCountRow
	for rows.Next() {
		var c DateStatusCountRow
		if err := rows.Scan(&c.Date, &c.Status, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
