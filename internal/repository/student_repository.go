package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edubase/edubase-backend/internal/model"
	"github.com/edubase/edubase-backend/internal/tenant"
)

// ErrDuplicateAdmissionNo signals a second student with the same admission
// number in a branch.
var ErrDuplicateAdmissionNo = errors.New("student with this admission number already exists")

// StudentRepository handles student data access.
type StudentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

// GetByID retrieves a student by ID within the branch.
func (r *StudentRepository) GetByID(ctx context.Context, branch tenant.BranchID, id int) (*model.Student, error) {
	s := &model.Student{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, branch_id, admission_no, name, roll_number, class_id, section_id, created_at, updated_at
		 FROM students WHERE id = $1 AND branch_id = $2`, id, int(branch),
	).Scan(&s.ID, &s.BranchID, &s.AdmissionNo, &s.Name, &s.RollNumber, &s.ClassID, &s.SectionID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ListPaginated retrieves students with pagination and optional class and
// section filters, ordered by roll number.
func (r *StudentRepository) ListPaginated(ctx context.Context, branch tenant.BranchID, classID, sectionID *int, limit, offset int) ([]model.Student, int, error) {
	where := `WHERE branch_id = $1`
	args := []interface{}{int(branch)}
	if classID != nil {
		args = append(args, *classID)
		where += ` AND class_id = $` + strconv.Itoa(len(args))
	}
	if sectionID != nil {
		args = append(args, *sectionID)
		where += ` AND section_id = $` + strconv.Itoa(len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM students `+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, branch_id, admission_no, name, roll_number, class_id, section_id, created_at, updated_at
	 FROM students ` + where +
		` ORDER BY roll_number, name LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var students []model.Student
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(&s.ID, &s.BranchID, &s.AdmissionNo, &s.Name, &s.RollNumber, &s.ClassID, &s.SectionID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, err
		}
		students = append(students, s)
	}
	return students, total, rows.Err()
}

// Create inserts a new student.
func (r *StudentRepository) Create(ctx context.Context, branch tenant.BranchID, s *model.Student) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO students (branch_id, admission_no, name, roll_number, class_id, section_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		int(branch), s.AdmissionNo, s.Name, s.RollNumber, s.ClassID, s.SectionID,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateAdmissionNo
		}
		return err
	}
	s.BranchID = int(branch)
	return nil
}

// Update modifies a student's enrollment info within the branch.
func (r *StudentRepository) Update(ctx context.Context, branch tenant.BranchID, s *model.Student) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE students
		 SET admission_no = $1, name = $2, roll_number = $3, class_id = $4, section_id = $5, updated_at = NOW()
		 WHERE id = $6 AND branch_id = $7`,
		s.AdmissionNo, s.Name, s.RollNumber, s.ClassID, s.SectionID, s.ID, int(branch),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateAdmissionNo
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a student within the branch.
func (r *StudentRepository) Delete(ctx context.Context, branch tenant.BranchID, id int) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM students WHERE id = $1 AND branch_id = $2`, id, int(branch))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
