package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edubase/edubase-backend/internal/model"
	"github.com/edubase/edubase-backend/internal/tenant"
)

// ExamRepository handles exam data access.
type ExamRepository struct {
	pool *pgxpool.Pool
}

// NewExamRepository creates a new ExamRepository.
func NewExamRepository(pool *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{pool: pool}
}

// GetByID retrieves an exam by its UUID within the branch.
func (r *ExamRepository) GetByID(ctx context.Context, branch tenant.BranchID, id uuid.UUID) (*model.Exam, error) {
	e := &model.Exam{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, branch_id, name, term, exam_date, max_marks, created_at, updated_at
		 FROM exams WHERE id = $1 AND branch_id = $2`, id, int(branch),
	).Scan(&e.ID, &e.BranchID, &e.Name, &e.Term, &e.ExamDate, &e.MaxMarks, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// List retrieves every exam of the branch, newest first.
func (r *ExamRepository) List(ctx context.Context, branch tenant.BranchID) ([]model.Exam, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, branch_id, name, term, exam_date, max_marks, created_at, updated_at
		 FROM exams WHERE branch_id = $1
		 ORDER BY exam_date DESC, name`, int(branch))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exams []model.Exam
	for rows.Next() {
		var e model.Exam
		if err := rows.Scan(&e.ID, &e.BranchID, &e.Name, &e.Term, &e.ExamDate, &e.MaxMarks, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		exams = append(exams, e)
	}
	return exams, rows.Err()
}

// Create inserts a new exam.
func (r *ExamRepository) Create(ctx context.Context, branch tenant.BranchID, e *model.Exam) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO exams (branch_id, name, term, exam_date, max_marks)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		int(branch), e.Name, e.Term, e.ExamDate, e.MaxMarks,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return err
	}
	e.BranchID = int(branch)
	return nil
}

// Delete removes an exam within the branch.
func (r *ExamRepository) Delete(ctx context.Context, branch tenant.BranchID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM exams WHERE id = $1 AND branch_id = $2`, id, int(branch))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
