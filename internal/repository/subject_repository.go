package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edubase/edubase-backend/internal/model"
	"github.com/edubase/edubase-backend/internal/tenant"
)

// ErrDuplicateSubjectCode signals a second subject with the same code in a branch.
var ErrDuplicateSubjectCode = errors.New("subject with this code already exists")

// SubjectRepository handles subject data access.
type SubjectRepository struct {
	pool *pgxpool.Pool
}

// NewSubjectRepository creates a new SubjectRepository.
func NewSubjectRepository(pool *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{pool: pool}
}

// List retrieves every subject of the branch ordered by name.
func (r *SubjectRepository) List(ctx context.Context, branch tenant.BranchID) ([]model.Subject, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, branch_id, name, code, created_at, updated_at
		 FROM subjects WHERE branch_id = $1 ORDER BY name`, int(branch))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []model.Subject
	for rows.Next() {
		var s model.Subject
		if err := rows.Scan(&s.ID, &s.BranchID, &s.Name, &s.Code, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

// Create inserts a new subject.
func (r *SubjectRepository) Create(ctx context.Context, branch tenant.BranchID, s *model.Subject) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO subjects (branch_id, name, code)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		int(branch), s.Name, s.Code,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateSubjectCode
		}
		return err
	}
	s.BranchID = int(branch)
	return nil
}

// Delete removes a subject within the branch.
func (r *SubjectRepository) Delete(ctx context.Context, branch tenant.BranchID, id int) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM subjects WHERE id = $1 AND branch_id = $2`, id, int(branch))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
