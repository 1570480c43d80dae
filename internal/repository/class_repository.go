package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edubase/edubase-backend/internal/model"
	"github.com/edubase/edubase-backend/internal/tenant"
)

// ClassRepository handles class and section data access.
type ClassRepository struct {
	pool *pgxpool.Pool
}

// NewClassRepository creates a new ClassRepository.
func NewClassRepository(pool *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{pool: pool}
}

// ListClasses retrieves every class of the branch ordered by grade level.
func (r *ClassRepository) ListClasses(ctx context.Context, branch tenant.BranchID) ([]model.Class, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, branch_id, name, grade_level, created_at, updated_at
		 FROM classes WHERE branch_id = $1
		 ORDER BY grade_level, name`, int(branch))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []model.Class
	for rows.Next() {
		var c model.Class
		if err := rows.Scan(&c.ID, &c.BranchID, &c.Name, &c.GradeLevel, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

// ListSections retrieves every section of the branch ordered by class then name.
func (r *ClassRepository) ListSections(ctx context.Context, branch tenant.BranchID) ([]model.Section, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, branch_id, class_id, name, created_at, updated_at
		 FROM sections WHERE branch_id = $1
		 ORDER BY class_id, name`, int(branch))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []model.Section
	for rows.Next() {
		var s model.Section
		if err := rows.Scan(&s.ID, &s.BranchID, &s.ClassID, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}
	return sections, rows.Err()
}

// CreateClass inserts a new class.
func (r *ClassRepository) CreateClass(ctx context.Context, branch tenant.BranchID, c *model.Class) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO classes (branch_id, name, grade_level)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		int(branch), c.Name, c.GradeLevel,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return err
	}
	c.BranchID = int(branch)
	return nil
}

// CreateSection inserts a new section under a class of the same branch.
func (r *ClassRepository) CreateSection(ctx context.Context, branch tenant.BranchID, s *model.Section) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO sections (branch_id, class_id, name)
		 SELECT $1, c.id, $3 FROM classes c WHERE c.id = $2 AND c.branch_id = $1
		 RETURNING id, created_at, updated_at`,
		int(branch), s.ClassID, s.Name,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return err
	}
	s.BranchID = int(branch)
	return nil
}

// DeleteClass removes a class within the branch.
func (r *ClassRepository) DeleteClass(ctx context.Context, branch tenant.BranchID, id int) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM classes WHERE id = $1 AND branch_id = $2`, id, int(branch))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// DeleteSection removes a section within the branch.
func (r *ClassRepository) DeleteSection(ctx context.Context, branch tenant.BranchID, id int) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM sections WHERE id = $1 AND branch_id = $2`, id, int(branch))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
