package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edubase/edubase-backend/internal/model"
)

// ErrDuplicateBranchCode signals a second branch with the same code.
var ErrDuplicateBranchCode = errors.New("branch with this code already exists")

// BranchRepository handles branch data access. Branches are the tenancy
// roots, so these queries are the only ones not themselves branch-scoped.
type BranchRepository struct {
	pool *pgxpool.Pool
}

// NewBranchRepository creates a new BranchRepository.
func NewBranchRepository(pool *pgxpool.Pool) *BranchRepository {
	return &BranchRepository{pool: pool}
}

// GetByID retrieves a branch by ID.
func (r *BranchRepository) GetByID(ctx context.Context, id int) (*model.Branch, error) {
	b := &model.Branch{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, code, created_at, updated_at FROM branches WHERE id = $1`, id,
	).Scan(&b.ID, &b.Name, &b.Code, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// List retrieves every branch ordered by name.
func (r *BranchRepository) List(ctx context.Context) ([]model.Branch, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, code, created_at, updated_at FROM branches ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var branches []model.Branch
	for rows.Next() {
		var b model.Branch
		if err := rows.Scan(&b.ID, &b.Name, &b.Code, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		branches = append(branches, b)
	}
	return branches, rows.Err()
}

// Create inserts a new branch.
func (r *BranchRepository) Create(ctx context.Context, b *model.Branch) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO branches (name, code)
		 VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		b.Name, b.Code,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateBranchCode
		}
		return err
	}
	return nil
}
