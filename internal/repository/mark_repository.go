package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edubase/edubase-backend/internal/model"
	"github.com/edubase/edubase-backend/internal/tenant"
)

// ErrDuplicateMark signals an insert for an (exam, subject, student) triple
// that already has a row in the branch.
var ErrDuplicateMark = errors.New("mark already exists for this exam, subject and student")

// ErrUnknownSortKey signals a sort token outside the allowed enumeration.
var ErrUnknownSortKey = errors.New("unknown sort key")

// markSortColumns is the closed enumeration of sort keys accepted on the
// mark listing. Relation keys sort by the joined row's natural field.
// Anything outside this map is rejected, never interpolated.
var markSortColumns = map[string]string{
	"total":        "m.total_marks",
	"grade":        "m.grade",
	"is_absent":    "m.is_absent",
	"created_at":   "m.created_at",
	"evaluated_at": "m.evaluated_at",
	"student":      "st.roll_number",
	"subject":      "sub.name",
	"exam":         "e.exam_date",
}

// ParseMarkSort translates a "field" / "-field" sort token into an ORDER BY
// clause. The empty token falls back to creation order. A deterministic
// m.id tiebreaker keeps pagination stable.
func ParseMarkSort(token string) (string, error) {
	if token == "" {
		return "m.created_at DESC, m.id", nil
	}

	dir := "ASC"
	key := token
	if strings.HasPrefix(token, "-") {
		dir = "DESC"
		key = token[1:]
	}

	col, ok := markSortColumns[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSortKey, key)
	}
	return col + " " + dir + ", m.id", nil
}

const markColumns = `m.id, m.branch_id, m.exam_id, m.subject_id, m.student_id,
	       m.theory_marks, m.practical_marks, m.project_marks, m.internal_marks,
	       m.total_marks, m.grade, m.is_absent, m.evaluated_by, m.evaluated_at,
	       m.created_at, m.updated_at`

// MarkRepository handles mark data access. Every query is scoped to one
// branch; rows from other branches are invisible to it.
type MarkRepository struct {
	pool *pgxpool.Pool
}

// NewMarkRepository creates a new MarkRepository.
func NewMarkRepository(pool *pgxpool.Pool) *MarkRepository {
	return &MarkRepository{pool: pool}
}

func scanMark(row pgx.Row, m *model.Mark) error {
	return row.Scan(&m.ID, &m.BranchID, &m.ExamID, &m.SubjectID, &m.StudentID,
		&m.TheoryMarks, &m.PracticalMarks, &m.ProjectMarks, &m.InternalMarks,
		&m.TotalMarks, &m.Grade, &m.IsAbsent, &m.EvaluatedBy, &m.EvaluatedAt,
		&m.CreatedAt, &m.UpdatedAt)
}

// GetByID retrieves a mark by its UUID within the branch. A row owned by
// another branch behaves exactly like a missing row.
func (r *MarkRepository) GetByID(ctx context.Context, branch tenant.BranchID, id uuid.UUID) (*model.Mark, error) {
	m := &model.Mark{}
	err := scanMark(r.pool.QueryRow(ctx,
		`SELECT `+markColumns+` FROM marks m WHERE m.id = $1 AND m.branch_id = $2`,
		id, int(branch),
	), m)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Create inserts a new mark. A unique-constraint violation on the
// (branch, exam, subject, student) triple maps to ErrDuplicateMark.
func (r *MarkRepository) Create(ctx context.Context, branch tenant.BranchID, m *model.Mark) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO marks (branch_id, exam_id, subject_id, student_id,
		        theory_marks, practical_marks, project_marks, internal_marks,
		        total_marks, grade, is_absent, evaluated_by, evaluated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING id, created_at, updated_at`,
		int(branch), m.ExamID, m.SubjectID, m.StudentID,
		m.TheoryMarks, m.PracticalMarks, m.ProjectMarks, m.InternalMarks,
		m.TotalMarks, m.Grade, m.IsAbsent, m.EvaluatedBy, m.EvaluatedAt,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateMark
		}
		return err
	}
	m.BranchID = int(branch)
	return nil
}

// Update persists the merged state of an existing mark. Returns
// pgx.ErrNoRows when the row does not exist in this branch.
func (r *MarkRepository) Update(ctx context.Context, branch tenant.BranchID, m *model.Mark) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE marks
		 SET theory_marks = $1, practical_marks = $2, project_marks = $3,
		     internal_marks = $4, total_marks = $5, grade = $6, is_absent = $7,
		     evaluated_by = $8, evaluated_at = $9, updated_at = NOW()
		 WHERE id = $10 AND branch_id = $11`,
		m.TheoryMarks, m.PracticalMarks, m.ProjectMarks, m.InternalMarks,
		m.TotalMarks, m.Grade, m.IsAbsent, m.EvaluatedBy, m.EvaluatedAt,
		m.ID, int(branch),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a mark within the branch. Returns pgx.ErrNoRows when the
// row does not exist in this branch.
func (r *MarkRepository) Delete(ctx context.Context, branch tenant.BranchID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM marks WHERE id = $1 AND branch_id = $2`, id, int(branch))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// BulkUpsert applies one insert-or-update per student for a single
// (exam, subject) pair inside one transaction. Either every row commits or
// none does; resubmitting the same batch converges on the same state.
func (r *MarkRepository) BulkUpsert(ctx context.Context, branch tenant.BranchID, marks []*model.Mark) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin bulk upsert: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, m := range marks {
		err := tx.QueryRow(ctx,
			`INSERT INTO marks (branch_id, exam_id, subject_id, student_id,
			        theory_marks, practical_marks, project_marks, internal_marks,
			        total_marks, grade, is_absent, evaluated_by, evaluated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			 ON CONFLICT (branch_id, exam_id, subject_id, student_id) DO UPDATE
			 SET theory_marks = EXCLUDED.theory_marks,
			     practical_marks = EXCLUDED.practical_marks,
			     project_marks = EXCLUDED.project_marks,
			     internal_marks = EXCLUDED.internal_marks,
			     total_marks = EXCLUDED.total_marks,
			     grade = EXCLUDED.grade,
			     is_absent = EXCLUDED.is_absent,
			     evaluated_by = EXCLUDED.evaluated_by,
			     evaluated_at = EXCLUDED.evaluated_at,
			     updated_at = NOW()
			 RETURNING id, created_at, updated_at`,
			int(branch), m.ExamID, m.SubjectID, m.StudentID,
			m.TheoryMarks, m.PracticalMarks, m.ProjectMarks, m.InternalMarks,
			m.TotalMarks, m.Grade, m.IsAbsent, m.EvaluatedBy, m.EvaluatedAt,
		).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
		if err != nil {
			return fmt.Errorf("upsert mark for student %d: %w", m.StudentID, err)
		}
		m.BranchID = int(branch)
	}

	return tx.Commit(ctx)
}

// ListPaginated retrieves marks with filters, pagination and a pre-parsed
// ORDER BY clause (see ParseMarkSort). Joins pull the projection fields.
func (r *MarkRepository) ListPaginated(ctx context.Context, branch tenant.BranchID, filter model.MarkListFilter, orderBy string, limit, offset int) ([]model.Mark, int, error) {
	where := []string{"m.branch_id = $1"}
	args := []interface{}{int(branch)}

	addFilter := func(cond string, val interface{}) {
		args = append(args, val)
		where = append(where, cond+"$"+strconv.Itoa(len(args)))
	}
	if filter.ExamID != nil {
		addFilter("m.exam_id = ", *filter.ExamID)
	}
	if filter.SubjectID != nil {
		addFilter("m.subject_id = ", *filter.SubjectID)
	}
	if filter.StudentID != nil {
		addFilter("m.student_id = ", *filter.StudentID)
	}
	if filter.IsAbsent != nil {
		addFilter("m.is_absent = ", *filter.IsAbsent)
	}
	whereClause := strings.Join(where, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM marks m WHERE `+whereClause, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + markColumns + `,
	       st.name, st.roll_number, sub.name, e.name
	 FROM marks m
	 JOIN students st ON st.id = m.student_id AND st.branch_id = m.branch_id
	 JOIN subjects sub ON sub.id = m.subject_id AND sub.branch_id = m.branch_id
	 JOIN exams e ON e.id = m.exam_id AND e.branch_id = m.branch_id
	 WHERE ` + whereClause +
		` ORDER BY ` + orderBy +
		` LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var marks []model.Mark
	for rows.Next() {
		var m model.Mark
		if err := rows.Scan(&m.ID, &m.BranchID, &m.ExamID, &m.SubjectID, &m.StudentID,
			&m.TheoryMarks, &m.PracticalMarks, &m.ProjectMarks, &m.InternalMarks,
			&m.TotalMarks, &m.Grade, &m.IsAbsent, &m.EvaluatedBy, &m.EvaluatedAt,
			&m.CreatedAt, &m.UpdatedAt,
			&m.StudentName, &m.RollNumber, &m.SubjectName, &m.ExamName); err != nil {
			return nil, 0, err
		}
		marks = append(marks, m)
	}
	return marks, total, rows.Err()
}

// ListByExam retrieves every mark of one exam, ordered by the student's
// roll number and then subject name so result sheets render stably.
func (r *MarkRepository) ListByExam(ctx context.Context, branch tenant.BranchID, examID uuid.UUID) ([]model.Mark, error) {
	return r.listProjection(ctx,
		`WHERE m.branch_id = $1 AND m.exam_id = $2
		 ORDER BY st.roll_number, sub.name, m.id`,
		int(branch), examID)
}

// ListByStudent retrieves one student's marks across exams, newest exam
// first, then subject name.
func (r *MarkRepository) ListByStudent(ctx context.Context, branch tenant.BranchID, studentID int) ([]model.Mark, error) {
	return r.listProjection(ctx,
		`WHERE m.branch_id = $1 AND m.student_id = $2
		 ORDER BY e.exam_date DESC, sub.name, m.id`,
		int(branch), studentID)
}

func (r *MarkRepository) listProjection(ctx context.Context, tail string, args ...interface{}) ([]model.Mark, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+markColumns+`,
		       st.name, st.roll_number, sub.name, e.name
		 FROM marks m
		 JOIN students st ON st.id = m.student_id AND st.branch_id = m.branch_id
		 JOIN subjects sub ON sub.id = m.subject_id AND sub.branch_id = m.branch_id
		 JOIN exams e ON e.id = m.exam_id AND e.branch_id = m.branch_id
		 `+tail, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var marks []model.Mark
	for rows.Next() {
		var m model.Mark
		if err := rows.Scan(&m.ID, &m.BranchID, &m.ExamID, &m.SubjectID, &m.StudentID,
			&m.TheoryMarks, &m.PracticalMarks, &m.ProjectMarks, &m.InternalMarks,
			&m.TotalMarks, &m.Grade, &m.IsAbsent, &m.EvaluatedBy, &m.EvaluatedAt,
			&m.CreatedAt, &m.UpdatedAt,
			&m.StudentName, &m.RollNumber, &m.SubjectName, &m.ExamName); err != nil {
			return nil, err
		}
		marks = append(marks, m)
	}
	return marks, rows.Err()
}
