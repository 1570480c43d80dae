package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/edubase/edubase-backend/internal/config"
	"github.com/edubase/edubase-backend/internal/metrics"
	"github.com/edubase/edubase-backend/internal/model"
	"github.com/edubase/edubase-backend/internal/repository"
	"github.com/edubase/edubase-backend/internal/response"
	"github.com/edubase/edubase-backend/internal/tenant"
)

// Domain Errors
var (
	ErrNegativeMarks = errors.New("component marks must not be negative")
	ErrEmptyBatch    = errors.New("bulk submission contains no rows")
)

// MarkService implements the mark record engine: single and bulk idempotent
// upserts with total derivation, always under the caller's branch scope.
type MarkService struct {
	markRepo *repository.MarkRepository
	cfg      *config.Config
	log      zerolog.Logger
}

// NewMarkService creates a new MarkService.
func NewMarkService(markRepo *repository.MarkRepository, cfg *config.Config, log zerolog.Logger) *MarkService {
	return &MarkService{
		markRepo: markRepo,
		cfg:      cfg,
		log:      log.With().Str("component", "mark_service").Logger(),
	}
}

// Create records a single mark. The total is derived from the supplied
// components unless given explicitly or the student is absent; the grade is
// stored exactly as submitted. An existing (exam, subject, student) row
// yields repository.ErrDuplicateMark, never a silent overwrite.
func (s *MarkService) Create(ctx context.Context, req *model.CreateMarkRequest) (*model.Mark, error) {
	branch, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkComponents(req.TheoryMarks, req.PracticalMarks, req.ProjectMarks, req.InternalMarks, req.TotalMarks); err != nil {
		return nil, err
	}

	m := &model.Mark{
		ExamID:         req.ExamID,
		SubjectID:      req.SubjectID,
		StudentID:      req.StudentID,
		TheoryMarks:    req.TheoryMarks,
		PracticalMarks: req.PracticalMarks,
		ProjectMarks:   req.ProjectMarks,
		InternalMarks:  req.InternalMarks,
		Grade:          req.Grade,
		IsAbsent:       req.IsAbsent,
		EvaluatedBy:    req.EvaluatedBy,
	}
	m.TotalMarks = model.DeriveTotal(m.Components(), req.TotalMarks, req.IsAbsent)
	if req.EvaluatedBy != nil {
		now := time.Now()
		m.EvaluatedAt = &now
	}

	ctx, cancel := storeTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()
	if err := s.markRepo.Create(ctx, branch, m); err != nil {
		return nil, err
	}

	s.log.Debug().
		Str("mark_id", m.ID.String()).
		Int("student_id", m.StudentID).
		Int("branch_id", int(branch)).
		Msg("Mark recorded")
	return m, nil
}

// Update re-evaluates an existing mark. The record must belong to the
// active branch; a row owned elsewhere behaves like a missing row.
func (s *MarkService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateMarkRequest) (*model.Mark, error) {
	branch, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkComponents(req.TheoryMarks, req.PracticalMarks, req.ProjectMarks, req.InternalMarks, req.TotalMarks); err != nil {
		return nil, err
	}

	ctx, cancel := storeTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()

	m, err := s.markRepo.GetByID(ctx, branch, id)
	if err != nil {
		return nil, err
	}

	mergeMarkUpdate(m, req)

	if req.EvaluatedBy != nil {
		m.EvaluatedBy = req.EvaluatedBy
		now := time.Now()
		m.EvaluatedAt = &now
	}

	if err := s.markRepo.Update(ctx, branch, m); err != nil {
		return nil, err
	}
	return m, nil
}

// mergeMarkUpdate folds the supplied fields of req into m. The total is
// recomputed only when at least one component changed and the total was
// not explicitly overridden in the same call, always on the merged view
// of old and new values. Flipping the absent flag alone never touches a
// stored total.
func mergeMarkUpdate(m *model.Mark, req *model.UpdateMarkRequest) {
	if req.TheoryMarks != nil {
		m.TheoryMarks = req.TheoryMarks
	}
	if req.PracticalMarks != nil {
		m.PracticalMarks = req.PracticalMarks
	}
	if req.ProjectMarks != nil {
		m.ProjectMarks = req.ProjectMarks
	}
	if req.InternalMarks != nil {
		m.InternalMarks = req.InternalMarks
	}
	if req.Grade != nil {
		m.Grade = req.Grade
	}
	if req.IsAbsent != nil {
		m.IsAbsent = *req.IsAbsent
	}

	switch {
	case req.TotalMarks != nil:
		m.TotalMarks = req.TotalMarks
	case req.HasComponentChange():
		m.TotalMarks = model.DeriveTotal(m.Components(), nil, m.IsAbsent)
	}
}

// Delete removes a mark within the active branch.
func (s *MarkService) Delete(ctx context.Context, id uuid.UUID) error {
	branch, err := tenant.FromContext(ctx)
	if err != nil {
		return err
	}
	ctx, cancel := storeTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()
	return s.markRepo.Delete(ctx, branch, id)
}

// BulkUpsert persists one mark per student for a single (exam, subject)
// pair atomically. Every row is validated before any persistence call, so
// one bad row rejects the whole batch with the store untouched. The
// operation is idempotent: resubmitting a batch converges on the same
// stored state.
func (s *MarkService) BulkUpsert(ctx context.Context, examID uuid.UUID, subjectID int, rows []model.BulkMarkRow) ([]*model.Mark, error) {
	branch, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptyBatch
	}

	now := time.Now()
	marks := make([]*model.Mark, 0, len(rows))
	for i, row := range rows {
		if err := checkComponents(row.TheoryMarks, row.PracticalMarks, row.ProjectMarks, row.InternalMarks, row.TotalMarks); err != nil {
			return nil, fmt.Errorf("row %d (student %d): %w", i, row.StudentID, err)
		}
		m := &model.Mark{
			ExamID:         examID,
			SubjectID:      subjectID,
			StudentID:      row.StudentID,
			TheoryMarks:    row.TheoryMarks,
			PracticalMarks: row.PracticalMarks,
			ProjectMarks:   row.ProjectMarks,
			InternalMarks:  row.InternalMarks,
			Grade:          row.Grade,
			IsAbsent:       row.IsAbsent,
			EvaluatedBy:    row.EvaluatedBy,
		}
		m.TotalMarks = model.DeriveTotal(m.Components(), row.TotalMarks, row.IsAbsent)
		if row.EvaluatedBy != nil {
			at := now
			m.EvaluatedAt = &at
		}
		marks = append(marks, m)
	}

	ctx, cancel := storeTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()
	if err := s.markRepo.BulkUpsert(ctx, branch, marks); err != nil {
		return nil, err
	}
	metrics.BulkMarkRows.Observe(float64(len(marks)))

	s.log.Info().
		Str("exam_id", examID.String()).
		Int("subject_id", subjectID).
		Int("rows", len(marks)).
		Int("branch_id", int(branch)).
		Msg("Bulk marks committed")
	return marks, nil
}

// List retrieves marks with filters, pagination and sorting. The sort token
// must come from the closed enumeration in the repository.
func (s *MarkService) List(ctx context.Context, filter model.MarkListFilter, sort string, page, perPage int) ([]model.Mark, *response.Pagination, error) {
	branch, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, nil, err
	}

	orderBy, err := repository.ParseMarkSort(sort)
	if err != nil {
		return nil, nil, err
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	ctx, cancel := storeTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()

	marks, total, err := s.markRepo.ListPaginated(ctx, branch, filter, orderBy, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if marks == nil {
		marks = []model.Mark{}
	}

	pagination := &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	}
	return marks, pagination, nil
}

// GetExamMarks retrieves an exam's result sheet in fixed roll-number order.
func (s *MarkService) GetExamMarks(ctx context.Context, examID uuid.UUID) ([]model.Mark, error) {
	branch, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	ctx, cancel := storeTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()

	marks, err := s.markRepo.ListByExam(ctx, branch, examID)
	if err != nil {
		return nil, err
	}
	if marks == nil {
		marks = []model.Mark{}
	}
	return marks, nil
}

// GetStudentMarks retrieves one student's marks, newest exam first.
func (s *MarkService) GetStudentMarks(ctx context.Context, studentID int) ([]model.Mark, error) {
	branch, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	ctx, cancel := storeTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()

	marks, err := s.markRepo.ListByStudent(ctx, branch, studentID)
	if err != nil {
		return nil, err
	}
	if marks == nil {
		marks = []model.Mark{}
	}
	return marks, nil
}

// checkComponents rejects negative numeric inputs before any persistence
// call. Binding validation covers the HTTP path; this guards every caller.
func checkComponents(values ...*float64) error {
	for _, v := range values {
		if v != nil && *v < 0 {
			return ErrNegativeMarks
		}
	}
	return nil
}
