package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/edubase/edubase-backend/internal/config"
	"github.com/edubase/edubase-backend/internal/model"
	"github.com/edubase/edubase-backend/internal/repository"
	"github.com/edubase/edubase-backend/internal/tenant"
)

type ExamService struct {
	examRepo *repository.ExamRepository
	cfg      *config.Config
	log      zerolog.Logger
}

func NewExamService(examRepo *repository.ExamRepository, cfg *config.Config, log zerolog.Logger) *ExamService {
	return &ExamService{
		examRepo: examRepo,
		cfg:      cfg,
		log:      log.With().Str("component", "exam_service").Logger(),
	}
}

func (s *ExamService) List(ctx context.Context) ([]model.Exam, error) {
	branch, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	ctx, cancel := storeTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()
	exams, err := s.examRepo.List(ctx, branch)
	if err != nil {
		return nil, err
	}
	if exams == nil {
		exams = []model.Exam{}
	}
	return exams, nil
}

func (s *ExamService) GetByID(ctx context.Context, id uuid.UUID) (*model.Exam, error) {
	branch, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	ctx, cancel := storeTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()
	return s.examRepo.GetByID(ctx, branch, id)
}

func (s *ExamService) Create(ctx context.Context, req *model.CreateExamRequest) (*model.Exam, error) {
	branch, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	examDate, err := time.Parse(dateLayout, req.ExamDate)
	if err != nil {
		return nil, err
	}
	exam := &model.Exam{
		Name:     req.Name,
		Term:     req.Term,
		ExamDate: examDate,
		MaxMarks: req.MaxMarks,
	}
	ctx, cancel := storeTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()
	if err := s.examRepo.Create(ctx, branch, exam); err != nil {
		return nil, err
	}
	return exam, nil
}

func (s *ExamService) Delete(ctx context.Context, id uuid.UUID) error {
	branch, err := tenant.FromContext(ctx)
	if err != nil {
		return err
	}
	ctx, cancel := storeTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()
	return s.examRepo.Delete(ctx, branch, id)
}
