package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/edubase/edubase-backend/internal/config"
	"github.com/edubase/edubase-backend/internal/model"
	"github.com/edubase/edubase-backend/internal/repository"
	"github.com/edubase/edubase-backend/internal/tenant"
)

type SubjectService struct {
	subjectRepo *repository.SubjectRepository
	cfg         *config.Config
	log         zerolog.Logger
}

func NewSubjectService(subjectRepo *repository.SubjectRepository, cfg *config.Config, log zerolog.Logger) *SubjectService {
	return &SubjectService{
		subjectRepo: subjectRepo,
		cfg:         cfg,
		log:         log.With().Str("component", "subject_service").Logger(),
	}
}

func (s *SubjectService) List(ctx context.Context) ([]model.Subject, error) {
	branch, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	ctx, cancel := storeTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()
	subjects, err := s.subjectRepo.List(ctx, branch)
	if err != nil {
		return nil, err
	}
	if subjects == nil {
		subjects = []model.Subject{}
	}
	return subjects, nil
}

func (s *SubjectService) Create(ctx context.Context, req *model.CreateSubjectRequest) (*model.Subject, error) {
	branch, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	sub := &model.Subject{Name: req.Name, Code: req.Code}
	ctx, cancel := storeTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()
	if err := s.subjectRepo.Create(ctx, branch, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *SubjectService) Delete(ctx context.Context, id int) error {
	branch, err := tenant.FromContext(ctx)
	if err != nil {
		return err
	}
	ctx, cancel := storeTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()
	return s.subjectRepo.Delete(ctx, branch, id)
}
