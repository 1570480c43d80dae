package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/edubase/edubase-backend/internal/config"
	"github.com/edubase/edubase-backend/internal/model"
	"github.com/edubase/edubase-backend/internal/repository"
	"github.com/edubase/edubase-backend/internal/tenant"
)

// ClassWithSections is the listing shape: each class carries its sections.
type ClassWithSections struct {
	model.Class
	Sections []model.Section `json:"sections"`
}

type ClassService struct {
	classRepo *repository.ClassRepository
	cfg       *config.Config
	log       zerolog.Logger
}

func NewClassService(classRepo *repository.ClassRepository, cfg *config.Config, log zerolog.Logger) *ClassService {
	return &ClassService{
		classRepo: classRepo,
		cfg:       cfg,
		log:       log.With().Str("component", "class_service").Logger(),
	}
}

func (s *ClassService) List(ctx context.Context) ([]ClassWithSections, error) {
	branch, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	ctx, cancel := storeTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()

	classes, err := s.classRepo.ListClasses(ctx, branch)
	if err != nil {
		return nil, err
	}
	sections, err := s.classRepo.ListSections(ctx, branch)
	if err != nil {
		return nil, err
	}

	byClass := make(map[int][]model.Section, len(classes))
	for _, sec := range sections {
		byClass[sec.ClassID] = append(byClass[sec.ClassID], sec)
	}

	out := make([]ClassWithSections, 0, len(classes))
	for _, cls := range classes {
		secs := byClass[cls.ID]
		if secs == nil {
			secs = []model.Section{}
		}
		out = append(out, ClassWithSections{Class: cls, Sections: secs})
	}
	return out, nil
}

func (s *ClassService) CreateClass(ctx context.Context, req *model.CreateClassRequest) (*model.Class, error) {
	branch, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	cls := &model.Class{Name: req.Name, GradeLevel: req.GradeLevel}
	ctx, cancel := storeTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()
	if err := s.classRepo.CreateClass(ctx, branch, cls); err != nil {
		return nil, err
	}
	return cls, nil
}

func (s *ClassService) CreateSection(ctx context.Context, req *model.CreateSectionRequest) (*model.Section, error) {
	branch, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	sec := &model.Section{ClassID: req.ClassID, Name: req.Name}
	ctx, cancel := storeTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()
	if err := s.classRepo.CreateSection(ctx, branch, sec); err != nil {
		return nil, err
	}
	return sec, nil
}

func (s *ClassService) DeleteClass(ctx context.Context, id int) error {
	branch, err := tenant.FromContext(ctx)
	if err != nil {
		return err
	}
	ctx, cancel := storeTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()
	return s.classRepo.DeleteClass(ctx, branch, id)
}

func (s *ClassService) DeleteSection(ctx context.Context, id int) error {
	branch, err := tenant.FromContext(ctx)
	if err != nil {
		return err
	}
	ctx, cancel := storeTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()
	return s.classRepo.DeleteSection(ctx, branch, id)
}
