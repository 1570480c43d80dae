package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/edubase/edubase-backend/internal/config"
	"github.com/edubase/edubase-backend/internal/model"
	"github.com/edubase/edubase-backend/internal/repository"
)

// BranchService manages the branch partitions themselves. It is the one
// service that runs outside any branch scope: you need to see branches
// before you can pick one.
type BranchService struct {
	branchRepo *repository.BranchRepository
	cfg        *config.Config
	log        zerolog.Logger
}

func NewBranchService(branchRepo *repository.BranchRepository, cfg *config.Config, log zerolog.Logger) *BranchService {
	return &BranchService{
		branchRepo: branchRepo,
		cfg:        cfg,
		log:        log.With().Str("component", "branch_service").Logger(),
	}
}

func (s *BranchService) List(ctx context.Context) ([]model.Branch, error) {
	ctx, cancel := storeTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()
	branches, err := s.branchRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if branches == nil {
		branches = []model.Branch{}
	}
	return branches, nil
}

func (s *BranchService) GetByID(ctx context.Context, id int) (*model.Branch, error) {
	ctx, cancel := storeTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()
	return s.branchRepo.GetByID(ctx, id)
}

func (s *BranchService) Create(ctx context.Context, name, code string) (*model.Branch, error) {
	b := &model.Branch{Name: name, Code: code}
	ctx, cancel := storeTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()
	if err := s.branchRepo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}
