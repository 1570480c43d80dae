package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/edubase/edubase-backend/internal/config"
	"github.com/edubase/edubase-backend/internal/model"
	"github.com/edubase/edubase-backend/internal/repository"
	"github.com/edubase/edubase-backend/internal/response"
	"github.com/edubase/edubase-backend/internal/tenant"
)

type StudentService struct {
	studentRepo *repository.StudentRepository
	cfg         *config.Config
	log         zerolog.Logger
}

func NewStudentService(studentRepo *repository.StudentRepository, cfg *config.Config, log zerolog.Logger) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		cfg:         cfg,
		log:         log.With().Str("component", "student_service").Logger(),
	}
}

func (s *StudentService) GetByID(ctx context.Context, id int) (*model.Student, error) {
	branch, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	ctx, cancel := storeTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()
	return s.studentRepo.GetByID(ctx, branch, id)
}

func (s *StudentService) List(ctx context.Context, classID, sectionID *int, page, perPage int) ([]model.Student, *response.Pagination, error) {
	branch, err := tenant.FromContext(ctx)
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

	students, total, err := s.studentRepo.ListPaginated(ctx, branch, classID, sectionID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if students == nil {
		students = []model.Student{}
	}

	pagination := &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	}
	return students, pagination, nil
}

func (s *StudentService) Create(ctx context.Context, req *model.CreateStudentRequest) (*model.Student, error) {
	branch, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	st := &model.Student{
		AdmissionNo: req.AdmissionNo,
		Name:        req.Name,
		RollNumber:  req.RollNumber,
		ClassID:     req.ClassID,
		SectionID:   req.SectionID,
	}
	ctx, cancel := storeTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()
	if err := s.studentRepo.Create(ctx, branch, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *StudentService) Update(ctx context.Context, id int, req *model.UpdateStudentRequest) (*model.Student, error) {
	branch, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := storeTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()

	st, err := s.studentRepo.GetByID(ctx, branch, id)
	if err != nil {
		return nil, err
	}
	st.AdmissionNo = req.AdmissionNo
	st.Name = req.Name
	st.RollNumber = req.RollNumber
	st.ClassID = req.ClassID
	st.SectionID = req.SectionID

	if err := s.studentRepo.Update(ctx, branch, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *StudentService) Delete(ctx context.Context, id int) error {
	branch, err := tenant.FromContext(ctx)
	if err != nil {
		return err
	}
	ctx, cancel := storeTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()
	return s.studentRepo.Delete(ctx, branch, id)
}
