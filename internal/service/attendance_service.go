package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/edubase/edubase-backend/internal/config"
	"github.com/edubase/edubase-backend/internal/model"
	"github.com/edubase/edubase-backend/internal/repository"
	"github.com/edubase/edubase-backend/internal/response"
	"github.com/edubase/edubase-backend/internal/tenant"
)

// ErrInvalidDateRange signals a range whose end precedes its start.
var ErrInvalidDateRange = errors.New("end date precedes start date")

const dateLayout = "2006-01-02"

// DashboardStats is the attendance dashboard payload: overall counts plus
// the slice of students who were anything other than fully present.
type DashboardStats struct {
	Date            string                   `json:"date,omitempty"`
	StartDate       string                   `json:"start_date,omitempty"`
	EndDate         string                   `json:"end_date,omitempty"`
	Counts          model.StatusCounts       `json:"counts"`
	NotFullyPresent []model.AttendanceRecord `json:"not_fully_present"`
}

// SectionSummary is one cell of the class-section attendance grid.
type SectionSummary struct {
	SectionID   int                `json:"section_id"`
	SectionName string             `json:"section_name"`
	Counts      model.StatusCounts `json:"counts"`
}

// ClassSummary groups a class's section summaries for one date.
type ClassSummary struct {
	ClassID    int              `json:"class_id"`
	ClassName  string           `json:"class_name"`
	GradeLevel int              `json:"grade_level"`
	Sections   []SectionSummary `json:"sections"`
}

// AttendanceService implements attendance recording, the dashboard
// aggregations and the class-section report.
type AttendanceService struct {
	attendanceRepo *repository.AttendanceRepository
	classRepo      *repository.ClassRepository
	cfg            *config.Config
	log            zerolog.Logger
}

// NewAttendanceService creates a new AttendanceService.
func NewAttendanceService(attendanceRepo *repository.AttendanceRepository, classRepo *repository.ClassRepository, cfg *config.Config, log zerolog.Logger) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		classRepo:      classRepo,
		cfg:            cfg,
		log:            log.With().Str("component", "attendance_service").Logger(),
	}
}

// Create records one attendance status after checking the per-record
// invariants: known status and source, a reason for non-present records,
// and minutes_late on exactly the late ones. Source defaults to manual.
func (s *AttendanceService) Create(ctx context.Context, req *model.CreateAttendanceRequest) (*model.AttendanceRecord, error) {
	branch, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	source := req.Source
	if source == "" {
		source = model.SourceManual
	}
	if err := model.ValidateAttendance(req.Status, source, req.Reason, req.MinutesLate); err != nil {
		return nil, err
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, err
	}

	rec := &model.AttendanceRecord{
		StudentID:   req.StudentID,
		Date:        date,
		Period:      req.Period,
		Status:      req.Status,
		Reason:      req.Reason,
		MinutesLate: req.MinutesLate,
		MarkedBy:    req.MarkedBy,
		Source:      source,
	}

	ctx, cancel := storeTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()
	if err := s.attendanceRepo.Create(ctx, branch, rec); err != nil {
		return nil, err
	}

	s.log.Debug().
		Str("record_id", rec.ID.String()).
		Int("student_id", rec.StudentID).
		Str("status", string(rec.Status)).
		Msg("Attendance recorded")
	return rec, nil
}

// Delete removes an attendance record within the active branch.
func (s *AttendanceService) Delete(ctx context.Context, id uuid.UUID) error {
	branch, err := tenant.FromContext(ctx)
	if err != nil {
		return err
	}
	ctx, cancel := storeTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()
	return s.attendanceRepo.Delete(ctx, branch, id)
}

// List retrieves attendance records for an inclusive date range with an
// optional student filter.
func (s *AttendanceService) List(ctx context.Context, from, to time.Time, studentID *int, page, perPage int) ([]model.AttendanceRecord, *response.Pagination, error) {
	branch, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, nil, err
	}
	if to.Before(from) {
		return nil, nil, ErrInvalidDateRange
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

	records, total, err := s.attendanceRepo.ListPaginated(ctx, branch, from, to, studentID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if records == nil {
		records = []model.AttendanceRecord{}
	}

	pagination := &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	}
	return records, pagination, nil
}

// GetDashboardStats aggregates status counts over the filtered population
// and lists every record that is not plain present, so the dashboard can
// show who is missing and why. A population with no records yields all
// zeroes rather than an error.
func (s *AttendanceService) GetDashboardStats(ctx context.Context, filter model.AttendanceFilter) (*DashboardStats, error) {
	branch, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if filter.To.Before(filter.From) {
		return nil, ErrInvalidDateRange
	}

	ctx, cancel := storeTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()

	rows, err := s.attendanceRepo.CountByStatus(ctx, branch, filter)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{NotFullyPresent: []model.AttendanceRecord{}}
	for _, row := range rows {
		stats.Counts.Add(row.Status, row.Count)
	}
	stats.Counts.Finalize()

	if filter.From.Equal(filter.To) {
		stats.Date = filter.From.Format(dateLayout)
	} else {
		stats.StartDate = filter.From.Format(dateLayout)
		stats.EndDate = filter.To.Format(dateLayout)
	}

	if stats.Counts.Total > stats.Counts.Present {
		records, err := s.attendanceRepo.ListNotPresent(ctx, branch, filter)
		if err != nil {
			return nil, err
		}
		if records != nil {
			stats.NotFullyPresent = records
		}
	}
	return stats, nil
}

// GetClassSectionSummary builds the full class and section grid for one
// date. Every section of every class appears exactly once, zero-filled
// when it has no records; grouped counts from the store are draped over
// that skeleton.
func (s *AttendanceService) GetClassSectionSummary(ctx context.Context, date time.Time) ([]ClassSummary, error) {
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
	rows, err := s.attendanceRepo.CountByClassSection(ctx, branch, date)
	if err != nil {
		return nil, err
	}
	return buildSectionGrid(classes, sections, rows), nil
}

// buildSectionGrid materializes the class-section summary in memory.
// Rows that reference a class or section missing from the structural
// listing (deleted mid-flight) are dropped instead of inventing cells.
func buildSectionGrid(classes []model.Class, sections []model.Section, rows []repository.SectionStatusCountRow) []ClassSummary {
	counts := make(map[int]*model.StatusCounts, len(sections))
	for _, row := range rows {
		c, ok := counts[row.SectionID]
		if !ok {
			c = &model.StatusCounts{}
			counts[row.SectionID] = c
		}
		c.Add(row.Status, row.Count)
	}

	bySectionClass := make(map[int][]model.Section, len(classes))
	for _, sec := range sections {
		bySectionClass[sec.ClassID] = append(bySectionClass[sec.ClassID], sec)
	}

	summaries := make([]ClassSummary, 0, len(classes))
	for _, cls := range classes {
		summary := ClassSummary{
			ClassID:    cls.ID,
			ClassName:  cls.Name,
			GradeLevel: cls.GradeLevel,
			Sections:   []SectionSummary{},
		}
		for _, sec := range bySectionClass[cls.ID] {
			cell := SectionSummary{SectionID: sec.ID, SectionName: sec.Name}
			if c, ok := counts[sec.ID]; ok {
				cell.Counts = *c
			}
			cell.Counts.Finalize()
			summary.Sections = append(summary.Sections, cell)
		}
		summaries = append(summaries, summary)
	}
	return summaries
}
