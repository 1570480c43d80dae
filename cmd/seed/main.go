package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/edubase/edubase-backend/internal/config"
	"github.com/edubase/edubase-backend/internal/database"
	"github.com/edubase/edubase-backend/internal/grading"
	"github.com/edubase/edubase-backend/internal/logger"
	"github.com/edubase/edubase-backend/internal/model"
	"github.com/edubase/edubase-backend/internal/repository"
	"github.com/edubase/edubase-backend/internal/service"
	"github.com/edubase/edubase-backend/internal/tenant"
)

// Seeds a demo branch with classes, sections, subjects, students, one exam
// with a full mark sheet, and a month of attendance. Safe to rerun: an
// existing demo branch aborts the run instead of duplicating data.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	gradeTable, err := grading.Parse(cfg.GradeBands)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid GRADE_BANDS configuration")
	}

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	branchRepo := repository.NewBranchRepository(pool)
	classRepo := repository.NewClassRepository(pool)
	subjectRepo := repository.NewSubjectRepository(pool)
	examRepo := repository.NewExamRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)
	markRepo := repository.NewMarkRepository(pool)

	markService := service.NewMarkService(markRepo, cfg, log)
	attendanceService := service.NewAttendanceService(attendanceRepo, classRepo, cfg, log)

	fmt.Println("=== Seeding Demo Branch ===")

	branch := &model.Branch{Name: "Demo Campus", Code: "DEMO"}
	if err := branchRepo.Create(ctx, branch); err != nil {
		if errors.Is(err, repository.ErrDuplicateBranchCode) {
			fmt.Println("Demo branch already exists, nothing to do")
			return
		}
		log.Fatal().Err(err).Msg("Failed to create branch")
	}
	scope := tenant.BranchID(branch.ID)
	ctx = tenant.WithBranch(ctx, scope)
	fmt.Printf("Created branch %q with ID: %d\n", branch.Name, branch.ID)

	rng := rand.New(rand.NewSource(42))

	// Classes and sections
	var sections []model.Section
	for _, gradeLevel := range []int{8, 9} {
		cls := &model.Class{Name: fmt.Sprintf("Grade %d", gradeLevel), GradeLevel: gradeLevel}
		if err := classRepo.CreateClass(ctx, scope, cls); err != nil {
			log.Fatal().Err(err).Msg("Failed to create class")
		}
		for _, name := range []string{"A", "B"} {
			sec := &model.Section{ClassID: cls.ID, Name: name}
			if err := classRepo.CreateSection(ctx, scope, sec); err != nil {
				log.Fatal().Err(err).Msg("Failed to create section")
			}
			sections = append(sections, *sec)
		}
	}

	// Subjects
	subjectSpecs := []struct{ name, code string }{
		{"Mathematics", "MATH"},
		{"English", "ENG"},
		{"Science", "SCI"},
		{"History", "HIST"},
		{"Computer Science", "CS"},
	}
	var subjects []model.Subject
	for _, spec := range subjectSpecs {
		sub := &model.Subject{Name: spec.name, Code: spec.code}
		if err := subjectRepo.Create(ctx, scope, sub); err != nil {
			log.Fatal().Err(err).Msg("Failed to create subject")
		}
		subjects = append(subjects, *sub)
	}

	// Students, ten per section
	names := []string{
		"Aarav Sharma", "Bina Thapa", "Chirag Patel", "Divya Nair", "Eshan Gurung",
		"Farida Khan", "Gaurav Joshi", "Hina Shrestha", "Ishan Rai", "Jyoti Verma",
		"Kabir Singh", "Lata Pandey", "Manish Karki", "Nisha Adhikari", "Omkar Desai",
		"Priya Menon", "Rohit Basnet", "Sita Lama", "Tara Maharjan", "Uday Kapoor",
		"Vidya Iyer", "Wasim Ahmed", "Yamuna Koirala", "Zubin Mehta", "Anita Ghale",
		"Bikash Magar", "Chandni Oli", "Deepak Bista", "Elina Tamang", "Firoz Ansari",
		"Gita Rana", "Hari Poudel", "Indira KC", "Jeevan Limbu", "Kamala Bhatt",
		"Laxman Dahal", "Mina Subedi", "Nabin Khadka", "Ojaswi Regmi", "Pooja Thakur",
	}
	var students []model.Student
	admission := 1000
	for i, sec := range sections {
		for roll := 1; roll <= 10; roll++ {
			admission++
			st := &model.Student{
				AdmissionNo: fmt.Sprintf("ADM-%d", admission),
				Name:        names[(i*10+roll-1)%len(names)],
				RollNumber:  roll,
				ClassID:     sec.ClassID,
				SectionID:   sec.ID,
			}
			if err := studentRepo.Create(ctx, scope, st); err != nil {
				log.Fatal().Err(err).Msg("Failed to create student")
			}
			students = append(students, *st)
		}
	}
	fmt.Printf("Created %d students across %d sections\n", len(students), len(sections))

	// A month of attendance, school days only
	day := time.Now().UTC().AddDate(0, 0, -30)
	for !day.After(time.Now().UTC()) {
		if day.Weekday() != time.Saturday && day.Weekday() != time.Sunday {
			for _, st := range students {
				req := &model.CreateAttendanceRequest{
					StudentID: st.ID,
					Date:      day.Format("2006-01-02"),
					Status:    model.AttendancePresent,
				}
				switch roll := rng.Intn(20); {
				case roll == 0:
					reason := "sick leave"
					req.Status = model.AttendanceAbsent
					req.Reason = &reason
				case roll == 1:
					reason := "bus delay"
					minutes := 5 + rng.Intn(30)
					req.Status = model.AttendanceLate
					req.Reason = &reason
					req.MinutesLate = &minutes
				}
				if _, err := attendanceService.Create(ctx, req); err != nil {
					log.Fatal().Err(err).Msg("Failed to record attendance")
				}
			}
		}
		day = day.AddDate(0, 0, 1)
	}
	fmt.Println("Seeded attendance for the last 30 days")

	// One exam with a complete mark sheet per subject
	exam := &model.Exam{
		Name:     "Term 1 Midterm",
		Term:     "Term 1",
		ExamDate: time.Now().UTC().AddDate(0, 0, -7),
		MaxMarks: 100,
	}
	if err := examRepo.Create(ctx, scope, exam); err != nil {
		log.Fatal().Err(err).Msg("Failed to create exam")
	}

	for _, sub := range subjects {
		rows := make([]model.BulkMarkRow, 0, len(students))
		for _, st := range students {
			if rng.Intn(25) == 0 {
				rows = append(rows, model.BulkMarkRow{StudentID: st.ID, IsAbsent: true})
				continue
			}
			theory := 20 + rng.Float64()*50
			practical := 5 + rng.Float64()*25
			grade := gradeTable.Grade(theory+practical, exam.MaxMarks)
			rows = append(rows, model.BulkMarkRow{
				StudentID:      st.ID,
				TheoryMarks:    &theory,
				PracticalMarks: &practical,
				Grade:          &grade,
			})
		}
		if _, err := markService.BulkUpsert(ctx, exam.ID, sub.ID, rows); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed marks")
		}
	}
	fmt.Printf("Seeded marks for exam %q across %d subjects\n", exam.Name, len(subjects))

	fmt.Println("Done")
}
