package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/edubase/edubase-backend/internal/config"
	"github.com/edubase/edubase-backend/internal/database"
	"github.com/edubase/edubase-backend/internal/grading"
	"github.com/edubase/edubase-backend/internal/handler"
	"github.com/edubase/edubase-backend/internal/logger"
	"github.com/edubase/edubase-backend/internal/repository"
	"github.com/edubase/edubase-backend/internal/router"
	"github.com/edubase/edubase-backend/internal/service"
	"github.com/edubase/edubase-backend/internal/validator"
)

func main() {
	cfg := config.Load()

	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting EduBase Backend")

	validator.Setup()

	gradeTable, err := grading.Parse(cfg.GradeBands)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid GRADE_BANDS configuration")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// Repositories
	branchRepo := repository.NewBranchRepository(pool)
	classRepo := repository.NewClassRepository(pool)
	subjectRepo := repository.NewSubjectRepository(pool)
	examRepo := repository.NewExamRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)
	markRepo := repository.NewMarkRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)

	// Services
	authService := service.NewAuthService(adminRepo, cfg, rdb, log)
	branchService := service.NewBranchService(branchRepo, cfg, log)
	classService := service.NewClassService(classRepo, cfg, log)
	subjectService := service.NewSubjectService(subjectRepo, cfg, log)
	examService := service.NewExamService(examRepo, cfg, log)
	studentService := service.NewStudentService(studentRepo, cfg, log)
	markService := service.NewMarkService(markRepo, cfg, log)
	attendanceService := service.NewAttendanceService(attendanceRepo, classRepo, cfg, log)
	trendService := service.NewTrendService(attendanceRepo, cfg, log)

	// Handlers
	handlers := &router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Branch:     handler.NewBranchHandler(branchService),
		Class:      handler.NewClassHandler(classService),
		Subject:    handler.NewSubjectHandler(subjectService),
		Exam:       handler.NewExamHandler(examService),
		Student:    handler.NewStudentHandler(studentService),
		Mark:       handler.NewMarkHandler(markService),
		Attendance: handler.NewAttendanceHandler(attendanceService, trendService),
		Grading:    handler.NewGradingHandler(gradeTable),
	}

	r := router.SetupRouter(authService, handlers, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
