package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/tutorly-backend/internal/config"
	"github.com/stemsi/tutorly-backend/internal/database"
	"github.com/stemsi/tutorly-backend/internal/handler"
	"github.com/stemsi/tutorly-backend/internal/logger"
	"github.com/stemsi/tutorly-backend/internal/middleware"
	"github.com/stemsi/tutorly-backend/internal/repository"
	"github.com/stemsi/tutorly-backend/internal/router"
	"github.com/stemsi/tutorly-backend/internal/service"
	"github.com/stemsi/tutorly-backend/internal/token"
	"github.com/stemsi/tutorly-backend/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Tutorly Backend")

	if cfg.UsesDefaultSecret() {
		log.Warn().Msg("AUTH_SECRET is not set, using the insecure development default")
	}

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	accountRepo := repository.NewAccountRepository(pool)
	revocations := repository.NewRevocationStore(rdb)
	studentRepo := repository.NewStudentRepository(pool)
	tutorRepo := repository.NewTutorRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	gradeRepo := repository.NewGradeRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	codec := token.NewCodec(cfg.AuthSecret)
	authService := service.NewAuthService(cfg, accountRepo, revocations, codec, log)
	studentService := service.NewStudentService(studentRepo)
	tutorService := service.NewTutorService(tutorRepo)
	courseService := service.NewCourseService(courseRepo)
	bookingService := service.NewBookingService(bookingRepo, tutorRepo, log)
	gradeService := service.NewGradeService(gradeRepo)
	paymentService := service.NewPaymentService(paymentRepo)
	reviewService := service.NewReviewService(reviewRepo)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Student: handler.NewStudentHandler(studentService),
		Tutor:   handler.NewTutorHandler(tutorService),
		Course:  handler.NewCourseHandler(courseService),
		Booking: handler.NewBookingHandler(bookingService),
		Grade:   handler.NewGradeHandler(gradeService),
		Payment: handler.NewPaymentHandler(paymentService),
		Review:  handler.NewReviewHandler(reviewService),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(router.Deps{
		Authorizer: authService,
		Limiter:    middleware.NewRedisLimiter(rdb, config.CacheKey.AuthRateLimitPrefix()),
		Log:        log,
	}, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
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
