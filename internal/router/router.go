package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/tutorly-backend/internal/config"
	"github.com/stemsi/tutorly-backend/internal/handler"
	"github.com/stemsi/tutorly-backend/internal/middleware"
	"github.com/stemsi/tutorly-backend/internal/model"
	"github.com/stemsi/tutorly-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth    *handler.AuthHandler
	Student *handler.StudentHandler
	Tutor   *handler.TutorHandler
	Course  *handler.CourseHandler
	Booking *handler.BookingHandler
	Grade   *handler.GradeHandler
	Payment *handler.PaymentHandler
	Review  *handler.ReviewHandler
}

// Deps carries the collaborators the middleware chain needs.
type Deps struct {
	Authorizer middleware.Authorizer
	// Limiter may be nil, which disables auth rate limiting.
	Limiter middleware.Limiter
	Log     zerolog.Logger
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(deps Deps, handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "X-RateLimit-Remaining", "Retry-After"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(deps.Log))
	router.Use(middleware.Brotli())

	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	authed := middleware.RequireAuth(deps.Authorizer)
	staff := middleware.RequireAuth(deps.Authorizer, model.RoleTutor, model.RoleAdmin)
	admin := middleware.RequireAuth(deps.Authorizer, model.RoleAdmin)

	// ─── 1. Auth (Public, Rate Limited) ────────────────────────────────
	auth := router.Group("/auth")
	auth.Use(middleware.NoStore())
	if deps.Limiter != nil {
		auth.Use(middleware.RateLimit(deps.Limiter, cfg.AuthRateLimit, time.Minute, deps.Log))
	}
	{
		auth.POST("/signup", handlers.Auth.Signup)
		auth.POST("/login", handlers.Auth.Login)
		auth.POST("/refresh", handlers.Auth.Refresh)
		auth.GET("/me", authed, handlers.Auth.Me)
		auth.POST("/logout", authed, handlers.Auth.Logout)
	}

	// ─── 2. Students ───────────────────────────────────────────────────
	students := router.Group("/students")
	{
		students.GET("", authed, handlers.Student.List)
		students.GET("/:id", authed, handlers.Student.Get)
		students.POST("", admin, handlers.Student.Create)
		students.PUT("/:id", admin, handlers.Student.Update)
		students.DELETE("/:id", admin, handlers.Student.Delete)
	}

	// ─── 3. Tutors ─────────────────────────────────────────────────────
	tutors := router.Group("/tutors")
	{
		tutors.GET("", handlers.Tutor.List)
		tutors.POST("", admin, handlers.Tutor.Create)
		tutors.PUT("/:id", admin, handlers.Tutor.Update)
		tutors.DELETE("/:id", admin, handlers.Tutor.Delete)

		tutors.GET("/:id/availability", handlers.Tutor.ListAvailability)
		tutors.POST("/:id/availability", staff, handlers.Tutor.AddAvailability)
		tutors.DELETE("/:id/availability/:slotId", staff, handlers.Tutor.RemoveAvailability)
	}

	// ─── 4. Courses ────────────────────────────────────────────────────
	courses := router.Group("/courses")
	{
		courses.GET("", handlers.Course.List)
		courses.GET("/:id", handlers.Course.Get)
		courses.GET("/:id/tutors", handlers.Course.ListTutors)
		courses.GET("/tutor/:tutorId", handlers.Course.ListForTutor)
		courses.POST("", admin, handlers.Course.Create)
		courses.PUT("/:id", admin, handlers.Course.Update)
		courses.DELETE("/:id", admin, handlers.Course.Delete)
		courses.POST("/tutor/:tutorId/course/:courseId", admin, handlers.Course.Assign)
		courses.DELETE("/tutor/:tutorId/course/:courseId", admin, handlers.Course.Unassign)
	}

	// ─── 5. Bookings ───────────────────────────────────────────────────
	bookings := router.Group("/bookings")
	{
		bookings.GET("/availability/:tutorId/:date", handlers.Booking.Availability)
		bookings.GET("/student/:id", authed, handlers.Booking.ListByStudent)
		bookings.GET("/tutor/:id", authed, handlers.Booking.ListByTutor)
		bookings.POST("", authed, handlers.Booking.Create)
		bookings.PUT("/:id/status", authed, handlers.Booking.UpdateStatus)
		bookings.DELETE("/:id", authed, handlers.Booking.Delete)
	}

	// ─── 6. Grades ─────────────────────────────────────────────────────
	grades := router.Group("/grades")
	{
		grades.GET("", authed, handlers.Grade.List)
		grades.GET("/student/:id", authed, handlers.Grade.ListByStudent)
		grades.GET("/:id", authed, handlers.Grade.Get)
		grades.POST("", staff, handlers.Grade.Create)
		grades.PUT("/:id", staff, handlers.Grade.Update)
		grades.DELETE("/:id", staff, handlers.Grade.Delete)
	}

	// ─── 7. Payments ───────────────────────────────────────────────────
	payments := router.Group("/payments")
	{
		payments.GET("", authed, handlers.Payment.List)
		payments.GET("/student/:id", authed, handlers.Payment.ListByStudent)
		payments.POST("", admin, handlers.Payment.Create)
		payments.PUT("/:id", admin, handlers.Payment.Update)
		payments.DELETE("/:id", admin, handlers.Payment.Delete)
	}

	// ─── 8. Reviews ────────────────────────────────────────────────────
	reviews := router.Group("/reviews")
	{
		reviews.GET("", handlers.Review.List)
		reviews.POST("", authed, handlers.Review.Create)
		reviews.PUT("/:id", authed, handlers.Review.Update)
		reviews.DELETE("/:id", authed, handlers.Review.Delete)
	}

	return router
}
