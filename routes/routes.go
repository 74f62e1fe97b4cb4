package routes

import (
	"microcourses/config"
	"microcourses/events"
	"microcourses/handlers"
	"microcourses/helper"
	"microcourses/logger"
	"microcourses/middleware"
	"microcourses/models"
	"microcourses/repositories"
	"microcourses/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Dependencies are the long-lived resources the router is built from.
// Redis, Publisher and Transcriber are optional.
type Dependencies struct {
	Config      *config.Config
	DB          *gorm.DB
	Redis       *redis.Client
	Publisher   events.Publisher
	Transcriber services.Transcriber
	Logger      logger.Logger
}

func Setup(d Dependencies) *gin.Engine {
	if d.Publisher == nil {
		d.Publisher = events.NoopPublisher{}
	}
	if d.Transcriber == nil {
		d.Transcriber = services.StubTranscriber{}
	}
	httpHelper := helper.NewHTTPHelper(d.Logger)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(d.DB)
	courseRepo := repositories.NewCourseRepository(d.DB)
	lessonRepo := repositories.NewLessonRepository(d.DB)
	enrollmentRepo := repositories.NewEnrollmentRepository(d.DB)

	// Initialize services
	tokens := services.NewTokenManager(d.Config.JWT)
	authService := services.NewAuthService(userRepo, tokens, services.AuthOptions{
		BcryptCost:       d.Config.BcryptCost,
		AllowAdminSignup: d.Config.AllowAdminSignup,
	})
	creatorService := services.NewCreatorService(userRepo, d.Publisher)
	courseService := services.NewCourseService(courseRepo, d.Publisher)
	lessonService := services.NewLessonService(courseRepo, lessonRepo)
	enrollmentService := services.NewEnrollmentService(enrollmentRepo, courseRepo, lessonRepo, d.Publisher)
	transcriptService := services.NewTranscriptService(courseRepo, lessonRepo, d.Transcriber)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, creatorService, httpHelper)
	courseHandler := handlers.NewCourseHandler(courseService, lessonService, httpHelper)
	adminHandler := handlers.NewAdminHandler(courseService, creatorService, httpHelper)
	learnerHandler := handlers.NewLearnerHandler(courseService, enrollmentService, httpHelper)
	transcriptHandler := handlers.NewTranscriptHandler(transcriptService, httpHelper)
	healthHandler := handlers.NewHealthHandler(d.DB)

	router := gin.New()
	router.Use(middleware.RequestID(), gin.Logger(), middleware.Recovery(httpHelper), middleware.CORS())

	router.GET("/health", healthHandler.Health)

	authenticated := middleware.AuthMiddleware(tokens, authService, httpHelper)
	requireRole := func(roles ...models.UserRole) gin.HandlerFunc {
		return middleware.RequireRole(httpHelper, roles...)
	}

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			limited := middleware.RateLimit(d.Config.RateLimit, d.Redis, httpHelper, d.Logger)
			auth.POST("/register", limited, authHandler.Register)
			auth.POST("/login", limited, authHandler.Login)
			auth.GET("/me", authenticated, authHandler.Me)
			auth.POST("/creator-apply", authenticated, authHandler.ApplyCreator)
		}

		courses := api.Group("/courses", authenticated)
		{
			courses.POST("", requireRole(models.RoleCreator), courseHandler.CreateCourse)
			courses.GET("/creator", requireRole(models.RoleCreator), courseHandler.GetCreatorCourses)
			courses.GET("/:id", courseHandler.GetCourse)
			courses.PUT("/:id", requireRole(models.RoleCreator), courseHandler.UpdateCourse)
			courses.DELETE("/:id", requireRole(models.RoleCreator), courseHandler.DeleteCourse)
			courses.POST("/:id/submit", requireRole(models.RoleCreator), courseHandler.SubmitCourse)

			courses.POST("/:id/lessons", requireRole(models.RoleCreator), courseHandler.AddLesson)
			courses.GET("/:id/lessons", courseHandler.GetLessons)
			courses.GET("/:id/lessons/:lid", courseHandler.GetLesson)
			courses.PUT("/:id/lessons/:lid", requireRole(models.RoleCreator), courseHandler.UpdateLesson)
			courses.DELETE("/:id/lessons/:lid", requireRole(models.RoleCreator), courseHandler.DeleteLesson)
		}

		admin := api.Group("/admin", authenticated, requireRole(models.RoleAdmin))
		{
			admin.GET("/review/courses", adminHandler.GetReviewCourses)
			admin.PUT("/courses/:id/status", adminHandler.UpdateCourseStatus)
			admin.GET("/creators/pending", adminHandler.GetPendingCreators)
			admin.PUT("/creators/:id/status", adminHandler.UpdateCreatorStatus)
		}

		learner := api.Group("/learner", authenticated, requireRole(models.RoleLearner))
		{
			learner.GET("/courses", learnerHandler.GetCatalog)
			learner.POST("/courses/:id/enroll", learnerHandler.Enroll)
			learner.GET("/progress", learnerHandler.GetProgress)
			learner.PUT("/courses/:id/lessons/:lid/complete", learnerHandler.CompleteLesson)
			learner.GET("/courses/:id/certificate", learnerHandler.GetCertificate)
		}

		transcripts := api.Group("/transcripts", authenticated, requireRole(models.RoleCreator))
		{
			transcripts.POST("/:lessonId/generate", transcriptHandler.Generate)
		}
	}

	return router
}
