package app

import (
	"lms_backend/docs"
	"lms_backend/internal/config"
	"lms_backend/internal/middleware"
	"lms_backend/internal/model"
	"lms_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")

	// Public routes
	api.GET("/health", c.health.HealthCheck)
	auth := api.Group("/auth")
	{
		auth.POST("/register", c.auth.Register)
		auth.POST("/login", c.auth.Login)
	}

	// Everything below requires a valid token and a non-suspended account.
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(repos.user, cfg.JWT.Secret), middleware.ActiveMiddleware())

	user := protected.Group("/user")
	{
		user.GET("/me", c.user.Me)
		user.PUT("/update-password", c.user.UpdatePassword)
		user.PATCH("/update-info", c.user.UpdateInfo)
		user.POST("/tutor/add-learner", middleware.RoleMiddleware(model.Tutor), c.user.AddLearner)
		user.DELETE("/delete/:id", c.user.Delete)

		admin := user.Group("")
		admin.Use(middleware.RoleMiddleware(model.Admin))
		{
			admin.PATCH("/suspended/:id", c.user.ToggleSuspension)
			admin.GET("/all", c.user.ListAll)
		}
	}

	course := protected.Group("/course")
	{
		course.GET("", c.course.List)
		course.GET("/:id", c.course.Get)
		course.GET("/tutor", middleware.RoleMiddleware(model.Tutor), c.course.ListByTutor)

		tutorOnly := course.Group("")
		tutorOnly.Use(middleware.RoleMiddleware(model.Tutor))
		{
			tutorOnly.POST("/create", c.course.Create)
			tutorOnly.PATCH("/update/:id", c.course.Update)
			tutorOnly.PUT("/update-module/:id", c.course.UpdateModule)
			tutorOnly.PATCH("/module-order", c.course.ReorderModules)
			tutorOnly.DELETE("/delete/:id", c.course.Delete)
			tutorOnly.DELETE("/delete-module/:id", c.course.DeleteModule)
			tutorOnly.POST("/upload-video", c.course.UploadVideo)
		}
	}

	collaboration := protected.Group("/collaboration")
	{
		collaboration.GET("/tutor", middleware.RoleMiddleware(model.Tutor), c.collaboration.ListByTutor)
		collaboration.GET("/tutor/:id", middleware.RoleMiddleware(model.Admin), c.collaboration.ListForTutor)
		collaboration.GET("/all", middleware.RoleMiddleware(model.Admin), c.collaboration.ListAll)
		collaboration.PATCH("/:id", middleware.RoleMiddleware(model.Tutor), c.collaboration.ToggleStatus)
		collaboration.DELETE("/delete/:id", middleware.RoleMiddleware(model.Tutor), c.collaboration.Delete)
	}

	enrollment := protected.Group("/enrollment")
	{
		enrollment.GET("/learner-courses", middleware.RoleMiddleware(model.Learner), c.enrollment.ListLearnerCourses)

		tutorOnly := enrollment.Group("")
		tutorOnly.Use(middleware.RoleMiddleware(model.Tutor))
		{
			tutorOnly.POST("/add-learners", c.enrollment.AddLearners)
			tutorOnly.GET("/unenrolled-learners/:courseId", c.enrollment.ListAssignableLearners)
			tutorOnly.GET("/enrolled-learners/:courseId", c.enrollment.ListEnrolledLearners)
			tutorOnly.DELETE("/delete", c.enrollment.Delete)
		}
	}
}
