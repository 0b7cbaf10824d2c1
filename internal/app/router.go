package app

import (
	"exam_portal_backend/docs"
	"exam_portal_backend/internal/config"
	"exam_portal_backend/internal/middleware"
	"exam_portal_backend/internal/model"
	"exam_portal_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)

	student := rg.Group("/")
	student.Use(middleware.RoleMiddleware(model.Student))
	{
		// Attempt workflow
		student.GET("/exams/:id/take", c.session.StartExam)
		student.POST("/exams/:id/submit", c.session.SubmitExam)

		student.GET("/my/exams", c.result.MyExams)
		student.GET("/my/results", c.result.MyResults)
		student.GET("/my/results/:examId", c.result.MyResultDetail)

		student.GET("/my/pipelines", c.pipeline.MyProgress)
		student.PUT("/my/pipelines/:id/progress", c.pipeline.UpdateMyProgress)
	}
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/users", c.user.ListUsers)
		admin.GET("/users/:id", c.user.GetUser)
		admin.PUT("/users/:id", c.user.UpdateUser)
		admin.DELETE("/users/:id", c.user.DeleteUser)
		admin.GET("/users/:id/assignments", c.user.ListUserAssignments)
		admin.POST("/users/:id/assign", c.user.AssignUserExams)
		admin.POST("/users/:id/unassign", c.user.UnassignUserExams)
		admin.GET("/users/:id/results/:examId", c.result.StudentResultDetail)

		admin.POST("/exams", c.exam.CreateExam)
		admin.GET("/exams", c.exam.ListExams)
		admin.GET("/exams/:id", c.exam.GetExam)
		admin.PUT("/exams/:id", c.exam.UpdateExam)
		admin.DELETE("/exams/:id", c.exam.DeleteExam)
		admin.POST("/exams/:id/assign", c.exam.AssignExam)
		admin.POST("/exams/:id/unassign", c.exam.UnassignExam)
		admin.GET("/exams/:id/assignments", c.exam.ListExamAssignments)
		admin.GET("/exams/:id/results", c.result.ListExamResults)

		admin.POST("/exams/:id/questions", c.question.CreateQuestion)
		admin.POST("/exams/:id/questions/bulk", c.question.BulkCreateQuestions)
		admin.GET("/exams/:id/questions", c.question.ListQuestions)
		admin.PUT("/questions/:id", c.question.UpdateQuestion)
		admin.DELETE("/questions/:id", c.question.DeleteQuestion)

		admin.GET("/results", c.result.ListResults)

		admin.POST("/pipelines", c.pipeline.CreatePipeline)
		admin.GET("/pipelines", c.pipeline.ListPipelines)
		admin.PUT("/pipelines/:id", c.pipeline.UpdatePipeline)
		admin.DELETE("/pipelines/:id", c.pipeline.DeletePipeline)
	}
}
