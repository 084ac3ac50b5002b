package app

import (
	"cbt_backend/docs"
	"cbt_backend/internal/config"
	"cbt_backend/internal/middleware"
	"cbt_backend/internal/model"
	"cbt_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = config.APIPrefix
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	a.registerPublicRoutes(router, c)

	authGroup := router.Group(config.APIPrefix)
	authGroup.Use(middleware.AuthMiddleware(cfg, repos.user))
	{
		a.registerAuthenticatedRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

// registerPublicRoutes mounts everything reachable without a token:
// registration, login, token refresh and the news feed.
func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group(config.APIPrefix)
	{
		users := public.Group("/users")
		{
			users.POST("/register", c.auth.Register)
			users.POST("/login", c.auth.Login)
			users.POST("/refresh-token", c.auth.RefreshToken)
		}

		news := public.Group("/news")
		{
			news.GET("/", c.news.GetNewsList)
			news.GET("/:id", c.news.GetNews)
		}
	}
}

func (a *App) registerAuthenticatedRoutes(rg *gin.RouterGroup, c *controllers) {
	users := rg.Group("/users")
	{
		users.GET("/", c.user.GetUsers)
		users.GET("/:id", c.user.GetUser)
		users.PUT("/:id", c.user.UpdateUser)
		users.DELETE("/:id", c.user.DeleteUser)
	}

	examTypes := rg.Group("/exam-types")
	{
		examTypes.GET("/", c.examType.GetExamTypes)
		examTypes.GET("/:id", c.examType.GetExamType)
	}

	subjects := rg.Group("/subjects")
	{
		subjects.GET("/", c.subject.GetSubjects)
		subjects.GET("/:id", c.subject.GetSubject)
	}

	questions := rg.Group("/questions")
	{
		questions.GET("/", c.question.GetQuestions)
		questions.GET("/:id", c.question.GetQuestion)
		questions.GET("/exam-type/:exam_type_id", c.question.GetQuestionsByExamType)
		questions.GET("/exam-type/:exam_type_id/subject/:subject_id", c.question.GetQuestionsByExamTypeAndSubject)
		questions.GET("/subject/:subject_id", c.question.GetQuestionsBySubject)
	}

	// Any authenticated user may create tests; the builder UI is not
	// restricted to staff.
	tests := rg.Group("/tests")
	{
		tests.POST("/", c.test.CreateTest)
		tests.GET("/", c.test.GetTests)
		tests.GET("/:id", c.test.GetTest)
		tests.GET("/:id/with-questions", c.test.GetTestWithQuestions)
		tests.PUT("/:id", c.test.UpdateTest)
		tests.DELETE("/:id", c.test.DeleteTest)
	}

	attempts := rg.Group("/attempts")
	{
		attempts.POST("/start", c.attempt.StartAttempt)
		attempts.POST("/submit", c.attempt.SubmitAttempt)
		attempts.POST("/practice", c.attempt.SavePractice)
		attempts.GET("/user/:user_id", c.attempt.GetUserAttempts)
		attempts.GET("/:id", c.attempt.GetAttempt)
		attempts.GET("/leaderboard/top", c.attempt.GetLeaderboard)
	}

	results := rg.Group("/results")
	{
		results.GET("/attempt/:id", c.result.GetAttemptResult)
		results.GET("/user/:user_id", c.result.GetUserResults)
		results.GET("/test/:test_id/analytics", c.result.GetTestAnalytics)
	}

	forum := rg.Group("/forum")
	{
		forum.POST("/posts", c.forum.CreatePost)
		forum.GET("/posts", c.forum.GetPosts)
		forum.POST("/posts/:id/like", c.forum.ToggleLike)
		forum.POST("/posts/:id/replies", c.forum.CreateReply)
		forum.GET("/posts/:id/replies", c.forum.GetReplies)
	}
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.POST("/users/bulk-upload", c.user.BulkUpload)

		admin.POST("/exam-types/", c.examType.CreateExamType)
		admin.PUT("/exam-types/:id", c.examType.UpdateExamType)
		admin.DELETE("/exam-types/:id", c.examType.DeleteExamType)

		admin.POST("/subjects/", c.subject.CreateSubject)
		admin.PUT("/subjects/:id", c.subject.UpdateSubject)
		admin.DELETE("/subjects/:id", c.subject.DeleteSubject)

		admin.POST("/questions/", c.question.CreateQuestion)
		admin.POST("/questions/bulk", c.question.CreateQuestionsBulk)
		admin.PUT("/questions/:id", c.question.UpdateQuestion)
		admin.DELETE("/questions/:id", c.question.DeleteQuestion)
		admin.POST("/questions/:id/upload-image", c.question.UploadQuestionImage)
		admin.DELETE("/questions/:id/delete-image", c.question.DeleteQuestionImage)
		admin.POST("/questions/:id/upload-explanation-image", c.question.UploadExplanationImage)
		admin.DELETE("/questions/:id/delete-explanation-image", c.question.DeleteExplanationImage)

		admin.POST("/news/", c.news.CreateNews)
		admin.PUT("/news/:id", c.news.UpdateNews)
		admin.DELETE("/news/:id", c.news.DeleteNews)
	}
}
