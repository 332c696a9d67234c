package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/qfddxs/Hospital/internal/app/controllers"
	"github.com/qfddxs/Hospital/internal/middleware"
)

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	Auth           *controllers.AuthController
	Health         *controllers.HealthController
	TrainingCenter *controllers.TrainingCenterController
	Student        *controllers.StudentController
	QuotaRequest   *controllers.QuotaRequestController
	ScheduleBlock  *controllers.ScheduleBlockController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	router.GET("/ping", c.Health.Ping)

	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	v1.GET("/health", c.Health.Health)

	auth := v1.Group("/auth")
	{
		auth.POST("/token", c.Auth.ObtainToken)
		auth.POST("/token/refresh", c.Auth.RefreshToken)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	trainingCenters := authenticated.Group("/training-centers")
	{
		trainingCenters.GET("", c.TrainingCenter.ListTrainingCenters)
		trainingCenters.POST("", c.TrainingCenter.CreateTrainingCenter)
		trainingCenters.GET("/:id", c.TrainingCenter.GetTrainingCenter)
		trainingCenters.PUT("/:id", c.TrainingCenter.ReplaceTrainingCenter)
		trainingCenters.PATCH("/:id", c.TrainingCenter.UpdateTrainingCenter)
		trainingCenters.DELETE("/:id", c.TrainingCenter.DeleteTrainingCenter)
	}

	students := authenticated.Group("/students")
	{
		students.GET("", c.Student.ListStudents)
		students.POST("", c.Student.CreateStudent)
		students.GET("/:id", c.Student.GetStudent)
		students.PUT("/:id", c.Student.ReplaceStudent)
		students.PATCH("/:id", c.Student.UpdateStudent)
		students.DELETE("/:id", c.Student.DeleteStudent)
	}

	quotaRequests := authenticated.Group("/quota-requests")
	{
		quotaRequests.GET("", c.QuotaRequest.ListQuotaRequests)
		quotaRequests.POST("", c.QuotaRequest.CreateQuotaRequest)
		quotaRequests.GET("/:id", c.QuotaRequest.GetQuotaRequest)
		quotaRequests.PUT("/:id", c.QuotaRequest.ReplaceQuotaRequest)
		quotaRequests.PATCH("/:id", c.QuotaRequest.UpdateQuotaRequest)
		quotaRequests.DELETE("/:id", c.QuotaRequest.DeleteQuotaRequest)
	}

	scheduleBlocks := authenticated.Group("/schedule-blocks")
	{
		scheduleBlocks.GET("", c.ScheduleBlock.ListScheduleBlocks)
		scheduleBlocks.POST("", c.ScheduleBlock.CreateScheduleBlock)
		scheduleBlocks.GET("/:id", c.ScheduleBlock.GetScheduleBlock)
		scheduleBlocks.PUT("/:id", c.ScheduleBlock.ReplaceScheduleBlock)
		scheduleBlocks.PATCH("/:id", c.ScheduleBlock.UpdateScheduleBlock)
		scheduleBlocks.DELETE("/:id", c.ScheduleBlock.DeleteScheduleBlock)
	}
}
