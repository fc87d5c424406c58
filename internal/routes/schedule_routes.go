package routes

import (
	"bus_logistics/internal/controllers"
	"bus_logistics/internal/middleware"
	"bus_logistics/internal/models"

	"github.com/gin-gonic/gin"
)

func ScheduleRoutes(r *gin.Engine) {
	schedules := r.Group("/api/schedules")
	schedules.Use(middleware.RequireAuth())
	{
		schedules.GET("", controllers.ListSchedules)
		schedules.GET("/:id", controllers.GetSchedule)
	}

	admin := r.Group("/api/schedules")
	admin.Use(middleware.RequireAuthWithRole(models.RoleAdmin))
	{
		admin.POST("", controllers.CreateSchedule)
		admin.PUT("/:id", controllers.UpdateSchedule)
		admin.DELETE("/:id", controllers.DeleteSchedule)
	}
}
