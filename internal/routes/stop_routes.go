package routes

import (
	"bus_logistics/internal/controllers"
	"bus_logistics/internal/middleware"
	"bus_logistics/internal/models"

	"github.com/gin-gonic/gin"
)

func StopRoutes(r *gin.Engine) {
	stops := r.Group("/api/stops")
	stops.Use(middleware.RequireAuth())
	{
		stops.GET("", controllers.ListStops)
		stops.GET("/:id", controllers.GetStop)
	}

	admin := r.Group("/api/stops")
	admin.Use(middleware.RequireAuthWithRole(models.RoleAdmin))
	{
		admin.POST("", controllers.CreateStop)
		admin.PUT("/:id", controllers.UpdateStop)
		admin.DELETE("/:id", controllers.DeleteStop)
	}
}
