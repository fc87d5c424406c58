package routes

import (
	"bus_logistics/internal/controllers"
	"bus_logistics/internal/middleware"
	"bus_logistics/internal/models"

	"github.com/gin-gonic/gin"
)

func BusRoutes(r *gin.Engine) {
	buses := r.Group("/api/buses")
	buses.Use(middleware.RequireAuth())
	{
		buses.GET("", controllers.ListBuses)
		buses.GET("/:id", controllers.GetBus)
	}

	admin := r.Group("/api/buses")
	admin.Use(middleware.RequireAuthWithRole(models.RoleAdmin))
	{
		admin.POST("", controllers.RegisterBus)
		admin.PUT("/:id", controllers.UpdateBus)
		admin.DELETE("/:id", controllers.DeleteBus)
	}
}
