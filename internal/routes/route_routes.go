package routes

import (
	"bus_logistics/internal/controllers"
	"bus_logistics/internal/middleware"
	"bus_logistics/internal/models"

	"github.com/gin-gonic/gin"
)

func RouteRoutes(r *gin.Engine) {
	routes := r.Group("/api/routes")
	routes.Use(middleware.RequireAuth())
	{
		routes.GET("", controllers.ListRoutes)
		routes.GET("/:id", controllers.GetRoute)
		routes.GET("/:id/stops", controllers.ListRouteStops)
	}

	admin := r.Group("/api/routes")
	admin.Use(middleware.RequireAuthWithRole(models.RoleAdmin))
	{
		admin.POST("", controllers.CreateRoute)
		admin.PUT("/:id", controllers.UpdateRoute)
		admin.DELETE("/:id", controllers.DeleteRoute)
		admin.POST("/:id/stops", controllers.AddRouteStop)
	}

	routeStops := r.Group("/api/route-stops")
	routeStops.Use(middleware.RequireAuthWithRole(models.RoleAdmin))
	{
		routeStops.GET("", controllers.ListAllRouteStops)
		routeStops.PUT("/:id", controllers.UpdateRouteStop)
		routeStops.DELETE("/:id", controllers.RemoveRouteStop)
	}
}
