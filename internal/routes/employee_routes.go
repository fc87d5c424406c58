package routes

import (
	"bus_logistics/internal/controllers"
	"bus_logistics/internal/middleware"
	"bus_logistics/internal/models"

	"github.com/gin-gonic/gin"
)

func EmployeeRoutes(r *gin.Engine) {
	employees := r.Group("/api/employees")
	employees.Use(middleware.RequireAuthWithRole(models.RoleAdmin))
	{
		employees.GET("", controllers.ListEmployees)
		employees.GET("/:id", controllers.GetEmployee)
		employees.POST("", controllers.RegisterEmployee)
		employees.POST("/bulk", controllers.RegisterEmployeesBulk)
		employees.PUT("/:id", controllers.UpdateEmployee)
		employees.DELETE("/:id", controllers.DeleteEmployee)
	}
}
