package routes

import (
	"bus_logistics/internal/controllers"

	"github.com/gin-gonic/gin"
)

func AuthRoutes(r *gin.Engine) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/signup", controllers.SignupUser)
		auth.POST("/signin", controllers.LoginUser)
	}
}
