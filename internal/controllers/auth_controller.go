package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"bus_logistics/internal/apperr"
	"bus_logistics/internal/middleware"
	"bus_logistics/internal/models"
	"bus_logistics/internal/services"
)

// SignupUser registers a new employee account.
func SignupUser(c *gin.Context) {
	var input services.SignupRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signup input: " + err.Error()})
		return
	}

	user, err := userService.Register(c.Request.Context(), input)
	if err != nil {
		logrus.WithError(err).WithField("username", input.Username).Warn("SignupUser: registration rejected")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// LoginUser checks credentials and issues a JWT carrying the user's
// role names.
func LoginUser(c *gin.Context) {
	var body struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := userService.Authenticate(c.Request.Context(), body.Username, body.Password)
	if err != nil {
		if apperr.IsInvalid(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		respondError(c, err)
		return
	}

	roleNames := make([]models.RoleName, 0, len(user.Roles))
	for _, r := range user.Roles {
		roleNames = append(roleNames, r.Name)
	}

	token, err := middleware.GenerateToken(user.ID, roleNames)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"ID":          user.ID,
			"employee_id": user.EmployeeID,
			"username":    user.Username,
			"email":       user.Email,
			"first_name":  user.FirstName,
			"last_name":   user.LastName,
			"status":      user.Status,
			"roles":       roleNames,
		},
	})
}
