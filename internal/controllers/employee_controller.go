package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"bus_logistics/internal/services"
)

func ListEmployees(c *gin.Context) {
	users, err := userService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users})
}

func GetEmployee(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	user, err := userService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func UpdateEmployee(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input services.UserUpdateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid update input: " + err.Error()})
		return
	}

	user, err := userService.Update(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func DeleteEmployee(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := userService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted"})
}

// RegisterEmployee creates a single account through the admin surface,
// same pipeline as signup.
func RegisterEmployee(c *gin.Context) {
	var input services.SignupRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid employee input: " + err.Error()})
		return
	}

	user, err := userService.Register(c.Request.Context(), input)
	if err != nil {
		logrus.WithError(err).WithField("username", input.Username).Warn("RegisterEmployee: registration rejected")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// RegisterEmployeesBulk imports a batch of accounts; the whole batch is
// validated before any row is written.
func RegisterEmployeesBulk(c *gin.Context) {
	var input []services.SignupRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bulk input: " + err.Error()})
		return
	}

	users, err := userService.RegisterBulk(c.Request.Context(), input)
	if err != nil {
		logrus.WithError(err).Warn("RegisterEmployeesBulk: import rejected")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": users})
}
