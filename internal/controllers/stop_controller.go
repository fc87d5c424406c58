package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bus_logistics/internal/models"
)

func CreateStop(c *gin.Context) {
	var stop models.Stop
	if err := c.ShouldBindJSON(&stop); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stop input: " + err.Error()})
		return
	}

	created, err := stopService.Create(c.Request.Context(), &stop)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"stop": created})
}

func ListStops(c *gin.Context) {
	stops, err := stopService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stops})
}

func GetStop(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	stop, err := stopService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stop": stop})
}

func UpdateStop(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var details models.Stop
	if err := c.ShouldBindJSON(&details); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stop input: " + err.Error()})
		return
	}

	stop, err := stopService.Update(c.Request.Context(), id, &details)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stop": stop})
}

func DeleteStop(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := stopService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Stop deleted"})
}
