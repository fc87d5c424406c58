package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bus_logistics/internal/services"
)

// RegisterBus adds a vehicle to the fleet; status defaults to Active.
func RegisterBus(c *gin.Context) {
	var input services.BusRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bus input: " + err.Error()})
		return
	}

	bus, err := busService.Register(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"bus": bus})
}

func ListBuses(c *gin.Context) {
	buses, err := busService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": buses})
}

func GetBus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	bus, err := busService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bus": bus})
}

func UpdateBus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input services.BusRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bus input: " + err.Error()})
		return
	}

	bus, err := busService.Update(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bus": bus})
}

func DeleteBus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := busService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bus deleted"})
}
