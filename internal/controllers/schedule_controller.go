package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"bus_logistics/internal/services"
)

// CreateSchedule admits a new (driver, bus, route, time) assignment.
func CreateSchedule(c *gin.Context) {
	var input services.ScheduleRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schedule input: " + err.Error()})
		return
	}

	schedule, err := scheduleService.Create(c.Request.Context(), input)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"driver_id": input.DriverID,
			"bus_id":    input.BusID,
			"route_id":  input.RouteID,
		}).Warn("CreateSchedule: admission rejected")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"schedule": schedule})
}

func ListSchedules(c *gin.Context) {
	schedules, err := scheduleService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": schedules})
}

func GetSchedule(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	schedule, err := scheduleService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule": schedule})
}

// UpdateSchedule re-runs the full admission pipeline for the row.
func UpdateSchedule(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input services.ScheduleRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schedule input: " + err.Error()})
		return
	}

	schedule, err := scheduleService.Update(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule": schedule})
}

func DeleteSchedule(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := scheduleService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Schedule deleted"})
}
