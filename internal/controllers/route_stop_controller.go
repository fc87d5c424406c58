package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"bus_logistics/internal/services"
)

// ListAllRouteStops returns every stop binding across all routes.
func ListAllRouteStops(c *gin.Context) {
	stops, err := routeStopService.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stops})
}

// ListRouteStops returns a route's stops ascending by order.
func ListRouteStops(c *gin.Context) {
	routeID, ok := idParam(c)
	if !ok {
		return
	}
	stops, err := routeStopService.List(c.Request.Context(), routeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stops})
}

// AddRouteStop inserts a stop into the route's sequence, shifting
// subsequent stops when the requested order is occupied.
func AddRouteStop(c *gin.Context) {
	routeID, ok := idParam(c)
	if !ok {
		return
	}
	var input services.RouteStopRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route stop input: " + err.Error()})
		return
	}

	rs, err := routeStopService.Insert(c.Request.Context(), routeID, input)
	if err != nil {
		logrus.WithError(err).WithField("route_id", routeID).Warn("AddRouteStop: insert rejected")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"route_stop": rs})
}

// UpdateRouteStop applies a partial update to one stop binding.
func UpdateRouteStop(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input services.RouteStopRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route stop input: " + err.Error()})
		return
	}

	rs, err := routeStopService.Update(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"route_stop": rs})
}

// RemoveRouteStop deletes a stop binding and compacts the sequence.
func RemoveRouteStop(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := routeStopService.Remove(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Route stop removed"})
}
