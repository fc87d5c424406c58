package controllers

import (
	"encoding/binary"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"bus_logistics/internal/models"
	"bus_logistics/internal/services"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"
)

// RouteResponse mirrors models.Route but carries Geometry as a GeoJSON
// string for API output.
type RouteResponse struct {
	ID          uint           `json:"ID"`
	CreatedAt   time.Time      `json:"CreatedAt"`
	UpdatedAt   time.Time      `json:"UpdatedAt"`
	DeletedAt   gorm.DeletedAt `json:"DeletedAt,omitempty"`
	RouteCode   string         `json:"route_code"`
	Name        string         `json:"name"`
	Direction   string         `json:"direction"`
	Description string         `json:"description"`
	Geometry    string         `json:"geometry"`
}

type routeInput struct {
	RouteCode   string `json:"route_code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Direction   string `json:"direction"`
	Description string `json:"description"`
	Geometry    string `json:"geometry"` // GeoJSON LineString
}

func toRouteResponse(route models.Route) RouteResponse {
	jsonGeom, _ := convertWKBToGeoJSON(route.Geometry)
	return RouteResponse{
		ID:          route.ID,
		CreatedAt:   route.CreatedAt,
		UpdatedAt:   route.UpdatedAt,
		DeletedAt:   route.DeletedAt,
		RouteCode:   route.RouteCode,
		Name:        route.Name,
		Direction:   route.Direction,
		Description: route.Description,
		Geometry:    jsonGeom,
	}
}

// parseAndConvertGeometry parses a GeoJSON string into a geom.T and returns WKB bytes
func parseAndConvertGeometry(raw string) ([]byte, error) {
	if raw == "" {
		return nil, nil
	}
	var g geom.T
	err := gjson.Unmarshal([]byte(raw), &g)
	if err != nil {
		return nil, err
	}
	return wkb.Marshal(g, binary.LittleEndian)
}

// convertWKBToGeoJSON converts WKB bytes into a GeoJSON string
func convertWKBToGeoJSON(wkbBytes []byte) (string, error) {
	if len(wkbBytes) == 0 {
		return "", nil
	}
	g, err := wkb.Unmarshal(wkbBytes)
	if err != nil {
		return "", err
	}
	b, err := gjson.Marshal(g)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CreateRoute(c *gin.Context) {
	var input routeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("CreateRoute: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	wkbGeom, err := parseAndConvertGeometry(input.Geometry)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid geometry: " + err.Error()})
		return
	}

	route, err := routeService.Create(c.Request.Context(), services.RouteRequest{
		RouteCode:   input.RouteCode,
		Name:        input.Name,
		Direction:   input.Direction,
		Description: input.Description,
		Geometry:    wkbGeom,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"route": toRouteResponse(*route)})
}

// ListRoutes returns all routes; ?name= filters by substring.
func ListRoutes(c *gin.Context) {
	routes, err := routeService.Search(c.Request.Context(), c.Query("name"))
	if err != nil {
		respondError(c, err)
		return
	}

	routeResponses := make([]RouteResponse, 0, len(routes))
	for _, r := range routes {
		routeResponses = append(routeResponses, toRouteResponse(r))
	}
	c.JSON(http.StatusOK, gin.H{"routes": routeResponses})
}

func GetRoute(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	route, err := routeService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": toRouteResponse(*route)})
}

func UpdateRoute(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input routeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("UpdateRoute: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wkbGeom, err := parseAndConvertGeometry(input.Geometry)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid geometry: " + err.Error()})
		return
	}

	route, err := routeService.Update(c.Request.Context(), id, services.RouteRequest{
		RouteCode:   input.RouteCode,
		Name:        input.Name,
		Direction:   input.Direction,
		Description: input.Description,
		Geometry:    wkbGeom,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": toRouteResponse(*route)})
}

// DeleteRoute removes a route and its stop bindings.
func DeleteRoute(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := routeService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Route deleted successfully"})
}
