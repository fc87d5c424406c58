// Package controllers holds the gin handlers. Setup wires them to a
// repository once at startup; handlers stay thin and leave the rules to
// the services.
package controllers

import (
	"bus_logistics/internal/repository"
	"bus_logistics/internal/services"
)

var (
	userService      *services.UserService
	busService       *services.BusService
	stopService      *services.StopService
	routeService     *services.RouteService
	routeStopService *services.RouteStopService
	scheduleService  *services.ScheduleService
)

// Setup builds the service singletons the handlers use. Call after the
// database is up and before the router starts serving.
func Setup(repo repository.Repository) {
	userService = services.NewUserService(repo)
	busService = services.NewBusService(repo)
	stopService = services.NewStopService(repo)
	routeService = services.NewRouteService(repo)
	routeStopService = services.NewRouteStopService(repo)
	scheduleService = services.NewScheduleService(repo)
}
