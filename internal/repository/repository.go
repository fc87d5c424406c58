// Package repository defines the storage contracts the services depend
// on, with a GORM/Postgres implementation and an in-memory one used by
// tests. Find methods return (nil, nil) when no row matches; callers
// decide whether that is an error.
package repository

import (
	"context"
	"time"

	"bus_logistics/internal/models"
)

// ScheduleEntity selects which side of a schedule an overlap query
// inspects: the driver or the bus.
type ScheduleEntity int

const (
	EntityDriver ScheduleEntity = iota
	EntityBus
)

// NoExclusion is the sentinel schedule id meaning "exclude nothing".
// Row ids start at 1, so zero never matches an existing schedule.
const NoExclusion uint = 0

type UserStore interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	// FindByIDLocked reads the row FOR UPDATE so that two admissions
	// contending on the same driver serialize at the storage layer.
	FindByIDLocked(ctx context.Context, id uint) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByEmployeeID(ctx context.Context, employeeID string) (bool, error)
	Create(ctx context.Context, user *models.User) error
	Save(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
}

type RoleStore interface {
	FindByName(ctx context.Context, name models.RoleName) (*models.Role, error)
	Create(ctx context.Context, role *models.Role) error
}

type BusStore interface {
	FindByID(ctx context.Context, id uint) (*models.Bus, error)
	FindByIDLocked(ctx context.Context, id uint) (*models.Bus, error)
	FindAll(ctx context.Context) ([]models.Bus, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	ExistsByBusNumber(ctx context.Context, busNumber string) (bool, error)
	ExistsByPlateNumber(ctx context.Context, plateNumber string) (bool, error)
	Create(ctx context.Context, bus *models.Bus) error
	Save(ctx context.Context, bus *models.Bus) error
	Delete(ctx context.Context, id uint) error
}

type StopStore interface {
	FindByID(ctx context.Context, id uint) (*models.Stop, error)
	FindAll(ctx context.Context) ([]models.Stop, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, stop *models.Stop) error
	Save(ctx context.Context, stop *models.Stop) error
	Delete(ctx context.Context, id uint) error
}

type RouteStore interface {
	FindByID(ctx context.Context, id uint) (*models.Route, error)
	// FindByIDLocked serializes stop-sequence mutations per route.
	FindByIDLocked(ctx context.Context, id uint) (*models.Route, error)
	FindAll(ctx context.Context) ([]models.Route, error)
	SearchByName(ctx context.Context, name string) ([]models.Route, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	ExistsByRouteCode(ctx context.Context, code string) (bool, error)
	ExistsByNameAndDirection(ctx context.Context, name, direction string) (bool, error)
	Create(ctx context.Context, route *models.Route) error
	Save(ctx context.Context, route *models.Route) error
	Delete(ctx context.Context, id uint) error
}

type RouteStopStore interface {
	FindByID(ctx context.Context, id uint) (*models.RouteStop, error)
	// FindByRouteOrdered returns the route's stops ascending by StopOrder.
	FindByRouteOrdered(ctx context.Context, routeID uint) ([]models.RouteStop, error)
	// FindAll returns every binding across all routes, grouped by route
	// and ascending by StopOrder within each.
	FindAll(ctx context.Context) ([]models.RouteStop, error)
	ExistsByRouteAndOrder(ctx context.Context, routeID uint, order int) (bool, error)
	// ShiftOrdersFrom bumps StopOrder by one for every row on the route
	// with StopOrder >= from, making room for an insertion.
	ShiftOrdersFrom(ctx context.Context, routeID uint, from int) error
	// CompactOrdersAfter decrements StopOrder by one for every row on the
	// route with StopOrder > after, closing the gap left by a removal.
	CompactOrdersAfter(ctx context.Context, routeID uint, after int) error
	Create(ctx context.Context, rs *models.RouteStop) error
	Save(ctx context.Context, rs *models.RouteStop) error
	Delete(ctx context.Context, id uint) error
}

type ScheduleStore interface {
	FindByID(ctx context.Context, id uint) (*models.Schedule, error)
	FindAll(ctx context.Context) ([]models.Schedule, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	// FindOverlapping returns the entity's schedules whose half-open
	// [departure, estimated arrival) interval intersects [start, end),
	// skipping excludeID.
	FindOverlapping(ctx context.Context, entity ScheduleEntity, entityID uint, start, end time.Time, excludeID uint) ([]models.Schedule, error)
	// FindByRouteAndDepartureWindow returns the route's schedules whose
	// departure falls inside [start, end], skipping excludeID.
	FindByRouteAndDepartureWindow(ctx context.Context, routeID uint, start, end time.Time, excludeID uint) ([]models.Schedule, error)
	Create(ctx context.Context, schedule *models.Schedule) error
	Save(ctx context.Context, schedule *models.Schedule) error
	Delete(ctx context.Context, id uint) error
}

// Repository aggregates the stores and scopes them to transactions.
type Repository interface {
	Users() UserStore
	Roles() RoleStore
	Buses() BusStore
	Stops() StopStore
	Routes() RouteStore
	RouteStops() RouteStopStore
	Schedules() ScheduleStore

	// Transaction runs fn against a repository whose stores share one
	// storage transaction; any error rolls the whole unit back.
	Transaction(ctx context.Context, fn func(Repository) error) error
}
